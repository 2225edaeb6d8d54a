package lattice

import (
	"io"
	"log"
)

// Log streams, all disabled until SetLogWriters is called:
//
//	ops    input the lattice had to repair: negative sizes, zero rotations,
//	       expired anchors
//	diag   solved auto-scale factors and grids built from configuration
//	trace  every cell-to-world conversion; very chatty on large lattices
var (
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

const logPrefix = "[lattice] "

// SetLogWriters routes the ops, diag and trace streams. A nil writer turns
// that stream off.
func SetLogWriters(ops, diag, trace io.Writer) {
	opsLogger = streamLogger(ops)
	diagLogger = streamLogger(diag)
	traceLogger = streamLogger(trace)
}

func streamLogger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, logPrefix, log.LstdFlags|log.Lmicroseconds)
}

func logTo(l *log.Logger, format string, args []interface{}) {
	if l != nil {
		l.Printf(format, args...)
	}
}

func opsf(format string, args ...interface{})   { logTo(opsLogger, format, args) }
func diagf(format string, args ...interface{})  { logTo(diagLogger, format, args) }
func tracef(format string, args ...interface{}) { logTo(traceLogger, format, args) }
