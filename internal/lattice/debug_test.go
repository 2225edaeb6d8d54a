package lattice

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLogWriters_Enable(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)
	defer SetLogWriters(nil, nil, nil)

	if opsLogger == nil || diagLogger == nil || traceLogger == nil {
		t.Fatal("all loggers should be non-nil after SetLogWriters with writers")
	}
}

func TestSetLogWriters_Disable(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriters(&buf, &buf, &buf)
	SetLogWriters(nil, nil, nil)

	if opsLogger != nil || diagLogger != nil || traceLogger != nil {
		t.Fatal("all loggers should be nil after SetLogWriters(nil, nil, nil)")
	}

	// Should not panic.
	opsf("no-op %d", 1)
	diagf("no-op %d", 2)
	tracef("no-op %d", 3)
}

func TestOpsf_ClampedSize(t *testing.T) {
	var ops bytes.Buffer
	SetLogWriters(&ops, nil, nil)
	defer SetLogWriters(nil, nil, nil)

	g := unitGrid(Coord{X: 1, Y: 1, Z: 1})
	g.SetSize(Coord{X: -2, Y: 3, Z: 1})

	output := ops.String()
	if !strings.Contains(output, "[lattice]") {
		t.Errorf("expected output to contain '[lattice]' prefix, got %q", output)
	}
	if !strings.Contains(output, "clamped to (0,3,1)") {
		t.Errorf("expected clamp warning, got %q", output)
	}
}

func TestDiagf_AutoScale(t *testing.T) {
	var diag bytes.Buffer
	SetLogWriters(nil, &diag, nil)
	defer SetLogWriters(nil, nil, nil)

	g := unitGrid(Coord{X: 2, Y: 2, Z: 2})
	g.SetMaxWorldSize(vec(1, 1, 1))
	g.SetAutoScale(true)

	if !strings.Contains(diag.String(), "auto-scale") {
		t.Errorf("expected auto-scale diagnostics, got %q", diag.String())
	}
}

func TestTracef_CellQueries(t *testing.T) {
	var trace bytes.Buffer
	SetLogWriters(nil, nil, &trace)
	defer SetLogWriters(nil, nil, nil)

	g := unitGrid(Coord{X: 1, Y: 1, Z: 1})
	if _, err := g.CellPositionInWorld(0); err != nil {
		t.Fatalf("CellPositionInWorld(0): %v", err)
	}
	if !strings.Contains(trace.String(), "cell (0,0,0) -> world") {
		t.Errorf("expected trace of cell query, got %q", trace.String())
	}
}

func TestOpsf_ExpiredAnchorReportedOnMutation(t *testing.T) {
	var ops bytes.Buffer
	SetLogWriters(&ops, nil, nil)
	defer SetLogWriters(nil, nil, nil)

	g := unitGrid(Coord{X: 1, Y: 1, Z: 1})
	anchor := NewTransform()
	g.Origin().AttachAnchor(anchor)
	anchor.Destroy()

	_ = g.Origin().Position()
	_ = g.Origin().IsAnchored()
	_, _ = g.CellPositionInWorld(0)
	if ops.Len() != 0 {
		t.Fatalf("reads must not log, got %q", ops.String())
	}

	g.ApplyAutoScale()
	g.SetSize(Coord{X: 2, Y: 1, Z: 1})
	if n := strings.Count(ops.String(), "expired"); n != 1 {
		t.Errorf("expected one expiry report, got %d in %q", n, ops.String())
	}

	// Attaching an already destroyed anchor reports it straight away.
	ops.Reset()
	dead := NewTransform()
	dead.Destroy()
	g.Origin().AttachAnchor(dead)
	if !strings.Contains(ops.String(), dead.ID.String()) {
		t.Errorf("expected expiry of %s, got %q", dead.ID, ops.String())
	}
}
