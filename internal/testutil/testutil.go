// Package testutil provides shared test helpers for vector maths and config
// fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tolerance is the absolute error allowed by ApproxVec.
const Tolerance = 1e-9

// ApproxVec compares float fields within Tolerance.
var ApproxVec = cmpopts.EquateApprox(0, Tolerance)

// AssertVec reports a diff when got is not within Tolerance of want.
func AssertVec(t testing.TB, what string, want, got r3.Vec) {
	t.Helper()
	if diff := cmp.Diff(want, got, ApproxVec); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}

// WriteTempFile writes body to name inside a fresh temporary directory and
// returns its path.
func WriteTempFile(t testing.TB, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
