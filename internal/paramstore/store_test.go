package paramstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sothatsit/ThreePlayerChess/internal/eval"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "paramstore-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := OpenAt(filepath.Join(tmpDir, "db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleParams() eval.Combined {
	return eval.Combined{
		Start: eval.Parameters{
			SelfWeight:     1,
			TypeValues:     [6]float64{100, 320, 330, 500, 900, 0},
			PawnRowValue:   5,
			MoveCountValue: 1,
		},
		End: eval.Parameters{
			SelfWeight:     1.5,
			TypeValues:     [6]float64{100, 300, 300, 550, 950, 0},
			PawnRowValue:   10,
			MoveCountValue: 0.5,
		},
	}
}

func TestPutGetRoundTrips(t *testing.T) {
	s := openTestStore(t)
	want := sampleParams()

	if err := s.Put("default", want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get("default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Fatalf("round-tripped params %+v do not match original %+v", got, want)
	}
}

func TestGetMissingNameErrors(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("nonexistent"); err == nil {
		t.Fatal("expected an error for a name that was never saved")
	}
}

func TestListReturnsAllSavedNames(t *testing.T) {
	s := openTestStore(t)
	params := sampleParams()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := s.Put(name, params); err != nil {
			t.Fatalf("Put(%q): %v", name, err)
		}
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"alpha", "beta", "gamma"} {
		if !seen[want] {
			t.Fatalf("expected List to include %q, got %v", want, names)
		}
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	s := openTestStore(t)
	params := sampleParams()
	if err := s.Put("temp", params); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete("temp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("temp"); err == nil {
		t.Fatal("expected Get to fail after Delete")
	}
}
