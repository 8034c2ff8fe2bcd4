package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/paramedit/internal/param"
	"github.com/roach88/paramedit/internal/testutil"
)

// createTestStore creates a new file-backed store with deterministic IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator("")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustInsert inserts a parameter built from a name, expression and unit.
func mustInsert(t *testing.T, s *Store, name, expression, unit string, value float64) param.Parameter {
	t.Helper()
	p, err := s.Insert(context.Background(), param.Parameter{
		Name:       name,
		Expression: expression,
		Unit:       unit,
		Value:      value,
	})
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", name, err)
	}
	return p
}
