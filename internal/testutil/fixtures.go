// Package testutil provides shared fixtures for tests: throwaway
// engines with silenced logging and temporary worksheet stores.
package testutil

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/girderhq/girder/internal/engine"
	"github.com/girderhq/girder/internal/store"
)

// NewEngine creates an engine with the default catalog and a discard
// logger, plus any extra options.
func NewEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	opts = append([]engine.Option{engine.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return engine.NewDefault(opts...)
}

// TempStore creates a worksheet store backed by a temp-dir SQLite
// file, closed automatically at test cleanup.
func TempStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
