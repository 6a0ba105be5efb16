package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/wellness/internal/storage"
	"github.com/julianstephens/wellness/internal/storage/storagetest"
)

func setupJSONStore(t *testing.T) (storage.Provider, func()) {
	path := filepath.Join(t.TempDir(), "wellness.json")
	s := storage.NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s, func() { s.Close() }
}

func TestJSONStoreContract(t *testing.T) {
	storagetest.Run(t, setupJSONStore)
}

func TestMemoryStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (storage.Provider, func()) {
		return storage.NewMemoryStore(), func() {}
	})
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellness.json")
	if err := storage.NewJSONStore(path).Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := storage.NewJSONStore(path).Init(); !errors.Is(err, storage.ErrAlreadyInitialized) {
		t.Errorf("second Init error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestJSONStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wellness.json")
	s := storage.NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.SetItem(context.Background(), "k", "v"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the store file, found %d entries", len(entries))
	}
}

func TestJSONStoreSeesExternalWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellness.json")
	a := storage.NewJSONStore(path)
	if err := a.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	b := storage.NewJSONStore(path)
	ctx := context.Background()

	if err := b.SetItem(ctx, "wellness_data", "{}"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	got, err := a.GetItem(ctx, "wellness_data")
	if err != nil || got != "{}" {
		t.Errorf("GetItem via other handle = %q, %v", got, err)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellness.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	s := storage.NewJSONStore(path)
	if err := s.Load(); err == nil {
		t.Error("expected parse error for corrupt file")
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		config string
		want   storage.Kind
	}{
		{"~/.config/wellness/wellness.db", storage.KindSQLite},
		{"/tmp/data.JSON", storage.KindJSON},
		{":memory:", storage.KindMemory},
		{"postgres://me@localhost/wellness", storage.KindPostgres},
		{"postgresql://me@localhost/wellness", storage.KindPostgres},
	}
	for _, tt := range tests {
		if got := storage.DetectKind(tt.config); got != tt.want {
			t.Errorf("DetectKind(%q) = %q, want %q", tt.config, got, tt.want)
		}
	}
	if !storage.KindJSON.FileBacked() || storage.KindPostgres.FileBacked() {
		t.Error("FileBacked misreports backends")
	}
}
