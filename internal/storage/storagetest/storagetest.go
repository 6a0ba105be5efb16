// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/wellness/internal/storage"
)

// Factory returns an initialised, loaded provider and a cleanup func
type Factory func(t *testing.T) (storage.Provider, func())

// Run exercises the Provider contract against providers built by newProvider
func Run(t *testing.T, newProvider Factory) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		p, cleanup := newProvider(t)
		defer cleanup()

		_, err := p.GetItem(context.Background(), "absent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetItem(absent) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		p, cleanup := newProvider(t)
		defer cleanup()
		ctx := context.Background()

		blob := `{"moods":[],"habits":[{"id":"1","name":"Exercise 🏃‍♂️"}]}`
		if err := p.SetItem(ctx, "wellness_data", blob); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		got, err := p.GetItem(ctx, "wellness_data")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got != blob {
			t.Errorf("GetItem = %q, want %q", got, blob)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		p, cleanup := newProvider(t)
		defer cleanup()
		ctx := context.Background()

		for _, v := range []string{"first", "second"} {
			if err := p.SetItem(ctx, "k", v); err != nil {
				t.Fatalf("SetItem(%q) failed: %v", v, err)
			}
		}
		got, err := p.GetItem(ctx, "k")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got != "second" {
			t.Errorf("GetItem = %q, want second", got)
		}
	})

	t.Run("remove", func(t *testing.T) {
		p, cleanup := newProvider(t)
		defer cleanup()
		ctx := context.Background()

		if err := p.SetItem(ctx, "k", "v"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		if err := p.RemoveItem(ctx, "k"); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		if _, err := p.GetItem(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetItem after remove error = %v, want ErrNotFound", err)
		}
		// Removing twice is fine
		if err := p.RemoveItem(ctx, "k"); err != nil {
			t.Errorf("second RemoveItem failed: %v", err)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		p, cleanup := newProvider(t)
		defer cleanup()
		ctx := context.Background()

		for _, k := range []string{"wellness_data", "wellness-hydration", "wellness-onboarding-completed"} {
			if err := p.SetItem(ctx, k, "x"); err != nil {
				t.Fatalf("SetItem(%q) failed: %v", k, err)
			}
		}
		keys, err := p.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		want := []string{"wellness-hydration", "wellness-onboarding-completed", "wellness_data"}
		if diff := cmp.Diff(want, keys); diff != "" {
			t.Errorf("Keys mismatch (-want +got):\n%s", diff)
		}
	})
}
