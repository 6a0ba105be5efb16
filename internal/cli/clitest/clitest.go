// Package clitest builds command contexts backed by an in-memory store.
package clitest

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/storage"
	"github.com/julianstephens/wellness/internal/wellness"
)

// Now is the fixed clock every test context starts from
var Now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

// Env is a loaded command context plus its captured output
type Env struct {
	*cli.Context
	Mem *storage.MemoryStore
	Buf *bytes.Buffer
}

// New returns a loaded context over a memory store. Confirmations answer yes.
func New(t *testing.T) *Env {
	t.Helper()
	mem := storage.NewMemoryStore()
	return NewWithProvider(t, mem, storage.KindMemory, mem)
}

// NewWithProvider is New for an arbitrary, already initialized provider
func NewWithProvider(t *testing.T, p storage.Provider, kind storage.Kind, mem *storage.MemoryStore) *Env {
	t.Helper()
	seq := 0
	ctx := cli.NewContext(p, kind, t.TempDir(),
		wellness.WithClock(func() time.Time { return Now }),
		wellness.WithLocation(time.UTC),
		wellness.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	buf := &bytes.Buffer{}
	ctx.Out = buf
	ctx.Ctx = context.Background()
	ctx.Confirm = func(string) (bool, error) { return true, nil }
	ctx.Store.Load(ctx.Ctx)
	return &Env{Context: ctx, Mem: mem, Buf: buf}
}
