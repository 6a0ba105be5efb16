// Package watch reports changes another process makes to a storage file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/logger"
)

// Watcher watches the directory holding a file, since atomic saves replace
// the file itself. Sidecar files such as sqlite's -wal count as the file.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
}

type Option func(*Watcher)

// WithDebounce sets how long events must settle before a change is reported
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{path: abs, debounce: constants.WatchDebounce, fs: fw}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) matches(name string) bool {
	base := filepath.Base(w.path)
	got := filepath.Base(name)
	return got == base || strings.HasPrefix(got, base+"-")
}

// Run calls onChange once per burst of writes until ctx is done. It closes
// the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.matches(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("Storage file changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", "path", w.path, "error", err)

		case <-timer.C:
			onChange()
		}
	}
}
