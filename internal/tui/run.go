package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/watch"
	"github.com/julianstephens/wellness/internal/wellness"
)

// Run starts the interactive program. When watchPath is set, changes other
// processes make to that file are reloaded into the running session.
func Run(ctx context.Context, store *wellness.Store, watchPath string, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	var modelOpts []Option
	if watchPath != "" {
		w, err := watch.New(watchPath)
		if err != nil {
			logger.Warn("File watching disabled", "path", watchPath, "error", err)
		} else {
			changes := make(chan struct{}, 1)
			modelOpts = append(modelOpts, WithChanges(changes))
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := w.Run(ctx, func() {
					select {
					case changes <- struct{}{}:
					default:
					}
				}); err != nil {
					logger.Warn("File watcher stopped", "error", err)
				}
			}()
		}
	}

	p := tea.NewProgram(New(ctx, store, modelOpts...), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
