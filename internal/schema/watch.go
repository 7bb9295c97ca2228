package schema

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor write bursts (truncate+write, or
// write-to-temp-then-rename) into a single reload signal.
const debounceDelay = 200 * time.Millisecond

// Watch signals on the returned channel after the workspace file changes on
// disk. The parent directory is watched rather than the file itself so
// rename-and-recreate editors keep working. The watcher runs until ctx is
// cancelled; the channel closes when it exits.
func Watch(ctx context.Context, path string, logger *log.Logger) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer w.Close()

		fired := make(chan struct{}, 1)
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(abs) {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					select {
					case fired <- struct{}{}:
					default:
					}
				})
			case <-fired:
				logger.Debug("workspace changed", "path", abs)
				select {
				case ch <- struct{}{}:
				default:
				}
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", werr)
			}
		}
	}()
	return ch, nil
}
