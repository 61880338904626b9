package slurmops

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// ConfigEvent reports that a watched configuration file was rewritten, or
// that the watcher itself failed.
type ConfigEvent struct {
	// Path is the file that changed
	Path string
	// Err is set when the watcher reported an error instead of a change
	Err error
}

// WatchCleanupFunc stops a watch and releases its resources
type WatchCleanupFunc func() error

// watchDebounce coalesces the burst of events an atomic rename write
// produces into one notification.
const watchDebounce = 50 * time.Millisecond

// WatchConfig notifies the caller when the configuration file at path is
// rewritten by another agent on the host. It watches the parent directory
// so atomic rename writes (the write style of this package and of most
// configuration tooling) are observed.
//
// This is a standalone convenience for callers; the Manager itself never
// watches anything. The returned channel is closed by the cleanup
// function or when ctx is canceled.
func WatchConfig(ctx context.Context, path string) (<-chan ConfigEvent, WatchCleanupFunc, error) {
	dir := filepath.Dir(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &ConfigError{Path: path, Err: err}
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, &ConfigError{Path: path, Err: err}
	}

	ch := make(chan ConfigEvent, 10)

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	var mu sync.Mutex
	var debouncer *time.Timer

	notify := func() {
		if sctx.IsStopping() {
			return
		}
		select {
		case ch <- ConfigEvent{Path: path}:
		case <-sctx.Stopping():
		}
	}

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			mu.Lock()
			if debouncer != nil {
				debouncer.Stop()
			}
			mu.Unlock()
		})

		base := filepath.Base(path)
		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if debouncer != nil {
					debouncer.Stop()
				}
				debouncer = time.AfterFunc(watchDebounce, notify)
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !sctx.IsStopping() {
					select {
					case ch <- ConfigEvent{Path: path, Err: err}:
					case <-sctx.Stopping():
						return nil
					}
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}
