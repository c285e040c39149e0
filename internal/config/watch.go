// pattern: Imperative Shell

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes and hands the parsed
// result to the host over a channel. Reloads are debounced: editors often
// fire several events per save.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Config
}

// NewWatcher creates a watcher for the given config path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		path:    path,
		watcher: fw,
		updates: make(chan Config, 1),
	}, nil
}

// Updates returns the channel fresh configs arrive on.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Start watches until the context is cancelled. The parent directory is
// watched rather than the file itself, so a config created after startup
// is still picked up.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			_ = w.watcher.Close()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				debounce = time.After(200 * time.Millisecond)
			}

		case <-debounce:
			debounce = nil
			cfg, err := LoadFrom(w.path)
			if err != nil {
				continue
			}
			if err := cfg.Validate(); err != nil {
				continue
			}
			// Drop the stale pending update, keep only the newest.
			select {
			case <-w.updates:
			default:
			}
			w.updates <- cfg

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
