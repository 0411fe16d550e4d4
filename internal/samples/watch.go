package samples

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to the samples directory.
type Watcher struct {
	fsWatcher *fsnotify.Watcher

	// Changes receives a value after any create, write, remove or rename.
	// Bursts are coalesced into a single pending notification.
	Changes chan struct{}
	// Errors receives watcher failures; excess errors are dropped.
	Errors  chan error
	done    chan struct{}
}

// NewWatcher watches dir, which must exist.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return &Watcher{
		fsWatcher: fsw,
		Changes:   make(chan struct{}, 1),
		Errors:    make(chan error, 10),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and closes Changes.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) watchLoop() {
	defer close(w.Changes)
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.Changes <- struct{}{}:
			default:
				// Already pending
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				// Error channel full, drop
			}
		}
	}
}
