package catalog

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the catalog when its override file changes on disk.
// Events are debounced because editors commonly emit several writes per
// save.
type Watcher struct {
	catalog  *Catalog
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration

	// OnReload, if set, is called after every reload attempt with the
	// reload result. Called from the watcher goroutine.
	OnReload func(error)

	running bool
	stopCh  chan struct{}
	mu      sync.RWMutex

	pending   bool
	pendingAt time.Time
	pendingMu sync.Mutex
}

// NewWatcher creates a watcher for the catalog override file at path.
func NewWatcher(catalog *Catalog, path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}

	return &Watcher{
		catalog:  catalog,
		path:     abs,
		watcher:  fsWatcher,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching for changes to the override file.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a direct file watch.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch catalog directory: %w", err)
	}

	go w.processEvents()
	go w.processDebounced()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	return w.watcher.Close()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isCatalogEvent(event) {
				continue
			}
			w.pendingMu.Lock()
			w.pending = true
			w.pendingAt = time.Now()
			w.pendingMu.Unlock()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) isCatalogEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return path == w.path
}

func (w *Watcher) processDebounced() {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.pendingMu.Lock()
			ready := w.pending && time.Since(w.pendingAt) >= w.debounce
			if ready {
				w.pending = false
			}
			w.pendingMu.Unlock()

			if ready {
				err := w.catalog.LoadFile(w.path)
				if w.OnReload != nil {
					w.OnReload(err)
				}
			}
		}
	}
}
