// Package watch monitors a directory of raw world model files and
// regenerates artifacts when a model settles after editing. Rapid saves
// from editors are debounced so one editing session triggers one run.
package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"worldforge/internal/logging"
)

// Handler receives the decoded raw model of a settled file.
type Handler func(ctx context.Context, path string, raw any)

// ModelWatcher watches a directory for *.world.json and *.json changes
// and hands settled files to the handler.
type ModelWatcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	dir         string
	handler     Handler
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	RunsTriggered int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
	LastEventType string
}

// New creates a ModelWatcher for the given directory.
func New(dir string, handler Handler) (*ModelWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ModelWatcher{
		watcher:     watcher,
		dir:         dir,
		handler:     handler,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
// A watcher whose loop exited through context cancellation can be started
// again; each start gets fresh lifecycle channels.
func (w *ModelWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		logging.Get(logging.CategoryWatch).Warn("failed to create watch dir %s: %v", w.dir, err)
	}
	if err := w.watcher.Add(w.dir); err != nil {
		logging.Get(logging.CategoryWatch).Warn("initial watch failed: %v", err)
	} else {
		logging.Watch("watching directory: %s", w.dir)
	}

	go w.run(ctx, stopCh, doneCh)
	return nil
}

// Stop stops the watcher, waits for the event loop to exit, and releases
// the underlying filesystem watch. Safe to call more than once, and after
// the loop already exited through context cancellation.
func (w *ModelWatcher) Stop() {
	w.mu.Lock()
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher: %v", err)
	}
	logging.Watch("stopped")
}

// Snapshot returns a copy of the watcher's activity counters.
func (w *ModelWatcher) Snapshot() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *ModelWatcher) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer func() {
		// However the loop exits, the watcher must be startable again.
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(doneCh)
	}()

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			w.processDebounced(ctx)
		}
	}
}

func (w *ModelWatcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}

	logging.Get(logging.CategoryWatch).Debug("%s event for %s", eventType, event.Name)

	w.mu.Lock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType

	switch eventType {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete", "rename":
		w.stats.FilesDeleted++
		// A deleted model never settles into a run.
		delete(w.debounceMap, event.Name)
		w.mu.Unlock()
		return
	}

	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// processDebounced hands files that have settled past the debounce window
// to the handler.
func (w *ModelWatcher) processDebounced(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.dispatch(ctx, path)
	}
}

func (w *ModelWatcher) dispatch(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		logging.Get(logging.CategoryWatch).Error("failed to read %s: %v", path, err)
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.Get(logging.CategoryWatch).Warn("skipping %s: %v", filepath.Base(path), err)
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.RunsTriggered++
	w.mu.Unlock()

	logging.Watch("model settled: %s", path)
	w.handler(ctx, path, raw)
}
