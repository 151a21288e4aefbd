package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tinysort/src/triage"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 5 * time.Second

// DirectoryWatcher watches class directories for new or removed image
// files and emits a debounced DirEvent per watched directory. Rapid
// bursts of filesystem activity (bulk copies, camera imports) collapse
// into a single event.
type DirectoryWatcher struct {
	watcher  *fsnotify.Watcher
	events   chan DirEvent
	debounce time.Duration

	mu      sync.Mutex
	watched map[string]bool
	timers  map[string]*time.Timer

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDirectoryWatcher creates a watcher with the given debounce window.
// A debounce of zero falls back to DefaultDebounce.
func NewDirectoryWatcher(debounce time.Duration) (*DirectoryWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DirectoryWatcher{
		watcher:  fsw,
		events:   make(chan DirEvent, 16),
		debounce: debounce,
		watched:  make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Events returns the channel on which debounced directory events are
// delivered.
func (w *DirectoryWatcher) Events() <-chan DirEvent {
	return w.events
}

// Watch starts watching the given directory for image file changes.
func (w *DirectoryWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[abs] {
		return nil
	}
	if err := w.watcher.Add(abs); err != nil {
		return err
	}
	w.watched[abs] = true
	slog.Debug("Watching directory", "path", abs)
	return nil
}

// Unwatch stops watching the given directory and drops any pending
// debounce timer for it.
func (w *DirectoryWatcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watched[abs] {
		return nil
	}
	delete(w.watched, abs)
	if t, ok := w.timers[abs]; ok {
		t.Stop()
		delete(w.timers, abs)
	}
	if err := w.watcher.Remove(abs); err != nil {
		slog.Debug("Failed to remove watch", "path", abs, "error", err)
	}
	return nil
}

// Start begins processing filesystem events until the context is
// cancelled or Stop is called.
func (w *DirectoryWatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.loop(ctx)
}

func (w *DirectoryWatcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
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
			slog.Error("Watcher error", "error", err)
		}
	}
}

func (w *DirectoryWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !triage.IsImage(event.Name) {
		return
	}
	dir := filepath.Dir(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	// The event may come from a subdirectory of a watched path on
	// some platforms; resolve to the nearest watched ancestor.
	watchPath := ""
	for p := range w.watched {
		if dir == p || strings.HasPrefix(dir, p+string(filepath.Separator)) {
			if len(p) > len(watchPath) {
				watchPath = p
			}
		}
	}
	if watchPath == "" {
		return
	}

	slog.Debug("Image file event", "file", event.Name, "op", event.Op.String(), "watch", watchPath)

	if t, ok := w.timers[watchPath]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[watchPath] = time.AfterFunc(w.debounce, func() {
		w.emit(watchPath)
	})
}

func (w *DirectoryWatcher) emit(watchPath string) {
	w.mu.Lock()
	delete(w.timers, watchPath)
	still := w.watched[watchPath]
	w.mu.Unlock()
	if !still {
		return
	}
	ev := DirEvent{
		Path:      watchPath,
		EventType: DirChanged,
		Timestamp: time.Now(),
	}
	select {
	case w.events <- ev:
		slog.Info("Directory changed", "path", watchPath)
	default:
		slog.Warn("Event channel full, dropping event", "path", watchPath)
	}
}

// Stop shuts down the watcher and waits for the event loop to exit.
func (w *DirectoryWatcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.watcher.Close()
	<-w.done

	w.mu.Lock()
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
	w.mu.Unlock()
}
