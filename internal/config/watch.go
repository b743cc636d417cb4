package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches config files and triggers a callback on change.
// The parent directories are watched so editors that replace files on save
// are still seen. Bursts of events on one path within Interval collapse into one call.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration
	OnError  func(error)  // optional
	onChange func(string) // called with path that changed

	watcher *fsnotify.Watcher
	watched map[string]bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewFileWatcher creates a watcher for given paths and debounce interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:    paths,
		Interval: interval,
		onChange: onChange,
		watched:  make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
}

// Start registers the watches and begins processing events in a goroutine.
func (w *FileWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dirs := make(map[string]bool)
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.watcher = fw

	go w.loop()
	return nil
}

// Stop terminates the watcher and cancels pending callbacks.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
	if w.watcher == nil {
		return
	}
	<-w.doneCh
	w.watcher.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range w.timers {
		t.Stop()
	}
}

func (w *FileWatcher) loop() {
	defer close(w.doneCh)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			if !w.watched[path] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.debounce(path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		case <-w.stopCh:
			return
		}
	}
}

func (w *FileWatcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Reset(w.Interval)
		return
	}
	w.timers[path] = time.AfterFunc(w.Interval, func() {
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}
