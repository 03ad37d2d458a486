// Package watcher monitors files for changes and re-runs the repair pass on
// each change. Because the rule catalog is idempotent, the write performed by
// a repair settles on the following event: the second pass finds nothing to
// change and does not write again.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/utilfix/go_class_repair/internal/ports"
)

// DefaultDebounce is the delay between an observed change and the repair
// pass, letting editors finish their write sequence first.
const DefaultDebounce = 500 * time.Millisecond

// FileHandler processes a changed file. It reports whether the file was
// modified by the repair.
type FileHandler func(path string) (changed bool, err error)

// Summary contains stats from a watch session.
type Summary struct {
	FilesRepaired  int
	FilesUnchanged int
	Errors         int
	Duration       time.Duration
}

// Watcher monitors files for write events.
type Watcher struct {
	logger    ports.Logger
	handler   FileHandler
	debounce  time.Duration
	fsWatcher *fsnotify.Watcher
	targets   map[string]bool

	done      chan struct{}
	wg        sync.WaitGroup
	startTime time.Time

	mu        sync.Mutex
	timers    map[string]*time.Timer
	repaired  int
	unchanged int
	errors    int
}

// New creates a Watcher calling handler for each settled file change.
// A debounce of zero selects the default.
func New(logger ports.Logger, handler FileHandler, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		logger:   logger,
		handler:  handler,
		debounce: debounce,
		targets:  make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
}

// Start begins watching the given files. Directories are watched rather than
// the files themselves so that editors that replace-on-save (write to a temp
// file, then rename) keep being observed.
func (w *Watcher) Start(paths []string) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			w.fsWatcher.Close()
			return err
		}
		w.targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.fsWatcher.Close()
			return err
		}
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	w.logger.Info("Watching for changes",
		"files", len(w.targets),
		"directories", len(dirs),
		"debounce", w.debounce,
	)
	return nil
}

// Stop shuts the watcher down and returns a summary of the session.
func (w *Watcher) Stop() *Summary {
	close(w.done)
	w.wg.Wait()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, t := range w.timers {
		t.Stop()
	}

	return &Summary{
		FilesRepaired:  w.repaired,
		FilesUnchanged: w.unchanged,
		Errors:         w.errors,
		Duration:       time.Since(w.startTime),
	}
}

// processEvents handles file system events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.targets[abs] {
				continue
			}
			w.scheduleRepair(abs)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

// scheduleRepair debounces repeated events for the same file.
func (w *Watcher) scheduleRepair(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.handleFile(path)
	})
}

func (w *Watcher) handleFile(path string) {
	changed, err := w.handler(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case err != nil:
		w.errors++
		w.logger.Error("Repair failed", "path", path, "error", err)
	case changed:
		w.repaired++
	default:
		w.unchanged++
	}
}
