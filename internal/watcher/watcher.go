// Package watcher reports debounced changes to the input documents of an
// analysis output directory.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vvka-141/cadpost/internal/logging"
	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// Watcher monitors a single directory for changes to a fixed set of file names.
type Watcher struct {
	watcher       *fsnotify.Watcher
	dir           string
	names         map[string]bool // Base names to monitor
	debounceTime  time.Duration   // Quiet period before firing callback
	logger        cadpost.Logger
	callback      func(files []string)
	ctx           context.Context
	cancel        context.CancelFunc
	accumulated   map[string]bool // Accumulated file changes
	accumulatedMu sync.Mutex      // Protects accumulated map
	debounceTimer *time.Timer
	timerMu       sync.Mutex // Protects debounce timer
	stopOnce      sync.Once  // Ensures Stop() is idempotent
	doneCh        chan struct{}
}

// New creates a watcher for dir that reacts to the given base names.
// A nil logger discards warnings.
func New(dir string, names []string, debounce time.Duration, logger cadpost.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}

	return &Watcher{
		watcher:      fsw,
		dir:          dir,
		names:        nameSet,
		debounceTime: debounce,
		logger:       logger,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching, calling callback with the sorted base names that
// changed once no further change has arrived for the debounce period.
// Callbacks run on the watcher goroutine, one at a time.
func (w *Watcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return errors.New("watcher callback cannot be nil")
	}

	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.watch()
	return nil
}

// Done is closed when the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watch() {
	defer close(w.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.accumulatedMu.Lock()
			w.accumulated[filepath.Base(event.Name)] = true
			w.accumulatedMu.Unlock()

			w.resetDebounceTimer(fireCh)

		case <-fireCh:
			w.handleDebounceExpired()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleDebounceExpired() {
	w.accumulatedMu.Lock()
	if len(w.accumulated) == 0 {
		w.accumulatedMu.Unlock()
		return
	}

	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	sort.Strings(files)
	w.callback(files)
}

// resetDebounceTimer restarts the quiet period.
func (w *Watcher) resetDebounceTimer(fireCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// shouldProcessEvent keeps content-changing events on monitored names.
// Rename is included because analysis tools often replace files atomically.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return w.names[filepath.Base(event.Name)]
}
