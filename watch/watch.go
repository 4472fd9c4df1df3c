// Package watch re-runs a handler whenever a watched file is written.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/syntax/scanner"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

var ErrAlreadyWatching = errors.New("already watching")

// Handler is called with the path of a changed file.
type Handler func(path string)

type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
	handler  Handler
	match    *scanner.Scanner
	debounce time.Duration

	mu       sync.Mutex
	watching bool
	pending  map[string]*time.Timer
}

// New creates a Watcher calling handler for files with one of the given
// extensions, or for every file when none are given.
func New(logger *zap.Logger, handler Handler, extensions ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		logger:   logger,
		handler:  handler,
		match:    scanner.New("", extensions...),
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetDebounce changes the quiet period before the handler runs.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Watching reports whether Run is active.
func (w *Watcher) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

// Add watches files, or directories recursively.
func (w *Watcher) Add(paths ...string) error {
	for _, path := range paths {
		if !scanner.IsDir(path) {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("error adding %s to watcher: %w", path, err)
			}
			continue
		}
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return w.watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

// Run dispatches events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return ErrAlreadyWatching
	}
	w.watching = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.watching = false
		for path, t := range w.pending {
			t.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !w.match.Match(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[event.Name]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[event.Name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, event.Name)
		w.mu.Unlock()

		w.logger.Debug("File changed", zap.String("file", event.Name))
		w.handler(event.Name)
	})
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
