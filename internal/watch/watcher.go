// Package watch re-runs a callback whenever a single file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 150 * time.Millisecond

// Handler is invoked once per settled burst of changes.
type Handler func(ctx context.Context, path string)

type Option func(*Watcher)

// WithDebounce sets how long the file must be quiet before Handler runs.
func WithDebounce(period time.Duration) Option {
	return func(w *Watcher) {
		if period > 0 {
			w.debounce = period
		}
	}
}

// WithLogger sets the logger for watch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches one file. The parent directory is watched so editors that
// save by renaming a temp file over the original are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for path.
func New(path string, options ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "watch: resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch: create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch: watch %s", filepath.Dir(abs))
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks, calling handler after each change, until ctx is done. The
// underlying watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	defer w.stop()
	if handler == nil {
		return errors.New("watch: handler is required")
	}

	w.logger.Info("watching file", zap.String("path", w.path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			w.schedule(ctx, handler)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		handler(ctx, w.path)
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
