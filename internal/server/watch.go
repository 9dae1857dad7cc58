package server

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cours-de-latin/inflect"
)

// Loader builds a fresh inflector from the cache. It must only read:
// the server never trains or writes artifacts.
type Loader func() (*inflect.Inflector, error)

// Watcher reloads the server's inflector when cache artifacts are
// written. Bursts of events (a retrain writes three files) are
// collapsed into one reload once the directory has been quiet for the
// debounce interval. Removals are ignored: clearing the cache does not
// take the running model away. A reload waits until the bias and both
// rule tables are present, so a retrain in progress is never raced.
type Watcher struct {
	watcher  *fsnotify.Watcher
	srv      *Server
	cache    *inflect.Cache
	load     Loader
	logger   *zap.Logger
	names    map[string]bool
	debounce time.Duration

	mu      sync.Mutex
	pending time.Time
	reloads int
}

// NewWatcher watches the directory of cache for changes to its
// artifacts.
func NewWatcher(srv *Server, cache *inflect.Cache, load Loader, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(cache.Dir); err != nil {
		fw.Close()
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	names := make(map[string]bool)
	for _, p := range cache.Paths() {
		names[filepath.Base(p)] = true
	}
	return &Watcher{
		watcher:  fw,
		srv:      srv,
		cache:    cache,
		load:     load,
		logger:   logger,
		names:    names,
		debounce: 500 * time.Millisecond,
	}, nil
}

// Reloads returns how many reloads have succeeded.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("cache watcher error", zap.Error(err))

		case <-tick.C:
			w.maybeReload()
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !w.names[filepath.Base(ev.Name)] {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	w.logger.Debug("cache artifact changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) maybeReload() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	if !w.complete() {
		w.logger.Debug("cache incomplete, waiting for the remaining artifacts")
		return
	}

	in, err := w.load()
	if err != nil {
		w.logger.Error("model reload failed, keeping current model", zap.Error(err))
		return
	}
	w.srv.Swap(in)

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.logger.Info("model reloaded", zap.Int("msds", len(in.MSDs())))
}

// complete reports whether every artifact a reload reads is in place.
func (w *Watcher) complete() bool {
	if !w.cache.HasModel() {
		return false
	}
	_, err := w.cache.LoadBias()
	return err == nil
}
