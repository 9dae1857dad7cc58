package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cours-de-latin/inflect"
)

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
}

func TestWatcherReloadsOnRetrain(t *testing.T) {
	cache := inflect.NewCache(t.TempDir())
	s := New(testInflector(), zaptest.NewLogger(t), nil)

	replacement := inflect.New(inflect.NewModel(), inflect.Bias{Prefix: 1})
	w, err := NewWatcher(s, cache, func() (*inflect.Inflector, error) {
		return replacement, nil
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	startWatcher(t, w)

	require.NoError(t, cache.SaveBias(inflect.Bias{Prefix: 1}))
	require.NoError(t, cache.SaveModel(inflect.NewModel()))

	require.Eventually(t, func() bool { return w.Reloads() >= 1 }, 5*time.Second, 20*time.Millisecond)
	assert.Same(t, replacement, s.Inflector())
}

func TestWatcherKeepsModelOnFailure(t *testing.T) {
	cache := inflect.NewCache(t.TempDir())
	original := testInflector()
	s := New(original, nil, nil)

	attempts := make(chan struct{}, 16)
	w, err := NewWatcher(s, cache, func() (*inflect.Inflector, error) {
		attempts <- struct{}{}
		return nil, errors.New("corrupt cache")
	}, nil)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	startWatcher(t, w)

	require.NoError(t, cache.SaveBias(inflect.Bias{Suffix: 1}))
	require.NoError(t, cache.SaveModel(inflect.NewModel()))

	select {
	case <-attempts:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload attempted")
	}
	assert.Zero(t, w.Reloads())
	assert.Same(t, original, s.Inflector())
}

func TestWatcherWaitsForCompleteCache(t *testing.T) {
	cache := inflect.NewCache(t.TempDir())
	original := testInflector()
	s := New(original, nil, nil)

	attempts := make(chan struct{}, 16)
	w, err := NewWatcher(s, cache, func() (*inflect.Inflector, error) {
		attempts <- struct{}{}
		return inflect.New(inflect.NewModel(), inflect.Bias{}), nil
	}, nil)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	startWatcher(t, w)

	// A retrain writes the bias first and the tables only after training.
	require.NoError(t, cache.SaveBias(inflect.Bias{Suffix: 1}))

	select {
	case <-attempts:
		t.Fatal("reload attempted with only the bias file in place")
	case <-time.After(500 * time.Millisecond):
	}
	assert.Zero(t, w.Reloads())
	assert.Same(t, original, s.Inflector())
	_, err = cache.LoadModel()
	assert.ErrorIs(t, err, inflect.ErrCacheMissing, "the watcher must not write rule tables")

	require.NoError(t, cache.SaveModel(inflect.NewModel()))
	require.Eventually(t, func() bool { return w.Reloads() >= 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	w := &Watcher{names: map[string]bool{"prefsuffbias": true}, logger: zap.NewNop()}
	w.handleEvent(fsnotify.Event{Name: "/tmp/cache/notes.txt", Op: fsnotify.Write})
	assert.True(t, w.pending.IsZero())

	w.handleEvent(fsnotify.Event{Name: "/tmp/cache/prefsuffbias", Op: fsnotify.Remove})
	assert.True(t, w.pending.IsZero(), "removals do not trigger a reload")

	w.handleEvent(fsnotify.Event{Name: "/tmp/cache/prefsuffbias", Op: fsnotify.Create})
	assert.False(t, w.pending.IsZero())
}
