package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func TestWatcherDispatchesWrites(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	rec := &recorder{}
	w, err := New(zap.NewNop(), rec.handle, ".txt")
	require.NoError(t, err)
	defer w.Close()
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	target := filepath.Join(dir, "sub", "a.txt")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("1"), 0o644))

	require.Eventually(t, func() bool {
		return len(rec.seen()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	for _, p := range rec.seen() {
		assert.Equal(t, target, p)
	}
}

func TestWatcherRunTwice(t *testing.T) {
	t.Parallel()
	w, err := New(nil, func(string) {})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, w.Watching, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, w.Run(ctx), ErrAlreadyWatching)
}

func TestWatcherAddMissing(t *testing.T) {
	t.Parallel()
	w, err := New(nil, func(string) {})
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Add(filepath.Join(t.TempDir(), "missing")))
}
