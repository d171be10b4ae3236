package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-syqgen/internal/watch"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "index.html")
	other := filepath.Join(dir, "other.html")
	require.NoError(t, os.WriteFile(target, []byte("v0"), 0o644))

	w, err := watch.New(target, watch.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, path string) {
			assert.Equal(t, w.Path(), path)
			calls.Add(1)
		})
	}()

	// Give the watcher a moment to start receiving events.
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("v"+string(rune('1'+i))), 0o644))
	}
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst of writes should settle into one call")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_RequiresHandler(t *testing.T) {
	target := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(target, nil, 0o644))

	w, err := watch.New(target)
	require.NoError(t, err)
	assert.Error(t, w.Run(context.Background(), nil))
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := watch.New(filepath.Join(t.TempDir(), "absent", "index.html"))
	assert.Error(t, err)
}
