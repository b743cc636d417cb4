package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	watchedPath := writeFile(t, dir, "default.yaml", defaultYAML)
	otherPath := writeFile(t, dir, "other.yaml", "")

	var (
		mu    sync.Mutex
		calls []string
	)
	w := NewFileWatcher([]string{watchedPath}, 50*time.Millisecond, func(p string) {
		mu.Lock()
		calls = append(calls, p)
		mu.Unlock()
	})
	require.NoError(t, w.Start())
	defer w.Stop()

	for i := 0; i < 5; i++ {
		writeFile(t, dir, "default.yaml", defaultYAML+"notes: edit\n")
	}
	writeFile(t, dir, "other.yaml", "version: x\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) > 0
	}, 2*time.Second, 10*time.Millisecond)

	// let any stray timer fire before counting
	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1, "burst of writes collapses into one callback")
	require.Equal(t, watchedPath, calls[0])
	require.NotContains(t, calls, otherPath)
}

func TestFileWatcherStopWithoutStart(t *testing.T) {
	w := NewFileWatcher(nil, time.Second, nil)
	require.NotPanics(t, w.Stop)
}
