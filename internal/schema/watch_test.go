package schema

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestWatchSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities: []\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, path, testLogger())
	require.NoError(t, err)

	// Give the watcher a moment to register before the write.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - id: e1\n    name: A\n"), 0644))

	select {
	case _, ok := <-ch:
		require.True(t, ok, "channel closed before signaling")
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal within 3s")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities: []\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := Watch(ctx, path, testLogger())
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x\n"), 0644))

	select {
	case <-ch:
		t.Fatal("signal for unrelated file")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities: []\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := Watch(ctx, path, testLogger())
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok, "expected closed channel after cancel")
	case <-time.After(3 * time.Second):
		t.Fatal("channel not closed within 3s of cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := Watch(ctx, filepath.Join(t.TempDir(), "nope", "ws.yaml"), testLogger())
	require.Error(t, err)
}
