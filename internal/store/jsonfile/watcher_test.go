package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	watcher, err := NewWatcher(dir)
	require.NoError(t, err)
	defer watcher.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := watcher.Watch(ctx, "units.json")

	store := NewUnitStore(filepath.Join(dir, "units.json"), 0)
	_, err = store.Create(ctx, sampleUnit("unit-1"))
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "units.json", event.File)
		assert.False(t, event.Timestamp.IsZero())
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestWatcher_Wildcard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	watcher, err := NewWatcher(dir)
	require.NoError(t, err)
	defer watcher.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := watcher.Watch(ctx, "*")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "units.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notifications.json"), []byte(`{}`), 0o644))

	received := make(map[string]bool)
	timeout := time.After(5 * time.Second)
	for len(received) < 2 {
		select {
		case event := <-events:
			received[event.File] = true
		case <-timeout:
			t.Fatal("timeout waiting for events")
		}
	}

	assert.True(t, received["units.json"])
	assert.True(t, received["notifications.json"])
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	watcher, err := NewWatcher(dir)
	require.NoError(t, err)
	defer watcher.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := watcher.Watch(ctx, "units.json")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notifications.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0o644))

	select {
	case event := <-events:
		t.Fatalf("unexpected event for %s", event.File)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	watcher, err := NewWatcher(dir)
	require.NoError(t, err)
	defer watcher.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := watcher.Watch(ctx, "units.json")

	path := filepath.Join(dir, "units.json")
	for range 5 {
		require.NoError(t, os.WriteFile(path, []byte(`{"units":[]}`), 0o644))
	}

	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}

	count := 1
	drain := time.After(200 * time.Millisecond)
loop:
	for {
		select {
		case <-events:
			count++
		case <-drain:
			break loop
		}
	}

	assert.Less(t, count, 5, "rapid writes should be debounced")
}

func TestWatcher_ContextCancelClosesChannel(t *testing.T) {
	t.Parallel()

	watcher, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer watcher.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	events := watcher.Watch(ctx, "units.json")
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_CloseClosesChannels(t *testing.T) {
	t.Parallel()

	watcher, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	events := watcher.Watch(context.Background(), "*")
	require.NoError(t, watcher.Close())

	_, ok := <-events
	assert.False(t, ok)
}
