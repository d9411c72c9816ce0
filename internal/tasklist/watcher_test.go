package tasklist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	writeTasks(t, path, sampleTasks, time.Now().Add(-time.Hour))
	list := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []Group, 16)
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(list, 10*time.Millisecond, zerolog.Nop()).Run(ctx, func(groups []Group) {
			changes <- groups
		})
	}()

	var got []Group
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("new tasks\n"), 0o644)
		select {
		case got = <-changes:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, []Group{{Category: "Other", Tasks: []string{"new tasks"}}}, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "tasks.txt")
	list := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(list, 10*time.Millisecond, zerolog.Nop()).Run(ctx, func([]Group) {})
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Dir(path))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
