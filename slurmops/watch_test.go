package slurmops

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/renameio/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatchConfigDeliversEvent(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "slurm.conf")
	require.NoError(t, renameio.WriteFile(path, []byte("ClusterName=a\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, cleanup, err := WatchConfig(ctx, path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, cleanup())
	}()

	// Atomic rewrite, the write style of ConfEditor.
	require.NoError(t, renameio.WriteFile(path, []byte("ClusterName=b\n"), 0o644))

	select {
	case event := <-events:
		require.NoError(t, event.Err)
		assert.Equal(t, path, event.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for config event")
	}
}

func TestWatchConfigIgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "slurm.conf")
	require.NoError(t, renameio.WriteFile(path, []byte("ClusterName=a\n"), 0o644))

	events, cleanup, err := WatchConfig(context.Background(), path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, cleanup())
	}()

	other := filepath.Join(dir, "gres.conf")
	require.NoError(t, renameio.WriteFile(other, []byte("AutoDetect=nvml\n"), 0o644))

	select {
	case event := <-events:
		t.Fatalf("unexpected event for sibling file: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchConfigCleanupClosesChannel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "slurm.conf")
	require.NoError(t, renameio.WriteFile(path, []byte("ClusterName=a\n"), 0o644))

	events, cleanup, err := WatchConfig(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, cleanup())

	_, open := <-events
	assert.False(t, open)
}

func TestWatchConfigMissingDir(t *testing.T) {
	_, _, err := WatchConfig(context.Background(),
		filepath.Join(t.TempDir(), "missing", "slurm.conf"))

	var confErr *ConfigError
	require.ErrorAs(t, err, &confErr)
}
