package slurmops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfEditorLoadMissingFile(t *testing.T) {
	editor := NewConfEditor(filepath.Join(t.TempDir(), "slurm.conf"))

	c, err := editor.Load()
	require.NoError(t, err)
	assert.Empty(t, c.Keys())
}

func TestConfEditorEditCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slurm.conf")
	editor := NewConfEditor(path)

	err := editor.Edit(func(c *ConfFile) {
		c.Set("ClusterName", "charmed-hpc")
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ClusterName=charmed-hpc\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestConfEditorEditPreservesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slurm.conf")
	require.NoError(t, os.WriteFile(path, []byte(exampleSlurmConf), 0o644))

	editor := NewConfEditor(path)
	err := editor.Edit(func(c *ConfFile) {
		c.Set("SlurmctldHost", "control-1")
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SlurmctldHost=control-1\n")
	assert.Contains(t, string(data), "ClusterName=charmed-hpc\n")
	assert.Contains(t, string(data), "Include /etc/slurm/extra.conf\n")
}

func TestConfEditorMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slurmdbd.conf")
	editor := NewConfEditor(path)
	editor.Mode = 0o600

	require.NoError(t, editor.Edit(func(c *ConfFile) {
		c.Set("StoragePass", "secret")
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfEditorSaveUnwritablePath(t *testing.T) {
	editor := NewConfEditor(filepath.Join(t.TempDir(), "missing-parent", "slurm.conf"))

	err := editor.Save(ParseConf([]byte("ClusterName=x\n")))
	require.Error(t, err)

	var confErr *ConfigError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, editor.Path, confErr.Path)
}
