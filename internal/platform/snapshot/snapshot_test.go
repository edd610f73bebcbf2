package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscraper/internal/platform/snapshot"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	in := map[string]int{"a": 1, "b": 2}
	require.NoError(t, snapshot.Save(path, in))

	var out map[string]int
	require.NoError(t, snapshot.Load(path, &out))
	assert.Equal(t, in, out)

	// No temp file left behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMissingFile(t *testing.T) {
	var out map[string]int
	err := snapshot.Load(filepath.Join(t.TempDir(), "absent.json"), &out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var out map[string]int
	err := snapshot.Load(path, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot parse")
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, snapshot.Save(path, map[string]int{"a": 1}))
	require.NoError(t, snapshot.Save(path, map[string]int{"b": 2}))

	var out map[string]int
	require.NoError(t, snapshot.Load(path, &out))
	assert.Equal(t, map[string]int{"b": 2}, out)
}
