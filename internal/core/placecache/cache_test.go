package placecache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscraper/internal/core/placecache"
	"leadscraper/internal/platform/places"
)

var sample = places.Details{
	Name:    "Kadıköy Veteriner Kliniği",
	Phone:   "+90 216 555 0202",
	Address: "Moda, Kadıköy/İstanbul",
	Rating:  4.9,
	Reviews: 88,
}

func TestPutGet(t *testing.T) {
	c := placecache.New(filepath.Join(t.TempDir(), "cache.json"))

	_, ok := c.Get("p1")
	assert.False(t, ok)

	c.Put("p1", sample)
	got, ok := c.Get("p1")
	require.True(t, ok)
	assert.Equal(t, sample, got)
	assert.Equal(t, 1, c.Len())
}

func TestFlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := placecache.New(path)
	c.Put("p1", sample)
	require.NoError(t, c.Flush())

	restored := placecache.New(path)
	assert.Equal(t, 1, restored.Len())
	got, ok := restored.Get("p1")
	require.True(t, ok)
	assert.Equal(t, sample, got)
}

func TestMissingSnapshotStartsEmpty(t *testing.T) {
	c := placecache.New(filepath.Join(t.TempDir(), "never-written.json"))
	assert.Equal(t, 0, c.Len())
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("%%%"), 0o644))

	c := placecache.New(path)
	assert.Equal(t, 0, c.Len())

	// Still usable afterwards.
	c.Put("p1", sample)
	require.NoError(t, c.Flush())
	assert.Equal(t, 1, placecache.New(path).Len())
}

func TestPutOverwriteIsIdempotent(t *testing.T) {
	c := placecache.New(filepath.Join(t.TempDir(), "cache.json"))
	c.Put("p1", sample)
	c.Put("p1", sample)
	assert.Equal(t, 1, c.Len())
}
