package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainCache(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(export, []byte(`[{"id": 1}]`), 0644))

	cache, err := loadTrainCache(dir)
	require.NoError(t, err)

	hash, err := fileHash(export)
	require.NoError(t, err)
	builtAt := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	_, ok := cache.unchanged(export, hash, builtAt)
	assert.False(t, ok)

	cache.record(export, hash, 1, builtAt)
	require.NoError(t, cache.save())

	reloaded, err := loadTrainCache(dir)
	require.NoError(t, err)
	entry, ok := reloaded.unchanged(export, hash, builtAt)
	assert.True(t, ok)
	assert.Equal(t, 1, entry.Products)

	_, ok = reloaded.unchanged(export, hash, builtAt.Add(time.Minute))
	assert.False(t, ok, "another run replaced the knowledge base")

	require.NoError(t, os.WriteFile(export, []byte(`[{"id": 1}, {"id": 2}]`), 0644))
	newHash, err := fileHash(export)
	require.NoError(t, err)
	assert.NotEqual(t, hash, newHash)
	_, ok = reloaded.unchanged(export, newHash, builtAt)
	assert.False(t, ok)
}

func TestTrainCache_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFileName), []byte(`{`), 0644))

	cache, err := loadTrainCache(dir)
	assert.Error(t, err)
	require.NotNil(t, cache)
	assert.Empty(t, cache.Files)
}
