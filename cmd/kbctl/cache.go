package main

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = ".train_cache.json"

// trainedFile records an export that has already been trained on and the
// knowledge base that run produced.
type trainedFile struct {
	FileHash    string    `json:"file_hash"`
	TrainedAt   time.Time `json:"trained_at"`
	Products    int       `json:"products"`
	KBCreatedAt time.Time `json:"kb_created_at"`
}

type trainCache struct {
	path  string
	Files map[string]trainedFile `json:"files"` // key: absolute file path
}

func loadTrainCache(dir string) (*trainCache, error) {
	cache := &trainCache{
		path:  filepath.Join(dir, cacheFileName),
		Files: make(map[string]trainedFile),
	}

	data, err := os.ReadFile(cache.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(data) == 0) {
		return cache, nil
	}
	if err != nil {
		return cache, fmt.Errorf("failed to read cache file: %w", err)
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return cache, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.Files == nil {
		cache.Files = make(map[string]trainedFile)
	}
	return cache, nil
}

func (c *trainCache) save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// unchanged reports whether path, with the same content hash, built the
// knowledge base created at current.
func (c *trainCache) unchanged(path, hash string, current time.Time) (trainedFile, bool) {
	entry, ok := c.Files[path]
	if !ok || hash == "" || entry.FileHash != hash {
		return entry, false
	}
	return entry, !entry.KBCreatedAt.IsZero() && entry.KBCreatedAt.Equal(current)
}

func (c *trainCache) record(path, hash string, products int, kbCreatedAt time.Time) {
	c.Files[path] = trainedFile{
		FileHash:    hash,
		TrainedAt:   time.Now().UTC(),
		Products:    products,
		KBCreatedAt: kbCreatedAt,
	}
}

func fileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
