package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"catalog-assistant/internal/models"

	"go.uber.org/zap"
)

// KnowledgeRepository persists the knowledge base as a single JSON document
// and keeps the in-process copy in a KnowledgeState.
type KnowledgeRepository struct {
	path   string
	state  *KnowledgeState
	mu     sync.Mutex
	logger *zap.Logger
}

func NewKnowledgeRepository(path string, state *KnowledgeState, logger *zap.Logger) *KnowledgeRepository {
	if state == nil {
		state = NewKnowledgeState()
	}
	return &KnowledgeRepository{
		path:   path,
		state:  state,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Path() string {
	return r.path
}

// Save writes kb to a temporary file next to the document and renames it into
// place, so a failed save leaves the previous document intact. Saves are
// serialized; the last one wins.
func (r *KnowledgeRepository) Save(ctx context.Context, kb *models.KnowledgeBase) error {
	if kb == nil {
		return errors.New("knowledge base is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(kb, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode knowledge base: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.path, data); err != nil {
		r.logger.Error("Failed to save knowledge base",
			zap.String("path", r.path),
			zap.Error(err),
		)
		return err
	}

	r.state.Set(kb)
	r.logger.Info("Knowledge base saved",
		zap.String("path", r.path),
		zap.Int("products", kb.ProductCatalog.Len()),
	)
	return nil
}

// Load reads the persisted document. The boolean is false when the document
// does not exist or cannot be parsed.
func (r *KnowledgeRepository) Load(ctx context.Context) (*models.KnowledgeBase, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("Knowledge base document not found", zap.String("path", r.path))
		} else {
			r.logger.Warn("Failed to read knowledge base", zap.String("path", r.path), zap.Error(err))
		}
		return nil, false
	}

	var kb models.KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		r.logger.Warn("Failed to parse knowledge base", zap.String("path", r.path), zap.Error(err))
		return nil, false
	}
	return &kb, true
}

// Current returns the cached knowledge base, loading it from disk on first use.
// It returns nil when no knowledge base has been trained.
func (r *KnowledgeRepository) Current(ctx context.Context) *models.KnowledgeBase {
	if kb := r.state.Get(); kb != nil {
		return kb
	}
	kb, ok := r.Load(ctx)
	if !ok {
		return nil
	}
	return r.state.setIfEmpty(kb)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write knowledge base: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close knowledge base: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace knowledge base: %w", err)
	}
	return nil
}
