package repository

import (
	"sync/atomic"

	"catalog-assistant/internal/models"
)

// KnowledgeState holds the knowledge base currently served by this process.
// It starts empty; the repository fills it on first load and replaces it after
// every successful save. Readers always see a complete knowledge base.
type KnowledgeState struct {
	current atomic.Pointer[models.KnowledgeBase]
}

func NewKnowledgeState() *KnowledgeState {
	return &KnowledgeState{}
}

// Get returns the cached knowledge base, or nil if nothing has been loaded yet.
func (s *KnowledgeState) Get() *models.KnowledgeBase {
	return s.current.Load()
}

// Set replaces the cached knowledge base.
func (s *KnowledgeState) Set(kb *models.KnowledgeBase) {
	s.current.Store(kb)
}

// setIfEmpty installs kb only if the cell is still empty, so a slow load can
// never clobber a knowledge base stored by a concurrent save.
func (s *KnowledgeState) setIfEmpty(kb *models.KnowledgeBase) *models.KnowledgeBase {
	if s.current.CompareAndSwap(nil, kb) {
		return kb
	}
	return s.current.Load()
}
