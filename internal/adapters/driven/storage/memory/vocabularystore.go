package memory

import (
	"sync"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure VocabularyStore implements the interface.
var _ driven.VocabularyStore = (*VocabularyStore)(nil)

// VocabularyStore is an in-memory implementation of driven.VocabularyStore for testing.
type VocabularyStore struct {
	mu    sync.RWMutex
	tags  []string
	saves int
}

// NewVocabularyStore creates a store holding tags.
func NewVocabularyStore(tags ...string) *VocabularyStore {
	return &VocabularyStore{tags: append([]string(nil), tags...)}
}

// Load returns a copy of the stored tags.
func (s *VocabularyStore) Load() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tags == nil {
		return nil, nil
	}
	return append([]string(nil), s.tags...), nil
}

// Save replaces the stored tags.
func (s *VocabularyStore) Save(tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append([]string(nil), tags...)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *VocabularyStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
