package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure VocabularyStore implements the interface.
var _ driven.VocabularyStore = (*VocabularyStore)(nil)

// vocabularyFile is the on-disk layout of tags.yaml.
type vocabularyFile struct {
	Presets []string `yaml:"presets"`
}

// VocabularyStore keeps the preset tag list in tags.yaml so users can
// edit it by hand.
type VocabularyStore struct {
	mu       sync.Mutex
	filePath string
}

// NewVocabularyStore creates a store for tags.yaml in dir.
// If dir is empty, defaults to DefaultDir().
func NewVocabularyStore(dir string) (*VocabularyStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &VocabularyStore{filePath: filepath.Join(dir, "tags.yaml")}, nil
}

// Load returns the stored presets. A missing file yields nil.
func (s *VocabularyStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var doc vocabularyFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.filePath, err)
	}
	return doc.Presets, nil
}

// Save replaces the stored presets, writing through a temporary file so
// a failed write never leaves a truncated vocabulary behind.
func (s *VocabularyStore) Save(tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(vocabularyFile{Presets: tags})
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create vocabulary directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tags-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		return fmt.Errorf("replace vocabulary: %w", err)
	}
	return nil
}

// Path returns the vocabulary file path.
func (s *VocabularyStore) Path() string {
	return s.filePath
}
