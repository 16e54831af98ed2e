package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// placeholder matches the indexed fmt verbs prompts are filled with.
var placeholder = regexp.MustCompile(`%\[\d+\][a-z]`)

// PromptStore serves the model prompts from ~/.kb/prompts/<name>.txt.
//
// The directory and default files are written on the first Load, not in
// the constructor. An edited prompt that lost or added a placeholder is
// ignored in favour of the built-in default.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a prompt store. An empty promptDir means the
// prompts directory under DefaultDir().
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for name, from cache, disk or the
// built-in default in that order.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	fallback := strings.TrimSpace(driven.DefaultPrompt(name))
	if s.initErr != nil {
		if fallback != "" {
			return fallback, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.loadFromFile(name)
	switch {
	case err != nil && fallback == "":
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	case err != nil:
		prompt = fallback
	case fallback != "" && !samePlaceholders(prompt, fallback):
		logger.Warn("Prompt %s.txt changed its placeholders, using the default", name)
		prompt = fallback
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()
	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for _, name := range driven.PromptNames() {
		if err := writeIfMissing(filepath.Join(s.promptDir, name+".txt"), driven.DefaultPrompt(name)); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}
	if err := writeIfMissing(filepath.Join(s.promptDir, "README.md"), promptReadme); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// writeIfMissing never touches a file the user may have edited.
func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// samePlaceholders reports whether a and b use the same set of indexed verbs.
func samePlaceholders(a, b string) bool {
	set := func(s string) []string {
		found := placeholder.FindAllString(s, -1)
		slices.Sort(found)
		return slices.Compact(found)
	}
	return slices.Equal(set(a), set(b))
}

const promptReadme = `# kb prompts

This directory contains the prompts kb sends to the language model.

## Files

- ` + "`summary_generate.txt`" + ` - Bilingual title and summary for untitled content
- ` + "`summary_translate.txt`" + ` - Title translation plus bilingual summary
- ` + "`translate_title.txt`" + ` - Retry when a translated title looks incomplete
- ` + "`preset_tags.txt`" + ` - Picks preset tags that fit the content
- ` + "`extra_tags.txt`" + ` - Suggests new tags beyond the presets
- ` + "`title_tags.txt`" + ` - Suggests tags from a title alone

## Customisation

Edit any file to customise model behaviour. One-shot commands pick up
changes on the next run; ` + "`kb tui`" + ` and ` + "`kb mcp serve`" + ` reload them
as soon as a file is saved.

## Format Placeholders

Prompts use indexed Go fmt placeholders such as ` + "`%[1]s`" + ` and ` + "`%[1]d`" + `.
Keep them when editing; a file whose placeholders differ from the
default is ignored and the built-in prompt is used instead.
`
