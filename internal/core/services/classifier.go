package services

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driving"
)

// Ensure Classifier implements the interface.
var _ driving.ClassifyService = (*Classifier)(nil)

// Classifier decides whether raw input is a file, a link, text with
// embedded links, or plain text.
type Classifier struct {
	stat    func(name string) (os.FileInfo, error)
	homeDir func() (string, error)
}

// NewClassifier creates a classifier backed by the local filesystem.
func NewClassifier() *Classifier {
	return &Classifier{
		stat:    os.Stat,
		homeDir: os.UserHomeDir,
	}
}

// Classify returns the first matching classification. It never fails.
func (c *Classifier) Classify(raw string) domain.Classification {
	cleaned := cleanInput(raw)
	result := domain.Classification{Raw: raw}

	if !domain.HasHTTPScheme(cleaned) && looksLikePath(cleaned) {
		if path, ok := c.regularFile(cleaned); ok {
			result.Path = path
			result.Ext = strings.ToLower(filepath.Ext(path))
			if kind, ok := domain.KindForExtension(result.Ext); ok {
				result.Kind = domain.InputFile
				result.FileKind = kind
			} else {
				result.Kind = domain.InputUnsupportedFile
			}
			return result
		}
	}

	if domain.IsURL(cleaned) {
		result.Kind = domain.InputLink
		result.URL = cleaned
		return result
	}

	if urls := domain.FindURLs(cleaned); len(urls) > 0 {
		result.Kind = domain.InputEmbeddedLink
		result.URL = urls[0]
		result.URLs = urls
		result.Extra = strings.TrimSpace(strings.Replace(cleaned, urls[0], "", 1))
		return result
	}

	result.Kind = domain.InputText
	return result
}

// cleanInput trims whitespace and undoes the quoting that terminals and
// file managers apply to dragged-in paths.
func cleanInput(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	if rest, ok := strings.CutPrefix(s, "file://"); ok && !strings.ContainsAny(rest, "\n\r") {
		if unescaped, err := url.PathUnescape(rest); err == nil {
			rest = unescaped
		}
		return rest
	}
	return strings.ReplaceAll(s, `\ `, " ")
}

// looksLikePath reports whether s is absolute, home-relative, explicitly
// relative, or contains a path separator. Multi-line input never is.
func looksLikePath(s string) bool {
	if s == "" || strings.ContainsAny(s, "\n\r") {
		return false
	}
	return filepath.IsAbs(s) ||
		strings.HasPrefix(s, "~") ||
		strings.HasPrefix(s, ".") ||
		strings.ContainsRune(s, '/') ||
		strings.ContainsRune(s, filepath.Separator)
}

// regularFile expands ~ and returns the absolute path when s names an
// existing regular file.
func (c *Classifier) regularFile(s string) (string, bool) {
	path := s
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := c.homeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	info, err := c.stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path, true
}
