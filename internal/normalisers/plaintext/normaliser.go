package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const (
	// maxHeadingRunes is the longest first line still treated as a title.
	maxHeadingRunes = 100

	// excerptRunes is the length of a title cut from the text itself.
	excerptRunes = 50
)

// Normaliser handles pasted plain text.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/x-markdown",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts text to a record. A short first line followed by
// more text becomes the title; otherwise the title is an excerpt.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawContent) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	title, body := splitTitle(strings.TrimSpace(string(raw.Content)))

	source := raw.Source
	if source == "" {
		source = domain.SourceText
	}

	record := domain.NewContentRecord(uuid.New().String(), domain.KindText, title, body, source)
	return &driven.NormaliseResult{Record: record}, nil
}

// splitTitle derives a title and body from trimmed text.
func splitTitle(text string) (title, body string) {
	lines := strings.Split(text, "\n")
	first := strings.TrimSpace(lines[0])

	if len(lines) > 1 && utf8.RuneCountInString(first) <= maxHeadingRunes {
		return first, strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return excerpt(text), text
}

// excerpt returns the first excerptRunes runes followed by "...",
// or text unchanged when it is short enough.
func excerpt(text string) string {
	if utf8.RuneCountInString(text) <= excerptRunes {
		return text
	}
	return domain.TruncateRunes(text, excerptRunes) + "..."
}
