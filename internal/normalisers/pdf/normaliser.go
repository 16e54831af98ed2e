// Package pdf provides a Normaliser for PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n\n"

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise extracts the document title and the text of every page.
// Pages that fail to decode are skipped.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawContent) (result *driven.NormaliseResult, err error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("parse pdf %s: %v", raw.URI, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", raw.URI, err)
	}

	title := strings.TrimSpace(reader.Trailer().Key("Info").Key("Title").Text())
	body := pagesText(reader, raw.URI)

	record := domain.NewContentRecord(uuid.New().String(), domain.KindPdf, title, body, raw.Source)
	return &driven.NormaliseResult{Record: record}, nil
}

// pagesText returns the plain text of every page joined by pageSeparator.
func pagesText(reader *pdf.Reader, uri string) string {
	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("Skipping page %d of %s: %v", i, uri, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, pageSeparator)
}
