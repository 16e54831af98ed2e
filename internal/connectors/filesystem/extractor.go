// Package filesystem implements the FileExtractor port for local files.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.FileExtractor = (*Extractor)(nil)

// extMIMETypes maps supported extensions to MIME types ahead of the
// platform table, which varies between systems.
var extMIMETypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// Extractor reads local files and normalises them into records that
// carry the raw bytes as an attachment.
type Extractor struct {
	normalisers driven.NormaliserRegistry
	readFile    func(name string) ([]byte, error)
}

// New creates a file extractor.
func New(normalisers driven.NormaliserRegistry) *Extractor {
	return &Extractor{
		normalisers: normalisers,
		readFile:    os.ReadFile,
	}
}

// Extract reads path and returns its record. The record title falls back
// to the file stem and the attachment holds the full file.
func (e *Extractor) Extract(ctx context.Context, path string, kind domain.ContentKind) (*domain.ContentRecord, error) {
	path = ResolvePath(path)

	data, err := e.readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	mimeType := detectFileMIMEType(path, data)

	result, err := e.normalisers.Normalise(ctx, &domain.RawContent{
		URI:      path,
		Source:   path,
		MIMEType: mimeType,
		Content:  data,
		Metadata: map[string]any{
			domain.MetaFileName: name,
			domain.MetaFileStem: stem,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", name, err)
	}

	record := result.Record
	if record.Kind() != kind {
		logger.Debug("Expected %s for %s, normalised as %s", kind, name, record.Kind())
	}
	if record.Title == "" {
		record.Title = stem
		record.TitleTranslated = stem
	}
	record.Attachment = domain.NewAttachment(name, mimeType, data)
	return record, nil
}

// detectFileMIMEType determines the MIME type from the file extension,
// sniffing the content when the extension is unknown.
func detectFileMIMEType(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extMIMETypes[ext]; ok {
		return t
	}

	if mimeType := mime.TypeByExtension(ext); ext != "" && mimeType != "" {
		// Strip charset and other parameters.
		if idx := strings.Index(mimeType, ";"); idx != -1 {
			mimeType = strings.TrimSpace(mimeType[:idx])
		}
		return mimeType
	}

	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}
