// Package image provides a Normaliser for raster images.
// The body describes the image; no pixel data is decoded.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// dateLayout is the PublishDate format for EXIF timestamps.
const dateLayout = "2006-01-02"

// Normaliser handles image files.
type Normaliser struct{}

// New creates a new image normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"image/*"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise reads the image header and describes name, format and size.
// The EXIF capture date, when present, becomes the publish date.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawContent) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", raw.URI, err)
	}

	name := raw.MetaString(domain.MetaFileName)
	if name == "" {
		name = path.Base(raw.URI)
	}
	stem := raw.MetaString(domain.MetaFileStem)
	if stem == "" {
		stem = strings.TrimSuffix(name, path.Ext(name))
	}

	body := fmt.Sprintf("Image: %s\nFormat: %s\nSize: %dx%d pixels",
		name, strings.ToUpper(format), cfg.Width, cfg.Height)

	record := domain.NewContentRecord(uuid.New().String(), domain.KindImage, stem, body, raw.Source)
	record.PublishDate = captureDate(raw)
	return &driven.NormaliseResult{Record: record}, nil
}

// captureDate returns the EXIF DateTimeOriginal as a date, or "".
func captureDate(raw *domain.RawContent) string {
	x, err := exif.Decode(bytes.NewReader(raw.Content))
	if err != nil {
		return ""
	}
	taken, err := x.DateTime()
	if err != nil {
		logger.Debug("No EXIF date in %s: %v", raw.URI, err)
		return ""
	}
	return taken.Format(dateLayout)
}
