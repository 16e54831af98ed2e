package domain

import (
	"path/filepath"
	"strings"
)

// InputKind is the variant chosen by the input classifier.
type InputKind string

// Classification variants, in decision order.
const (
	// InputFile is an existing local file with a supported extension.
	InputFile InputKind = "file"

	// InputUnsupportedFile is an existing local file with an unknown extension.
	InputUnsupportedFile InputKind = "unsupported_file"

	// InputLink is input that is exactly one URL.
	InputLink InputKind = "link"

	// InputEmbeddedLink is free text containing at least one URL.
	InputEmbeddedLink InputKind = "embedded_link"

	// InputText is anything else.
	InputText InputKind = "text"
)

// String returns the string representation.
func (k InputKind) String() string {
	return string(k)
}

// Classification is the result of classifying one raw input.
// Only the fields relevant to Kind are set.
type Classification struct {
	// Kind is the chosen variant.
	Kind InputKind

	// Raw is the input as received.
	Raw string

	// Path is the resolved file path (InputFile, InputUnsupportedFile).
	Path string

	// FileKind is KindPdf or KindImage (InputFile).
	FileKind ContentKind

	// Ext is the lower-cased extension including the dot (InputFile, InputUnsupportedFile).
	Ext string

	// URL is the link to fetch (InputLink, InputEmbeddedLink).
	URL string

	// Extra is the input with URL removed and trimmed (InputEmbeddedLink).
	Extra string

	// URLs lists every URL found in the input (InputEmbeddedLink).
	URLs []string
}

// supportedExtensions maps lower-cased file extensions to content kinds.
var supportedExtensions = map[string]ContentKind{
	".pdf":  KindPdf,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".gif":  KindImage,
	".webp": KindImage,
	".bmp":  KindImage,
}

// supportedExtensionOrder lists supported extensions for error messages.
var supportedExtensionOrder = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// KindForExtension returns the content kind for a file extension.
// The lookup is case-insensitive; ok is false for unsupported extensions.
func KindForExtension(ext string) (ContentKind, bool) {
	kind, ok := supportedExtensions[strings.ToLower(ext)]
	return kind, ok
}

// KindForPath returns the content kind for a file path by its extension.
func KindForPath(path string) (ContentKind, bool) {
	return KindForExtension(filepath.Ext(path))
}

// SupportedExtensions returns the supported file extensions in display order.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensionOrder))
	copy(out, supportedExtensionOrder)
	return out
}
