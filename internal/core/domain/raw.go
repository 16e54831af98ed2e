package domain

// RawContent is fetched or read bytes before normalisation.
type RawContent struct {
	// URI is where the bytes came from (fetched URL or resolved file path).
	URI string

	// Source is the origin to report on the record, which may differ
	// from URI when a URL was rewritten for fetching.
	Source string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains connector-specific key-value pairs.
	Metadata map[string]any
}

// Well-known RawContent metadata keys.
const (
	// MetaFileName is the base name of a local file.
	MetaFileName = "file_name"

	// MetaFileStem is the file name without extension.
	MetaFileStem = "file_stem"
)

// MetaString returns a string metadata value, or "" when absent.
func (r *RawContent) MetaString(key string) string {
	if r.Metadata == nil {
		return ""
	}
	v, _ := r.Metadata[key].(string)
	return v
}
