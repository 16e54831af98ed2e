package domain

import "unicode/utf8"

// MaxBodyRunes caps ContentRecord.Body to bound model payload size.
const MaxBodyRunes = 10000

// SourceText is the Source marker for records built from pasted text.
const SourceText = "text"

// ContentKind identifies where a ContentRecord came from.
type ContentKind string

// Available content kinds.
const (
	// KindLink is a fetched web page.
	KindLink ContentKind = "link"

	// KindFile is a generic local file.
	KindFile ContentKind = "file"

	// KindText is raw pasted text.
	KindText ContentKind = "text"

	// KindImage is a local image file.
	KindImage ContentKind = "image"

	// KindPdf is a local PDF document.
	KindPdf ContentKind = "pdf"
)

// IsValid returns true if the kind is recognised.
func (k ContentKind) IsValid() bool {
	switch k {
	case KindLink, KindFile, KindText, KindImage, KindPdf:
		return true
	default:
		return false
	}
}

// HasAttachment returns true if records of this kind carry file bytes.
func (k ContentKind) HasAttachment() bool {
	return k == KindFile || k == KindImage || k == KindPdf
}

// String returns the string representation.
func (k ContentKind) String() string {
	return string(k)
}

// ContentRecord is the canonical unit flowing through the pipeline.
// Every extractor produces one; summarisation and tagging fill in the rest.
type ContentRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// kind is set once at creation.
	kind ContentKind

	// Title is the primary-language title.
	Title string

	// TitleTranslated is the secondary-language title.
	// Defaults to Title until a translation step overwrites it.
	TitleTranslated string

	// Body is the extracted plain text used as summarisation input.
	Body string

	// Summary is the primary-language summary, empty until summarised.
	Summary string

	// SummaryTranslated is the secondary-language summary.
	SummaryTranslated string

	// Source is the URL exactly as given, the file path, or SourceText.
	Source string

	// Tags holds the final tag selection.
	Tags TagSet

	// Attachment is present only for file-backed kinds.
	Attachment *Attachment

	// PublishDate is a best-effort date string, never validated.
	PublishDate string
}

// NewContentRecord creates a record of the given kind.
// Body is truncated to MaxBodyRunes and TitleTranslated defaults to title.
func NewContentRecord(id string, kind ContentKind, title, body, source string) *ContentRecord {
	return &ContentRecord{
		ID:              id,
		kind:            kind,
		Title:           title,
		TitleTranslated: title,
		Body:            TruncateRunes(body, MaxBodyRunes),
		Source:          source,
	}
}

// Kind returns the record's content kind.
func (r *ContentRecord) Kind() ContentKind {
	return r.kind
}

// SetBody replaces the body, applying the MaxBodyRunes cap.
func (r *ContentRecord) SetBody(body string) {
	r.Body = TruncateRunes(body, MaxBodyRunes)
}

// DisplayTitleTranslated returns TitleTranslated, or Title when unset.
func (r *ContentRecord) DisplayTitleTranslated() string {
	if r.TitleTranslated != "" {
		return r.TitleTranslated
	}
	return r.Title
}

// TruncateRunes returns s cut to at most limit code points.
// It never splits a multi-byte sequence.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
