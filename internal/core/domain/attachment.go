package domain

// Attachment holds the raw bytes of a file-backed record.
// It is owned by its ContentRecord and read-only after creation.
type Attachment struct {
	// Name is the base file name (e.g., "paper.pdf").
	Name string `json:"name"`

	// MIMEType is the guessed content type (e.g., "application/pdf").
	MIMEType string `json:"mime_type"`

	// Size is the byte length of Data.
	Size int64 `json:"size"`

	// Data is the raw file content.
	Data []byte `json:"data"`
}

// NewAttachment creates an attachment, deriving Size from data.
func NewAttachment(name, mimeType string, data []byte) *Attachment {
	return &Attachment{
		Name:     name,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Data:     data,
	}
}
