package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAttachment(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G'}

	a := NewAttachment("photo.png", "image/png", data)

	assert.Equal(t, "photo.png", a.Name)
	assert.Equal(t, "image/png", a.MIMEType)
	assert.Equal(t, int64(4), a.Size)
	assert.Equal(t, data, a.Data)
}

func TestNewAttachment_Empty(t *testing.T) {
	a := NewAttachment("empty.pdf", "application/pdf", nil)

	assert.Zero(t, a.Size)
	assert.Empty(t, a.Data)
}

func TestRawContent_MetaString(t *testing.T) {
	raw := &RawContent{Metadata: map[string]any{
		MetaFileName: "report.pdf",
		MetaFileStem: "report",
		"pages":      3,
	}}

	assert.Equal(t, "report.pdf", raw.MetaString(MetaFileName))
	assert.Equal(t, "report", raw.MetaString(MetaFileStem))
	assert.Empty(t, raw.MetaString("pages"), "non-string values read as empty")
	assert.Empty(t, raw.MetaString("missing"))
	assert.Empty(t, (&RawContent{}).MetaString(MetaFileName))
}
