package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Uniqueness(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnsupportedFileType,
		ErrFetch,
		ErrModelCall,
		ErrPublish,
		ErrLLMUnavailable,
		ErrPublisherUnavailable,
		ErrNoPendingSelection,
	}

	for i, a := range all {
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("reconcile tags: %w", ErrInvalidInput)

	assert.ErrorIs(t, wrapped, ErrInvalidInput)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
}

func TestUnsupportedFileError(t *testing.T) {
	tests := []struct {
		name     string
		err      *UnsupportedFileError
		contains []string
	}{
		{
			name:     "lists extension file and supported set",
			err:      &UnsupportedFileError{Path: "/home/u/notes.docx", Ext: ".docx"},
			contains: []string{".docx", "notes.docx", ".pdf", ".webp"},
		},
		{
			name:     "missing extension",
			err:      &UnsupportedFileError{Path: "/home/u/Makefile"},
			contains: []string{"(none)", "Makefile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, ErrUnsupportedFileType)
			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
			assert.NotContains(t, tt.err.Error(), "/home/u/")
		})
	}
}

func TestFetchError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name    string
		err     *FetchError
		message string
	}{
		{"transport failure", &FetchError{URL: "https://a.example", Err: cause}, "fetch https://a.example: connection refused"},
		{"bad status", &FetchError{URL: "https://a.example", Status: 404}, "fetch https://a.example: unexpected status 404"},
		{"no detail", &FetchError{URL: "https://a.example"}, "fetch https://a.example failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrFetch)
			assert.NotErrorIs(t, tt.err, ErrPublish)
		})
	}

	wrapped := fmt.Errorf("extract: %w", &FetchError{URL: "https://a.example", Err: cause})
	assert.ErrorIs(t, wrapped, ErrFetch)
	assert.ErrorIs(t, wrapped, cause)

	var fe *FetchError
	assert.ErrorAs(t, wrapped, &fe)
	assert.Equal(t, "https://a.example", fe.URL)
}

func TestPublishError(t *testing.T) {
	err := &PublishError{Err: ErrPublisherUnavailable}

	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, ErrPublisherUnavailable)
	assert.NotErrorIs(t, err, ErrFetch)
	assert.Equal(t, "publish failed: publisher unavailable", err.Error())
}
