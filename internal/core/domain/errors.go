package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates an existing file with an unrecognised extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFetch indicates a network, timeout or non-2xx failure fetching a URL.
	ErrFetch = errors.New("fetch failed")

	// ErrModelCall indicates the language model call failed.
	// The pipeline recovers from this by degrading.
	ErrModelCall = errors.New("model call failed")

	// ErrPublish indicates the channel publish failed.
	ErrPublish = errors.New("publish failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Summaries and tag suggestions are skipped without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrPublisherUnavailable indicates no channel publisher is configured.
	ErrPublisherUnavailable = errors.New("publisher unavailable")

	// ErrNoPendingSelection indicates the session has nothing awaiting publish.
	ErrNoPendingSelection = errors.New("no pending selection")
)

// UnsupportedFileError reports an existing file whose extension is not supported.
type UnsupportedFileError struct {
	Path string
	Ext  string
}

// Error lists the detected extension, the file and the supported extensions.
func (e *UnsupportedFileError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported file type %s for %s (supported: %s)",
		ext, filepath.Base(e.Path), strings.Join(SupportedExtensions(), ", "))
}

// Unwrap allows errors.Is(err, ErrUnsupportedFileType).
func (e *UnsupportedFileError) Unwrap() error {
	return ErrUnsupportedFileType
}

// FetchError reports a failed page fetch.
type FetchError struct {
	// URL is the address that was requested.
	URL string

	// Status is the HTTP status code, or 0 for transport failures.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error describes the failed fetch.
func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("fetch %s failed", e.URL)
	}
}

// Is matches ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// PublishError wraps the reason a publish failed.
type PublishError struct {
	Err error
}

// Error describes the failed publish.
func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed: %v", e.Err)
}

// Is matches ErrPublish.
func (e *PublishError) Is(target error) bool {
	return target == ErrPublish
}

// Unwrap returns the underlying cause.
func (e *PublishError) Unwrap() error {
	return e.Err
}
