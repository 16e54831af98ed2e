// Package connectors holds the extractors that turn a classified input
// into a ContentRecord:
//
//   - web: fetches a URL over HTTP and hands the page to the HTML normaliser
//   - filesystem: reads a local PDF or image and keeps its bytes as an attachment
//
// Both implement ports in internal/core/ports/driven and are wired in cmd/kb.
package connectors
