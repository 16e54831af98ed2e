package driving

import "github.com/custodia-labs/kb-cli/internal/core/domain"

// ClassifyService decides what kind of input a raw string is.
type ClassifyService interface {
	// Classify returns the first matching classification. It never fails.
	Classify(raw string) domain.Classification
}
