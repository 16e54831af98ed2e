package driven

// VocabularyStore persists the preset tag vocabulary.
// Implementations keep a human-editable format.
type VocabularyStore interface {
	// Load returns the stored tags in order. An absent store yields nil.
	Load() ([]string, error)

	// Save replaces the stored tags.
	Save(tags []string) error
}
