package driving

import "context"

// TagService reconciles tags against the preset vocabulary.
type TagService interface {
	// Presets returns the current vocabulary.
	Presets(ctx context.Context) ([]string, error)

	// SuggestPresetTags returns every preset the model finds relevant, in preset casing.
	SuggestPresetTags(ctx context.Context, body string) []string

	// SuggestExtraTags returns up to count free-form tags that are not presets.
	SuggestExtraTags(ctx context.Context, body string, count int) []string

	// SuggestFromTitle suggests preset and extra tags from a title and source alone.
	SuggestFromTitle(ctx context.Context, title, source string) (presets, extra []string)

	// ParseUserInput splits free-form user input into tags.
	ParseUserInput(input string) []string

	// Reconcile splits tags into preset matches and new tags, adds new tags to
	// the vocabulary when allowed, and returns matches then new tags.
	Reconcile(ctx context.Context, tags []string) ([]string, error)

	// AddTag appends tag to the vocabulary.
	// Returns false when new tags are not allowed or the tag already exists.
	AddTag(ctx context.Context, tag string) (bool, error)

	// AllowNew reports whether unseen tags may join the vocabulary.
	AllowNew() bool
}
