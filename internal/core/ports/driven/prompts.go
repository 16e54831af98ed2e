package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptSummaryGenerate asks for a fresh bilingual title and summary.
	// The template expects %[1]d (max length).
	PromptSummaryGenerate = "summary_generate"

	// PromptSummaryTranslate asks for a translated title and bilingual summary.
	// The template expects %[1]s (original title) and %[2]d (max length).
	PromptSummaryTranslate = "summary_translate"

	// PromptTranslateTitle is the system prompt for the title retry.
	// This prompt has no format placeholders.
	PromptTranslateTitle = "translate_title"

	// PromptPresetTags selects every relevant preset tag.
	// The template expects %[1]s (comma-separated presets).
	PromptPresetTags = "preset_tags"

	// PromptExtraTags generates free-form tags.
	// The template expects %[1]d (count) and %[2]s (comma-separated presets).
	PromptExtraTags = "extra_tags"

	// PromptTitleTags suggests tags from a title alone.
	// The template expects %[1]s (comma-separated presets).
	PromptTitleTags = "title_tags"
)

// PromptNames returns every well-known prompt name.
func PromptNames() []string {
	return []string{
		PromptSummaryGenerate,
		PromptSummaryTranslate,
		PromptTranslateTitle,
		PromptPresetTags,
		PromptExtraTags,
		PromptTitleTags,
	}
}

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
