package driven

// Metrics records pipeline counters.
type Metrics interface {
	// Degraded counts a model failure the pipeline recovered from.
	Degraded(stage string)

	// ModelCall counts one model request by outcome ("ok" or "error").
	ModelCall(provider, outcome string)

	// Extracted counts one successful extraction by content kind.
	Extracted(kind string)

	// Published counts one publish attempt by outcome.
	Published(outcome string)
}

// Pipeline stage names used with Metrics.Degraded.
const (
	StageSummary    = "summary"
	StageTitle      = "title"
	StagePresetTags = "preset_tags"
	StageExtraTags  = "extra_tags"
	StageTitleTags  = "title_tags"
	StageArchive    = "archive"
)
