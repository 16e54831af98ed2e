package domain

// BilingualSummary is the model's answer to a summarisation request.
// Every field is optional; an empty string means the model omitted it.
type BilingualSummary struct {
	// TitleCn is the Chinese title, a translation when an original title was given.
	TitleCn string

	// SummaryCn is the Chinese summary.
	SummaryCn string

	// TitleEn is the English title; defaults to the original title.
	TitleEn string

	// SummaryEn is the English summary.
	SummaryEn string

	// Retranslated is true when the title failed the self-check and was re-requested.
	Retranslated bool
}

// ApplySummary copies a summary onto a record.
// The record title is replaced only by a non-empty Chinese title, and the
// translated title falls back to the title the record had before.
func ApplySummary(r *ContentRecord, s BilingualSummary) {
	original := r.Title
	if s.TitleCn != "" {
		r.Title = s.TitleCn
	}
	r.Summary = s.SummaryCn
	r.SummaryTranslated = s.SummaryEn
	if s.TitleEn != "" {
		r.TitleTranslated = s.TitleEn
	} else {
		r.TitleTranslated = original
	}
}
