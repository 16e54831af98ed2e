package domain

import "strings"

// postSeparator divides the Chinese and English sections of a post.
var postSeparator = strings.Repeat("─", 20)

// FormatPost renders a record as a bilingual channel post:
// a Chinese-first section, a separator, then an English-first section.
func FormatPost(r *ContentRecord) string {
	var lines []string

	lines = append(lines, "📌 "+r.Title, "")
	if r.Summary != "" {
		lines = append(lines, "📝 "+r.Summary, "")
	}
	if src := sourceLine(r); src != "" {
		lines = append(lines, src, "")
	}
	if tags := ChineseTags(r.Tags.Slice()); len(tags) > 0 {
		lines = append(lines, "🏷️ "+strings.Join(tags, " "))
	}

	lines = append(lines, "", postSeparator, "")

	lines = append(lines, "📌 "+r.DisplayTitleTranslated(), "")
	switch {
	case r.SummaryTranslated != "":
		lines = append(lines, "📝 "+r.SummaryTranslated, "")
	case r.Summary != "":
		lines = append(lines, "📝 "+r.Summary, "")
	}
	if src := sourceLine(r); src != "" {
		lines = append(lines, src, "")
	}
	if tags := EnglishTags(r.Tags.Slice()); len(tags) > 0 {
		lines = append(lines, "🏷️ "+strings.Join(tags, " "))
	}

	return strings.Join(lines, "\n")
}

// sourceLine returns the source line of a post, or "" for pasted text.
func sourceLine(r *ContentRecord) string {
	if r.Source == "" || r.Source == SourceText {
		return ""
	}
	if r.Kind() != KindLink && r.Attachment != nil && r.Attachment.Name != "" {
		return "📎 " + r.Attachment.Name
	}
	return "🔗 " + r.Source
}
