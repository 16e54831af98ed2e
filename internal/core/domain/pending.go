package domain

import (
	"encoding/json"
	"time"
)

// Draft is an extracted, summarised record with its tag suggestions,
// ready for the user to choose tags.
type Draft struct {
	// Record is the extracted content.
	Record *ContentRecord

	// Suggested are preset tags the model matched.
	Suggested []string

	// Extra are free-form tags the model proposed.
	Extra []string

	// SummaryFailed is true when summarisation degraded.
	SummaryFailed bool
}

// AllSuggested returns Suggested followed by Extra.
func (d *Draft) AllSuggested() []string {
	out := make([]string, 0, len(d.Suggested)+len(d.Extra))
	out = append(out, d.Suggested...)
	return append(out, d.Extra...)
}

// PendingSelection holds one session's record while the user picks tags.
// There is at most one per session.
type PendingSelection struct {
	// SessionID keys the selection (chat ID, terminal session, MCP client).
	SessionID string `json:"session_id"`

	// Record is the content awaiting publish.
	Record *ContentRecord `json:"record"`

	// Suggested are preset tags the model matched.
	Suggested []string `json:"suggested"`

	// Extra are free-form tags the model proposed.
	Extra []string `json:"extra"`

	// Selected is the user's current choice.
	Selected TagSet `json:"selected"`

	// MessageID is the front-end message showing the selection, if any.
	MessageID string `json:"message_id,omitempty"`

	// CreatedAt is when the selection was started.
	CreatedAt time.Time `json:"created_at"`
}

// NewPendingSelection starts a selection from a draft with every
// suggestion pre-selected.
func NewPendingSelection(sessionID string, d *Draft, now time.Time) *PendingSelection {
	return &PendingSelection{
		SessionID: sessionID,
		Record:    d.Record,
		Suggested: d.Suggested,
		Extra:     d.Extra,
		Selected:  NewTagSet(d.AllSuggested()...),
		CreatedAt: now,
	}
}

// Candidates returns every tag offered to the user, deduplicated.
func (p *PendingSelection) Candidates() []string {
	set := NewTagSet(p.Suggested...)
	for _, t := range p.Extra {
		set.Add(t)
	}
	return set.Slice()
}

// contentRecordJSON is the wire form of ContentRecord.
type contentRecordJSON struct {
	ID                string      `json:"id"`
	Kind              ContentKind `json:"kind"`
	Title             string      `json:"title"`
	TitleTranslated   string      `json:"title_translated,omitempty"`
	Body              string      `json:"body"`
	Summary           string      `json:"summary,omitempty"`
	SummaryTranslated string      `json:"summary_translated,omitempty"`
	Source            string      `json:"source"`
	Tags              TagSet      `json:"tags"`
	Attachment        *Attachment `json:"attachment,omitempty"`
	PublishDate       string      `json:"publish_date,omitempty"`
}

// MarshalJSON encodes the record including its immutable kind.
func (r *ContentRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(contentRecordJSON{
		ID:                r.ID,
		Kind:              r.kind,
		Title:             r.Title,
		TitleTranslated:   r.TitleTranslated,
		Body:              r.Body,
		Summary:           r.Summary,
		SummaryTranslated: r.SummaryTranslated,
		Source:            r.Source,
		Tags:              r.Tags,
		Attachment:        r.Attachment,
		PublishDate:       r.PublishDate,
	})
}

// UnmarshalJSON decodes a record, rejecting unknown kinds.
func (r *ContentRecord) UnmarshalJSON(data []byte) error {
	var w contentRecordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Kind.IsValid() {
		return ErrInvalidInput
	}
	*r = ContentRecord{
		ID:                w.ID,
		kind:              w.Kind,
		Title:             w.Title,
		TitleTranslated:   w.TitleTranslated,
		Body:              w.Body,
		Summary:           w.Summary,
		SummaryTranslated: w.SummaryTranslated,
		Source:            w.Source,
		Tags:              w.Tags,
		Attachment:        w.Attachment,
		PublishDate:       w.PublishDate,
	}
	return nil
}
