package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// defaultExtraTags is how many free-form tags suggest_tags proposes by default.
const defaultExtraTags = 5

// ClassifyInput is the input schema for the classify tool.
type ClassifyInput struct {
	Input string `json:"input" jsonschema:"a URL, a local file path, or free text"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Kind     string   `json:"kind"`
	Path     string   `json:"path,omitempty"`
	FileKind string   `json:"file_kind,omitempty"`
	URL      string   `json:"url,omitempty"`
	URLs     []string `json:"urls,omitempty"`
	Extra    string   `json:"extra,omitempty"`
}

// ExtractInput is the input schema for the extract and prepare tools.
type ExtractInput struct {
	Input string `json:"input" jsonschema:"a URL, a local file path, or free text"`
}

// RecordOutput is a content record without attachment bytes.
type RecordOutput struct {
	Kind              string   `json:"kind"`
	Title             string   `json:"title"`
	TitleTranslated   string   `json:"title_translated,omitempty"`
	Body              string   `json:"body"`
	Summary           string   `json:"summary,omitempty"`
	SummaryTranslated string   `json:"summary_translated,omitempty"`
	Source            string   `json:"source"`
	Tags              []string `json:"tags,omitempty"`
	PublishDate       string   `json:"publish_date,omitempty"`
	AttachmentName    string   `json:"attachment_name,omitempty"`
	AttachmentSize    int64    `json:"attachment_size,omitempty"`
}

// PrepareOutput is the output schema for the prepare tool.
type PrepareOutput struct {
	Record        RecordOutput `json:"record"`
	Suggested     []string     `json:"suggested"`
	Extra         []string     `json:"extra"`
	SummaryFailed bool         `json:"summary_failed,omitempty"`
}

// SuggestTagsInput is the input schema for the suggest_tags tool.
type SuggestTagsInput struct {
	Title  string `json:"title,omitempty" jsonschema:"title of the content"`
	Body   string `json:"body,omitempty" jsonschema:"text of the content"`
	Source string `json:"source,omitempty" jsonschema:"URL or path the content came from"`
	Count  int    `json:"count,omitempty" jsonschema:"maximum number of new tags to propose (default 5)"`
}

// SuggestTagsOutput is the output schema for the suggest_tags tool.
type SuggestTagsOutput struct {
	Presets []string `json:"presets"`
	Extra   []string `json:"extra"`
}

// ReconcileTagsInput is the input schema for the reconcile_tags tool.
type ReconcileTagsInput struct {
	Tags []string `json:"tags" jsonschema:"tags to map onto the preset vocabulary"`
}

// ReconcileTagsOutput is the output schema for the reconcile_tags tool.
type ReconcileTagsOutput struct {
	Tags []string `json:"tags"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	if s.ports.Classify != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "classify",
			Description: "Decide whether input is a file, a link, text with links, or plain text",
		}, s.handleClassify)
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract",
		Description: "Extract title, body and metadata from a URL, file or text without calling a model",
	}, s.handleExtract)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "prepare",
		Description: "Extract, write a bilingual summary and suggest tags, without publishing",
	}, s.handlePrepare)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_tags",
		Description: "Suggest preset tags and new tags for a title or body",
	}, s.handleSuggestTags)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reconcile_tags",
		Description: "Map free-form tags onto the preset vocabulary",
	}, s.handleReconcileTags)
}

// handleClassify handles the classify tool invocation.
func (s *Server) handleClassify(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	if strings.TrimSpace(input.Input) == "" {
		return nil, ClassifyOutput{}, fmt.Errorf("%w: input is required", domain.ErrInvalidInput)
	}

	c := s.ports.Classify.Classify(input.Input)
	return nil, ClassifyOutput{
		Kind:     c.Kind.String(),
		Path:     c.Path,
		FileKind: string(c.FileKind),
		URL:      c.URL,
		URLs:     c.URLs,
		Extra:    c.Extra,
	}, nil
}

// handleExtract handles the extract tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	record, err := s.ports.Pipeline.Extract(ctx, input.Input)
	if err != nil {
		return nil, RecordOutput{}, err
	}
	return nil, toRecordOutput(record), nil
}

// handlePrepare handles the prepare tool invocation.
func (s *Server) handlePrepare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, PrepareOutput, error) {
	draft, err := s.ports.Pipeline.Prepare(ctx, input.Input)
	if err != nil {
		return nil, PrepareOutput{}, err
	}
	return nil, PrepareOutput{
		Record:        toRecordOutput(draft.Record),
		Suggested:     nonNil(draft.Suggested),
		Extra:         nonNil(draft.Extra),
		SummaryFailed: draft.SummaryFailed,
	}, nil
}

// handleSuggestTags handles the suggest_tags tool invocation.
func (s *Server) handleSuggestTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestTagsInput,
) (*mcp.CallToolResult, SuggestTagsOutput, error) {
	if strings.TrimSpace(input.Body) == "" && strings.TrimSpace(input.Title) == "" {
		return nil, SuggestTagsOutput{}, fmt.Errorf("%w: title or body is required", domain.ErrInvalidInput)
	}

	count := input.Count
	if count <= 0 {
		count = defaultExtraTags
	}

	var out SuggestTagsOutput
	if strings.TrimSpace(input.Body) != "" {
		out.Presets = s.ports.Tags.SuggestPresetTags(ctx, input.Body)
		out.Extra = s.ports.Tags.SuggestExtraTags(ctx, input.Body, count)
	}
	if len(out.Presets) == 0 && strings.TrimSpace(input.Title) != "" {
		presets, extra := s.ports.Tags.SuggestFromTitle(ctx, input.Title, input.Source)
		out.Presets = presets
		if len(out.Extra) == 0 {
			out.Extra = extra
		}
	}
	out.Presets = nonNil(out.Presets)
	out.Extra = nonNil(out.Extra)
	return nil, out, nil
}

// handleReconcileTags handles the reconcile_tags tool invocation.
func (s *Server) handleReconcileTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReconcileTagsInput,
) (*mcp.CallToolResult, ReconcileTagsOutput, error) {
	tags, err := s.ports.Tags.Reconcile(ctx, input.Tags)
	if err != nil {
		return nil, ReconcileTagsOutput{}, err
	}
	return nil, ReconcileTagsOutput{Tags: nonNil(tags)}, nil
}

// toRecordOutput flattens record, dropping attachment bytes.
func toRecordOutput(record *domain.ContentRecord) RecordOutput {
	out := RecordOutput{
		Kind:              record.Kind().String(),
		Title:             record.Title,
		TitleTranslated:   record.TitleTranslated,
		Body:              record.Body,
		Summary:           record.Summary,
		SummaryTranslated: record.SummaryTranslated,
		Source:            record.Source,
		Tags:              record.Tags.Slice(),
		PublishDate:       record.PublishDate,
	}
	if a := record.Attachment; a != nil {
		out.AttachmentName = a.Name
		out.AttachmentSize = a.Size
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
