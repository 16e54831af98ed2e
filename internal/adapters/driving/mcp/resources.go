package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for kb resources.
	uriScheme = "kb://"

	// tagsURI is the preset vocabulary resource.
	tagsURI = uriScheme + "tags"
)

// tagsResource is the JSON body of kb://tags.
type tagsResource struct {
	Presets  []string `json:"presets"`
	AllowNew bool     `json:"allow_new"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         tagsURI,
		Name:        "tags",
		Description: "The preset tag vocabulary",
		MIMEType:    "application/json",
	}, s.handleTagsResource)
}

// handleTagsResource returns the current preset vocabulary.
func (s *Server) handleTagsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	presets, err := s.ports.Tags.Presets(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}

	data, err := json.MarshalIndent(tagsResource{
		Presets:  nonNil(presets),
		AllowNew: s.ports.Tags.AllowNew(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling presets: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
