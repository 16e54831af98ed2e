package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPorts(t *testing.T) {
	pipeline := &MockPipelineService{}
	selection := NewMockSelectionService()
	tags := &MockTagService{}
	publish := &MockPublishService{}

	ports := NewPorts(pipeline, selection, tags, publish)

	assert.Equal(t, pipeline, ports.Pipeline)
	assert.Equal(t, selection, ports.Selection)
	assert.Equal(t, tags, ports.Tags)
	assert.Equal(t, publish, ports.Publish)
	assert.NoError(t, ports.Validate())
	assert.NoError(t, ports.ValidatePicker())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing pipeline", &Ports{Selection: NewMockSelectionService(), Tags: &MockTagService{}, Publish: &MockPublishService{}}, ErrMissingPipelineService},
		{"missing selection", &Ports{Pipeline: &MockPipelineService{}, Tags: &MockTagService{}, Publish: &MockPublishService{}}, ErrMissingSelectionService},
		{"missing tags", &Ports{Pipeline: &MockPipelineService{}, Selection: NewMockSelectionService(), Publish: &MockPublishService{}}, ErrMissingTagService},
		{"missing publish", &Ports{Pipeline: &MockPipelineService{}, Selection: NewMockSelectionService(), Tags: &MockTagService{}}, ErrMissingPublishService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.wantErr)
		})
	}
}

func TestPorts_ValidatePicker(t *testing.T) {
	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.ValidatePicker(), ErrInvalidPorts)

	// The picker runs without a pipeline.
	ports := &Ports{Selection: NewMockSelectionService(), Tags: &MockTagService{}}
	assert.NoError(t, ports.ValidatePicker())

	ports.Tags = nil
	assert.ErrorIs(t, ports.ValidatePicker(), ErrMissingTagService)

	ports = &Ports{Tags: &MockTagService{}}
	assert.ErrorIs(t, ports.ValidatePicker(), ErrMissingSelectionService)
}
