package input

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/styles"
)

func TestNewCaptureInput(t *testing.T) {
	s := styles.DefaultStyles()
	field := NewCaptureInput(s)

	require.NotNil(t, field)
	assert.Equal(t, "", field.Value())
	assert.True(t, field.Focused())
	assert.Contains(t, field.View(), "Capture")
}

func TestNewTagInput(t *testing.T) {
	field := NewTagInput(nil)

	require.NotNil(t, field)
	assert.NotNil(t, field.styles)
	assert.Contains(t, field.View(), "Tags")
}

func TestField_Init(t *testing.T) {
	field := NewCaptureInput(nil)

	// Blink command should be returned
	assert.NotNil(t, field.Init())
}

func TestField_Update(t *testing.T) {
	field := NewCaptureInput(nil)

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("https://x")}
	updated, _ := field.Update(msg)

	assert.Equal(t, field, updated)
	assert.Equal(t, "https://x", field.Value())
}

func TestField_CharLimit(t *testing.T) {
	field := NewTagInput(nil)

	field.SetValue(strings.Repeat("a", TagCharLimit+10))

	assert.Len(t, field.Value(), TagCharLimit)
}

func TestField_FocusBlur(t *testing.T) {
	field := NewCaptureInput(nil)

	field.Blur()
	assert.False(t, field.Focused())

	field.Focus()
	assert.True(t, field.Focused())
}

func TestField_SetWidth(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		wantInput int
	}{
		{"wide", 100, 100 - len("Capture: ") - 4},
		{"narrow clamps", 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewCaptureInput(nil)
			field.SetWidth(tt.width)

			assert.Equal(t, tt.width, field.Width())
			assert.Equal(t, tt.wantInput, field.textinput.Width)
		})
	}
}

func TestField_Reset(t *testing.T) {
	field := NewCaptureInput(nil)
	field.SetValue("note")

	field.Reset()

	assert.Equal(t, "", field.Value())
}
