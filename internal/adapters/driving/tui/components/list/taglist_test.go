package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

func sampleSelection() *domain.PendingSelection {
	return &domain.PendingSelection{
		SessionID: "s1",
		Suggested: []string{"大模型"},
		Extra:     []string{"vllm"},
		Selected:  domain.NewTagSet("大模型", "vllm", "自定义"),
	}
}

func tags(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Tag)
	}
	return out
}

func TestBuildItems(t *testing.T) {
	items := BuildItems([]string{"大模型", "论文", "工具"}, sampleSelection())

	assert.Equal(t, []string{"大模型", "论文", "工具", "vllm", "自定义"}, tags(items))

	assert.Equal(t, Item{Tag: "大模型", Preset: true, Suggested: true, Checked: true}, items[0])
	assert.Equal(t, Item{Tag: "论文", Preset: true}, items[1])
	assert.Equal(t, Item{Tag: "vllm", Checked: true}, items[3])
	assert.Equal(t, Item{Tag: "自定义", Checked: true}, items[4])
}

func TestBuildItems_SuggestedOutsidePresets(t *testing.T) {
	sel := &domain.PendingSelection{Suggested: []string{"Agent"}, Selected: domain.NewTagSet("Agent")}

	items := BuildItems(nil, sel)

	require.Len(t, items, 1)
	assert.True(t, items[0].Preset)
	assert.True(t, items[0].Suggested)
}

func TestBuildItems_NilSelection(t *testing.T) {
	items := BuildItems([]string{"论文"}, nil)

	require.Len(t, items, 1)
	assert.False(t, items[0].Checked)
}

func TestNewTagList(t *testing.T) {
	l := NewTagList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Current())
	assert.Nil(t, l.Init())
	assert.Contains(t, l.View(), "No tags")
}

func TestTagList_Navigation(t *testing.T) {
	l := NewTagList(nil)
	l.SetItems(BuildItems([]string{"a", "b", "c"}, nil))

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, "b", l.Current().Tag)

	l.SetSelected(10)
	assert.Equal(t, 1, l.Selected())
}

func TestTagList_SetItemsClampsCursor(t *testing.T) {
	l := NewTagList(nil)
	l.SetItems(BuildItems([]string{"a", "b", "c"}, nil))
	l.SetSelected(2)

	l.SetItems(BuildItems([]string{"a"}, nil))
	assert.Equal(t, 0, l.Selected())

	l.SetItems(nil)
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 0, l.Count())
}

func TestTagList_View(t *testing.T) {
	l := NewTagList(nil)
	l.SetItems(BuildItems([]string{"大模型", "论文"}, sampleSelection()))
	l.SetDimensions(80, 20)

	view := l.View()

	assert.Contains(t, view, "Tags (3 selected)")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "[ ] ")
	assert.Contains(t, view, "+vllm")
	assert.Contains(t, view, "论文")
	assert.Equal(t, 3, l.CheckedCount())
}

func TestTagList_ViewScrolls(t *testing.T) {
	l := NewTagList(nil)
	l.SetItems(BuildItems([]string{"t1", "t2", "t3", "t4", "t5"}, nil))
	l.SetDimensions(80, 4)
	l.SetSelected(4)

	view := l.View()

	assert.Contains(t, view, "t5")
	assert.NotContains(t, view, "t1")
}
