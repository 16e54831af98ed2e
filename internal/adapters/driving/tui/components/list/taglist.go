// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// Item is one tag offered in the picker.
type Item struct {
	// Tag is the tag text.
	Tag string

	// Preset is true for vocabulary tags.
	Preset bool

	// Suggested is true when the model matched this preset.
	Suggested bool

	// Checked is true when the tag is in the current selection.
	Checked bool
}

// TagList displays checkable tags in a navigable list.
type TagList struct {
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewTagList creates a new tag list component.
func NewTagList(s *styles.Styles) *TagList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TagList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// BuildItems lists every preset, then the selection's extra tags, then
// any tag the user added by hand.
func BuildItems(presets []string, sel *domain.PendingSelection) []Item {
	seen := domain.NewTagSet()
	var suggested, checked domain.TagSet
	if sel != nil {
		suggested = domain.NewTagSet(sel.Suggested...)
		checked = sel.Selected
	}

	items := make([]Item, 0, len(presets))
	add := func(tag string, preset bool) {
		if !seen.Add(tag) {
			return
		}
		items = append(items, Item{
			Tag:       tag,
			Preset:    preset,
			Suggested: suggested.Contains(tag),
			Checked:   checked.Contains(tag),
		})
	}

	for _, p := range presets {
		add(p, true)
	}
	if sel != nil {
		for _, t := range sel.Suggested {
			add(t, true)
		}
		for _, t := range sel.Extra {
			add(t, false)
		}
		for _, t := range sel.Selected.Slice() {
			add(t, false)
		}
	}
	return items
}

// Init initialises the tag list.
func (l *TagList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *TagList) Update(msg tea.Msg) (*TagList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the tag list.
func (l *TagList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("No tags to choose from")
	}

	lines := make([]string, 0, len(l.items)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Tags (%d selected)", l.CheckedCount())), "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, l.items[i]))
	}
	return strings.Join(lines, "\n")
}

// renderItem formats one tag with its checkbox.
func (l *TagList) renderItem(index int, item Item) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	box := "[ ]"
	if item.Checked {
		box = l.styles.Checked.Render("[x]")
	}

	label := item.Tag
	if !item.Preset {
		label = "+" + label
	}

	switch {
	case index == l.selected:
		label = l.styles.Selected.Render(label)
	case item.Suggested:
		label = l.styles.Suggested.Render(label + " *")
	case !item.Preset:
		label = l.styles.Extra.Render(label)
	default:
		label = l.styles.Normal.Render(label)
	}
	return indicator + box + " " + label
}

// SetItems replaces the items, keeping the cursor in range.
func (l *TagList) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Items returns the current items.
func (l *TagList) Items() []Item {
	return l.items
}

// Selected returns the cursor index.
func (l *TagList) Selected() int {
	return l.selected
}

// SetSelected moves the cursor to index.
func (l *TagList) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// Current returns the item under the cursor, or nil if none.
func (l *TagList) Current() *Item {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// CheckedCount returns how many items are checked.
func (l *TagList) CheckedCount() int {
	n := 0
	for _, it := range l.items {
		if it.Checked {
			n++
		}
	}
	return n
}

// MoveUp moves the cursor up.
func (l *TagList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *TagList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *TagList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *TagList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *TagList) IsEmpty() bool {
	return len(l.items) == 0
}
