// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// Theme is a colour palette. Link, File, Image and Pdf colour the content
// kind badge shown above a draft.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Bar        lipgloss.Color
	Border     lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Link  lipgloss.Color
	File  lipgloss.Color
	Image lipgloss.Color
	Pdf   lipgloss.Color
}

// DarkTheme is tuned for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2AABEE"), // Telegram blue
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Bar:        lipgloss.Color("#181825"),
		Border:     lipgloss.Color("#45475A"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Link:       lipgloss.Color("#89B4FA"),
		File:       lipgloss.Color("#FAB387"),
		Image:      lipgloss.Color("#CBA6F7"),
		Pdf:        lipgloss.Color("#EBA0AC"),
	}
}

// LightTheme is tuned for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0088CC"),
		Secondary:  lipgloss.Color("#0E7490"),
		Foreground: lipgloss.Color("#4C4F69"),
		Muted:      lipgloss.Color("#8C8FA1"),
		Bar:        lipgloss.Color("#E6E9EF"),
		Border:     lipgloss.Color("#BCC0CC"),
		Success:    lipgloss.Color("#40A02B"),
		Warning:    lipgloss.Color("#DF8E1D"),
		Error:      lipgloss.Color("#D20F39"),
		Link:       lipgloss.Color("#1E66F5"),
		File:       lipgloss.Color("#FE640B"),
		Image:      lipgloss.Color("#8839EF"),
		Pdf:        lipgloss.Color("#E64553"),
	}
}

// DefaultTheme picks the dark or light palette from the terminal background.
func DefaultTheme() *Theme {
	if lipgloss.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// Checked marks a selected tag.
	Checked lipgloss.Style

	// Suggested marks a preset the model matched.
	Suggested lipgloss.Style

	// Extra marks a free-form tag the model proposed.
	Extra lipgloss.Style

	// Preview frames the post preview.
	Preview lipgloss.Style

	badge lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Checked:   lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Suggested: lipgloss.NewStyle().Foreground(theme.Secondary),
		Extra:     lipgloss.NewStyle().Italic(true).Foreground(theme.Warning),
		Preview: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Foreground).
			Padding(0, 1),

		badge: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// KindColor returns the badge colour for a content kind. Text and unknown
// kinds use the muted colour.
func (s *Styles) KindColor(kind domain.ContentKind) lipgloss.Color {
	switch kind {
	case domain.KindLink:
		return s.theme.Link
	case domain.KindFile:
		return s.theme.File
	case domain.KindImage:
		return s.theme.Image
	case domain.KindPdf:
		return s.theme.Pdf
	default:
		return s.theme.Muted
	}
}

// KindBadge renders kind as a coloured label such as " pdf ".
func (s *Styles) KindBadge(kind domain.ContentKind) string {
	return s.badge.Foreground(s.KindColor(kind)).Render(string(kind))
}
