package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbolic colour names widgets paint with.
const (
	ColorPanelCurrent     = "panel.current"
	ColorPanelBackground  = "panel.background"
	ColorEditorForeground = "editor.foreground"
	ColorEditorDim        = "editor.dim"
	ColorScrollbar        = "scrollbar"
)

// Theme holds all colours for the application.
// The dark palette is Catppuccin Mocha, the light one Catppuccin Latte.
type Theme struct {
	Name string

	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	TextSubtle lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Added    lipgloss.Color
	Modified lipgloss.Color
	Deleted  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Name:          "dark",
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:       lipgloss.Color("#cdd6f4"),
		TextMuted:  lipgloss.Color("#9399b2"),
		TextSubtle: lipgloss.Color("#6c7086"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Added:    lipgloss.Color("#a6e3a1"),
		Modified: lipgloss.Color("#f9e2af"),
		Deleted:  lipgloss.Color("#f38ba8"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),
	}
}

// LightTheme returns the light theme.
func LightTheme() Theme {
	return Theme{
		Name:          "light",
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#ccd0da"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#7287fd"),

		Text:       lipgloss.Color("#4c4f69"),
		TextMuted:  lipgloss.Color("#6c6f85"),
		TextSubtle: lipgloss.Color("#9ca0b0"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Added:    lipgloss.Color("#40a02b"),
		Modified: lipgloss.Color("#df8e1d"),
		Deleted:  lipgloss.Color("#d20f39"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),
	}
}

// ThemeByName returns the named theme, falling back to dark.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, "light") {
		return LightTheme()
	}
	return DarkTheme()
}

// Color resolves a symbolic colour name. Hex strings pass through, so
// callers may paint with literal colours too.
func (t Theme) Color(name string) lipgloss.Color {
	switch name {
	case ColorPanelCurrent:
		return t.SurfaceHover
	case ColorPanelBackground:
		return t.Bg
	case ColorEditorForeground:
		return t.Text
	case ColorEditorDim:
		return t.TextSubtle
	case ColorScrollbar:
		return t.Border
	}
	return lipgloss.Color(name)
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Panels
	Panel         lipgloss.Style
	PanelFocused  lipgloss.Style
	PanelTitle    lipgloss.Style
	PanelHeader   lipgloss.Style
	SectionHeader lipgloss.Style

	// Text
	Title       lipgloss.Style
	Body        lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style
	KeyBind     lipgloss.Style
	KeyDesc     lipgloss.Style
	Placeholder lipgloss.Style
	Prompt      lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHeader     lipgloss.Style
	DiffHunkHeader lipgloss.Style

	// Status bar segments
	Info    lipgloss.Style
	Error   lipgloss.Style
	Staged  lipgloss.Style
	Changed lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Padding(0, 1)
	s.PanelHeader = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Background(t.Surface)
	s.SectionHeader = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Placeholder = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.Prompt = lipgloss.NewStyle().Foreground(t.Primary)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)

	s.Info = lipgloss.NewStyle().Foreground(t.Info)
	s.Error = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	s.Staged = lipgloss.NewStyle().Foreground(t.Added)
	s.Changed = lipgloss.NewStyle().Foreground(t.Modified)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
