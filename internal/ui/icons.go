package ui

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
)

// Icon is a file-type glyph for the terminal.
type Icon struct {
	// Name is the detected language, or "file" when unknown.
	Name  string
	Glyph string
	Color lipgloss.Color
}

var (
	defaultIcon = Icon{Name: "file", Glyph: "·", Color: "#9399b2"}

	// Keyed by lowercase chroma lexer name.
	languageIcons = map[string]Icon{
		"go":         {Glyph: "◆", Color: "#00add8"},
		"rust":       {Glyph: "◆", Color: "#dea584"},
		"python":     {Glyph: "◆", Color: "#3572a5"},
		"javascript": {Glyph: "◆", Color: "#f1e05a"},
		"typescript": {Glyph: "◆", Color: "#3178c6"},
		"tsx":        {Glyph: "◆", Color: "#3178c6"},
		"java":       {Glyph: "◆", Color: "#b07219"},
		"c":          {Glyph: "◆", Color: "#555555"},
		"c++":        {Glyph: "◆", Color: "#f34b7d"},
		"ruby":       {Glyph: "◆", Color: "#701516"},
		"bash":       {Glyph: "$", Color: "#89e051"},
		"markdown":   {Glyph: "¶", Color: "#89b4fa"},
		"json":       {Glyph: "≡", Color: "#f9e2af"},
		"yaml":       {Glyph: "≡", Color: "#cb171e"},
		"toml":       {Glyph: "≡", Color: "#9c4221"},
		"html":       {Glyph: "‹", Color: "#e34c26"},
		"css":        {Glyph: "#", Color: "#563d7c"},
		"makefile":   {Glyph: "≡", Color: "#427819"},
		"docker":     {Glyph: "≡", Color: "#384d54"},
	}
)

// IconFor picks an icon for path from its file name.
func IconFor(path string) Icon {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return defaultIcon
	}
	lexer := lexers.Match(base)
	if lexer == nil {
		return defaultIcon
	}
	name := lexer.Config().Name
	icon, ok := languageIcons[strings.ToLower(name)]
	if !ok {
		icon = Icon{Glyph: "◇", Color: defaultIcon.Color}
	}
	icon.Name = name
	return icon
}
