package components

import (
	"sort"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of entries.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// RenderHelp renders a full-screen help overlay.
func RenderHelp(styles ui.Styles, title string, sections []HelpSection, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(max(0, width-10)).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(16).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range sections {
		if len(section.Entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, e := range section.Entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(min(70, max(0, width-4))).
		MaxHeight(max(0, height-2)).
		Render(body.String())

	return ui.PlaceCentre(width, height, overlay)
}

// BindingEntries turns bubbles key bindings into help entries.
func BindingEntries(bindings ...key.Binding) []HelpEntry {
	entries := make([]HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		entries = append(entries, HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return entries
}

// KeyMapEntries lists panel bindings, one entry per command, keys joined
// in binding order.
func KeyMapEntries(maps []keypress.KeyMap) []HelpEntry {
	keys := map[string][]string{}
	var order []string
	for _, km := range maps {
		desc := km.Command.Description()
		if _, seen := keys[desc]; !seen {
			order = append(order, desc)
		}
		label := km.Label()
		dup := false
		for _, k := range keys[desc] {
			dup = dup || k == label
		}
		if !dup {
			keys[desc] = append(keys[desc], label)
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i] < order[j] })

	entries := make([]HelpEntry, 0, len(order))
	for _, desc := range order {
		entries = append(entries, HelpEntry{Key: strings.Join(keys[desc], " / "), Desc: desc})
	}
	return entries
}
