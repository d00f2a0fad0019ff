package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Branch   string
	Focus    string
	Staged   int
	Total    int
	Pending  string // partially typed chord or count
	Message  string // transient info/error message
	IsError  bool
	RepoRoot string
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   main  │  2/5 staged  │  source control      repo
// Narrow (< 60):   main  │  2/5 staged
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	left := " " + lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(" "+data.Branch)

	switch {
	case data.Total == 0:
		left += sep + lipgloss.NewStyle().Foreground(t.Success).Render("✓ clean")
	case data.Staged > 0:
		left += sep + styles.Staged.Render(fmt.Sprintf("%d/%d staged", data.Staged, data.Total))
	default:
		left += sep + styles.Changed.Render(fmt.Sprintf("● %d changed", data.Total))
	}

	if width >= 60 && data.Focus != "" {
		left += sep + styles.Muted.Render(data.Focus)
	}
	if data.Pending != "" {
		left += sep + styles.KeyBind.Render(data.Pending)
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		style := styles.Info
		if data.IsError {
			style = styles.Error
		}
		right = style.Render(data.Message) + " "
	} else if width >= 60 && data.RepoRoot != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.RepoRoot)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	inner := max(0, width-2)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ui.Truncate(right, max(0, inner-lipgloss.Width(left)-1))
		gap = max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))
	}

	content := ui.Truncate(left+strings.Repeat(" ", gap)+right, inner)
	return styles.StatusBar.Width(width).Render(content)
}
