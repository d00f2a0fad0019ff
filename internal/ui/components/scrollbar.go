package components

import (
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a one-column vertical scrollbar of the given
// height for a list of total rows scrolled to offset.
//
// Returns an empty string if all rows fit.
func RenderScrollbar(styles ui.Styles, height, total, offset int) string {
	if total <= height || height < 1 {
		return ""
	}

	t := styles.Theme

	thumbSize := max(1, min(height, height*height/total))

	maxOffset := height - thumbSize
	thumbStart := 0
	if scrollable := total - height; scrollable > 0 {
		thumbStart = offset * maxOffset / scrollable
	}
	thumbStart = max(0, min(thumbStart, maxOffset))

	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	var b strings.Builder
	b.Grow(height * 4)
	for i := range height {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("░"))
		}
	}
	return b.String()
}
