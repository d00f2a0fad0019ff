package components

import (
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	minSideWidth = 10
	// Lines longer than this are paired without word highlighting.
	wordDiffMaxLineLength = 500
)

// RenderSideBySideDiff lays a unified diff out as two columns: the old
// text on the left and the new text on the right. A run of removed lines is
// paired row by row with the added lines that follow it.
func RenderSideBySideDiff(styles ui.Styles, diff string, totalWidth int) string {
	if diff == "" {
		return styles.Muted.Render("No diff content")
	}

	sideW := max(minSideWidth, (totalWidth-3)/2)
	sep := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render(" │ ")

	var b strings.Builder
	row := func(left, right string) {
		b.WriteString(ui.Fit(left, sideW) + sep + ui.Truncate(right, sideW) + "\n")
	}
	full := func(line string) {
		b.WriteString(ui.Truncate(line, 2*sideW+3) + "\n")
	}

	var removed, added []string
	flush := func() {
		for i := 0; i < max(len(removed), len(added)); i++ {
			var l, r string
			switch {
			case i < len(removed) && i < len(added):
				l, r = wordDiff(styles, removed[i], added[i])
			case i < len(removed):
				l = styles.DiffRemoved.Render(removed[i])
			default:
				r = styles.DiffAdded.Render(added[i])
			}
			row(ui.Truncate(l, sideW), r)
		}
		removed, added = removed[:0], added[:0]
	}

	// Inside a hunk "---" and "+++" are removed and added lines.
	inHunk := false
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "==="):
			flush()
			inHunk = false
			full(styles.Title.Render(line))
		case strings.HasPrefix(line, "diff "):
			flush()
			inHunk = false
			full(styles.DiffHeader.Render(line))
		case !inHunk && isFileHeader(line):
			flush()
			full(styles.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			flush()
			inHunk = true
			full(styles.DiffHunkHeader.Render(line))
		case strings.HasPrefix(line, "-"):
			if len(added) > 0 {
				flush()
			}
			removed = append(removed, line)
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		default:
			flush()
			ctx := styles.DiffContext.Render(ui.Truncate(line, sideW))
			row(ctx, ctx)
		}
	}
	flush()
	return b.String()
}

func isFileHeader(line string) bool {
	return strings.HasPrefix(line, "index ") || strings.HasPrefix(line, "new file") ||
		strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++")
}

// wordDiff styles a removed/added line pair, emphasising the words that
// changed between them.
func wordDiff(styles ui.Styles, removed, added string) (string, string) {
	if len(removed) > wordDiffMaxLineLength || len(added) > wordDiffMaxLineLength {
		return styles.DiffRemoved.Render(removed), styles.DiffAdded.Render(added)
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(removed[1:], added[1:], false))

	oldEmph := styles.DiffRemoved.Reverse(true)
	newEmph := styles.DiffAdded.Reverse(true)
	var l, r strings.Builder
	l.WriteString(styles.DiffRemoved.Render(removed[:1]))
	r.WriteString(styles.DiffAdded.Render(added[:1]))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			l.WriteString(styles.DiffRemoved.Render(d.Text))
			r.WriteString(styles.DiffAdded.Render(d.Text))
		case diffmatchpatch.DiffDelete:
			l.WriteString(oldEmph.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			r.WriteString(newEmph.Render(d.Text))
		}
	}
	return l.String(), r.String()
}
