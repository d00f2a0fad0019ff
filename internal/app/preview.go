package app

import (
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui/components"
	"github.com/charmbracelet/bubbles/viewport"
)

const wheelLines = 3

// Preview is the main area: the diff of the selected file.
type Preview struct {
	id      common.WidgetID
	styles  ui.Styles
	vp      viewport.Model
	path    string
	title   string
	raw     string
	loading bool
	focused bool

	sideBySide bool

	// renderedWidth is the width the content was last laid out for.
	renderedWidth int
}

// NewPreview creates an empty preview.
func NewPreview(styles ui.Styles) *Preview {
	return &Preview{
		id:     common.NewWidgetID(),
		styles: styles,
		vp:     viewport.New(0, 0),
	}
}

func (p *Preview) ID() common.WidgetID { return p.id }

// Path is the absolute path of the file being shown, if any.
func (p *Preview) Path() string { return p.path }

// Focused reports whether the preview holds keyboard focus.
func (p *Preview) Focused() bool { return p.focused }

// Load marks path as being fetched.
func (p *Preview) Load(path, title string) {
	if path != p.path {
		p.vp.GotoTop()
	}
	p.path, p.title, p.loading = path, title, true
}

// SetDiff shows diff for path. Results for a file that is no longer
// selected are dropped.
func (p *Preview) SetDiff(path, diff string) {
	if path != p.path {
		return
	}
	p.raw, p.loading = diff, false
	p.render()
}

// SideBySide reports whether diffs are shown in two columns.
func (p *Preview) SideBySide() bool { return p.sideBySide }

func (p *Preview) toggleLayout() {
	p.sideBySide = !p.sideBySide
	p.render()
}

func (p *Preview) render() {
	p.renderedWidth = p.vp.Width
	if p.sideBySide {
		p.vp.SetContent(components.RenderSideBySideDiff(p.styles, p.raw, p.vp.Width))
		return
	}
	p.vp.SetContent(renderDiffColored(p.styles, p.raw))
}

// Clear empties the preview.
func (p *Preview) Clear() {
	p.path, p.title, p.raw, p.loading = "", "", "", false
	p.vp.SetContent("")
	p.vp.GotoTop()
}

func (p *Preview) requestFocus(ctx *event.Ctx, data *tab.Data) {
	ctx.RequestFocus(p.id)
	data.FocusArea = tab.FocusAreaEditor
}

func (p *Preview) Event(ctx *event.Ctx, ev event.Event, data *tab.Data) {
	switch ev := ev.(type) {
	case event.MouseDown:
		p.requestFocus(ctx, data)
		ctx.SetHandled()
	case event.Wheel:
		if ev.Delta < 0 {
			p.vp.ScrollUp(-ev.Delta * wheelLines)
		} else {
			p.vp.ScrollDown(ev.Delta * wheelLines)
		}
		ctx.SetHandled()
	case event.KeyDown:
		data.Keypress.KeyDown(ctx, ev.Key, &previewTarget{p})
		ctx.SetHandled()
	case event.Command:
		if _, ok := ev.Command.(command.Focus); ok {
			p.requestFocus(ctx, data)
			ctx.SetHandled()
		}
	}
}

func (p *Preview) Lifecycle(ctx *event.Ctx, ev event.LifeCycle, _ *tab.Data) {
	if fc, ok := ev.(event.FocusChanged); ok {
		p.focused = fc.Focused
		ctx.RequestPaint()
	}
}

func (p *Preview) View(data *tab.Data, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var title string
	switch {
	case p.path == "":
		title = p.styles.Muted.Render(" Select a file to see its changes")
	case p.loading:
		title = p.styles.PanelTitle.Render(p.title) + p.styles.Muted.Render(" loading…")
	default:
		title = p.styles.PanelTitle.Render(p.title)
	}

	p.vp.Width = width
	p.vp.Height = max(0, height-1)
	if p.sideBySide && width != p.renderedWidth && !p.loading {
		p.render()
	}
	body := ""
	if p.path != "" && p.vp.Height > 0 {
		body = p.vp.View()
	}
	return ui.Box(title+"\n"+body, width, height)
}

// previewTarget runs key-bound commands on the preview.
type previewTarget struct{ p *Preview }

func (t *previewTarget) Mode() keypress.Mode { return keypress.ModeNormal }

func (t *previewTarget) CheckCondition(condition string) bool {
	return condition == keypress.CondMainFocus
}

func (t *previewTarget) RunCommand(ctx *event.Ctx, cmd command.Command, count int) command.Executed {
	n := max(1, count)
	switch cmd {
	case command.Up:
		t.p.vp.ScrollUp(n)
	case command.Down:
		t.p.vp.ScrollDown(n)
	case command.PageUp:
		t.p.vp.HalfPageUp()
	case command.PageDown:
		t.p.vp.HalfPageDown()
	case command.ToggleDiffLayout:
		t.p.toggleLayout()
	case command.Refresh, command.ToggleHelp, command.Quit, command.FocusSourceControl, command.CopyPath:
		ctx.Submit(command.Global{Command: cmd}, command.Auto)
	default:
		return command.No
	}
	return command.Yes
}

func (t *previewTarget) ReceiveChar(*event.Ctx, string) {}

// renderDiffColored colours a unified diff line by line.
func renderDiffColored(styles ui.Styles, diff string) string {
	if diff == "" {
		return styles.Muted.Render("No diff content")
	}
	var b strings.Builder
	inHunk := false
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "==="):
			inHunk = false
			b.WriteString(styles.Title.Render(line))
		case strings.HasPrefix(line, "diff "):
			inHunk = false
			b.WriteString(styles.DiffHeader.Render(line))
		case !inHunk && (strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---")):
			b.WriteString(styles.DiffHeader.Render(line))
		case !inHunk && (strings.HasPrefix(line, "index ") || strings.HasPrefix(line, "new file")):
			b.WriteString(styles.Muted.Render(line))
		case strings.HasPrefix(line, "@@"):
			inHunk = true
			b.WriteString(styles.DiffHunkHeader.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(styles.DiffAdded.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(styles.DiffRemoved.Render(line))
		default:
			b.WriteString(styles.DiffContext.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var _ components.Widget = (*Preview)(nil)
