// Package editor provides the single-line text editor embedded in panels.
package editor

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/Akashdeep-Patra/scmpanel/internal/scm"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Buffer is a named text buffer.
type Buffer struct {
	Name string
	text string
}

// NewBuffer creates an empty buffer.
func NewBuffer(name string) *Buffer { return &Buffer{Name: name} }

func (b *Buffer) Text() string { return b.text }

// View is an editor widget bound to a buffer.
type View struct {
	id     common.WidgetID
	buffer *Buffer
	input  textinput.Model
	styles ui.Styles

	header  bool
	gutter  bool
	padding float64
}

// NewView creates an editor view with a header and gutter.
func NewView(id common.WidgetID, buffer *Buffer, styles ui.Styles) *View {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.PlaceholderStyle = styles.Placeholder
	ti.TextStyle = styles.Body
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(buffer.text)

	return &View{
		id:     id,
		buffer: buffer,
		input:  ti,
		styles: styles,
		header: true,
		gutter: true,
	}
}

func (v *View) HideHeader() *View {
	v.header = false
	return v
}

func (v *View) HideGutter() *View {
	v.gutter = false
	return v
}

func (v *View) SetPlaceholder(s string) *View {
	v.input.Placeholder = s
	return v
}

// Padding sets the inset around the text in logical units.
func (v *View) Padding(p float64) *View {
	v.padding = p
	return v
}

func (v *View) ID() common.WidgetID { return v.id }

func (v *View) Buffer() *Buffer { return v.buffer }

func (v *View) isSourceControl() bool { return v.buffer.Name == scm.SourceControlBufferName }

// requestFocus takes keyboard focus and, for the commit buffer, marks the
// input as the panel's active widget.
func (v *View) requestFocus(ctx *event.Ctx, data *tab.Data) {
	ctx.RequestFocus(v.id)
	if v.isSourceControl() {
		sc := data.SourceControlMut()
		sc.Active = sc.EditorViewID
		data.FocusArea = tab.FocusAreaSourceControl
	}
}

func (v *View) Event(ctx *event.Ctx, ev event.Event, data *tab.Data) {
	switch ev := ev.(type) {
	case event.MouseMove:
		ctx.SetCursor(event.CursorText)
		ctx.SetHandled()
	case event.MouseDown:
		v.requestFocus(ctx, data)
		ctx.SetHandled()
	case event.MouseUp:
		ctx.SetHandled()
	case event.KeyDown:
		t := &target{view: v, data: data}
		if !data.Keypress.KeyDown(ctx, ev.Key, t) {
			v.input, _ = v.input.Update(ev.Key)
			v.buffer.text = v.input.Value()
		}
		ctx.SetHandled()
	case event.Command:
		if _, ok := ev.Command.(command.Focus); ok {
			v.requestFocus(ctx, data)
			ctx.SetHandled()
		}
	}
}

func (v *View) Lifecycle(_ *event.Ctx, ev event.LifeCycle, _ *tab.Data) {
	if fc, ok := ev.(event.FocusChanged); ok {
		if fc.Focused {
			v.input.Focus()
		} else {
			v.input.Blur()
		}
	}
}

// insert places s at the cursor.
func (v *View) insert(s string) {
	value := []rune(v.input.Value())
	pos := v.input.Position()
	ins := []rune(s)
	out := make([]rune, 0, len(value)+len(ins))
	out = append(out, value[:pos]...)
	out = append(out, ins...)
	out = append(out, value[pos:]...)
	v.input.SetValue(string(out))
	v.input.SetCursor(pos + len(ins))
	v.buffer.text = v.input.Value()
}

func (v *View) View(data *tab.Data, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	h := data.LineHeight()
	padRows := int(math.Floor(v.padding / h))
	padCols := int(math.Floor(v.padding / (h / 2)))

	var lines []string
	if v.header {
		lines = append(lines, v.styles.PanelHeader.Render(ui.Fit(" "+v.buffer.Name, width)))
	}
	for range padRows {
		lines = append(lines, "")
	}

	prefix := strings.Repeat(" ", padCols)
	if v.gutter {
		prefix += v.styles.Muted.Render("1 ")
	}
	v.input.Width = max(1, width-lipgloss.Width(prefix)-padCols-1)
	lines = append(lines, prefix+v.input.View())

	return ui.Box(strings.Join(lines, "\n"), width, height)
}

// ── keypress.Focus ──────────────────────────────────────────────────────────

// target adapts a View to the key-press dispatcher for one event.
type target struct {
	view *View
	data *tab.Data
}

func (t *target) Mode() keypress.Mode { return keypress.ModeInsert }

func (t *target) CheckCondition(condition string) bool {
	switch condition {
	case keypress.CondEditorFocus:
		return true
	case keypress.CondSourceControlFocus:
		return t.view.isSourceControl()
	}
	return false
}

func (t *target) RunCommand(ctx *event.Ctx, cmd command.Command, _ int) command.Executed {
	if !t.view.isSourceControl() {
		return command.No
	}
	sc := t.data.SourceControl
	switch cmd {
	case command.SplitUp:
		ctx.Submit(command.SplitEditorMove{Direction: command.MoveUp, From: t.view.id}, command.Widget(sc.SplitID))
	case command.SplitDown:
		ctx.Submit(command.SplitEditorMove{Direction: command.MoveDown, From: t.view.id}, command.Widget(sc.SplitID))
	case command.SourceControlCancel:
		ctx.Submit(command.FocusEditor{}, command.Auto)
	case command.SourceControlCommit:
		ctx.Submit(command.CommitRequested{
			Message: strings.TrimSpace(t.view.buffer.text),
			Files:   sc.StagedPaths(),
		}, command.Auto)
	default:
		return command.No
	}
	return command.Yes
}

func (t *target) ReceiveChar(_ *event.Ctx, c string) { t.view.insert(c) }
