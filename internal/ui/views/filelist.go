package views

import (
	"math"
	"path/filepath"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/geom"
	"github.com/Akashdeep-Patra/scmpanel/internal/paint"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

const (
	checkboxSize = 13.0
	iconSize     = 13.0
	fontSize     = 13.0
	// Horizontal offset of the checkbox inside its column.
	checkboxInset = 5.0
	textBaseline  = 4.0
	folderGap     = 5.0

	wheelRows = 3
)

// FileList draws the changed files of the source control panel and turns
// mouse gestures on them into selection and staging changes.
//
// Each row is H (the editor line height) tall and split into a checkbox
// column [0, H), an icon column [H, 2H) and the text from 2H on.
type FileList struct {
	id     common.WidgetID
	styles ui.Styles

	// mouseDown is the row whose checkbox received the current primary
	// press. It is only meaningful while hasMouseDown is set.
	mouseDown    int
	hasMouseDown bool

	// Terminal viewport, in rows.
	scroll    int
	rows      int
	lastIndex int
	focused   bool
}

// NewFileList creates the list widget with the given id.
func NewFileList(id common.WidgetID, styles ui.Styles) *FileList {
	return &FileList{id: id, styles: styles, lastIndex: -1}
}

func (f *FileList) ID() common.WidgetID { return f.id }

// MouseDown returns the row of an in-progress checkbox press.
func (f *FileList) MouseDown() (int, bool) { return f.mouseDown, f.hasMouseDown }

func (f *FileList) clearMouseDown() {
	f.mouseDown, f.hasMouseDown = 0, false
}

// requestFocus focuses the list and marks it as the panel's active widget.
func (f *FileList) requestFocus(ctx *event.Ctx, data *tab.Data) {
	ctx.RequestFocus(f.id)
	sc := data.SourceControlMut()
	sc.Active = sc.FileListID
	data.FocusArea = tab.FocusAreaSourceControl
}

// lineAt returns the row under a content y, or false above the first row.
func lineAt(y, lineHeight float64) (int, bool) {
	if y <= 0 {
		return 0, false
	}
	return int(math.Floor(y / lineHeight)), true
}

func (f *FileList) Event(ctx *event.Ctx, ev event.Event, data *tab.Data) {
	h := data.LineHeight()

	switch ev := ev.(type) {
	case event.MouseMove:
		ctx.SetCursor(event.CursorPointer)
		ctx.SetHandled()

	case event.MouseDown:
		if ev.Button != event.ButtonPrimary {
			return
		}
		f.clearMouseDown()
		pos := ev.Pos.Add(0, float64(f.scroll)*h)
		if line, ok := lineAt(pos.Y, h); ok && line < len(data.SourceControl.DiffFiles) {
			data.SourceControlMut().FileListIndex = line
			if pos.X < h {
				f.mouseDown, f.hasMouseDown = line, true
			}
		}
		f.requestFocus(ctx, data)
		ctx.SetHandled()

	case event.MouseUp:
		if ev.Button != event.ButtonPrimary {
			return
		}
		pos := ev.Pos.Add(0, float64(f.scroll)*h)
		if line, ok := lineAt(pos.Y, h); ok && line < len(data.SourceControl.DiffFiles) && pos.X < h {
			if f.hasMouseDown && f.mouseDown == line {
				data.SourceControlMut().Toggle(line)
			}
		}
		f.clearMouseDown()
		ctx.SetHandled()

	case event.Wheel:
		f.scrollBy(ev.Delta*wheelRows, len(data.SourceControl.DiffFiles))
		ctx.SetHandled()

	case event.KeyDown:
		sc := data.SourceControl.Clone()
		data.Keypress.KeyDown(ctx, ev.Key, sc)
		data.SourceControl = sc
		ctx.SetHandled()

	case event.Command:
		if _, ok := ev.Command.(command.Focus); ok {
			f.requestFocus(ctx, data)
			ctx.SetHandled()
		}
	}
}

func (f *FileList) Lifecycle(ctx *event.Ctx, ev event.LifeCycle, _ *tab.Data) {
	if fc, ok := ev.(event.FocusChanged); ok {
		f.focused = fc.Focused
		if !fc.Focused {
			f.clearMouseDown()
		}
		ctx.RequestPaint()
	}
}

// Layout returns the content size for the given maximum width.
func (f *FileList) Layout(data *tab.Data, maxWidth float64) geom.Size {
	return geom.Size{Width: maxWidth, Height: data.LineHeight() * float64(len(data.SourceControl.DiffFiles))}
}

// Paint records the rows intersecting clip into scene. size is the laid
// out size of the list.
func (f *FileList) Paint(scene *paint.Scene, data *tab.Data, size geom.Size, focused bool, measure paint.TextMeasurer) {
	h := data.LineHeight()
	sc := data.SourceControl
	files := sc.DiffFiles

	if focused && len(files) > 0 {
		row := geom.Size{Width: size.Width, Height: h}.ToRect().
			WithOrigin(geom.Point{X: 0, Y: float64(sc.FileListIndex) * h})
		scene.Fill(row, ui.ColorPanelCurrent)
	}

	start, end := scene.Clip.LineRange(h, len(files))
	for line := start; line < end; line++ {
		y := h * float64(line)
		file := files[line]
		path := data.Workspace.Relative(file.Path)

		origin := geom.Point{
			X: (h-checkboxSize)/2 + checkboxInset,
			Y: (h-checkboxSize)/2 + y,
		}
		box := geom.Size{Width: checkboxSize, Height: checkboxSize}.ToRect().WithOrigin(origin)
		scene.Stroke(box, ui.ColorEditorForeground, 1)
		if file.Staged {
			scene.StrokePath([]geom.Point{
				origin.Add(3, 7),
				origin.Add(6, 9.5),
				origin.Add(10, 3),
			}, ui.ColorEditorForeground, 2)
		}

		icon := ui.IconFor(path)
		iconRect := geom.Size{Width: iconSize, Height: iconSize}.ToRect().WithOrigin(geom.Point{
			X: (h-iconSize)/2 + h,
			Y: (h-iconSize)/2 + y,
		})
		scene.DrawIcon(iconRect, icon.Name, icon.Glyph, string(icon.Color))

		name := fileName(path)
		scene.DrawText(geom.Point{X: h * 2, Y: y + textBaseline}, name, ui.ColorEditorForeground, fontSize)
		if folder := folderOf(path); folder != "" {
			x := measure.Measure(name, fontSize)
			scene.DrawText(geom.Point{X: h*2 + x + folderGap, Y: y + textBaseline}, folder, ui.ColorEditorDim, fontSize)
		}
	}
}

// fileName is the last element of path, or "" for a root.
func fileName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// folderOf is the parent of path, or "" when path has none.
func folderOf(path string) string {
	if fileName(path) == "" {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

// ── Terminal viewport ───────────────────────────────────────────────────────

func (f *FileList) scrollBy(delta, total int) {
	f.scroll = max(0, min(f.scroll+delta, total-f.rows))
}

// follow keeps the selected row visible after the selection moved.
func (f *FileList) follow(index, total int) {
	if index != f.lastIndex {
		f.lastIndex = index
		if index < f.scroll {
			f.scroll = index
		} else if f.rows > 0 && index >= f.scroll+f.rows {
			f.scroll = index - f.rows + 1
		}
	}
	f.scroll = max(0, min(f.scroll, total-f.rows))
}

func (f *FileList) View(data *tab.Data, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	sc := data.SourceControl
	total := len(sc.DiffFiles)
	f.rows = height
	f.follow(sc.FileListIndex, total)

	if total == 0 {
		return ui.Box(f.styles.Muted.Render(" No changes"), width, height)
	}

	listW := width
	bar := components.RenderScrollbar(f.styles, height, total, f.scroll)
	if bar != "" {
		listW--
	}

	h := data.LineHeight()
	canvas := ui.Canvas{Cols: listW, Rows: height, LineHeight: h, Origin: geom.Point{Y: float64(f.scroll) * h}}
	scene := paint.NewScene(canvas.Bounds())
	size := f.Layout(data, float64(listW)*canvas.CellWidth())
	f.Paint(scene, data, size, f.focused, ui.CellMeasurer{CellWidth: canvas.CellWidth()})

	list := canvas.Rasterize(scene, f.styles.Theme)
	if bar == "" {
		return list
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, bar)
}

// Focused reports whether the list holds keyboard focus.
func (f *FileList) Focused() bool { return f.focused }

var _ components.Widget = (*FileList)(nil)
