package ui

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/geom"
	"github.com/Akashdeep-Patra/scmpanel/internal/paint"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Glyphs for stroked shapes.
const (
	GlyphCheckbox        = "☐"
	GlyphCheckboxChecked = "☑"
	GlyphCheck           = "✓"
)

// Canvas maps logical units onto terminal cells. A row is LineHeight units
// tall and a column half of that.
type Canvas struct {
	Cols, Rows int
	LineHeight float64
	// Origin is the logical point drawn at the top-left of cell (0, 0).
	Origin geom.Point
}

// CellWidth is the logical width of one column.
func (c Canvas) CellWidth() float64 { return c.LineHeight / 2 }

// CellAt returns the cell containing p.
func (c Canvas) CellAt(p geom.Point) (col, row int) {
	col = int(math.Floor((p.X - c.Origin.X) / c.CellWidth()))
	row = int(math.Floor((p.Y - c.Origin.Y) / c.LineHeight))
	return col, row
}

// PointAt returns the logical centre of cell (col, row).
func (c Canvas) PointAt(col, row int) geom.Point {
	return geom.Point{
		X: c.Origin.X + (float64(col)+0.5)*c.CellWidth(),
		Y: c.Origin.Y + (float64(row)+0.5)*c.LineHeight,
	}
}

// Bounds is the logical rectangle the canvas covers.
func (c Canvas) Bounds() geom.Rect {
	return geom.RectFrom(c.Origin, geom.Size{
		Width:  float64(c.Cols) * c.CellWidth(),
		Height: float64(c.Rows) * c.LineHeight,
	})
}

// CellMeasurer measures text by its cell width.
type CellMeasurer struct {
	CellWidth float64
}

func (m CellMeasurer) Measure(text string, _ float64) float64 {
	return float64(runewidth.StringWidth(text)) * m.CellWidth
}

type cell struct {
	text string
	fg   lipgloss.Color
	bg   lipgloss.Color
	// wide marks the trailing half of a double-width rune.
	wide bool
}

type grid struct {
	canvas Canvas
	cells  [][]cell
}

func (g *grid) at(col, row int) *cell {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.canvas.Cols {
		return nil
	}
	return &g.cells[row][col]
}

// Rasterize replays scene onto the canvas and returns one string per row
// joined by newlines.
func (c Canvas) Rasterize(scene *paint.Scene, theme Theme) string {
	if c.Cols <= 0 || c.Rows <= 0 || c.LineHeight <= 0 {
		return ""
	}
	g := &grid{canvas: c, cells: make([][]cell, c.Rows)}
	for i := range g.cells {
		g.cells[i] = make([]cell, c.Cols)
	}

	for _, op := range scene.Ops() {
		switch op := op.(type) {
		case paint.FillRect:
			g.fill(op.Rect, theme.Color(op.Color))
		case paint.StrokeRect:
			g.put(op.Rect.Center(), GlyphCheckbox, theme.Color(op.Color))
		case paint.StrokePath:
			g.strokePath(op.Points, theme.Color(op.Color))
		case paint.Icon:
			g.put(op.Rect.Center(), op.Glyph, theme.Color(op.Color))
		case paint.Text:
			g.text(op.Pos, op.Text, theme.Color(op.Color))
		}
	}
	return g.render()
}

func (g *grid) fill(r geom.Rect, color lipgloss.Color) {
	for row := range g.cells {
		for col := range g.cells[row] {
			if r.Contains(g.canvas.PointAt(col, row)) {
				g.cells[row][col].bg = color
			}
		}
	}
}

func (g *grid) put(p geom.Point, glyph string, color lipgloss.Color) {
	if c := g.at(g.canvas.CellAt(p)); c != nil {
		c.text = glyph
		c.fg = color
	}
}

// strokePath draws a check mark. Inside a checkbox it fills the box.
func (g *grid) strokePath(points []geom.Point, color lipgloss.Color) {
	if len(points) == 0 {
		return
	}
	bounds := geom.Rect{X0: points[0].X, Y0: points[0].Y, X1: points[0].X, Y1: points[0].Y}
	for _, p := range points[1:] {
		bounds.X0 = math.Min(bounds.X0, p.X)
		bounds.Y0 = math.Min(bounds.Y0, p.Y)
		bounds.X1 = math.Max(bounds.X1, p.X)
		bounds.Y1 = math.Max(bounds.Y1, p.Y)
	}
	c := g.at(g.canvas.CellAt(bounds.Center()))
	if c == nil {
		return
	}
	if c.text == GlyphCheckbox {
		c.text = GlyphCheckboxChecked
		return
	}
	c.text = GlyphCheck
	c.fg = color
}

func (g *grid) text(pos geom.Point, s string, color lipgloss.Color) {
	col := int(math.Ceil((pos.X - g.canvas.Origin.X) / g.canvas.CellWidth()))
	row := int(math.Floor((pos.Y - g.canvas.Origin.Y) / g.canvas.LineHeight))
	if row < 0 || row >= len(g.cells) {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > g.canvas.Cols {
			return
		}
		if col >= 0 {
			c := &g.cells[row][col]
			c.text, c.fg, c.wide = string(r), color, false
			if w == 2 {
				g.cells[row][col+1] = cell{wide: true, bg: c.bg}
			}
		}
		col += w
	}
}

func (g *grid) render() string {
	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		var b strings.Builder
		var run strings.Builder
		var fg, bg lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if fg == "" && bg == "" {
				b.WriteString(run.String())
			} else {
				style := lipgloss.NewStyle()
				if fg != "" {
					style = style.Foreground(fg)
				}
				if bg != "" {
					style = style.Background(bg)
				}
				b.WriteString(style.Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.wide {
				continue
			}
			text := c.text
			if text == "" {
				text = " "
			}
			if c.fg != fg || c.bg != bg {
				flush()
				fg, bg = c.fg, c.bg
			}
			run.WriteString(text)
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
