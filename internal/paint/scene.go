// Package paint records drawing operations in logical units. Widgets paint
// into a Scene; a backend (the terminal rasterizer in package ui) replays it.
package paint

import "github.com/Akashdeep-Patra/scmpanel/internal/geom"

// FontFamilySystemUI is the default UI font.
const FontFamilySystemUI = "system-ui"

// Op is one recorded drawing operation.
type Op interface{ isOp() }

// FillRect fills Rect with Color.
type FillRect struct {
	Rect  geom.Rect
	Color string
}

// StrokeRect outlines Rect.
type StrokeRect struct {
	Rect  geom.Rect
	Color string
	Width float64
}

// StrokePath draws a polyline through Points.
type StrokePath struct {
	Points []geom.Point
	Color  string
	Width  float64
}

// Icon draws a glyph scaled into Rect.
type Icon struct {
	Rect  geom.Rect
	Glyph string
	Color string
	Name  string
}

// Text draws a single line with its top-left corner at Pos.
type Text struct {
	Pos      geom.Point
	Text     string
	Color    string
	FontSize float64
	Family   string
}

func (FillRect) isOp()   {}
func (StrokeRect) isOp() {}
func (StrokePath) isOp() {}
func (Icon) isOp()       {}
func (Text) isOp()       {}

// TextMeasurer reports the advance width of text in logical units.
type TextMeasurer interface {
	Measure(text string, fontSize float64) float64
}

// Scene is an ordered display list clipped to Clip.
type Scene struct {
	Clip geom.Rect
	ops  []Op
}

// NewScene returns an empty scene clipped to clip.
func NewScene(clip geom.Rect) *Scene {
	return &Scene{Clip: clip}
}

// Ops returns the recorded operations in paint order.
func (s *Scene) Ops() []Op { return s.ops }

func (s *Scene) Fill(r geom.Rect, color string) {
	s.ops = append(s.ops, FillRect{Rect: r, Color: color})
}

func (s *Scene) Stroke(r geom.Rect, color string, width float64) {
	s.ops = append(s.ops, StrokeRect{Rect: r, Color: color, Width: width})
}

func (s *Scene) StrokePath(points []geom.Point, color string, width float64) {
	s.ops = append(s.ops, StrokePath{Points: points, Color: color, Width: width})
}

func (s *Scene) DrawIcon(r geom.Rect, name, glyph, color string) {
	s.ops = append(s.ops, Icon{Rect: r, Name: name, Glyph: glyph, Color: color})
}

func (s *Scene) DrawText(pos geom.Point, text, color string, fontSize float64) {
	s.ops = append(s.ops, Text{Pos: pos, Text: text, Color: color, FontSize: fontSize, Family: FontFamilySystemUI})
}
