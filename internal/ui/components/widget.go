package components

import (
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/geom"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
)

// Widget is a node in a panel's widget tree.
type Widget interface {
	ID() common.WidgetID
	// Event handles input. Mouse positions are relative to the widget's
	// top-left corner, in logical units.
	Event(ctx *event.Ctx, ev event.Event, data *tab.Data)
	Lifecycle(ctx *event.Ctx, ev event.LifeCycle, data *tab.Data)
	// View renders exactly width columns by height rows.
	View(data *tab.Data, width, height int) string
}

// Container is a widget with children.
type Container interface {
	Widget
	Children() []Widget
}

// Find returns the widget with the given id under root, or nil.
func Find(root Widget, id common.WidgetID) Widget {
	if root == nil || id.IsZero() {
		return nil
	}
	if root.ID() == id {
		return root
	}
	if c, ok := root.(Container); ok {
		for _, child := range c.Children() {
			if w := Find(child, id); w != nil {
				return w
			}
		}
	}
	return nil
}

// Walk calls fn for root and every descendant, parents first.
func Walk(root Widget, fn func(Widget)) {
	if root == nil {
		return
	}
	fn(root)
	if c, ok := root.(Container); ok {
		for _, child := range c.Children() {
			Walk(child, fn)
		}
	}
}

// focusTarget is implemented by wrappers that hand focus to an inner widget.
type focusTarget interface {
	FocusTarget() common.WidgetID
}

// FocusID returns the id that should receive focus when w is activated.
func FocusID(w Widget) common.WidgetID {
	if f, ok := w.(focusTarget); ok {
		return f.FocusTarget()
	}
	return w.ID()
}

// ── Mouse routing ───────────────────────────────────────────────────────────

type childRect struct {
	widget Widget
	rect   geom.Rect
}

// router remembers where children were drawn by the last View and routes
// mouse events to them. A child that received a press also receives the
// matching release, wherever it lands.
type router struct {
	rects    []childRect
	captured Widget
}

func (r *router) reset() { r.rects = r.rects[:0] }

func (r *router) place(w Widget, rect geom.Rect) {
	r.rects = append(r.rects, childRect{widget: w, rect: rect})
}

func (r *router) hit(p geom.Point) (childRect, bool) {
	for _, c := range r.rects {
		if c.rect.Contains(p) {
			return c, true
		}
	}
	return childRect{}, false
}

func (r *router) rectOf(w Widget) (geom.Rect, bool) {
	for _, c := range r.rects {
		if c.widget == w {
			return c.rect, true
		}
	}
	return geom.Rect{}, false
}

// route delivers mouse events to children. It reports whether ev was a
// mouse event.
func (r *router) route(ctx *event.Ctx, ev event.Event, data *tab.Data) bool {
	switch ev := ev.(type) {
	case event.MouseDown:
		c, ok := r.hit(ev.Pos)
		if !ok {
			r.captured = nil
			return true
		}
		r.captured = c.widget
		ev.Pos = ev.Pos.Add(-c.rect.X0, -c.rect.Y0)
		c.widget.Event(ctx, ev, data)
	case event.MouseUp:
		target := r.captured
		r.captured = nil
		if target == nil {
			c, ok := r.hit(ev.Pos)
			if !ok {
				return true
			}
			target = c.widget
		}
		if rect, ok := r.rectOf(target); ok {
			ev.Pos = ev.Pos.Add(-rect.X0, -rect.Y0)
			target.Event(ctx, ev, data)
		}
	case event.MouseMove:
		if c, ok := r.hit(ev.Pos); ok {
			ev.Pos = ev.Pos.Add(-c.rect.X0, -c.rect.Y0)
			c.widget.Event(ctx, ev, data)
		}
	case event.Wheel:
		if c, ok := r.hit(ev.Pos); ok {
			ev.Pos = ev.Pos.Add(-c.rect.X0, -c.rect.Y0)
			c.widget.Event(ctx, ev, data)
		}
	default:
		return false
	}
	return true
}

// cellRect converts a cell rectangle to logical units.
func cellRect(data *tab.Data, col, row, width, height int) geom.Rect {
	h := data.LineHeight()
	cw := h / 2
	return geom.Rect{
		X0: float64(col) * cw,
		Y0: float64(row) * h,
		X1: float64(col+width) * cw,
		Y1: float64(row+height) * h,
	}
}
