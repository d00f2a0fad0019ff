package components

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

type splitChild struct {
	widget Widget
	// extent is the preferred size along the split axis in logical units;
	// zero means the child shares the remaining space.
	extent float64
}

// Split lays its children out along one axis.
type Split struct {
	id        common.WidgetID
	direction common.SplitDirection
	children  []splitChild
	router
}

// NewSplit creates an empty split.
func NewSplit(id common.WidgetID, direction common.SplitDirection) *Split {
	return &Split{id: id, direction: direction}
}

// WithChild appends a flexible child.
func (s *Split) WithChild(w Widget) *Split {
	s.children = append(s.children, splitChild{widget: w})
	return s
}

// WithFixedChild appends a child with a preferred extent in logical units.
func (s *Split) WithFixedChild(w Widget, extent float64) *Split {
	s.children = append(s.children, splitChild{widget: w, extent: extent})
	return s
}

func (s *Split) ID() common.WidgetID { return s.id }

func (s *Split) Direction() common.SplitDirection { return s.direction }

func (s *Split) Children() []Widget {
	out := make([]Widget, len(s.children))
	for i, c := range s.children {
		out[i] = c.widget
	}
	return out
}

func (s *Split) Event(ctx *event.Ctx, ev event.Event, data *tab.Data) {
	if s.route(ctx, ev, data) {
		return
	}
	if cmd, ok := ev.(event.Command); ok {
		if move, ok := cmd.Command.(command.SplitEditorMove); ok {
			s.move(ctx, move)
			ctx.SetHandled()
		}
	}
}

func (s *Split) Lifecycle(*event.Ctx, event.LifeCycle, *tab.Data) {}

// move focuses the neighbour of the child holding move.From.
func (s *Split) move(ctx *event.Ctx, move command.SplitEditorMove) {
	index := -1
	for i, c := range s.children {
		if Find(c.widget, move.From) != nil || FocusID(c.widget) == move.From {
			index = i
			break
		}
	}
	if index < 0 {
		return
	}

	step := 0
	switch move.Direction {
	case command.MoveUp:
		if s.direction == common.SplitHorizontal {
			step = -1
		}
	case command.MoveDown:
		if s.direction == common.SplitHorizontal {
			step = 1
		}
	case command.MoveLeft:
		if s.direction == common.SplitVertical {
			step = -1
		}
	case command.MoveRight:
		if s.direction == common.SplitVertical {
			step = 1
		}
	}
	next := index + step
	if step == 0 || next < 0 || next >= len(s.children) {
		return
	}
	ctx.Submit(command.Focus{}, command.Widget(FocusID(s.children[next].widget)))
}

// sizes distributes total cells between the children. unit is the logical
// size of one cell along the split axis.
func (s *Split) sizes(total int, unit float64) []int {
	sizes := make([]int, len(s.children))
	flexible := 0
	for _, c := range s.children {
		if c.extent == 0 {
			flexible++
		}
	}

	remaining := total
	for i, c := range s.children {
		if c.extent == 0 {
			continue
		}
		n := int(math.Ceil(c.extent / unit))
		// A preferred extent yields to flexible children once it would
		// take more than half the split.
		if flexible > 0 {
			n = min(n, total/2)
		}
		n = max(0, min(n, remaining-flexible))
		sizes[i] = n
		remaining -= n
	}
	if flexible == 0 {
		return sizes
	}
	share, extra := remaining/flexible, remaining%flexible
	for i, c := range s.children {
		if c.extent != 0 {
			continue
		}
		sizes[i] = share
		if extra > 0 {
			sizes[i]++
			extra--
		}
	}
	return sizes
}

func (s *Split) View(data *tab.Data, width, height int) string {
	s.reset()
	if width <= 0 || height <= 0 {
		return ""
	}
	h := data.LineHeight()

	if s.direction == common.SplitVertical {
		sizes := s.sizes(width, h/2)
		parts := make([]string, 0, len(s.children))
		col := 0
		for i, c := range s.children {
			if sizes[i] == 0 {
				continue
			}
			s.place(c.widget, cellRect(data, col, 0, sizes[i], height))
			parts = append(parts, ui.Box(c.widget.View(data, sizes[i], height), sizes[i], height))
			col += sizes[i]
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	sizes := s.sizes(height, h)
	parts := make([]string, 0, len(s.children))
	row := 0
	for i, c := range s.children {
		if sizes[i] == 0 {
			continue
		}
		s.place(c.widget, cellRect(data, 0, row, width, sizes[i]))
		parts = append(parts, ui.Box(c.widget.View(data, width, sizes[i]), width, sizes[i]))
		row += sizes[i]
	}
	return strings.Join(parts, "\n")
}
