package event

import (
	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
)

// Ctx collects the side effects of handling one event. The shell drains it
// after every dispatch: submitted commands are routed, focus and paint
// requests are honoured.
type Ctx struct {
	submitted []command.Submission
	handled   bool
	focus     common.WidgetID
	paint     bool
	cursor    Cursor
}

// NewCtx returns an empty context.
func NewCtx() *Ctx { return &Ctx{} }

// Submit queues a UI command for delivery after the current event.
func (c *Ctx) Submit(cmd command.UICommand, target command.Target) {
	c.submitted = append(c.submitted, command.Submission{Command: cmd, Target: target})
}

// Submitted returns the queued commands in submission order.
func (c *Ctx) Submitted() []command.Submission { return c.submitted }

// TakeSubmitted returns and clears the queued commands.
func (c *Ctx) TakeSubmitted() []command.Submission {
	s := c.submitted
	c.submitted = nil
	return s
}

func (c *Ctx) SetHandled()     { c.handled = true }
func (c *Ctx) IsHandled() bool { return c.handled }

// RequestFocus asks the shell to move keyboard focus to id.
func (c *Ctx) RequestFocus(id common.WidgetID) { c.focus = id }

// FocusRequested returns the widget that asked for focus, if any.
func (c *Ctx) FocusRequested() (common.WidgetID, bool) { return c.focus, !c.focus.IsZero() }

func (c *Ctx) RequestPaint()        { c.paint = true }
func (c *Ctx) PaintRequested() bool { return c.paint }
func (c *Ctx) SetCursor(cur Cursor) { c.cursor = cur }
func (c *Ctx) CursorShape() Cursor  { return c.cursor }
