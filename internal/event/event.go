// Package event defines the input events delivered to widgets and the
// context they use to report side effects back to the shell.
package event

import (
	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/geom"
	tea "github.com/charmbracelet/bubbletea"
)

// ── Events ──────────────────────────────────────────────────────────────────

// Event is anything a widget can receive in its Event method.
type Event interface{ isEvent() }

// MouseButton identifies the button of a mouse event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Mouse carries a position in the receiving widget's logical coordinates.
type Mouse struct {
	Pos    geom.Point
	Button MouseButton
}

type (
	MouseMove struct{ Mouse }
	MouseDown struct{ Mouse }
	MouseUp   struct{ Mouse }
	// Wheel scrolls by Delta rows; negative scrolls up.
	Wheel struct {
		Mouse
		Delta int
	}
	KeyDown struct{ Key tea.KeyMsg }
	// Command delivers a UI command addressed to the receiving widget.
	Command struct{ command.Submission }
)

func (MouseMove) isEvent() {}
func (MouseDown) isEvent() {}
func (MouseUp) isEvent()   {}
func (Wheel) isEvent()     {}
func (KeyDown) isEvent()   {}
func (Command) isEvent()   {}

// ── Lifecycle ───────────────────────────────────────────────────────────────

// LifeCycle is a notification about the widget rather than user input.
type LifeCycle interface{ isLifeCycle() }

// FocusChanged reports that the widget gained or lost keyboard focus.
type FocusChanged struct{ Focused bool }

// WidgetAdded is sent once when a widget joins the tree.
type WidgetAdded struct{}

func (FocusChanged) isLifeCycle() {}
func (WidgetAdded) isLifeCycle()  {}

// ── Cursor ──────────────────────────────────────────────────────────────────

// Cursor is the pointer shape a widget asks for.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorText
)
