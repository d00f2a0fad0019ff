package common

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// ── Widget identifiers ──────────────────────────────────────────────────────

// WidgetID is a stable routing address for a widget. IDs are values, so
// models can refer to widgets without holding pointers to them.
type WidgetID uuid.UUID

// NoWidget is the zero identifier; it never addresses a real widget.
var NoWidget WidgetID

// NewWidgetID mints a fresh identifier.
func NewWidgetID() WidgetID { return WidgetID(uuid.New()) }

// IsZero reports whether id is NoWidget.
func (id WidgetID) IsZero() bool { return id == NoWidget }

// String returns a short form suitable for logs.
func (id WidgetID) String() string {
	if id.IsZero() {
		return "none"
	}
	return uuid.UUID(id).String()[:8]
}

// ── Split orientation ───────────────────────────────────────────────────────

// SplitDirection is the orientation of a split container.
// Horizontal splits stack their children top to bottom.
type SplitDirection int

const (
	SplitHorizontal SplitDirection = iota
	SplitVertical
)

func (d SplitDirection) String() string {
	if d == SplitVertical {
		return "vertical"
	}
	return "horizontal"
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals that the workspace diff should be reloaded.
type RefreshMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}
