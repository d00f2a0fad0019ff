// Package command defines the named commands that key bindings resolve to,
// and the UI commands widgets submit to each other through the event context.
package command

import (
	"fmt"

	"github.com/Akashdeep-Patra/scmpanel/internal/common"
)

// Command is the name of an action a key binding can trigger.
type Command string

const (
	SplitUp             Command = "split_up"
	SplitDown           Command = "split_down"
	SourceControlCancel Command = "source_control_cancel"
	SourceControlCommit Command = "source_control_commit"
	FocusSourceControl  Command = "focus_source_control"
	Up                  Command = "up"
	Down                Command = "down"
	ListPrevious        Command = "list.previous"
	ListNext            Command = "list.next"
	ListExpand          Command = "list.expand"
	PageUp              Command = "page_up"
	PageDown            Command = "page_down"
	Refresh             Command = "refresh"
	ToggleHelp          Command = "toggle_help"
	Quit                Command = "quit"
	ToggleDiffLayout    Command = "toggle_diff_layout"
	CopyPath            Command = "copy_path"
)

// known lists every command a key map may reference.
var known = map[Command]string{
	SplitUp:             "Move focus to the pane above",
	SplitDown:           "Move focus to the pane below",
	SourceControlCancel: "Leave the source control panel",
	SourceControlCommit: "Request a commit of the staged files",
	FocusSourceControl:  "Focus the source control file list",
	Up:                  "Move up",
	Down:                "Move down",
	ListPrevious:        "Previous list item",
	ListNext:            "Next list item",
	ListExpand:          "Toggle staged on the selected file",
	PageUp:              "Scroll up",
	PageDown:            "Scroll down",
	Refresh:             "Reload workspace changes",
	ToggleHelp:          "Toggle help",
	Quit:                "Quit",
	ToggleDiffLayout:    "Switch between unified and side-by-side diff",
	CopyPath:            "Copy the selected file's path",
}

// Parse validates a command name read from configuration.
func Parse(name string) (Command, error) {
	c := Command(name)
	if _, ok := known[c]; !ok {
		return "", fmt.Errorf("unknown command %q", name)
	}
	return c, nil
}

// Description returns the help text for c, or the raw name when unknown.
func (c Command) Description() string {
	if d, ok := known[c]; ok {
		return d
	}
	return string(c)
}

// Executed reports whether a command target handled a command.
type Executed bool

const (
	Yes Executed = true
	No  Executed = false
)

// ── UI commands ─────────────────────────────────────────────────────────────

// UICommand is a message sent between widgets via the event context.
type UICommand interface{ uiCommand() }

// SplitMoveDirection is the direction of a focus move inside a split.
type SplitMoveDirection int

const (
	MoveUp SplitMoveDirection = iota
	MoveDown
	MoveLeft
	MoveRight
)

func (d SplitMoveDirection) String() string {
	switch d {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	default:
		return "right"
	}
}

// SplitEditorMove asks a split to move focus from one child to its neighbour.
type SplitEditorMove struct {
	Direction SplitMoveDirection
	From      common.WidgetID
}

// FocusEditor asks the shell to return focus to the main editor area.
type FocusEditor struct{}

// Focus asks the addressed widget to take keyboard focus.
type Focus struct{}

// CommitRequested surfaces a commit action to the shell. Files holds the
// staged paths at the time of the request.
type CommitRequested struct {
	Message string
	Files   []string
}

// Global asks the shell to run an application-wide command such as
// Refresh or Quit.
type Global struct{ Command Command }

func (SplitEditorMove) uiCommand() {}
func (Global) uiCommand()          {}
func (FocusEditor) uiCommand()     {}
func (Focus) uiCommand()           {}
func (CommitRequested) uiCommand() {}

// Target addresses a UI command either to a specific widget or to whoever
// is prepared to handle it (the shell).
type Target struct {
	Widget common.WidgetID
}

// Auto is the broadcast target.
var Auto = Target{}

// Widget targets a single widget.
func Widget(id common.WidgetID) Target { return Target{Widget: id} }

// IsAuto reports whether t is the broadcast target.
func (t Target) IsAuto() bool { return t.Widget.IsZero() }

// Submission is a UI command paired with its target.
type Submission struct {
	Command UICommand
	Target  Target
}
