package keypress

import "github.com/Akashdeep-Patra/scmpanel/internal/command"

// Condition tokens answered by command targets.
const (
	CondSourceControlFocus = "source_control_focus"
	CondListFocus          = "list_focus"
	CondEditorFocus        = "editor_focus"
	// CondMainFocus holds while the diff preview has focus.
	CondMainFocus = "main_focus"
)

// DefaultKeyMaps returns the built-in bindings.
func DefaultKeyMaps() []KeyMap {
	return []KeyMap{
		Bind("up", command.Up),
		Bind("k", command.Up, InModes(ModeNormal)),
		Bind("down", command.Down),
		Bind("j", command.Down, InModes(ModeNormal)),
		Bind("pgup", command.PageUp),
		Bind("pgdown", command.PageDown),

		Bind("ctrl+p", command.ListPrevious, When(CondListFocus)),
		Bind("ctrl+n", command.ListNext, When(CondListFocus)),
		Bind("space", command.ListExpand, When(CondListFocus)),
		Bind("enter", command.ListExpand, When(CondListFocus)),

		Bind("ctrl+w k", command.SplitUp),
		Bind("ctrl+w up", command.SplitUp),
		Bind("ctrl+w j", command.SplitDown),
		Bind("ctrl+w down", command.SplitDown),
		Bind("shift+tab", command.SplitUp, When(CondListFocus)),
		Bind("tab", command.SplitDown, When(CondSourceControlFocus+" && !"+CondListFocus)),

		Bind("esc", command.SourceControlCancel, When(CondSourceControlFocus)),
		Bind("ctrl+s", command.SourceControlCommit, When(CondSourceControlFocus)),
		Bind("enter", command.SourceControlCommit, When(CondSourceControlFocus+" && !"+CondListFocus)),

		Bind("r", command.Refresh, When(CondMainFocus)),
		Bind("?", command.ToggleHelp, When(CondMainFocus)),
		Bind("q", command.Quit, When(CondMainFocus)),
		Bind("tab", command.FocusSourceControl, When(CondMainFocus)),
		Bind("s", command.ToggleDiffLayout, When(CondMainFocus)),
		Bind("y", command.CopyPath, When(CondListFocus+" || "+CondMainFocus)),
	}
}
