// Package scm holds the state of the source control panel and implements
// the command target the key-press dispatcher drives while the file list
// has focus.
package scm

import (
	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
)

// Well-known buffer names the shell uses to recognise special buffers.
const (
	SourceControlBufferName = "[Source Control Buffer]"
	SearchBufferName        = "[Search Buffer]"
)

// DiffFile is one changed file in the workspace.
type DiffFile struct {
	// Path is absolute.
	Path   string
	Staged bool
}

// Data is the panel model. It is shared by pointer and treated as
// immutable by readers; writers go through Clone and rebind the slot.
type Data struct {
	Active common.WidgetID

	WidgetID     common.WidgetID
	SplitID      common.WidgetID
	FileListID   common.WidgetID
	EditorViewID common.WidgetID

	SplitDirection common.SplitDirection
	FileListIndex  int
	DiffFiles      []DiffFile
}

// New mints the widget identifiers and focuses the commit input.
func New() *Data {
	editorViewID := common.NewWidgetID()
	return &Data{
		Active:         editorViewID,
		WidgetID:       common.NewWidgetID(),
		SplitID:        common.NewWidgetID(),
		FileListID:     common.NewWidgetID(),
		EditorViewID:   editorViewID,
		SplitDirection: common.SplitHorizontal,
	}
}

// Clone returns a copy that shares nothing mutable with d.
func (d *Data) Clone() *Data {
	c := *d
	c.DiffFiles = append([]DiffFile(nil), d.DiffFiles...)
	return &c
}

// Selected returns the file under the cursor.
func (d *Data) Selected() (DiffFile, bool) {
	if d.FileListIndex < 0 || d.FileListIndex >= len(d.DiffFiles) {
		return DiffFile{}, false
	}
	return d.DiffFiles[d.FileListIndex], true
}

// StagedPaths returns the paths of staged files in list order.
func (d *Data) StagedPaths() []string {
	var paths []string
	for _, f := range d.DiffFiles {
		if f.Staged {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// SetDiffFiles replaces the list wholesale and keeps the cursor in range.
func (d *Data) SetDiffFiles(files []DiffFile) {
	d.DiffFiles = files
	d.clampIndex()
}

// Toggle flips the staged flag of row i. Out of range rows are ignored.
func (d *Data) Toggle(i int) {
	if i < 0 || i >= len(d.DiffFiles) {
		return
	}
	d.DiffFiles[i].Staged = !d.DiffFiles[i].Staged
}

func (d *Data) clampIndex() {
	switch {
	case len(d.DiffFiles) == 0 || d.FileListIndex < 0:
		d.FileListIndex = 0
	case d.FileListIndex >= len(d.DiffFiles):
		d.FileListIndex = len(d.DiffFiles) - 1
	}
}

// ── keypress.Focus ──────────────────────────────────────────────────────────

// Mode is always normal; the list is not a text surface.
func (d *Data) Mode() keypress.Mode { return keypress.ModeNormal }

func (d *Data) CheckCondition(condition string) bool {
	switch condition {
	case keypress.CondSourceControlFocus:
		return true
	case keypress.CondListFocus:
		return d.Active == d.FileListID
	}
	return false
}

// RunCommand executes cmd against the model. Movement always steps by one
// row; count is accepted for interface compatibility only.
func (d *Data) RunCommand(ctx *event.Ctx, cmd command.Command, _ int) command.Executed {
	switch cmd {
	case command.SplitUp:
		ctx.Submit(command.SplitEditorMove{Direction: command.MoveUp, From: d.Active}, command.Widget(d.SplitID))
	case command.SplitDown:
		ctx.Submit(command.SplitEditorMove{Direction: command.MoveDown, From: d.Active}, command.Widget(d.SplitID))
	case command.SourceControlCancel:
		ctx.Submit(command.FocusEditor{}, command.Auto)
	case command.SourceControlCommit:
		ctx.Submit(command.CommitRequested{Files: d.StagedPaths()}, command.Auto)
	case command.Up, command.ListPrevious:
		d.move(-1)
	case command.Down, command.ListNext:
		d.move(1)
	case command.CopyPath:
		ctx.Submit(command.Global{Command: cmd}, command.Auto)
	case command.ListExpand:
		if len(d.DiffFiles) > 0 {
			d.clampIndex()
			d.Toggle(d.FileListIndex)
		}
	default:
		return command.No
	}
	return command.Yes
}

// ReceiveChar discards typed characters.
func (d *Data) ReceiveChar(*event.Ctx, string) {}

func (d *Data) move(step int) {
	n := len(d.DiffFiles)
	if n == 0 {
		d.FileListIndex = 0
		return
	}
	d.clampIndex()
	d.FileListIndex = (d.FileListIndex + step + n) % n
}

var _ keypress.Focus = (*Data)(nil)
