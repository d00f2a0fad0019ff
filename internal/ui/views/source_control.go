// Package views builds the concrete widgets of the source control panel.
package views

import (
	"github.com/Akashdeep-Patra/scmpanel/internal/editor"
	"github.com/Akashdeep-Patra/scmpanel/internal/scm"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui/components"
)

const (
	// CommitInputExtent is the preferred height of the commit message input.
	CommitInputExtent  = 300.0
	commitInputPadding = 10.0

	PanelTitle        = "Source Control"
	ChangesTitle      = "Changes"
	CommitPlaceholder = "Commit Message"
)

// SourceControlPanel is the assembled panel together with its parts.
type SourceControlPanel struct {
	*components.Panel
	Input    *editor.View
	FileList *FileList
}

// NewSourceControlPanel builds the panel for the model in data: a simple
// header above a split of the commit input and the file list.
func NewSourceControlPanel(data *tab.Data, styles ui.Styles) *SourceControlPanel {
	sc := data.SourceControl

	input := editor.NewView(sc.EditorViewID, editor.NewBuffer(scm.SourceControlBufferName), styles).
		HideHeader().
		HideGutter().
		SetPlaceholder(CommitPlaceholder).
		Padding(commitInputPadding)

	list := NewFileList(sc.FileListID, styles)

	panel := components.NewPanel(
		sc.WidgetID,
		sc.SplitID,
		sc.SplitDirection,
		components.SimpleHeader(PanelTitle),
		styles,
		components.Section{Header: components.NoHeader, Body: input, Extent: CommitInputExtent},
		components.Section{Header: components.SimpleHeader(ChangesTitle), Body: list},
	)

	return &SourceControlPanel{Panel: panel, Input: input, FileList: list}
}
