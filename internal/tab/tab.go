// Package tab holds the per-tab state shared by every widget in the tree.
package tab

import (
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/config"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/Akashdeep-Patra/scmpanel/internal/scm"
)

// FocusArea is the coarse region of the window that owns the keyboard.
type FocusArea int

const (
	FocusAreaEditor FocusArea = iota
	FocusAreaSourceControl
)

func (a FocusArea) String() string {
	if a == FocusAreaSourceControl {
		return "source control"
	}
	return "editor"
}

// Workspace describes the opened folder.
type Workspace struct {
	// Path is the workspace root; empty when no folder is open.
	Path string
}

// Relative returns p relative to the workspace root when p lies inside it,
// and p unchanged otherwise.
func (w *Workspace) Relative(p string) string {
	if w == nil || w.Path == "" {
		return p
	}
	rel, err := filepath.Rel(w.Path, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}

// Data is the state shared across one tab.
type Data struct {
	Config    *config.Config
	Workspace *Workspace
	Keypress  *keypress.Dispatcher

	// SourceControl is replaced, never mutated in place, so a changed
	// pointer means changed panel state.
	SourceControl *scm.Data

	FocusArea FocusArea
	// Focus is the widget receiving key events.
	Focus common.WidgetID
}

// New builds tab state around a fresh panel model.
func New(cfg *config.Config, ws *Workspace, keymaps []keypress.KeyMap) *Data {
	return &Data{
		Config:        cfg,
		Workspace:     ws,
		Keypress:      keypress.NewDispatcher(keymaps),
		SourceControl: scm.New(),
		FocusArea:     FocusAreaEditor,
	}
}

// SourceControlMut clones the panel model, rebinds the slot to the clone and
// returns it for mutation.
func (d *Data) SourceControlMut() *scm.Data {
	d.SourceControl = d.SourceControl.Clone()
	return d.SourceControl
}

// LineHeight is the row height H in logical units.
func (d *Data) LineHeight() float64 {
	if d.Config == nil {
		return float64(config.Default().Editor.LineHeight)
	}
	return d.Config.LineHeight()
}

// SetDiffFiles replaces the panel's file list.
func (d *Data) SetDiffFiles(files []scm.DiffFile) {
	d.SourceControlMut().SetDiffFiles(files)
}
