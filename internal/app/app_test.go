package app

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/config"
	"github.com/Akashdeep-Patra/scmpanel/internal/git"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fakeGit struct {
	status      *git.StatusResult
	statusErr   error
	diffs       map[string]string // "staged:path" or "unstaged:path"
	statusCalls int
	invalidated int
}

func (f *fakeGit) RepoRoot() string      { return "/repo" }
func (f *fakeGit) GitDir() string        { return "/repo/.git" }
func (f *fakeGit) Head() (string, error) { return "main", nil }
func (f *fakeGit) Invalidate()           { f.invalidated++ }
func (f *fakeGit) Status() (*git.StatusResult, error) {
	f.statusCalls++
	return f.status, f.statusErr
}

func (f *fakeGit) Diff(staged bool, path string) (string, error) {
	k := "unstaged:" + path
	if staged {
		k = "staged:" + path
	}
	return f.diffs[k], nil
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		status: &git.StatusResult{
			Staged:    []git.FileStatus{{Staging: git.StatusAdded, Worktree: git.StatusUnmodified, Path: "b.go", IsStaged: true}},
			Unstaged:  []git.FileStatus{{Staging: git.StatusUnmodified, Worktree: git.StatusModified, Path: "a.go"}},
			Untracked: []git.FileStatus{{Staging: git.StatusUntracked, Worktree: git.StatusUntracked, Path: "c.go"}},
		},
		diffs: map[string]string{
			"unstaged:a.go": "@@ -1 +1 @@\n-old\n+new\n",
			"staged:b.go":   "+b staged\n",
			"unstaged:b.go": "+b worktree\n",
		},
	}
}

// drain runs cmd and feeds every message it produces back into m.
func drain(m *Model, cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(m, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	_, next := m.Update(msg)
	return append([]tea.Msg{msg}, drain(m, next)...)
}

func newModel(t *testing.T, svc *fakeGit) *Model {
	t.Helper()
	d := tab.New(config.Default(), &tab.Workspace{Path: "/repo"}, keypress.DefaultKeyMaps())
	m := New(svc, d, ui.DefaultStyles(), nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	drain(m, m.Init())
	return m
}

func send(m *Model, msg tea.Msg) []tea.Msg {
	_, cmd := m.Update(msg)
	return drain(m, cmd)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestNew_FocusesFileList(t *testing.T) {
	m := newModel(t, newFakeGit())
	d := m.Data()

	assert.Equal(t, d.SourceControl.FileListID, d.Focus)
	assert.Equal(t, d.SourceControl.FileListID, d.SourceControl.Active)
	assert.Equal(t, tab.FocusAreaSourceControl, d.FocusArea)
	assert.True(t, m.panel.FileList.Focused())
}

func TestRefresh_LoadsFilesAndPreview(t *testing.T) {
	m := newModel(t, newFakeGit())
	sc := m.Data().SourceControl

	require.Len(t, sc.DiffFiles, 3)
	assert.Equal(t, "/repo/a.go", sc.DiffFiles[0].Path)
	assert.False(t, sc.DiffFiles[0].Staged)
	assert.True(t, sc.DiffFiles[1].Staged)
	assert.Equal(t, "main", m.branch)

	assert.Equal(t, "/repo/a.go", m.preview.Path())
	assert.Contains(t, m.preview.raw, "+new")
	assert.False(t, m.preview.loading)
}

func TestRefresh_Error(t *testing.T) {
	svc := newFakeGit()
	svc.statusErr = errors.New("boom")
	m := newModel(t, svc)

	assert.Empty(t, m.Data().SourceControl.DiffFiles)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusMsg, "boom")
}

func TestKeys_MoveSelectionReloadsPreview(t *testing.T) {
	m := newModel(t, newFakeGit())

	send(m, runes("j"))

	assert.Equal(t, 1, m.Data().SourceControl.FileListIndex)
	assert.Equal(t, "/repo/b.go", m.preview.Path())
	assert.Equal(t, "=== Staged ===\n+b staged\n=== Unstaged ===\n+b worktree\n", m.preview.raw)
}

func TestKeys_SpaceToggles(t *testing.T) {
	m := newModel(t, newFakeGit())
	before := m.Data().SourceControl

	send(m, tea.KeyMsg{Type: tea.KeySpace})

	assert.True(t, m.Data().SourceControl.DiffFiles[0].Staged)
	assert.False(t, before.DiffFiles[0].Staged)
}

func TestKeys_FocusRoundTrip(t *testing.T) {
	m := newModel(t, newFakeGit())
	d := m.Data()

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, m.preview.ID(), d.Focus)
	assert.Equal(t, tab.FocusAreaEditor, d.FocusArea)
	assert.True(t, m.preview.Focused())
	assert.False(t, m.panel.FileList.Focused())

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, d.SourceControl.FileListID, d.Focus)
	assert.Equal(t, tab.FocusAreaSourceControl, d.FocusArea)
	assert.False(t, m.preview.Focused())

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, d.SourceControl.FileListID, d.Focus)
}

func TestKeys_Quit(t *testing.T) {
	m := newModel(t, newFakeGit())

	assert.True(t, hasQuit(send(m, tea.KeyMsg{Type: tea.KeyCtrlC})))
	assert.False(t, hasQuit(send(m, runes("q"))), "q is only bound in the preview")

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, hasQuit(send(m, runes("q"))))
}

func TestKeys_Help(t *testing.T) {
	m := newModel(t, newFakeGit())
	send(m, tea.KeyMsg{Type: tea.KeyEsc})

	send(m, runes("?"))
	require.True(t, m.showHelp)
	out := m.View()
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Source Control")

	send(m, runes("j"))
	assert.True(t, m.showHelp, "other keys are swallowed")

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestKeys_RefreshInvalidatesCache(t *testing.T) {
	svc := newFakeGit()
	m := newModel(t, svc)
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	calls := svc.statusCalls

	send(m, runes("r"))

	assert.Equal(t, 1, svc.invalidated)
	assert.Equal(t, calls+1, svc.statusCalls)
}

func TestCommit(t *testing.T) {
	tests := []struct {
		name    string
		staged  bool
		want    string
		wantErr bool
	}{
		{name: "staged files", staged: true, want: "commit requested: 1 staged file(s)"},
		{name: "nothing staged", want: errNothingStaged.Error(), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeGit()
			if !tt.staged {
				svc.status.Staged[0].IsStaged = false
			}
			m := newModel(t, svc)
			d := m.Data()
			m.submit(command.Focus{}, command.Widget(d.SourceControl.EditorViewID))
			require.Equal(t, d.SourceControl.EditorViewID, d.Focus)

			send(m, runes("ship it"))
			send(m, tea.KeyMsg{Type: tea.KeyEnter})

			assert.Equal(t, tt.want, m.statusMsg)
			assert.Equal(t, tt.wantErr, m.statusErr)
		})
	}
}

// rowOf returns the screen row whose panel text contains s.
func rowOf(t *testing.T, m *Model, s string) int {
	t.Helper()
	for i, line := range strings.Split(m.View(), "\n") {
		if sep := strings.Index(line, "│"); sep >= 0 {
			line = line[:sep]
		}
		if strings.Contains(line, s) {
			return i
		}
	}
	t.Fatalf("%q not on screen", s)
	return -1
}

func TestMouse_CheckboxClick(t *testing.T) {
	m := newModel(t, newFakeGit())
	row := rowOf(t, m, "a.go")

	send(m, tea.MouseMsg{X: 1, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, pressed := m.panel.FileList.MouseDown()
	assert.True(t, pressed)

	send(m, tea.MouseMsg{X: 1, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

	assert.True(t, m.Data().SourceControl.DiffFiles[0].Staged)
	_, pressed = m.panel.FileList.MouseDown()
	assert.False(t, pressed)
}

func TestMouse_ReleaseGoesToPressedRoot(t *testing.T) {
	m := newModel(t, newFakeGit())
	row := rowOf(t, m, "a.go")

	send(m, tea.MouseMsg{X: 1, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 70, Y: row, Action: tea.MouseActionRelease})

	_, pressed := m.panel.FileList.MouseDown()
	assert.False(t, pressed, "the list saw the release")
	assert.False(t, m.Data().SourceControl.DiffFiles[0].Staged)
}

func TestMouse_ClickRowSelects(t *testing.T) {
	m := newModel(t, newFakeGit())
	row := rowOf(t, m, "c.go")

	send(m, tea.MouseMsg{X: 10, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 10, Y: row, Action: tea.MouseActionRelease})

	assert.Equal(t, 2, m.Data().SourceControl.FileListIndex)
	assert.Equal(t, "/repo/c.go", m.preview.Path())
}

func TestMouse_ClickPreviewFocuses(t *testing.T) {
	m := newModel(t, newFakeGit())

	send(m, tea.MouseMsg{X: 70, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, m.preview.ID(), m.Data().Focus)
	assert.Equal(t, tab.FocusAreaEditor, m.Data().FocusArea)
}

func TestResize(t *testing.T) {
	tests := []struct {
		width, panel int
	}{
		{100, 40},
		{50, 30},
		{31, 31},
		{20, 20},
	}
	for _, tt := range tests {
		m := newModel(t, newFakeGit())
		m.Update(tea.WindowSizeMsg{Width: tt.width, Height: 10})
		assert.Equal(t, tt.panel, m.panelWidth, "width %d", tt.width)
	}
}

func TestView_Layout(t *testing.T) {
	m := newModel(t, newFakeGit())

	lines := strings.Split(m.View(), "\n")

	require.Len(t, lines, 30)
	assert.Contains(t, lines[0], "│")
	assert.Contains(t, lines[0], "a.go", "preview title")
	assert.Contains(t, lines[29], "1/3 staged")
	assert.Equal(t, 100, lipgloss.Width(lines[29]))
}

func TestCombineDiffs(t *testing.T) {
	assert.Equal(t, "u", combineDiffs("", "u"))
	assert.Equal(t, "s", combineDiffs("s", ""))
	assert.Equal(t, "=== Staged ===\ns\n=== Unstaged ===\nu", combineDiffs("s\n", "u"))
}

func TestCopyPath(t *testing.T) {
	m := newModel(t, newFakeGit())
	var copied []string
	m.writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	send(m, runes("y"))
	send(m, runes("j"))
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	send(m, runes("y"))

	assert.Equal(t, []string{"a.go", "b.go"}, copied)
	assert.Equal(t, "copied b.go", m.statusMsg)

	m.writeClipboard = func(string) error { return errors.New("no clipboard") }
	send(m, runes("y"))
	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusMsg, "no clipboard")
}
