package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/geom"
	"github.com/Akashdeep-Patra/scmpanel/internal/git"
	"github.com/Akashdeep-Patra/scmpanel/internal/logging"
	"github.com/Akashdeep-Patra/scmpanel/internal/scm"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui/components"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui/views"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	panelSharePercent = 40
	minPanelCols      = 30
	// maxDispatchRounds bounds the chain of commands one input may cause.
	maxDispatchRounds = 32

	errorDuration = 5 * time.Second
	infoDuration  = 3 * time.Second
)

var errNothingStaged = errors.New("nothing staged to commit")

// Model is the top-level Bubbletea model: the source control panel on the
// left, the diff preview on the right and the status bar below.
type Model struct {
	git    git.Service
	data   *tab.Data
	styles ui.Styles
	keys   KeyMap
	logger *log.Logger

	panel   *views.SourceControlPanel
	preview *Preview

	writeClipboard func(string) error

	width      int
	height     int
	panelWidth int

	// captured is the root that received the last press; it gets the release.
	captured components.Widget

	branch    string
	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time
}

// refreshedMsg carries a new file list from a background refresh.
type refreshedMsg struct {
	files  []scm.DiffFile
	branch string
}

// previewMsg carries the diff of one file.
type previewMsg struct {
	path string
	diff string
	err  error
}

// invalidator is implemented by services that cache git output.
type invalidator interface{ Invalidate() }

// New creates the application model around data and focuses the file list.
func New(svc git.Service, data *tab.Data, styles ui.Styles, logger *log.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{
		git:     svc,
		data:    data,
		styles:  styles,
		keys:    DefaultKeyMap(),
		logger:  logger,
		panel:   views.NewSourceControlPanel(data, styles),
		preview: NewPreview(styles),

		writeClipboard: clipboard.WriteAll,
	}

	ctx := event.NewCtx()
	for _, root := range m.roots() {
		components.Walk(root, func(w components.Widget) {
			w.Lifecycle(ctx, event.WidgetAdded{}, data)
		})
	}
	m.submit(command.Focus{}, command.Widget(data.SourceControl.FileListID))
	return m
}

// Data exposes the tab state.
func (m *Model) Data() *tab.Data { return m.data }

// Init starts the first refresh.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tea.SetWindowTitle("scmpanel"))
}

// Update processes messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case common.RefreshMsg:
		return m, m.refresh()

	case refreshedMsg:
		m.branch = msg.branch
		m.data.SetDiffFiles(msg.files)
		if f, ok := m.data.SourceControl.Selected(); ok {
			return m, m.loadPreview(f)
		}
		m.preview.Clear()
		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.preview.SetDiff(msg.path, "")
			m.setStatus(msg.err.Error(), true, errorDuration)
			return m, nil
		}
		m.preview.SetDiff(msg.path, msg.diff)
		return m, nil

	case common.ErrMsg:
		m.logger.Error("error", "err", msg.Err)
		m.setStatus(msg.Err.Error(), true, errorDuration)
		return m, nil

	case common.InfoMsg:
		m.setStatus(msg.Text, false, infoDuration)
		return m, nil
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool, d time.Duration) {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusExp = time.Now().Add(d)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.panelWidth = min(width, max(minPanelCols, width*panelSharePercent/100))
	// The preview needs a separator column plus at least one of its own.
	if width-m.panelWidth < 2 {
		m.panelWidth = width
	}
}

func (m *Model) contentHeight() int { return max(0, m.height-1) }

func (m *Model) previewWidth() int { return max(0, m.width-m.panelWidth-1) }

func (m *Model) roots() []components.Widget {
	return []components.Widget{m.panel, m.preview}
}

func (m *Model) find(id common.WidgetID) components.Widget {
	for _, root := range m.roots() {
		if w := components.Find(root, id); w != nil {
			return w
		}
	}
	return nil
}

// rootAt returns the root under the terminal cell and its first column.
func (m *Model) rootAt(col, row int) (components.Widget, int) {
	if row < 0 || row >= m.contentHeight() || col < 0 {
		return nil, 0
	}
	if col < m.panelWidth {
		return m.panel, 0
	}
	if pw := m.previewWidth(); pw > 0 && col > m.panelWidth && col < m.width {
		return m.preview, m.panelWidth + 1
	}
	return nil, 0
}

func (m *Model) originOf(root components.Widget) int {
	if root == components.Widget(m.preview) {
		return m.panelWidth + 1
	}
	return 0
}

// ── Input ─────────────────────────────────────────────────────────────

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.CloseHelp) {
			m.showHelp = false
		}
		return nil
	}
	if key.Matches(msg, m.keys.FocusPanel) {
		m.data.Keypress.Reset()
		return m.submit(command.Focus{}, command.Widget(m.data.SourceControl.FileListID))
	}

	w := m.find(m.data.Focus)
	if w == nil {
		return nil
	}
	return m.dispatch(func(ctx *event.Ctx) {
		w.Event(ctx, event.KeyDown{Key: msg}, m.data)
	})
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		return nil
	}
	root, origin := m.rootAt(msg.X, msg.Y)

	var ev event.Event
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			ev = event.Wheel{Mouse: m.mouse(msg, origin, event.ButtonNone), Delta: delta}
		default:
			m.captured = root
			ev = event.MouseDown{Mouse: m.mouse(msg, origin, buttonOf(msg.Button))}
		}
	case tea.MouseActionRelease:
		if m.captured != nil {
			root, origin = m.captured, m.originOf(m.captured)
		}
		m.captured = nil
		// Many terminals report releases without a button.
		ev = event.MouseUp{Mouse: m.mouse(msg, origin, event.ButtonPrimary)}
	case tea.MouseActionMotion:
		ev = event.MouseMove{Mouse: m.mouse(msg, origin, buttonOf(msg.Button))}
	}
	if root == nil || ev == nil {
		return nil
	}
	return m.dispatch(func(ctx *event.Ctx) {
		root.Event(ctx, ev, m.data)
	})
}

// mouse maps a terminal cell to the logical point at its centre, relative to
// a root starting at column origin.
func (m *Model) mouse(msg tea.MouseMsg, origin int, button event.MouseButton) event.Mouse {
	h := m.data.LineHeight()
	return event.Mouse{
		Pos: geom.Point{
			X: (float64(msg.X-origin) + 0.5) * h / 2,
			Y: (float64(msg.Y) + 0.5) * h,
		},
		Button: button,
	}
}

func buttonOf(b tea.MouseButton) event.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return event.ButtonPrimary
	case tea.MouseButtonRight:
		return event.ButtonSecondary
	case tea.MouseButtonMiddle:
		return event.ButtonMiddle
	}
	return event.ButtonNone
}

// ── Dispatch ──────────────────────────────────────────────────────────

func (m *Model) submit(cmd command.UICommand, target command.Target) tea.Cmd {
	return m.dispatch(func(ctx *event.Ctx) { ctx.Submit(cmd, target) })
}

// dispatch delivers one input and then everything it causes: focus
// requests first, then submitted commands in order, round by round.
func (m *Model) dispatch(deliver func(*event.Ctx)) tea.Cmd {
	before, _ := m.data.SourceControl.Selected()

	ctx := event.NewCtx()
	deliver(ctx)

	var cmds []tea.Cmd
	for round := 0; round < maxDispatchRounds; round++ {
		if id, ok := ctx.FocusRequested(); ok {
			m.setFocus(id)
		}
		subs := ctx.TakeSubmitted()
		if len(subs) == 0 {
			break
		}
		ctx = event.NewCtx()
		for _, s := range subs {
			cmds = append(cmds, m.route(ctx, s))
		}
		if round == maxDispatchRounds-1 {
			m.logger.Warn("command chain cut short", "rounds", maxDispatchRounds)
		}
	}

	if after, ok := m.data.SourceControl.Selected(); !ok {
		if m.preview.Path() != "" {
			m.preview.Clear()
		}
	} else if after.Path != before.Path || after.Path != m.preview.Path() {
		cmds = append(cmds, m.loadPreview(after))
	}
	return tea.Batch(cmds...)
}

// route delivers a targeted submission to its widget and handles Auto ones.
func (m *Model) route(ctx *event.Ctx, s command.Submission) tea.Cmd {
	if !s.Target.IsAuto() {
		w := m.find(s.Target.Widget)
		if w == nil {
			m.logger.Warn("command for unknown widget", "command", fmt.Sprintf("%T", s.Command), "widget", s.Target.Widget)
			return nil
		}
		w.Event(ctx, event.Command{Submission: s}, m.data)
		return nil
	}

	switch c := s.Command.(type) {
	case command.FocusEditor:
		ctx.Submit(command.Focus{}, command.Widget(m.preview.ID()))
	case command.CommitRequested:
		return m.commitRequested(c)
	case command.Global:
		return m.global(ctx, c.Command)
	default:
		m.logger.Debug("unhandled command", "command", fmt.Sprintf("%T", s.Command))
	}
	return nil
}

func (m *Model) global(ctx *event.Ctx, cmd command.Command) tea.Cmd {
	switch cmd {
	case command.Refresh:
		if c, ok := m.git.(invalidator); ok {
			c.Invalidate()
		}
		return m.refresh()
	case command.ToggleHelp:
		m.showHelp = !m.showHelp
	case command.Quit:
		return tea.Quit
	case command.FocusSourceControl:
		ctx.Submit(command.Focus{}, command.Widget(m.data.SourceControl.FileListID))
	case command.CopyPath:
		return m.copyPath()
	}
	return nil
}

// copyPath puts the selected file's workspace-relative path on the clipboard.
func (m *Model) copyPath() tea.Cmd {
	f, ok := m.data.SourceControl.Selected()
	if !ok {
		return nil
	}
	rel := m.data.Workspace.Relative(f.Path)
	if err := m.writeClipboard(rel); err != nil {
		return common.CmdErr(fmt.Errorf("copying path: %w", err))
	}
	return common.CmdInfo("copied " + rel)
}

func (m *Model) commitRequested(c command.CommitRequested) tea.Cmd {
	m.logger.Info("commit requested", "files", len(c.Files), "message", c.Message)
	if len(c.Files) == 0 {
		return common.CmdErr(errNothingStaged)
	}
	return common.CmdInfo(fmt.Sprintf("commit requested: %d staged file(s)", len(c.Files)))
}

// setFocus moves keyboard focus, notifying the old and the new widget.
func (m *Model) setFocus(id common.WidgetID) {
	old := m.data.Focus
	if old == id {
		return
	}
	ctx := event.NewCtx()
	if w := m.find(old); w != nil {
		w.Lifecycle(ctx, event.FocusChanged{Focused: false}, m.data)
	}
	m.data.Focus = id
	if w := m.find(id); w != nil {
		w.Lifecycle(ctx, event.FocusChanged{Focused: true}, m.data)
	}
	m.logger.Debug("focus changed", "from", old, "to", id)
}

// ── Git ───────────────────────────────────────────────────────────────

// refresh reloads the changed files in the background.
func (m *Model) refresh() tea.Cmd {
	svc, logger := m.git, m.logger
	return func() tea.Msg {
		done := logging.Op(logger, "refresh", "root", svc.RepoRoot())
		st, err := svc.Status()
		done(err)
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("refreshing changes: %w", err)}
		}
		branch, err := svc.Head()
		if err != nil {
			logger.Warn("reading HEAD", "err", err)
		}
		return refreshedMsg{files: git.DiffFiles(svc.RepoRoot(), st), branch: branch}
	}
}

// loadPreview fetches the staged and unstaged diff of f in the background.
func (m *Model) loadPreview(f scm.DiffFile) tea.Cmd {
	m.preview.Load(f.Path, m.data.Workspace.Relative(f.Path))
	svc := m.git
	return func() tea.Msg {
		rel := git.RelPath(svc.RepoRoot(), f.Path)
		staged, err := svc.Diff(true, rel)
		if err != nil {
			return previewMsg{path: f.Path, err: fmt.Errorf("diff %s: %w", rel, err)}
		}
		unstaged, err := svc.Diff(false, rel)
		if err != nil {
			return previewMsg{path: f.Path, err: fmt.Errorf("diff %s: %w", rel, err)}
		}
		return previewMsg{path: f.Path, diff: combineDiffs(staged, unstaged)}
	}
}

func combineDiffs(staged, unstaged string) string {
	switch {
	case staged == "":
		return unstaged
	case unstaged == "":
		return staged
	}
	return "=== Staged ===\n" + strings.TrimRight(staged, "\n") + "\n=== Unstaged ===\n" + unstaged
}

// ── View ──────────────────────────────────────────────────────────────

// View renders the entire UI.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", m.helpSections(), m.width, m.height)
	}

	contentH := m.contentHeight()
	content := m.panel.View(m.data, m.panelWidth, contentH)
	if pw := m.previewWidth(); pw > 0 {
		sep := lipgloss.NewStyle().Foreground(m.styles.Theme.Border).
			Render(strings.TrimSuffix(strings.Repeat("│\n", contentH), "\n"))
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, sep, m.preview.View(m.data, pw, contentH))
	}

	bar := components.StatusBarData{
		Branch:   m.branch,
		Focus:    m.data.FocusArea.String(),
		Staged:   len(m.data.SourceControl.StagedPaths()),
		Total:    len(m.data.SourceControl.DiffFiles),
		Pending:  m.pending(),
		RepoRoot: m.git.RepoRoot(),
	}
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		bar.Message = m.statusMsg
		bar.IsError = m.statusErr
	}
	if contentH == 0 {
		return components.RenderStatusBar(m.styles, bar, m.width)
	}
	return content + "\n" + components.RenderStatusBar(m.styles, bar, m.width)
}

// pending shows a typed count and the keys of an unfinished chord.
func (m *Model) pending() string {
	parts := append([]string(nil), m.data.Keypress.Pending()...)
	if c := m.data.Keypress.Count(); c > 0 {
		parts = append([]string{strconv.Itoa(c)}, parts...)
	}
	return strings.Join(parts, " ")
}

func (m *Model) helpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Global", Entries: components.BindingEntries(m.keys.Bindings()...)},
		{Title: "Source Control", Entries: components.KeyMapEntries(m.data.Keypress.KeyMaps())},
	}
}
