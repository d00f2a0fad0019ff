package components

import (
	"os"
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/scmpanel/internal/command"
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/config"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/geom"
	"github.com/Akashdeep-Patra/scmpanel/internal/keypress"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// recorder is a leaf widget that remembers the events it received.
type recorder struct {
	id     common.WidgetID
	label  string
	events []event.Event
}

func newRecorder(label string) *recorder {
	return &recorder{id: common.NewWidgetID(), label: label}
}

func (r *recorder) ID() common.WidgetID { return r.id }
func (r *recorder) Event(_ *event.Ctx, ev event.Event, _ *tab.Data) {
	r.events = append(r.events, ev)
}
func (r *recorder) Lifecycle(*event.Ctx, event.LifeCycle, *tab.Data) {}
func (r *recorder) View(_ *tab.Data, width, height int) string {
	return ui.Box(r.label, width, height)
}

func newData() *tab.Data {
	return tab.New(config.Default(), nil, keypress.DefaultKeyMaps())
}

func down(x, y float64) event.MouseDown {
	return event.MouseDown{Mouse: event.Mouse{Pos: geom.Point{X: x, Y: y}, Button: event.ButtonPrimary}}
}

func up(x, y float64) event.MouseUp {
	return event.MouseUp{Mouse: event.Mouse{Pos: geom.Point{X: x, Y: y}, Button: event.ButtonPrimary}}
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		name  string
		split func() *Split
		total int
		want  []int
	}{
		{
			name:  "flexible children share",
			split: func() *Split { return NewSplit(common.NewWidgetID(), common.SplitHorizontal).WithChild(newRecorder("a")).WithChild(newRecorder("b")) },
			total: 7,
			want:  []int{4, 3},
		},
		{
			name: "fixed extent rounds up to whole rows",
			split: func() *Split {
				return NewSplit(common.NewWidgetID(), common.SplitHorizontal).WithFixedChild(newRecorder("a"), 50).WithChild(newRecorder("b"))
			},
			total: 20,
			want:  []int{3, 17},
		},
		{
			name: "fixed extent yields half to flexible children",
			split: func() *Split {
				return NewSplit(common.NewWidgetID(), common.SplitHorizontal).WithFixedChild(newRecorder("a"), 300).WithChild(newRecorder("b"))
			},
			total: 20,
			want:  []int{10, 10},
		},
		{
			name: "only fixed children",
			split: func() *Split {
				return NewSplit(common.NewWidgetID(), common.SplitHorizontal).WithFixedChild(newRecorder("a"), 300)
			},
			total: 5,
			want:  []int{5},
		},
		{
			name: "tiny split keeps a row for the flexible child",
			split: func() *Split {
				return NewSplit(common.NewWidgetID(), common.SplitHorizontal).WithFixedChild(newRecorder("a"), 300).WithChild(newRecorder("b"))
			},
			total: 1,
			want:  []int{0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.split().sizes(tt.total, 20))
		})
	}
}

func TestSplitView_Vertical(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	s := NewSplit(common.NewWidgetID(), common.SplitVertical).WithChild(a).WithChild(b)

	out := s.View(newData(), 6, 2)

	assert.Equal(t, "a  b  \n      ", out)
}

func TestSplitRouting_CapturesPress(t *testing.T) {
	d := newData()
	a, b := newRecorder("a"), newRecorder("b")
	s := NewSplit(common.NewWidgetID(), common.SplitHorizontal).WithChild(a).WithChild(b)
	s.View(d, 10, 4)

	ctx := event.NewCtx()
	s.Event(ctx, down(5, 10), d)
	s.Event(ctx, up(5, 70), d)

	require.Len(t, a.events, 2, "the release follows the press")
	assert.Empty(t, b.events)
	assert.Equal(t, geom.Point{X: 5, Y: 70}, a.events[1].(event.MouseUp).Pos)

	s.Event(ctx, down(5, 50), d)
	require.Len(t, b.events, 1)
	assert.Equal(t, geom.Point{X: 5, Y: 10}, b.events[0].(event.MouseDown).Pos, "positions are child relative")
}

func TestSplitRouting_WheelAndMoveByHit(t *testing.T) {
	d := newData()
	a, b := newRecorder("a"), newRecorder("b")
	s := NewSplit(common.NewWidgetID(), common.SplitVertical).WithChild(a).WithChild(b)
	s.View(d, 10, 2)

	ctx := event.NewCtx()
	s.Event(ctx, event.Wheel{Mouse: event.Mouse{Pos: geom.Point{X: 55, Y: 5}}, Delta: 1}, d)
	s.Event(ctx, event.MouseMove{Mouse: event.Mouse{Pos: geom.Point{X: 5, Y: 5}}}, d)
	s.Event(ctx, event.MouseMove{Mouse: event.Mouse{Pos: geom.Point{X: 500, Y: 5}}}, d)

	require.Len(t, b.events, 1)
	assert.Equal(t, 5.0, b.events[0].(event.Wheel).Pos.X)
	require.Len(t, a.events, 1)
	assert.IsType(t, event.MouseMove{}, a.events[0])
}

func TestSplitMove_Vertical(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	s := NewSplit(common.NewWidgetID(), common.SplitVertical).WithChild(a).WithChild(b)

	send := func(dir command.SplitMoveDirection, from common.WidgetID) []command.Submission {
		ctx := event.NewCtx()
		s.Event(ctx, event.Command{Submission: command.Submission{
			Command: command.SplitEditorMove{Direction: dir, From: from},
			Target:  command.Widget(s.ID()),
		}}, newData())
		return ctx.Submitted()
	}

	got := send(command.MoveRight, a.ID())
	require.Len(t, got, 1)
	assert.Equal(t, command.Widget(b.ID()), got[0].Target)

	got = send(command.MoveLeft, b.ID())
	require.Len(t, got, 1)
	assert.Equal(t, command.Widget(a.ID()), got[0].Target)

	assert.Empty(t, send(command.MoveDown, a.ID()))
	assert.Empty(t, send(command.MoveRight, common.NewWidgetID()), "unknown origin")
}

func TestPanel_FindAndWalk(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	panelID, splitID := common.NewWidgetID(), common.NewWidgetID()
	p := NewPanel(panelID, splitID, common.SplitHorizontal, SimpleHeader("Title"), ui.DefaultStyles(),
		Section{Header: NoHeader, Body: a, Extent: 40},
		Section{Header: SimpleHeader("B"), Body: b},
	)

	assert.Same(t, p, Find(p, panelID))
	assert.Same(t, p.Split(), Find(p, splitID))
	assert.Same(t, b, Find(p, b.ID()))
	assert.Nil(t, Find(p, common.NewWidgetID()))
	assert.Nil(t, Find(p, common.NoWidget), "headers have no id of their own")

	var seen []common.WidgetID
	Walk(p, func(w Widget) {
		if !w.ID().IsZero() {
			seen = append(seen, w.ID())
		}
	})
	assert.Equal(t, []common.WidgetID{panelID, splitID, a.ID(), b.ID()}, seen)
}

func TestPanel_View(t *testing.T) {
	d := newData()
	a, b := newRecorder("a"), newRecorder("b")
	p := NewPanel(common.NewWidgetID(), common.NewWidgetID(), common.SplitHorizontal, SimpleHeader("Title"), ui.DefaultStyles(),
		Section{Header: NoHeader, Body: a, Extent: 40},
		Section{Header: SimpleHeader("B"), Body: b},
	)

	lines := strings.Split(p.View(d, 8, 6), "\n")

	assert.Equal(t, []string{" Title  ", "a       ", "        ", " B      ", "b       ", "        "}, lines)

	// Row 4 is b's first row: one header row, two input rows, one section title.
	ctx := event.NewCtx()
	p.Event(ctx, down(3, 4.5*20), d)
	require.Len(t, b.events, 1)
	assert.Equal(t, geom.Point{X: 3, Y: 10}, b.events[0].(event.MouseDown).Pos)
}

func TestStatusBar(t *testing.T) {
	styles := ui.DefaultStyles()

	wide := RenderStatusBar(styles, StatusBarData{Branch: "main", Staged: 2, Total: 5, Focus: "source control", RepoRoot: "/src/repo"}, 80)
	assert.Contains(t, wide, "2/5 staged")
	assert.Contains(t, wide, "source control")
	assert.Contains(t, wide, "repo")
	assert.Equal(t, 80, lipgloss.Width(wide))

	assert.Contains(t, RenderStatusBar(styles, StatusBarData{Branch: "main"}, 40), "clean")
	assert.Contains(t, RenderStatusBar(styles, StatusBarData{Branch: "main", Total: 3}, 40), "3 changed")

	msg := RenderStatusBar(styles, StatusBarData{Branch: "main", Total: 1, Message: "boom", IsError: true, Pending: "ctrl+w"}, 80)
	assert.Contains(t, msg, "boom")
	assert.Contains(t, msg, "ctrl+w")
}

func TestScrollbar(t *testing.T) {
	styles := ui.DefaultStyles()

	assert.Empty(t, RenderScrollbar(styles, 5, 5, 0), "nothing to scroll")

	bar := strings.Split(RenderScrollbar(styles, 4, 8, 4), "\n")
	require.Len(t, bar, 4)
	assert.Equal(t, []string{"░", "░", "█", "█"}, bar)
}

func TestKeyMapEntries(t *testing.T) {
	entries := KeyMapEntries(keypress.DefaultKeyMaps())

	byDesc := map[string]string{}
	for _, e := range entries {
		byDesc[e.Desc] = e.Key
	}
	assert.Equal(t, "up / k", byDesc[command.Up.Description()])
	assert.Equal(t, "space / enter", byDesc[command.ListExpand.Description()])
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].Desc, entries[i].Desc)
	}
}

func TestBindingEntries(t *testing.T) {
	quit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled())

	assert.Equal(t, []HelpEntry{{Key: "ctrl+c", Desc: "quit"}}, BindingEntries(quit, off))
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp(ui.DefaultStyles(), "Keys", []HelpSection{
		{Title: "Panel", Entries: []HelpEntry{{Key: "tab", Desc: "next"}}},
		{Title: "Empty"},
	}, 80, 20)

	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "Panel")
	assert.Contains(t, out, "next")
	assert.NotContains(t, out, "Empty")
}

func TestRenderSideBySideDiff(t *testing.T) {
	styles := ui.DefaultStyles()
	diff := "@@ -1,3 +1,3 @@\n ctx\n-a\n-b\n+c\n tail\n"

	lines := strings.Split(strings.TrimRight(RenderSideBySideDiff(styles, diff, 23), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "@@ -1,3 +1,3 @@", lines[0])
	assert.Equal(t, " ctx       │  ctx", lines[1])
	assert.Equal(t, "-a         │ +c", lines[2])
	assert.Equal(t, "-b         │ ", lines[3], "unpaired removals keep an empty right side")
	assert.Equal(t, " tail      │  tail", lines[4])

	assert.Equal(t, "No diff content", RenderSideBySideDiff(styles, "", 40))
}

func TestRenderSideBySideDiff_DashLinesInsideHunk(t *testing.T) {
	diff := "diff --git a/q.sql b/q.sql\n--- a/q.sql\n+++ b/q.sql\n@@ -1 +1 @@\n--- old\n+-- new\n"

	lines := strings.Split(strings.TrimRight(RenderSideBySideDiff(ui.DefaultStyles(), diff, 43), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "--- a/q.sql", lines[1])
	assert.Equal(t, "+++ b/q.sql", lines[2])
	assert.Equal(t, "--- old"+strings.Repeat(" ", 13)+" │ +-- new", lines[4])
}
