package components

import (
	"github.com/Akashdeep-Patra/scmpanel/internal/common"
	"github.com/Akashdeep-Patra/scmpanel/internal/event"
	"github.com/Akashdeep-Patra/scmpanel/internal/tab"
	"github.com/Akashdeep-Patra/scmpanel/internal/ui"
)

// HeaderKind selects how a panel or section header is drawn.
type HeaderKind int

const (
	HeaderNone HeaderKind = iota
	// HeaderSimple is a single row of bold title text.
	HeaderSimple
)

// Header describes a panel or section header.
type Header struct {
	Kind  HeaderKind
	Title string
}

// NoHeader hides the header row.
var NoHeader = Header{Kind: HeaderNone}

// SimpleHeader is a one-row text header.
func SimpleHeader(title string) Header { return Header{Kind: HeaderSimple, Title: title} }

func (h Header) rows() int {
	if h.Kind == HeaderNone {
		return 0
	}
	return 1
}

func (h Header) render(styles ui.Styles, width int) string {
	return styles.PanelHeader.Render(ui.Fit(" "+h.Title, width))
}

// Section is one child of a panel's body split.
type Section struct {
	Header Header
	Body   Widget
	// Extent is the preferred size along the split axis; zero is flexible.
	Extent float64
}

// Panel is a titled container whose body is a split of sections.
type Panel struct {
	id     common.WidgetID
	header Header
	styles ui.Styles
	split  *Split
	router
}

// NewPanel assembles a panel. Section bodies keep their own ids, so
// commands addressed to them are routed by Find.
func NewPanel(id, splitID common.WidgetID, direction common.SplitDirection, header Header, styles ui.Styles, sections ...Section) *Panel {
	split := NewSplit(splitID, direction)
	for _, sec := range sections {
		var w Widget = sec.Body
		if sec.Header.Kind != HeaderNone {
			w = &sectionView{header: sec.Header, body: sec.Body, styles: styles}
		}
		if sec.Extent > 0 {
			split.WithFixedChild(w, sec.Extent)
		} else {
			split.WithChild(w)
		}
	}
	return &Panel{id: id, header: header, styles: styles, split: split}
}

func (p *Panel) ID() common.WidgetID { return p.id }

func (p *Panel) Children() []Widget { return []Widget{p.split} }

// Split returns the body split.
func (p *Panel) Split() *Split { return p.split }

func (p *Panel) Event(ctx *event.Ctx, ev event.Event, data *tab.Data) {
	if p.route(ctx, ev, data) {
		return
	}
	p.split.Event(ctx, ev, data)
}

func (p *Panel) Lifecycle(*event.Ctx, event.LifeCycle, *tab.Data) {}

func (p *Panel) View(data *tab.Data, width, height int) string {
	p.reset()
	top := min(p.header.rows(), height)
	bodyH := height - top
	body := ""
	if bodyH > 0 {
		p.place(p.split, cellRect(data, 0, top, width, bodyH))
		body = p.split.View(data, width, bodyH)
	}
	if top == 0 {
		return ui.Box(body, width, height)
	}
	if bodyH == 0 {
		return p.header.render(p.styles, width)
	}
	return p.header.render(p.styles, width) + "\n" + ui.Box(body, width, bodyH)
}

// sectionView draws a section header above its body.
type sectionView struct {
	header Header
	body   Widget
	styles ui.Styles
	router
}

func (s *sectionView) ID() common.WidgetID { return common.NoWidget }

func (s *sectionView) FocusTarget() common.WidgetID { return FocusID(s.body) }

func (s *sectionView) Children() []Widget { return []Widget{s.body} }

func (s *sectionView) Event(ctx *event.Ctx, ev event.Event, data *tab.Data) {
	if s.route(ctx, ev, data) {
		return
	}
	s.body.Event(ctx, ev, data)
}

func (s *sectionView) Lifecycle(*event.Ctx, event.LifeCycle, *tab.Data) {}

func (s *sectionView) View(data *tab.Data, width, height int) string {
	s.reset()
	title := s.styles.SectionHeader.Render(ui.Fit(" "+s.header.Title, width))
	if height <= 1 {
		return title
	}
	s.place(s.body, cellRect(data, 0, 1, width, height-1))
	return title + "\n" + ui.Box(s.body.View(data, width, height-1), width, height-1)
}
