package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/ganot/enablement-desk/internal/briefing"
)

// BriefPage renders the project charter as markdown.
type BriefPage struct {
	desk     Desk
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
}

// NewBriefPage creates the brief view.
func NewBriefPage(d Desk) *BriefPage {
	p := &BriefPage{desk: d, viewport: viewport.New(80, 20)}
	p.SetSize(80, 20)
	return p
}

func (p *BriefPage) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = max(height, 1)
	if width != p.width || p.renderer == nil {
		p.width = width
		p.renderer = newRenderer(width)
	}
	p.Refresh()
}

func (p *BriefPage) Refresh() {
	p.viewport.SetContent(renderMarkdown(p.renderer, briefing.BriefMarkdown(p.desk.Brief())))
}

func (p *BriefPage) Capturing() bool { return false }

func (p *BriefPage) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

func (p *BriefPage) View() string { return p.viewport.View() }

// newRenderer returns nil when glamour cannot build a renderer; callers then
// show plain markdown.
func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

func renderMarkdown(r *glamour.TermRenderer, md string) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
