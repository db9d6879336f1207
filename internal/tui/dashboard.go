package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ganot/enablement-desk/internal/domain/plan"
)

// DashboardPage shows KPIs, the active phase and overall progress.
type DashboardPage struct {
	desk     Desk
	styles   Styles
	progress progress.Model
	width    int

	summary plan.Summary
	kpis    []plan.KPI
	phases  []plan.Phase
}

// NewDashboardPage creates the dashboard.
func NewDashboardPage(d Desk, styles Styles) *DashboardPage {
	p := &DashboardPage{
		desk:     d,
		styles:   styles,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
	}
	p.Refresh()
	return p
}

func (p *DashboardPage) SetSize(width, _ int) {
	p.width = width
	p.progress.Width = max(width-20, 10)
}

func (p *DashboardPage) Refresh() {
	p.summary = p.desk.Summary()
	p.kpis = p.desk.KPIs()
	p.phases = p.desk.Phases()
}

func (p *DashboardPage) Update(tea.Msg) tea.Cmd { return nil }

func (p *DashboardPage) Capturing() bool { return false }

func (p *DashboardPage) View() string {
	var sb strings.Builder

	cards := make([]string, 0, len(p.kpis))
	for _, k := range p.kpis {
		cards = append(cards, p.styles.Card.Render(fmt.Sprintf("%s\n%s\n%s",
			p.styles.Muted.Render(k.Label),
			p.styles.Title.Render(k.Value),
			p.styles.Muted.Render("Target: "+k.Target),
		)))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	sb.WriteString("\n\n")

	active := p.summary.ActivePhase
	sb.WriteString(p.styles.Title.Render("Current Focus") + "\n")
	fmt.Fprintf(&sb, "%s · %s · %s\n", active.Name, active.FocusArea, active.Duration)
	fmt.Fprintf(&sb, "Phases completed: %d/%d\n\n", p.summary.CompletedPhases, p.summary.TotalPhases)

	sb.WriteString(p.styles.Title.Render("Overall Progress") + "\n")
	sb.WriteString(p.progress.ViewAs(float64(p.summary.OverallProgress)/100) + "\n\n")

	sb.WriteString(p.styles.Title.Render("Phase Progress") + "\n")
	for _, ph := range p.phases {
		style := p.styles.Pending
		switch ph.Status {
		case plan.StatusCompleted:
			style = p.styles.Done
		case plan.StatusActive:
			style = p.styles.Selected
		}
		fmt.Fprintf(&sb, "%s %3d%%\n", style.Render(fmt.Sprintf("%-40s", truncate(ph.Name, 40))), ph.Progress)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
