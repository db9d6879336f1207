// Package tui is the terminal front end of the desk.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ganot/enablement-desk/internal/view"
)

// Model is the root bubbletea model. It routes to one page per view state.
type Model struct {
	desk   Desk
	styles Styles
	pages  *view.Router[page]
	title  string
	width  int
	height int
}

// New creates the root model showing the desk's current view.
func New(ctx context.Context, d Desk) Model {
	styles := DefaultStyles()
	pages := view.NewRouter[page](NewDashboardPage(d, styles)).
		Register(view.Schedule, NewSchedulePage(d, styles)).
		Register(view.Brief, NewBriefPage(d)).
		Register(view.Assistant, NewAssistantPage(ctx, d, styles))
	return Model{
		desk:   d,
		styles: styles,
		pages:  pages,
		title:  d.Brief().Name,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) current() page { return m.pages.Select(m.desk.View()) }

func (m Model) navigate(s view.State) Model {
	p := m.pages.Select(m.desk.Navigate(string(s)))
	p.Refresh()
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, s := range view.States {
			m.pages.Select(s).SetSize(msg.Width-2, msg.Height-6)
		}
		return m, nil

	case replyMsg, spinner.TickMsg:
		// The assistant page owns these even when another view is showing.
		return m, m.pages.Select(view.Assistant).Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.desk.Cancel()
			return m, tea.Quit
		case "tab":
			return m.navigate(m.desk.View().Next()), nil
		case "shift+tab":
			return m.navigate(m.desk.View().Prev()), nil
		}
		if !m.current().Capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4":
				return m.navigate(view.States[msg.String()[0]-'1']), nil
			}
		}
	}

	return m, m.current().Update(msg)
}

func (m Model) View() string {
	current := m.desk.View()

	tabs := make([]string, 0, len(view.States))
	for _, s := range view.States {
		style := m.styles.Tab
		if s == current {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(s.Label()))
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(m.title))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")
	sb.WriteString(m.current().View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(helpFor(current)))
	return m.styles.App.Render(sb.String())
}

func helpFor(s view.State) string {
	switch s {
	case view.Schedule:
		return "tab switch view · ↑/↓ move · space toggle · d due date · q quit"
	case view.Brief:
		return "tab switch view · ↑/↓ scroll · q quit"
	case view.Assistant:
		return "tab switch view · enter send · esc cancel · ctrl+e draft invite · ctrl+o import CSV · ctrl+x clear roster · ctrl+c quit"
	default:
		return "tab switch view · 1-4 jump · q quit"
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, d Desk) error {
	_, err := tea.NewProgram(New(ctx, d), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
