package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/enablement-desk/internal/domain/plan"
)

type activityRef struct {
	phase int // index into phases
	index int // activity index within the phase
}

// SchedulePage lists every activity. Space toggles completion and d edits
// the due date.
type SchedulePage struct {
	desk   Desk
	styles Styles
	height int

	phases []plan.Phase
	rows   []activityRef
	cursor int

	editing bool
	due     textinput.Model
	status  string
	failed  bool
}

// NewSchedulePage creates the schedule view.
func NewSchedulePage(d Desk, styles Styles) *SchedulePage {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD (empty clears)"
	ti.CharLimit = 10
	ti.Width = 24

	p := &SchedulePage{desk: d, styles: styles, due: ti, height: 24}
	p.Refresh()
	return p
}

func (p *SchedulePage) SetSize(_, height int) { p.height = height }

func (p *SchedulePage) Refresh() {
	p.phases = p.desk.Phases()
	p.rows = p.rows[:0]
	for i, ph := range p.phases {
		for j := range ph.Activities {
			p.rows = append(p.rows, activityRef{phase: i, index: j})
		}
	}
	if p.cursor >= len(p.rows) {
		p.cursor = max(len(p.rows)-1, 0)
	}
}

func (p *SchedulePage) Capturing() bool { return p.editing }

func (p *SchedulePage) selected() (plan.Phase, plan.Activity, int, bool) {
	if len(p.rows) == 0 {
		return plan.Phase{}, plan.Activity{}, 0, false
	}
	ref := p.rows[p.cursor]
	ph := p.phases[ref.phase]
	return ph, ph.Activities[ref.index], ref.index, true
}

func (p *SchedulePage) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if p.editing {
		switch key.String() {
		case "enter":
			p.editing = false
			p.due.Blur()
			p.apply(plan.SetDueDate{DueDate: strings.TrimSpace(p.due.Value())})
			return nil
		case "esc":
			p.editing = false
			p.due.Blur()
			return nil
		}
		var cmd tea.Cmd
		p.due, cmd = p.due.Update(msg)
		return cmd
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
	case " ", "enter":
		if _, act, _, ok := p.selected(); ok {
			p.apply(plan.SetCompleted{Completed: !act.Completed})
		}
	case "d":
		if _, act, _, ok := p.selected(); ok {
			p.editing = true
			p.due.SetValue(act.DueDate)
			p.due.CursorEnd()
			return p.due.Focus()
		}
	}
	return nil
}

func (p *SchedulePage) apply(m plan.Mutation) {
	ph, act, idx, ok := p.selected()
	if !ok {
		return
	}
	if _, err := p.desk.UpdateActivity(context.Background(), ph.ID, idx, m); err != nil {
		p.status, p.failed = err.Error(), true
	} else {
		p.status, p.failed = fmt.Sprintf("%s: %s", act.Name, m.Describe()), false
	}
	p.Refresh()
}

func (p *SchedulePage) View() string {
	var lines []string
	cursorLine := 0
	for i, ph := range p.phases {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, p.styles.Title.Render(fmt.Sprintf("%s (%s) · %s · %d%%", ph.Name, ph.Duration, ph.Status, ph.Progress)))
		for j, a := range ph.Activities {
			row := len(lines)
			box, style := "[ ]", p.styles.Pending
			if a.Completed {
				box, style = "[x]", p.styles.Done
			}
			due := a.DueDate
			if due == "" {
				due = "Not Set"
			}
			line := fmt.Sprintf("  %s %-40s %-10s due %s", box, truncate(a.Name, 40), a.Timeline, due)
			if p.isCursor(i, j) {
				cursorLine = row
				line = p.styles.Selected.Render(">" + line[1:])
			} else {
				line = style.Render(line)
			}
			lines = append(lines, line)
		}
	}

	lines = window(lines, cursorLine, max(p.height-4, 5))

	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")
	switch {
	case p.editing:
		sb.WriteString("Due date: " + p.due.View())
	case p.status != "" && p.failed:
		sb.WriteString(p.styles.Error.Render(p.status))
	case p.status != "":
		sb.WriteString(p.styles.Success.Render(p.status))
	}
	return sb.String()
}

func (p *SchedulePage) isCursor(phase, index int) bool {
	if len(p.rows) == 0 {
		return false
	}
	ref := p.rows[p.cursor]
	return ref.phase == phase && ref.index == index
}

// window returns at most n lines keeping focus visible.
func window(lines []string, focus, n int) []string {
	if len(lines) <= n {
		return lines
	}
	start := max(focus-n/2, 0)
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}
