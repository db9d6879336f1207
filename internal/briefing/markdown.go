package briefing

import (
	"fmt"
	"strings"

	"github.com/ganot/enablement-desk/internal/domain/plan"
)

// BriefMarkdown renders the project charter.
func BriefMarkdown(brief plan.Brief) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", brief.Name)
	fmt.Fprintf(&sb, "## Goal\n\n%s\n\n", brief.Goal)
	fmt.Fprintf(&sb, "## The Challenge\n\n%s\n\n", brief.Challenge)

	sb.WriteString("## The Strategy: Phased Rollout\n\n")
	for _, s := range brief.Strategy {
		fmt.Fprintf(&sb, "- **%s**: %s\n", s.Step, s.Description)
	}

	sb.WriteString("\n## Success Metrics\n\n")
	for _, m := range brief.SuccessMetrics {
		sb.WriteString("- " + m + "\n")
	}

	sb.WriteString("\n## Governance\n\n")
	for _, g := range brief.Governance {
		sb.WriteString("- " + g + "\n")
	}

	sb.WriteString("\n## Key Stakeholders\n\n")
	for _, s := range brief.Stakeholders {
		sb.WriteString("- " + s + "\n")
	}
	return sb.String()
}

// ScheduleMarkdown renders the phases as a checklist.
func ScheduleMarkdown(phases []plan.Phase) string {
	var sb strings.Builder
	for i, p := range phases {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s (%s)\n\n", p.Name, p.Duration)
		fmt.Fprintf(&sb, "%s · %s · %d%%\n\n", p.FocusArea, p.Status, p.Progress)
		for _, a := range p.Activities {
			box := " "
			if a.Completed {
				box = "x"
			}
			due := a.DueDate
			if due == "" {
				due = NotSet
			}
			fmt.Fprintf(&sb, "- [%s] %s (%s, due %s)\n", box, a.Name, a.Timeline, due)
		}
		if len(p.Deliverables) > 0 {
			sb.WriteString("\nDeliverables: " + strings.Join(p.Deliverables, ", ") + "\n")
		}
	}
	return sb.String()
}
