// Package briefing renders the project plan as text for the assistant and
// as markdown for human readers.
package briefing

import (
	"fmt"
	"strings"

	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
)

// NotSet stands in for a missing due date.
const NotSet = "Not Set"

// Context renders the grounding text sent with every assistant request.
// Output depends only on the arguments.
func Context(brief plan.Brief, phases []plan.Phase, participants []roster.Participant) string {
	var sb strings.Builder

	sb.WriteString("Project: " + brief.Name + "\n")
	sb.WriteString("Goal: " + brief.Goal + "\n\n")

	sb.WriteString("Governance:\n")
	for _, g := range brief.Governance {
		sb.WriteString("- " + g + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Strategy: Phased Rollout (" + strategyLine(brief.Strategy) + ").\n\n")

	sb.WriteString("Phase Details:\n")
	for i, p := range phases {
		if i > 0 {
			sb.WriteString("\n")
		}
		writePhase(&sb, p)
	}
	sb.WriteString("\n\n")

	sb.WriteString("Key Stakeholders: " + strings.Join(brief.Stakeholders, ", ") + ".\n")

	if len(participants) > 0 {
		sb.WriteString("\nScheduled Participants:\n")
		for i, p := range participants {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "- %s (%s): %s at %s (Email: %s)", p.Name, p.Department, p.SessionDate, p.Time, p.Email)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writePhase(sb *strings.Builder, p plan.Phase) {
	fmt.Fprintf(sb, "Phase %d (%s): %s. Status: %s.\n", p.ID, p.Duration, p.FocusArea, p.Status)

	activities := make([]string, 0, len(p.Activities))
	for _, a := range p.Activities {
		state := "PENDING"
		if a.Completed {
			state = "DONE"
		}
		due := a.DueDate
		if due == "" {
			due = NotSet
		}
		activities = append(activities, fmt.Sprintf("%s [%s] (Due: %s, Timeline: %s)", a.Name, state, due, a.Timeline))
	}
	sb.WriteString("Activities: " + strings.Join(activities, ", ") + ".\n")
	sb.WriteString("Deliverables: " + strings.Join(p.Deliverables, ", "))
}

// strategyLine turns "1. Assess", "2. Pilot" into "Assess -> Pilot".
func strategyLine(steps []plan.StrategyStep) string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		name := s.Step
		if _, rest, ok := strings.Cut(name, ". "); ok {
			name = rest
		}
		names = append(names, name)
	}
	return strings.Join(names, " -> ")
}
