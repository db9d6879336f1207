package plan

import (
	"fmt"
	"math"
	"time"
)

const dueDateLayout = "2006-01-02"

// Mutation is a typed change to a single activity.
type Mutation interface {
	apply(Activity) (Activity, error)
	// Describe returns a short human-readable form for logs and the journal.
	Describe() string
}

// SetCompleted marks an activity done or not done.
type SetCompleted struct {
	Completed bool
}

func (m SetCompleted) apply(a Activity) (Activity, error) {
	a.Completed = m.Completed
	return a, nil
}

func (m SetCompleted) Describe() string {
	if m.Completed {
		return "completed"
	}
	return "reopened"
}

// SetDueDate sets or clears (empty string) an activity's due date.
type SetDueDate struct {
	DueDate string
}

func (m SetDueDate) apply(a Activity) (Activity, error) {
	if m.DueDate != "" {
		if _, err := time.Parse(dueDateLayout, m.DueDate); err != nil {
			return a, fmt.Errorf("%w: %q", ErrInvalidDueDate, m.DueDate)
		}
	}
	a.DueDate = m.DueDate
	return a, nil
}

func (m SetDueDate) Describe() string {
	if m.DueDate == "" {
		return "due date cleared"
	}
	return "due " + m.DueDate
}

// Update returns a copy of phases with one activity of phaseID changed by m
// and that phase's progress recomputed. The input slice is never modified.
// On error the returned slice is the input, unchanged.
func Update(phases []Phase, phaseID, activityIndex int, m Mutation) ([]Phase, error) {
	if m == nil {
		return phases, ErrInvalidMutation
	}

	pos := -1
	for i := range phases {
		if phases[i].ID == phaseID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return phases, fmt.Errorf("%w: %d", ErrPhaseNotFound, phaseID)
	}

	target := phases[pos]
	if activityIndex < 0 || activityIndex >= len(target.Activities) {
		return phases, fmt.Errorf("%w: phase %d has %d activities, got index %d",
			ErrActivityOutOfRange, phaseID, len(target.Activities), activityIndex)
	}

	updated, err := m.apply(target.Activities[activityIndex])
	if err != nil {
		return phases, err
	}

	activities := make([]Activity, len(target.Activities))
	copy(activities, target.Activities)
	activities[activityIndex] = updated

	target.Activities = activities
	target.Progress = Progress(activities)

	out := make([]Phase, len(phases))
	copy(out, phases)
	out[pos] = target
	return out, nil
}

// Progress is the rounded percentage of completed activities. A phase with
// no activities reports 0.
func Progress(activities []Activity) int {
	if len(activities) == 0 {
		return 0
	}
	done := 0
	for _, a := range activities {
		if a.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(activities))))
}

// Summarize computes the dashboard aggregates. The active phase is the first
// phase with StatusActive, falling back to the first phase.
func Summarize(phases []Phase) Summary {
	s := Summary{TotalPhases: len(phases)}
	if len(phases) == 0 {
		return s
	}

	s.ActivePhase = phases[0]
	foundActive := false
	total := 0
	for _, p := range phases {
		if !foundActive && p.Status == StatusActive {
			s.ActivePhase = p
			foundActive = true
		}
		if p.Status == StatusCompleted {
			s.CompletedPhases++
		}
		total += p.Progress
	}
	s.OverallProgress = int(math.Round(float64(total) / float64(len(phases))))
	return s
}
