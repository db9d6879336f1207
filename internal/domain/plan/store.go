package plan

import "sync"

// Store owns the canonical phase collection. All writes go through Apply.
type Store struct {
	mu     sync.RWMutex
	phases []Phase
}

// NewStore creates a store holding a private copy of phases.
func NewStore(phases []Phase) *Store {
	return &Store{phases: Clone(phases)}
}

// Phases returns a deep copy of the current phases.
func (s *Store) Phases() []Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Clone(s.phases)
}

// Phase returns a copy of one phase.
func (s *Store) Phase(id int) (Phase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.phases {
		if p.ID == id {
			return clonePhase(p), nil
		}
	}
	return Phase{}, ErrPhaseNotFound
}

// Apply runs Update against the current phases and swaps in the result.
func (s *Store) Apply(phaseID, activityIndex int, m Mutation) (Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Update(s.phases, phaseID, activityIndex, m)
	if err != nil {
		return Phase{}, err
	}
	s.phases = next
	for _, p := range next {
		if p.ID == phaseID {
			return clonePhase(p), nil
		}
	}
	return Phase{}, ErrPhaseNotFound
}

// Clone deep-copies a phase collection.
func Clone(phases []Phase) []Phase {
	if phases == nil {
		return nil
	}
	out := make([]Phase, len(phases))
	for i, p := range phases {
		out[i] = clonePhase(p)
	}
	return out
}

func clonePhase(p Phase) Phase {
	p.Activities = append([]Activity(nil), p.Activities...)
	p.Deliverables = append([]string(nil), p.Deliverables...)
	return p
}
