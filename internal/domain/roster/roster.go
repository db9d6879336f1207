package roster

import "sync"

// Roster holds the current participant list. Replacement is all-or-nothing.
type Roster struct {
	mu           sync.RWMutex
	participants []Participant
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{}
}

// Import parses raw and, only if parsing succeeds, replaces the roster.
func (r *Roster) Import(raw string) ([]Participant, error) {
	parsed, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.participants = parsed
	r.mu.Unlock()
	return append([]Participant(nil), parsed...), nil
}

// Clear empties the roster.
func (r *Roster) Clear() {
	r.mu.Lock()
	r.participants = nil
	r.mu.Unlock()
}

// List returns a copy of the participants.
func (r *Roster) List() []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Participant(nil), r.participants...)
}

// Len reports the participant count.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}
