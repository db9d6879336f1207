// Package view holds the navigation state shared by every front end.
package view

import "strings"

// State names one of the top-level views.
type State string

const (
	Dashboard State = "dashboard"
	Schedule  State = "schedule"
	Brief     State = "brief"
	Assistant State = "assistant"
)

// States lists the views in navigation order.
var States = []State{Dashboard, Schedule, Brief, Assistant}

var labels = map[State]string{
	Dashboard: "Dashboard",
	Schedule:  "Schedule & Plan",
	Brief:     "Project Brief",
	Assistant: "AI Assistant",
}

// Parse maps a name to a State. Unknown names select the dashboard.
func Parse(name string) State {
	s := State(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := labels[s]; ok {
		return s
	}
	return Dashboard
}

// Label is the navigation title of s.
func (s State) Label() string {
	return labels[Parse(string(s))]
}

// Next and Prev cycle through States.
func (s State) Next() State { return States[(s.index()+1)%len(States)] }

func (s State) Prev() State { return States[(s.index()+len(States)-1)%len(States)] }

func (s State) index() int {
	p := Parse(string(s))
	for i, st := range States {
		if st == p {
			return i
		}
	}
	return 0
}

// Router selects a registered view for a state, falling back to the
// dashboard's view for anything it does not know.
type Router[T any] struct {
	views map[State]T
}

// NewRouter creates a router. The dashboard view is mandatory.
func NewRouter[T any](dashboard T) *Router[T] {
	return &Router[T]{views: map[State]T{Dashboard: dashboard}}
}

// Register binds v to s and returns the router for chaining.
func (r *Router[T]) Register(s State, v T) *Router[T] {
	r.views[s] = v
	return r
}

// Select returns the view for s.
func (r *Router[T]) Select(s State) T {
	if v, ok := r.views[s]; ok {
		return v
	}
	return r.views[Dashboard]
}

// Resolve parses name and selects its view.
func (r *Router[T]) Resolve(name string) (State, T) {
	s := Parse(name)
	return s, r.Select(s)
}
