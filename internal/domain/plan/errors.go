package plan

import "errors"

var (
	// ErrPhaseNotFound indicates no phase carries the requested ID.
	ErrPhaseNotFound = errors.New("phase not found")
	// ErrActivityOutOfRange indicates an activity index outside the phase's activities.
	ErrActivityOutOfRange = errors.New("activity index out of range")
	// ErrInvalidDueDate indicates a due date that is not YYYY-MM-DD.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrInvalidMutation indicates a nil or unknown mutation.
	ErrInvalidMutation = errors.New("invalid activity mutation")
)
