package journal

import "time"

// Kind labels a journal entry.
type Kind string

const (
	KindActivityUpdated    Kind = "activity_updated"
	KindRosterImported     Kind = "roster_imported"
	KindRosterImportFailed Kind = "roster_import_failed"
	KindRosterCleared      Kind = "roster_cleared"
	KindAssistantReplied   Kind = "assistant_replied"
	KindAssistantFailed    Kind = "assistant_failed"
)

// Entry is one recorded event.
type Entry struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	PhaseID   *int      `json:"phase_id,omitempty"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"` // JSON string
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions filters Recent.
type ListOptions struct {
	PhaseID *int
	Kind    *Kind
	Limit   int
	Offset  int
}
