package plan

// PhaseStatus is the lifecycle label shown for a phase.
type PhaseStatus string

const (
	StatusPending   PhaseStatus = "Pending"
	StatusActive    PhaseStatus = "Active"
	StatusCompleted PhaseStatus = "Completed"
)

// Activity is a single trackable task inside a phase.
type Activity struct {
	Name      string `json:"name"`
	Timeline  string `json:"timeline"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date,omitempty"`
}

// Phase is one stage of the rollout plan.
type Phase struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	FocusArea    string      `json:"focus_area"`
	Duration     string      `json:"duration"`
	Activities   []Activity  `json:"activities"`
	Deliverables []string    `json:"deliverables"`
	Status       PhaseStatus `json:"status"`
	Progress     int         `json:"progress"`
}

// Trend is the direction indicator of a KPI.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// KPI is a static dashboard indicator.
type KPI struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Target string `json:"target"`
	Trend  Trend  `json:"trend"`
}

// Summary holds the dashboard aggregates derived from the phases.
type Summary struct {
	ActivePhase     Phase `json:"active_phase"`
	CompletedPhases int   `json:"completed_phases"`
	TotalPhases     int   `json:"total_phases"`
	OverallProgress int   `json:"overall_progress"`
}

// StrategyStep is one step of the phased rollout strategy.
type StrategyStep struct {
	Step        string `json:"step"`
	Description string `json:"description"`
}

// Brief is the static project charter.
type Brief struct {
	Name           string         `json:"name"`
	Goal           string         `json:"goal"`
	Challenge      string         `json:"challenge"`
	Strategy       []StrategyStep `json:"strategy"`
	SuccessMetrics []string       `json:"success_metrics"`
	Governance     []string       `json:"governance"`
	Stakeholders   []string       `json:"stakeholders"`
}
