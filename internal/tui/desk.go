package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
	"github.com/ganot/enablement-desk/internal/view"
)

// Desk is the controller surface the terminal UI drives.
type Desk interface {
	Phases() []plan.Phase
	Summary() plan.Summary
	KPIs() []plan.KPI
	Brief() plan.Brief
	Participants() []roster.Participant
	Messages() []chat.Message
	View() view.State
	Navigate(name string) view.State
	Loading() bool
	UpdateActivity(ctx context.Context, phaseID, index int, m plan.Mutation) (plan.Phase, error)
	SendAsync(ctx context.Context, prompt string) <-chan desk.SendResult
	Cancel() bool
	ImportRoster(ctx context.Context, raw string) ([]roster.Participant, error)
	ClearRoster(ctx context.Context)
}

// page is one routed view.
type page interface {
	SetSize(width, height int)
	Refresh()
	Update(msg tea.Msg) tea.Cmd
	View() string
	// Capturing reports whether the page owns text input, so global
	// single-key bindings must not fire.
	Capturing() bool
}
