// Package desk owns the application state shared by every front end.
package desk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/briefing"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
	"github.com/ganot/enablement-desk/internal/view"
)

// Assistant answers a prompt given history and grounding context.
type Assistant interface {
	Respond(ctx context.Context, prompt string, history []chat.Message, projectContext string) assistant.Reply
}

// Journal records application events.
type Journal interface {
	Record(ctx context.Context, entry *journal.Entry) error
}

// Config wires a Controller. Zero-value Phases, Brief and KPIs fall back to
// the seed data.
type Config struct {
	Phases    []plan.Phase
	Brief     *plan.Brief
	KPIs      []plan.KPI
	Assistant Assistant
	Journal   Journal
	Logger    *slog.Logger
}

// Controller is the single owner of phases, navigation, conversation and
// roster. Reads return copies.
type Controller struct {
	store     *plan.Store
	brief     plan.Brief
	kpis      []plan.KPI
	conv      *chat.Conversation
	roster    *roster.Roster
	assistant Assistant
	journal   Journal
	logger    *slog.Logger

	mu      sync.Mutex
	view    view.State
	loading bool
	cancel  context.CancelFunc
}

// New creates a controller showing the dashboard.
func New(cfg Config) *Controller {
	phases := cfg.Phases
	if phases == nil {
		phases = plan.Seed()
	}
	brief := plan.SeedBrief()
	if cfg.Brief != nil {
		brief = *cfg.Brief
	}
	kpis := cfg.KPIs
	if kpis == nil {
		kpis = plan.SeedKPIs()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	asst := cfg.Assistant
	if asst == nil {
		asst = assistant.NewGateway(nil, assistant.Options{}, logger)
	}

	return &Controller{
		store:     plan.NewStore(phases),
		brief:     brief,
		kpis:      append([]plan.KPI(nil), kpis...),
		conv:      chat.NewConversation(),
		roster:    roster.New(),
		assistant: asst,
		journal:   cfg.Journal,
		logger:    logger,
		view:      view.Dashboard,
	}
}

// Phases returns the current phases.
func (c *Controller) Phases() []plan.Phase { return c.store.Phases() }

// Phase returns one phase.
func (c *Controller) Phase(id int) (plan.Phase, error) { return c.store.Phase(id) }

// Summary returns the dashboard aggregates.
func (c *Controller) Summary() plan.Summary { return plan.Summarize(c.store.Phases()) }

// KPIs returns the static indicators.
func (c *Controller) KPIs() []plan.KPI { return append([]plan.KPI(nil), c.kpis...) }

// Brief returns the project charter.
func (c *Controller) Brief() plan.Brief { return c.brief }

// Participants returns the imported roster.
func (c *Controller) Participants() []roster.Participant { return c.roster.List() }

// Messages returns the conversation so far.
func (c *Controller) Messages() []chat.Message { return c.conv.Messages() }

// Context renders the assistant grounding text from current state.
func (c *Controller) Context() string {
	return briefing.Context(c.brief, c.store.Phases(), c.roster.List())
}

// View returns the current navigation state.
func (c *Controller) View() view.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Navigate switches views. Unknown names land on the dashboard.
func (c *Controller) Navigate(name string) view.State {
	s := view.Parse(name)
	c.mu.Lock()
	c.view = s
	c.mu.Unlock()
	return s
}

// Loading reports whether an assistant request is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// UpdateActivity applies m to one activity and returns the updated phase.
func (c *Controller) UpdateActivity(ctx context.Context, phaseID, index int, m plan.Mutation) (plan.Phase, error) {
	phase, err := c.store.Apply(phaseID, index, m)
	if err != nil {
		c.logger.Warn("activity update rejected", "phase_id", phaseID, "index", index, "error", err)
		return plan.Phase{}, err
	}

	name := phase.Activities[index].Name
	c.logger.Info("activity updated", "phase_id", phaseID, "index", index, "change", m.Describe(), "progress", phase.Progress)
	c.record(ctx, &journal.Entry{
		Kind:    journal.KindActivityUpdated,
		PhaseID: &phaseID,
		Summary: fmt.Sprintf("%s: %s", name, m.Describe()),
		Details: journal.Details(map[string]any{"index": index, "progress": phase.Progress}),
	})
	return phase, nil
}

// Send appends prompt to the conversation, asks the assistant and appends
// its reply. Only one request may be in flight; Cancel aborts it.
func (c *Controller) Send(ctx context.Context, prompt string) (chat.Message, error) {
	req, err := c.begin(ctx, prompt)
	if err != nil {
		return chat.Message{}, err
	}
	return c.respond(ctx, req), nil
}

// pendingRequest is a prompt already appended to the conversation and
// waiting for the assistant.
type pendingRequest struct {
	ctx     context.Context
	cancel  context.CancelFunc
	prompt  string
	history []chat.Message
}

func (c *Controller) begin(ctx context.Context, prompt string) (pendingRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return pendingRequest{}, ErrEmptyPrompt
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return pendingRequest{}, ErrBusy
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.loading = true
	c.cancel = cancel
	req := pendingRequest{ctx: reqCtx, cancel: cancel, prompt: prompt, history: c.conv.Messages()}
	c.conv.Append(chat.NewMessage(chat.RoleUser, prompt, false))
	return req, nil
}

func (c *Controller) respond(ctx context.Context, req pendingRequest) chat.Message {
	defer func() {
		req.cancel()
		c.mu.Lock()
		c.loading = false
		c.cancel = nil
		c.mu.Unlock()
	}()

	reply := c.assistant.Respond(req.ctx, req.prompt, req.history, c.Context())
	msg := chat.NewMessage(chat.RoleModel, reply.Text, reply.IsError)
	c.conv.Append(msg)

	kind := journal.KindAssistantReplied
	if reply.IsError {
		kind = journal.KindAssistantFailed
	}
	c.record(ctx, &journal.Entry{
		Kind:    kind,
		Summary: truncate(req.prompt, 120),
		Details: journal.Details(map[string]any{"reply_chars": len(reply.Text)}),
	})
	return msg
}

// SendResult carries the outcome of SendAsync.
type SendResult struct {
	Message chat.Message
	Err     error
}

// SendAsync appends prompt to the conversation before returning and asks the
// assistant in the background. The channel receives exactly one result and
// is then closed.
func (c *Controller) SendAsync(ctx context.Context, prompt string) <-chan SendResult {
	out := make(chan SendResult, 1)
	req, err := c.begin(ctx, prompt)
	if err != nil {
		out <- SendResult{Err: err}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		out <- SendResult{Message: c.respond(ctx, req)}
	}()
	return out
}

// DraftInvite asks for the Phase 3 pilot invitation email.
func (c *Controller) DraftInvite(ctx context.Context) (chat.Message, error) {
	return c.Send(ctx, chat.PilotInvitePrompt)
}

// Cancel aborts the in-flight assistant request, if any.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return false
	}
	c.cancel()
	return true
}

// ImportRoster replaces the roster with the parsed CSV. On failure the
// previous roster is kept and an error message is added to the conversation.
func (c *Controller) ImportRoster(ctx context.Context, raw string) ([]roster.Participant, error) {
	participants, err := c.roster.Import(raw)
	if err != nil {
		c.logger.Warn("roster import failed", "error", err)
		c.conv.Append(chat.NewMessage(chat.RoleModel, roster.FormatHint, true))
		c.record(ctx, &journal.Entry{Kind: journal.KindRosterImportFailed, Summary: err.Error()})
		return nil, err
	}

	c.logger.Info("roster imported", "participants", len(participants))
	c.conv.Append(chat.NewMessage(chat.RoleModel, fmt.Sprintf(
		"Successfully imported %d participants. I can now answer questions about their schedules.", len(participants)), false))
	c.record(ctx, &journal.Entry{
		Kind:    journal.KindRosterImported,
		Summary: fmt.Sprintf("Imported %d participants", len(participants)),
	})
	return participants, nil
}

// ClearRoster removes all participants.
func (c *Controller) ClearRoster(ctx context.Context) {
	c.roster.Clear()
	c.conv.Append(chat.NewMessage(chat.RoleModel, "Participant data cleared.", false))
	c.record(ctx, &journal.Entry{Kind: journal.KindRosterCleared, Summary: "Participant data cleared"})
}

func (c *Controller) record(ctx context.Context, entry *journal.Entry) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		c.logger.Error("journal write failed", "kind", entry.Kind, "error", err)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
