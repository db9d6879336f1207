package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
	"github.com/ganot/enablement-desk/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Desk is the application controller as seen by HTTP handlers.
type Desk interface {
	Phases() []plan.Phase
	Phase(id int) (plan.Phase, error)
	Summary() plan.Summary
	KPIs() []plan.KPI
	Brief() plan.Brief
	Participants() []roster.Participant
	Messages() []chat.Message
	Context() string
	Navigate(name string) view.State
	Loading() bool
	UpdateActivity(ctx context.Context, phaseID, index int, m plan.Mutation) (plan.Phase, error)
	Send(ctx context.Context, prompt string) (chat.Message, error)
	DraftInvite(ctx context.Context) (chat.Message, error)
	Cancel() bool
	ImportRoster(ctx context.Context, raw string) ([]roster.Participant, error)
	ClearRoster(ctx context.Context)
}

// JournalReader lists recorded events.
type JournalReader interface {
	Recent(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
}

// Config wires the HTTP router.
type Config struct {
	Desk    Desk
	Journal JournalReader
	// Auth protects /api and /mcp when set.
	Auth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	desk    Desk
	journal JournalReader
	views   *view.Router[func() any]
}

// NewServer creates an HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	srv := &Server{desk: cfg.Desk, journal: cfg.Journal}
	srv.views = view.NewRouter(srv.dashboardView).
		Register(view.Schedule, func() any { return srv.desk.Phases() }).
		Register(view.Brief, func() any { return srv.desk.Brief() }).
		Register(view.Assistant, srv.assistantView)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}

		r.Route("/api", func(r chi.Router) {
			r.Get("/phases", srv.listPhases)
			r.Get("/phases/{phaseID}", srv.getPhase)
			r.Patch("/phases/{phaseID}/activities/{index}", srv.updateActivity)
			r.Get("/dashboard", srv.getDashboard)
			r.Get("/kpis", srv.listKPIs)
			r.Get("/brief", srv.getBrief)
			r.Get("/views/{state}", srv.getView)
		r.Put("/views/{state}", srv.navigate)
			r.Get("/context", srv.getContext)

			r.Get("/assistant/messages", srv.listMessages)
			r.Post("/assistant/messages", srv.sendMessage)
			r.Post("/assistant/invite", srv.draftInvite)
			r.Delete("/assistant/inflight", srv.cancelInflight)

			r.Get("/roster", srv.listRoster)
			r.Put("/roster", srv.importRoster)
			r.Delete("/roster", srv.clearRoster)

			r.Get("/journal", srv.listJournal)
		})

		if cfg.MCP != nil {
			r.Handle("/mcp", cfg.MCP)
			r.Handle("/mcp/*", cfg.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) listPhases(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.desk.Phases())
}

func (s *Server) getPhase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "phaseID"))
	if err != nil {
		badRequest(w, "phase id must be an integer")
		return
	}
	phase, err := s.desk.Phase(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, phase)
}

// ActivityPatch is the body of PATCH /api/phases/{id}/activities/{index}.
// Exactly one field must be set.
type ActivityPatch struct {
	Completed *bool   `json:"completed,omitempty"`
	DueDate   *string `json:"due_date,omitempty"`
}

// Mutation converts the patch to a typed mutation.
func (p ActivityPatch) Mutation() (plan.Mutation, bool) {
	switch {
	case p.Completed != nil && p.DueDate == nil:
		return plan.SetCompleted{Completed: *p.Completed}, true
	case p.DueDate != nil && p.Completed == nil:
		return plan.SetDueDate{DueDate: *p.DueDate}, true
	default:
		return nil, false
	}
}

func (s *Server) updateActivity(w http.ResponseWriter, r *http.Request) {
	phaseID, err := strconv.Atoi(chi.URLParam(r, "phaseID"))
	if err != nil {
		badRequest(w, "phase id must be an integer")
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		badRequest(w, "activity index must be an integer")
		return
	}

	var patch ActivityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	m, ok := patch.Mutation()
	if !ok {
		writeError(w, plan.ErrInvalidMutation)
		return
	}

	phase, err := s.desk.UpdateActivity(r.Context(), phaseID, index, m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, phase)
}

// DashboardResponse is the dashboard view payload.
type DashboardResponse struct {
	Summary plan.Summary `json:"summary"`
	KPIs    []plan.KPI   `json:"kpis"`
}

func (s *Server) dashboardView() any {
	return DashboardResponse{Summary: s.desk.Summary(), KPIs: s.desk.KPIs()}
}

// AssistantResponse is the assistant view payload.
type AssistantResponse struct {
	Messages     []chat.Message       `json:"messages"`
	Participants []roster.Participant `json:"participants"`
	Loading      bool                 `json:"loading"`
}

func (s *Server) assistantView() any {
	return AssistantResponse{
		Messages:     s.desk.Messages(),
		Participants: s.desk.Participants(),
		Loading:      s.desk.Loading(),
	}
}

func (s *Server) getDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboardView())
}

func (s *Server) listKPIs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.desk.KPIs())
}

func (s *Server) getBrief(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.desk.Brief())
}

// ViewResponse wraps a routed view payload.
type ViewResponse struct {
	View view.State `json:"view"`
	Data any        `json:"data"`
}

// getView renders a view without changing the shared navigation state.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	state := view.Parse(chi.URLParam(r, "state"))
	writeJSON(w, http.StatusOK, ViewResponse{View: state, Data: s.views.Select(state)()})
}

// navigate makes the view current for every front end and renders it.
func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	state := s.desk.Navigate(chi.URLParam(r, "state"))
	writeJSON(w, http.StatusOK, ViewResponse{View: state, Data: s.views.Select(state)()})
}

func (s *Server) getContext(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, s.desk.Context())
}

func (s *Server) listMessages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.desk.Messages())
}

// SendRequest is the body of POST /api/assistant/messages.
type SendRequest struct {
	Text string `json:"text"`
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	msg, err := s.desk.Send(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) draftInvite(w http.ResponseWriter, r *http.Request) {
	msg, err := s.desk.DraftInvite(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) cancelInflight(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"canceled": s.desk.Cancel()})
}

func (s *Server) listRoster(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.desk.Participants())
}

func (s *Server) importRoster(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, roster.MaxImportBytes+1))
	if err != nil {
		badRequest(w, "unable to read body")
		return
	}
	participants, err := s.desk.ImportRoster(r.Context(), string(body))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func (s *Server) clearRoster(w http.ResponseWriter, r *http.Request) {
	s.desk.ClearRoster(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listJournal(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		writeJSON(w, http.StatusOK, []journal.Entry{})
		return
	}
	opts := journal.ListOptions{Limit: 50}
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	if v := q.Get("phase_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "phase_id must be an integer")
			return
		}
		opts.PhaseID = &id
	}
	if v := q.Get("kind"); v != "" {
		kind := journal.Kind(v)
		opts.Kind = &kind
	}

	entries, err := s.journal.Recent(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
