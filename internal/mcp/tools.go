package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type tools struct {
	desk    Desk
	journal JournalReader
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_phases",
		Description: "List all rollout phases with activities, status and progress",
	}, t.listPhases)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_activity",
		Description: "Mark an activity complete or incomplete, or set its due date (YYYY-MM-DD, empty clears). Provide exactly one of completed or due_date.",
	}, t.updateActivity)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the active phase, completed phase count, overall progress and KPIs",
	}, t.getDashboard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_context",
		Description: "Get the plain-text project context the assistant is grounded on",
	}, t.getProjectContext)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the rollout assistant a question. The reply is appended to the shared conversation.",
	}, t.askAssistant)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_roster",
		Description: "Replace the participant roster with CSV text (header line, then Name,Email,Department,Session Date,Time)",
	}, t.importRoster)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_roster",
		Description: "Remove all participants from the roster",
	}, t.clearRoster)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent journal entries, newest first, optionally filtered by phase or kind",
	}, t.recentActivity)
}

type EmptyInput struct{}

type UpdateActivityInput struct {
	PhaseID   int     `json:"phase_id" jsonschema:"Phase ID (1-6)"`
	Index     int     `json:"index" jsonschema:"Zero-based activity index within the phase"`
	Completed *bool   `json:"completed,omitempty" jsonschema:"New completion flag"`
	DueDate   *string `json:"due_date,omitempty" jsonschema:"Due date as YYYY-MM-DD; empty string clears it"`
}

type AskAssistantInput struct {
	Prompt string `json:"prompt" jsonschema:"Question for the assistant"`
}

type ImportRosterInput struct {
	CSV string `json:"csv" jsonschema:"Roster CSV text including the header line"`
}

type RecentActivityInput struct {
	PhaseID *int   `json:"phase_id,omitempty" jsonschema:"Only entries for this phase"`
	Kind    string `json:"kind,omitempty" jsonschema:"Only entries of this kind, e.g. activity_updated"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum entries to return (default 20)"`
}

func (t *tools) listPhases(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, any, error) {
	return toolJSON(t.desk.Phases())
}

func (t *tools) updateActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateActivityInput) (*sdkmcp.CallToolResult, any, error) {
	patch := transport.ActivityPatch{Completed: in.Completed, DueDate: in.DueDate}
	m, ok := patch.Mutation()
	if !ok {
		return toolFailure(plan.ErrInvalidMutation), nil, nil
	}
	phase, err := t.desk.UpdateActivity(ctx, in.PhaseID, in.Index, m)
	if err != nil {
		return toolFailure(err), nil, nil
	}
	return toolJSON(phase)
}

func (t *tools) getDashboard(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, any, error) {
	return toolJSON(transport.DashboardResponse{Summary: t.desk.Summary(), KPIs: t.desk.KPIs()})
}

func (t *tools) getProjectContext(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, any, error) {
	return toolText(t.desk.Context()), nil, nil
}

func (t *tools) askAssistant(ctx context.Context, _ *sdkmcp.CallToolRequest, in AskAssistantInput) (*sdkmcp.CallToolResult, any, error) {
	msg, err := t.desk.Send(ctx, in.Prompt)
	if err != nil {
		return toolFailure(err), nil, nil
	}
	res := toolText(msg.Text)
	res.IsError = msg.IsError
	return res, nil, nil
}

func (t *tools) importRoster(ctx context.Context, _ *sdkmcp.CallToolRequest, in ImportRosterInput) (*sdkmcp.CallToolResult, any, error) {
	participants, err := t.desk.ImportRoster(ctx, in.CSV)
	if err != nil {
		return toolFailure(err), nil, nil
	}
	return toolJSON(participants)
}

func (t *tools) clearRoster(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, any, error) {
	t.desk.ClearRoster(ctx)
	return toolText("Participant data cleared."), nil, nil
}

func (t *tools) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityInput) (*sdkmcp.CallToolResult, any, error) {
	if t.journal == nil {
		return toolJSON([]journal.Entry{})
	}
	opts := journal.ListOptions{PhaseID: in.PhaseID, Limit: in.Limit}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if in.Kind != "" {
		kind := journal.Kind(in.Kind)
		opts.Kind = &kind
	}
	entries, err := t.journal.Recent(ctx, opts)
	if err != nil {
		return toolFailure(err), nil, nil
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return toolJSON(entries)
}

func toolText(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}

// toolFailure reports err with the same codes the HTTP API uses.
func toolFailure(err error) *sdkmcp.CallToolResult {
	apiErr := transport.MapError(err)
	text := fmt.Sprintf("%s: %s", apiErr.Code, apiErr.Message)
	if apiErr.RecoveryHint != "" {
		text += " (" + apiErr.RecoveryHint + ")"
	}
	res := toolText(text)
	res.IsError = true
	return res
}

func toolJSON(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolFailure(err), nil, nil
	}
	return toolText(string(data)), nil, nil
}
