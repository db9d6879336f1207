package mcp

import (
	"context"

	"github.com/ganot/enablement-desk/internal/briefing"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `enablement-desk tracks a six-phase training rollout.

- list_phases / get_dashboard to orient. Phase IDs run 1-6; activity indexes are zero-based.
- update_activity changes one activity; phase progress is recomputed from completed activities.
- import_roster replaces participants from CSV. A failed import keeps the previous roster.
- ask_assistant shares one conversation with other clients; only one request runs at a time.
- Read enablement://brief for the charter and enablement://schedule for the plan.
`

type resource struct {
	URI         string
	Name        string
	Title       string
	Description string
	MIMEType    string
	Render      func(Desk) string
}

var resources = []resource{
	{
		URI:         "enablement://brief",
		Name:        "brief",
		Title:       "Project brief",
		Description: "Goal, challenge, strategy, success metrics, governance and stakeholders.",
		MIMEType:    "text/markdown",
		Render:      func(d Desk) string { return briefing.BriefMarkdown(d.Brief()) },
	},
	{
		URI:         "enablement://schedule",
		Name:        "schedule",
		Title:       "Schedule and plan",
		Description: "Every phase with activity status, due dates and deliverables.",
		MIMEType:    "text/markdown",
		Render:      func(d Desk) string { return briefing.ScheduleMarkdown(d.Phases()) },
	},
	{
		URI:         "enablement://context",
		Name:        "context",
		Title:       "Assistant context",
		Description: "The grounding text sent to the assistant with each question.",
		MIMEType:    "text/plain",
		Render:      func(d Desk) string { return d.Context() },
	},
}

// registerResources renders each resource from current desk state on read.
func registerResources(server *sdkmcp.Server, desk Desk) {
	for _, res := range resources {
		server.AddResource(&sdkmcp.Resource{
			URI:         res.URI,
			Name:        res.Name,
			Title:       res.Title,
			Description: res.Description,
			MIMEType:    res.MIMEType,
		}, func(_ context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      res.URI,
					MIMEType: res.MIMEType,
					Text:     res.Render(desk),
				}},
			}, nil
		})
	}
}
