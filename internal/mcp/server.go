package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Desk defines the controller operations exposed as tools.
type Desk interface {
	Phases() []plan.Phase
	Summary() plan.Summary
	KPIs() []plan.KPI
	Brief() plan.Brief
	Participants() []roster.Participant
	Context() string
	UpdateActivity(ctx context.Context, phaseID, index int, m plan.Mutation) (plan.Phase, error)
	Send(ctx context.Context, prompt string) (chat.Message, error)
	ImportRoster(ctx context.Context, raw string) ([]roster.Participant, error)
	ClearRoster(ctx context.Context)
}

// JournalReader lists recorded events.
type JournalReader interface {
	Recent(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
}

// Config contains server configuration.
type Config struct {
	Desk          Desk
	Journal       JournalReader
	Resolver      TokenResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "enablement-desk",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerResources(server, cfg.Desk)

	// Stdio is a local, single-operator transport.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultPrincipal))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{desk: cfg.Desk, journal: cfg.Journal})

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)
}
