// Package testserver starts a fully wired desk behind an httptest server.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/mcp"
	"github.com/ganot/enablement-desk/internal/sqlite"
	"github.com/ganot/enablement-desk/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Desk    *desk.Controller
	Journal *journal.Service
	Token   string
}

// EchoAssistant answers every prompt by quoting it.
type EchoAssistant struct{}

func (EchoAssistant) Respond(_ context.Context, prompt string, _ []chat.Message, _ string) assistant.Reply {
	return assistant.Reply{Text: "You asked: " + prompt}
}

// New starts a server requiring token as bearer credential. A nil asst
// behaves as if no API key were configured.
func New(t *testing.T, token string, asst desk.Assistant) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	journalSvc := journal.NewService(sqlite.NewJournalRepository(db), nil)
	ctrl := desk.New(desk.Config{Assistant: asst, Journal: journalSvc})

	resolver := transport.StaticToken{Token: token}
	mcpServer := mcp.NewServer(mcp.Config{
		Desk:          ctrl,
		Journal:       journalSvc,
		Resolver:      resolver,
		AuthEnabled:   true,
		TransportMode: "http",
	})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Desk:    ctrl,
		Journal: journalSvc,
		Auth:    transport.AuthMiddleware(resolver),
		MCP:     mcp.NewHTTPHandler(mcpServer),
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:  server,
		DB:      db,
		Desk:    ctrl,
		Journal: journalSvc,
		Token:   token,
	}
}
