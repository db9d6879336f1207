package functional_test

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newStdioSession spawns the built binary in stdio mode. Build it first with
// go build -o bin/enablement-desk ./cmd/server.
func newStdioSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/enablement-desk"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/enablement-desk"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found; build ./cmd/server into bin/enablement-desk first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"ENABLEMENT_MODE=stdio",
		"ENABLEMENT_DB_PATH=:memory:",
		"API_KEY=",
		"GEMINI_API_KEY=",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
	})
	return session
}

func TestStdio_ListToolsAndCall(t *testing.T) {
	session := newStdioSession(t)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 8)

	text, isErr := callTool(t, session, "get_dashboard", map[string]any{})
	require.False(t, isErr)
	require.Contains(t, text, `"total_phases": 6`)
}

func TestStdio_UnknownPhaseIsToolError(t *testing.T) {
	session := newStdioSession(t)

	text, isErr := callTool(t, session, "update_activity", map[string]any{"phase_id": 9, "index": 0, "completed": true})
	require.True(t, isErr)
	require.Contains(t, text, "PHASE_NOT_FOUND")
}
