package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/config"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/stretchr/testify/require"
)

func TestNewGateway_WithoutKeyIsUnconfigured(t *testing.T) {
	cfg := config.Default().Assistant
	cfg.APIKey = ""
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gw, err := newGateway(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.False(t, gw.Configured())

	reply := gw.Respond(context.Background(), "hello", nil, "Project: X")
	require.Equal(t, assistant.Reply{Text: assistant.MissingCredentialText, IsError: true}, reply)
}

type deadlineRecorder struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineRecorder) Respond(ctx context.Context, _ string, _ []chat.Message, _ string) assistant.Reply {
	d.deadline, d.ok = ctx.Deadline()
	return assistant.Reply{Text: "ok"}
}

func TestTimeoutAssistant_BoundsRequest(t *testing.T) {
	next := &deadlineRecorder{}
	a := timeoutAssistant{next: next, timeout: time.Minute}

	require.Equal(t, "ok", a.Respond(context.Background(), "hi", nil, "").Text)
	require.True(t, next.ok)
	require.WithinDuration(t, time.Now().Add(time.Minute), next.deadline, 5*time.Second)

	a.timeout = 0
	a.Respond(context.Background(), "hi", nil, "")
	require.False(t, next.ok)
}
