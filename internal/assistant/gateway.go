// Package assistant forwards questions about the plan to a generative
// language model.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ganot/enablement-desk/internal/domain/chat"
)

// Fixed replies returned in place of model output.
const (
	MissingCredentialText = "API Key is missing. Please configure the API_KEY environment variable."
	EmptyResponseText     = "I couldn't generate a response."
	CanceledText          = "Error: request canceled"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrTransient marks generator failures worth retrying.
var ErrTransient = errors.New("transient assistant error")

// Turn is one prior conversation entry.
type Turn struct {
	Role chat.Role
	Text string
}

// Request is everything a generator needs for one completion.
type Request struct {
	Model             string
	SystemInstruction string
	History           []Turn
	Prompt            string
}

// Generator performs a single completion call against the model API.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Reply is the gateway's answer. IsError marks text that describes a failure.
type Reply struct {
	Text    string
	IsError bool
}

// Options tunes the gateway. AttemptTimeout bounds each Generate call; an
// attempt that runs out of time is retried like any transient failure.
type Options struct {
	Model          string
	Retries        int
	Backoff        time.Duration
	AttemptTimeout time.Duration
}

// Gateway turns a prompt into reply text and never returns an error.
type Gateway struct {
	gen     Generator
	opts    Options
	logger  *slog.Logger
	sleepFn func(context.Context, time.Duration) error
}

// NewGateway creates a gateway. A nil generator means no credential is
// configured; every call then answers with MissingCredentialText.
func NewGateway(gen Generator, opts Options, logger *slog.Logger) *Gateway {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{gen: gen, opts: opts, logger: logger, sleepFn: sleep}
}

// Configured reports whether a credential was supplied.
func (g *Gateway) Configured() bool {
	return g.gen != nil
}

// Respond asks the model about prompt, grounded on projectContext, with the
// prior conversation as history.
func (g *Gateway) Respond(ctx context.Context, prompt string, history []chat.Message, projectContext string) Reply {
	if g.gen == nil {
		return Reply{Text: MissingCredentialText, IsError: true}
	}

	req := Request{
		Model:             g.opts.Model,
		SystemInstruction: SystemInstruction(projectContext),
		History:           make([]Turn, 0, len(history)),
		Prompt:            prompt,
	}
	for _, m := range history {
		req.History = append(req.History, Turn{Role: m.Role, Text: m.Text})
	}

	var lastErr error
	for attempt := 0; attempt <= g.opts.Retries; attempt++ {
		if attempt > 0 {
			if err := g.sleepFn(ctx, g.opts.Backoff*time.Duration(attempt)); err != nil {
				return g.interrupted(ctx, lastErr)
			}
		}

		text, err := g.generate(ctx, req)
		if err == nil {
			if text == "" {
				return Reply{Text: EmptyResponseText}
			}
			return Reply{Text: text}
		}
		lastErr = err

		if ctx.Err() != nil {
			return g.interrupted(ctx, err)
		}
		if !errors.Is(err, ErrTransient) {
			break
		}
		g.logger.Warn("assistant transient failure", "attempt", attempt+1, "error", err)
	}

	g.logger.Error("assistant request failed", "error", lastErr)
	return Reply{Text: fmt.Sprintf("Error: %v", lastErr), IsError: true}
}

func (g *Gateway) generate(ctx context.Context, req Request) (string, error) {
	if g.opts.AttemptTimeout <= 0 {
		return g.gen.Generate(ctx, req)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, g.opts.AttemptTimeout)
	defer cancel()
	text, err := g.gen.Generate(attemptCtx, req)
	if err != nil && ctx.Err() == nil && attemptCtx.Err() != nil && !errors.Is(err, ErrTransient) {
		err = fmt.Errorf("%w: attempt timed out after %s: %w", ErrTransient, g.opts.AttemptTimeout, err)
	}
	return text, err
}

// interrupted reports a request whose parent context ended. Only an explicit
// cancel gets CanceledText; a deadline keeps the underlying detail.
func (g *Gateway) interrupted(ctx context.Context, err error) Reply {
	if errors.Is(ctx.Err(), context.Canceled) {
		g.logger.Info("assistant request canceled")
		return Reply{Text: CanceledText, IsError: true}
	}
	if err == nil {
		err = ctx.Err()
	}
	g.logger.Error("assistant request timed out", "error", err)
	return Reply{Text: fmt.Sprintf("Error: %v", err), IsError: true}
}

// SystemInstruction wraps the project context in the assistant's standing
// instructions.
func SystemInstruction(projectContext string) string {
	return `You are a senior project management assistant for a banking AI enablement initiative.
Your tone is professional, corporate, and encouraging.

You have access to the following project plan and details:
` + projectContext + `

If the user asks to create an email, format it as a proper email template with Subject and Body.
Always be concise and action-oriented.`
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
