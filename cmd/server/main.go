package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/config"
	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/mcp"
	"github.com/ganot/enablement-desk/internal/sqlite"
	"github.com/ganot/enablement-desk/internal/transport"
	"github.com/ganot/enablement-desk/internal/tui"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// stdout carries JSON-RPC in stdio mode and the screen in tui mode.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode != config.ModeHTTP {
		logWriter = os.Stderr
	}
	if cfg.Transport.Mode == config.ModeTUI && cfg.Log.Path == "" {
		logWriter = io.Discard
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return err
	}

	journalSvc := journal.NewService(sqlite.NewJournalRepository(db), logger)

	gateway, err := newGateway(ctx, cfg.Assistant, logger)
	if err != nil {
		return err
	}

	ctrl := desk.New(desk.Config{
		Assistant: timeoutAssistant{next: gateway, timeout: cfg.Assistant.Timeout},
		Journal:   journalSvc,
		Logger:    logger,
	})

	mcpServer := mcp.NewServer(mcp.Config{
		Desk:          ctrl,
		Journal:       journalSvc,
		Resolver:      transport.StaticToken{Token: cfg.Auth.Token},
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})

	switch cfg.Transport.Mode {
	case config.ModeStdio:
		return runStdioMode(ctx, logger, mcpServer)
	case config.ModeTUI:
		logger.Info("starting terminal UI", "assistant_configured", gateway.Configured())
		return tui.Run(ctx, ctrl)
	default:
		var auth func(http.Handler) http.Handler
		if cfg.Auth.Enabled {
			auth = transport.AuthMiddleware(transport.StaticToken{Token: cfg.Auth.Token})
		}
		handler := transport.NewServer(transport.Config{
			Desk:    ctrl,
			Journal: journalSvc,
			Auth:    auth,
			MCP:     mcp.NewHTTPHandler(mcpServer),
			Logger:  logger,
		})
		return runHTTPMode(ctx, logger, handler, cfg.Server.Host, cfg.Server.Port)
	}
}

func newGateway(ctx context.Context, cfg config.AssistantConfig, logger *slog.Logger) (*assistant.Gateway, error) {
	opts := assistant.Options{
		Model:          cfg.Model,
		Retries:        cfg.Retries,
		Backoff:        cfg.Backoff,
		AttemptTimeout: cfg.AttemptTimeout,
	}
	if cfg.APIKey == "" {
		logger.Warn("no API key configured; assistant replies will explain how to set one")
		return assistant.NewGateway(nil, opts, logger), nil
	}
	gen, err := assistant.NewGeminiGenerator(ctx, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return assistant.NewGateway(gen, opts, logger), nil
}

// timeoutAssistant bounds a whole request, retries included, so a stalled
// model call cannot keep the desk busy forever.
type timeoutAssistant struct {
	next    desk.Assistant
	timeout time.Duration
}

func (a timeoutAssistant) Respond(ctx context.Context, prompt string, history []chat.Message, projectContext string) assistant.Reply {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.next.Respond(ctx, prompt, history, projectContext)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" || filepath.Dir(path) == "." {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
