package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Service records and lists journal entries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new journal service. A nil logger discards output.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Record stores an entry, stamping CreatedAt if missing.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.Kind == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("journal append failed", "kind", entry.Kind, "error", err)
		return fmt.Errorf("recording journal entry: %w", err)
	}
	s.logger.Debug("journal entry recorded", "id", entry.ID, "kind", entry.Kind)
	return nil
}

// Recent lists entries, newest first.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		s.logger.Error("journal list failed", "limit", opts.Limit, "error", err)
		return nil, fmt.Errorf("listing journal: %w", err)
	}
	return entries, nil
}

// Details marshals v for Entry.Details, returning "" when it cannot.
func Details(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
