package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/repository"
)

// JournalRepository implements journal.Repository for SQLite
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Append inserts a new journal entry
func (r *JournalRepository) Append(ctx context.Context, entry *journal.Entry) error {
	if entry == nil {
		return repository.ErrInvalidInput
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var phaseID sql.NullInt64
	if entry.PhaseID != nil {
		phaseID = sql.NullInt64{Int64: int64(*entry.PhaseID), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (kind, phase_id, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(entry.Kind), phaseID, entry.Summary, entry.Details, createdAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
		}
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt
	return nil
}

// List returns journal entries matching the given filters, newest first
func (r *JournalRepository) List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	query := `
		SELECT id, kind, phase_id, summary, details, created_at
		FROM activity_log
	`

	var args []any
	var conditions []string
	if opts.PhaseID != nil {
		conditions = append(conditions, "phase_id = ?")
		args = append(args, *opts.PhaseID)
	}
	if opts.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(*opts.Kind))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Insertion order; ids are AUTOINCREMENT.
	query += " ORDER BY id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	} else if opts.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var entry journal.Entry
		var kind string
		var phaseID sql.NullInt64
		var details sql.NullString
		if err := rows.Scan(&entry.ID, &kind, &phaseID, &entry.Summary, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Kind = journal.Kind(kind)
		if phaseID.Valid {
			id := int(phaseID.Int64)
			entry.PhaseID = &id
		}
		entry.Details = details.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	return entries, nil
}
