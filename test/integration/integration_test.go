package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db      *sqlite.DB
	journal *journal.Service
	desk    *desk.Controller
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	journalSvc := journal.NewService(sqlite.NewJournalRepository(db), nil)
	return &testEnv{
		db:      db,
		journal: journalSvc,
		desk:    desk.New(desk.Config{Journal: journalSvc}),
	}
}

func TestPhaseCompletionFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	phase, err := env.desk.Phase(1)
	require.NoError(t, err)
	for i := range phase.Activities {
		phase, err = env.desk.UpdateActivity(ctx, 1, i, plan.SetCompleted{Completed: true})
		require.NoError(t, err)
	}
	require.Equal(t, 100, phase.Progress)
	require.Equal(t, 100, env.desk.Summary().ActivePhase.Progress)

	phaseID := 1
	entries, err := env.journal.Recent(ctx, journal.ListOptions{PhaseID: &phaseID})
	require.NoError(t, err)
	require.Len(t, entries, len(phase.Activities))
	require.Contains(t, entries[0].Summary, phase.Activities[len(phase.Activities)-1].Name)
	require.Contains(t, entries[0].Details, `"progress":100`)
}

func TestRejectedUpdatesAreNotJournaled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.desk.UpdateActivity(ctx, 1, 99, plan.SetCompleted{Completed: true})
	require.ErrorIs(t, err, plan.ErrActivityOutOfRange)
	_, err = env.desk.UpdateActivity(ctx, 1, 0, plan.SetDueDate{DueDate: "tomorrow"})
	require.ErrorIs(t, err, plan.ErrInvalidDueDate)

	entries, err := env.journal.Recent(ctx, journal.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRosterLifecycleIsJournaled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.desk.ImportRoster(ctx, "Name,Email,Department,Session Date,Time\nAlice,alice@x.com,IT,2024-01-05,10:00")
	require.NoError(t, err)
	_, err = env.desk.ImportRoster(ctx, "header\n\xff")
	require.Error(t, err)
	require.Len(t, env.desk.Participants(), 1)
	env.desk.ClearRoster(ctx)

	entries, err := env.journal.Recent(ctx, journal.ListOptions{})
	require.NoError(t, err)
	kinds := make([]journal.Kind, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	require.Equal(t, []journal.Kind{
		journal.KindRosterCleared,
		journal.KindRosterImportFailed,
		journal.KindRosterImported,
	}, kinds)

	kind := journal.KindRosterImported
	entries, err = env.journal.Recent(ctx, journal.ListOptions{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Imported 1 participants", entries[0].Summary)
}

func TestAssistantWithoutCredentialIsJournaledAsFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	msg, err := env.desk.Send(ctx, "Draft the agenda")
	require.NoError(t, err)
	require.True(t, msg.IsError)

	kind := journal.KindAssistantFailed
	entries, err := env.journal.Recent(ctx, journal.ListOptions{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Draft the agenda", entries[0].Summary)
}
