package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/view"
	"github.com/stretchr/testify/require"
)

type scriptedAssistant struct{}

func (scriptedAssistant) Respond(_ context.Context, prompt string, _ []chat.Message, _ string) assistant.Reply {
	return assistant.Reply{Text: "Noted: " + prompt}
}

func newModel(t *testing.T) (Model, *desk.Controller) {
	t.Helper()
	d := desk.New(desk.Config{Assistant: scriptedAssistant{}})
	m := New(context.Background(), d)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), d
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// findReply runs cmd and any batched commands until a replyMsg appears.
func findReply(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case replyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if reply, ok := c().(replyMsg); ok {
				return reply
			}
		}
	}
	t.Fatal("no reply produced")
	return replyMsg{}
}

func TestModel_TabCyclesViews(t *testing.T) {
	m, d := newModel(t)
	require.Equal(t, view.Dashboard, d.View())
	require.Contains(t, m.View(), "Overall Progress")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, view.Schedule, d.View())
	require.Contains(t, m.View(), "Phase 1: Planning")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, view.Assistant, d.View())

	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, view.Dashboard, d.View())
}

func TestModel_NumberKeysJumpOutsideTextInput(t *testing.T) {
	m, d := newModel(t)

	m, _ = press(t, m, runes("3"))
	require.Equal(t, view.Brief, d.View())

	m, _ = press(t, m, runes("4"))
	require.Equal(t, view.Assistant, d.View())

	// The assistant input captures digits.
	_, _ = press(t, m, runes("1"))
	require.Equal(t, view.Assistant, d.View())
}

func TestSchedule_ToggleUpdatesProgress(t *testing.T) {
	m, d := newModel(t)
	m, _ = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeySpace})

	phase, err := d.Phase(1)
	require.NoError(t, err)
	require.True(t, phase.Activities[0].Completed)
	require.Equal(t, 25, phase.Progress)
	require.Contains(t, m.View(), "[x]")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	phase, err = d.Phase(1)
	require.NoError(t, err)
	require.False(t, phase.Activities[0].Completed)
	require.Equal(t, 0, phase.Progress)
}

func TestSchedule_EditDueDate(t *testing.T) {
	m, d := newModel(t)
	m, _ = press(t, m, runes("2"), runes("j"), runes("d"))
	m, _ = press(t, m, runes("2025-03-14"), tea.KeyMsg{Type: tea.KeyEnter})

	phase, err := d.Phase(1)
	require.NoError(t, err)
	require.Equal(t, "2025-03-14", phase.Activities[1].DueDate)
	require.Contains(t, m.View(), "due 2025-03-14")

	m, _ = press(t, m, runes("d"), tea.KeyMsg{Type: tea.KeyBackspace}, runes("x"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Contains(t, m.View(), "invalid due date")
	phase, err = d.Phase(1)
	require.NoError(t, err)
	require.Equal(t, "2025-03-14", phase.Activities[1].DueDate)
}

func TestAssistant_SendRoundTrip(t *testing.T) {
	m, d := newModel(t)
	m, _ = press(t, m, runes("4"), runes("When is the pilot?"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	reply := findReply(t, cmd)
	require.NoError(t, reply.Err)

	next, _ := m.Update(reply)
	m = next.(Model)
	msgs := d.Messages()
	require.Len(t, msgs, 3)
	require.Equal(t, "Noted: When is the pilot?", msgs[2].Text)
	require.False(t, m.pages.Select(view.Assistant).(*AssistantPage).Busy())
}

type gatedAssistant struct{ release chan struct{} }

func (a gatedAssistant) Respond(context.Context, string, []chat.Message, string) assistant.Reply {
	<-a.release
	return assistant.Reply{Text: "later"}
}

func TestAssistant_PromptShownWhileWaiting(t *testing.T) {
	gate := gatedAssistant{release: make(chan struct{})}
	d := desk.New(desk.Config{Assistant: gate})
	next, _ := New(context.Background(), d).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := next.(Model)

	m, _ = press(t, m, runes("4"), runes("Who runs the pilot?"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Contains(t, m.View(), "Who runs the pilot?")
	require.True(t, m.pages.Select(view.Assistant).(*AssistantPage).Busy())

	close(gate.release)
	reply := findReply(t, cmd)
	require.NoError(t, reply.Err)
	require.Equal(t, "later", reply.Message.Text)
}

func TestAssistant_ImportRosterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Email,Department,Session Date,Time\nAlice,alice@x.com,IT,2024-01-05,10:00\n"), 0o600))

	m, d := newModel(t)
	m, _ = press(t, m, runes("4"), tea.KeyMsg{Type: tea.KeyCtrlO}, runes(path), tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, d.Participants(), 1)
	require.Contains(t, m.View(), "Imported 1 participants")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Empty(t, d.Participants())
	require.True(t, strings.Contains(m.View(), "Participant data cleared."))
}

func TestAssistant_ImportMissingFileKeepsRoster(t *testing.T) {
	m, d := newModel(t)
	m, _ = press(t, m, runes("4"), tea.KeyMsg{Type: tea.KeyCtrlO}, runes("/nonexistent/roster.csv"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, d.Participants())
	require.Contains(t, m.View(), "read /nonexistent/roster.csv")
}
