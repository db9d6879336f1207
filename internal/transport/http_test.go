package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ganot/enablement-desk/internal/assistant"
	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/journal"
	"github.com/ganot/enablement-desk/internal/domain/plan"
	"github.com/ganot/enablement-desk/internal/domain/roster"
	"github.com/ganot/enablement-desk/internal/view"
	"github.com/stretchr/testify/require"
)

type echoAssistant struct{}

func (echoAssistant) Respond(_ context.Context, prompt string, _ []chat.Message, _ string) assistant.Reply {
	return assistant.Reply{Text: "echo: " + prompt}
}

type fakeJournal struct {
	opts journal.ListOptions
}

func (f *fakeJournal) Recent(_ context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	f.opts = opts
	return []journal.Entry{{ID: 1, Kind: journal.KindRosterCleared, Summary: "Participant data cleared"}}, nil
}

func newTestServer(t *testing.T, auth func(http.Handler) http.Handler) (*httptest.Server, *desk.Controller, *fakeJournal) {
	t.Helper()
	ctrl := desk.New(desk.Config{Assistant: echoAssistant{}})
	j := &fakeJournal{}
	server := httptest.NewServer(NewServer(Config{Desk: ctrl, Journal: j, Auth: auth}))
	t.Cleanup(server.Close)
	return server, ctrl, j
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHTTPServer_Health(t *testing.T) {
	server, _, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, server.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_HealthSkipsAuth(t *testing.T) {
	server, _, _ := newTestServer(t, AuthMiddleware(StaticToken{Token: "secret"}))

	resp := do(t, http.MethodGet, server.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, server.URL+"/api/phases", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_ListPhases(t *testing.T) {
	server, _, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, server.URL+"/api/phases", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	phases := decode[[]plan.Phase](t, resp)
	require.Len(t, phases, 6)
	require.Equal(t, plan.StatusActive, phases[0].Status)
}

func TestHTTPServer_UpdateActivity(t *testing.T) {
	server, ctrl, _ := newTestServer(t, nil)

	resp := do(t, http.MethodPatch, server.URL+"/api/phases/1/activities/0", `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	phase := decode[plan.Phase](t, resp)
	require.True(t, phase.Activities[0].Completed)
	require.Equal(t, plan.Progress(phase.Activities), phase.Progress)

	stored, err := ctrl.Phase(1)
	require.NoError(t, err)
	require.Equal(t, phase.Progress, stored.Progress)

	resp = do(t, http.MethodPatch, server.URL+"/api/phases/1/activities/1", `{"due_date":"2025-03-01"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	phase = decode[plan.Phase](t, resp)
	require.Equal(t, "2025-03-01", phase.Activities[1].DueDate)
}

func TestHTTPServer_UpdateActivityErrors(t *testing.T) {
	server, _, _ := newTestServer(t, nil)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown phase", "/api/phases/99/activities/0", `{"completed":true}`, http.StatusNotFound, "PHASE_NOT_FOUND"},
		{"index out of range", "/api/phases/1/activities/42", `{"completed":true}`, http.StatusUnprocessableEntity, "ACTIVITY_OUT_OF_RANGE"},
		{"bad date", "/api/phases/1/activities/0", `{"due_date":"03/01/2025"}`, http.StatusUnprocessableEntity, "INVALID_DUE_DATE"},
		{"both fields", "/api/phases/1/activities/0", `{"completed":true,"due_date":""}`, http.StatusBadRequest, "INVALID_MUTATION"},
		{"bad json", "/api/phases/1/activities/0", `{`, http.StatusBadRequest, "BAD_REQUEST"},
		{"non-numeric index", "/api/phases/1/activities/x", `{"completed":true}`, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPatch, server.URL+tt.path, tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
			body := decode[map[string]APIError](t, resp)
			require.Equal(t, tt.code, body["error"].Code)
		})
	}
}

func TestHTTPServer_ViewsFallBackToDashboard(t *testing.T) {
	server, ctrl, _ := newTestServer(t, nil)

	resp := do(t, http.MethodPut, server.URL+"/api/views/schedule", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, view.Schedule, ctrl.View())

	resp = do(t, http.MethodPut, server.URL+"/api/views/settings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[struct {
		View view.State       `json:"view"`
		Data DashboardResponse `json:"data"`
	}](t, resp)
	require.Equal(t, view.Dashboard, body.View)
	require.Equal(t, 6, body.Data.Summary.TotalPhases)
	require.Equal(t, view.Dashboard, ctrl.View())
}

func TestHTTPServer_GetViewDoesNotNavigate(t *testing.T) {
	server, ctrl, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, server.URL+"/api/views/schedule", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[ViewResponse](t, resp)
	require.Equal(t, view.Schedule, body.View)
	require.Equal(t, view.Dashboard, ctrl.View())

	resp = do(t, http.MethodGet, server.URL+"/api/views/unknown", "")
	require.Equal(t, view.Dashboard, decode[ViewResponse](t, resp).View)
}

func TestHTTPServer_Context(t *testing.T) {
	server, _, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, server.URL+"/api/context", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "Project: "))
	require.NotContains(t, string(data), "Scheduled Participants:")
}

func TestHTTPServer_AssistantMessages(t *testing.T) {
	server, _, _ := newTestServer(t, nil)

	resp := do(t, http.MethodPost, server.URL+"/api/assistant/messages", `{"text":"When is the pilot?"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decode[chat.Message](t, resp)
	require.Equal(t, chat.RoleModel, msg.Role)
	require.Equal(t, "echo: When is the pilot?", msg.Text)

	resp = do(t, http.MethodGet, server.URL+"/api/assistant/messages", "")
	msgs := decode[[]chat.Message](t, resp)
	require.Len(t, msgs, 3)

	resp = do(t, http.MethodPost, server.URL+"/api/assistant/messages", `{"text":"   "}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodDelete, server.URL+"/api/assistant/inflight", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, map[string]bool{"canceled": false}, decode[map[string]bool](t, resp))
}

func TestHTTPServer_Roster(t *testing.T) {
	server, ctrl, _ := newTestServer(t, nil)

	csv := "Name,Email,Department,SessionDate,Time\nAda,ada@example.com,Finance,2025-02-03,10:00\n"
	resp := do(t, http.MethodPut, server.URL+"/api/roster", csv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]roster.Participant](t, resp), 1)

	resp = do(t, http.MethodPut, server.URL+"/api/roster", "Name,Email\n\xff\xfe")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Len(t, ctrl.Participants(), 1)

	resp = do(t, http.MethodDelete, server.URL+"/api/roster", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, ctrl.Participants())
}

func TestHTTPServer_Journal(t *testing.T) {
	server, _, j := newTestServer(t, nil)

	resp := do(t, http.MethodGet, server.URL+"/api/journal?limit=5&phase_id=2&kind=roster_cleared", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]journal.Entry](t, resp), 1)
	require.Equal(t, 5, j.opts.Limit)
	require.NotNil(t, j.opts.PhaseID)
	require.Equal(t, 2, *j.opts.PhaseID)
	require.Equal(t, journal.KindRosterCleared, *j.opts.Kind)

	resp = do(t, http.MethodGet, server.URL+"/api/journal?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
