package view_test

import (
	"testing"

	"github.com/ganot/enablement-desk/internal/view"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range view.States {
		require.Equal(t, s, view.Parse(string(s)))
	}
	require.Equal(t, view.Schedule, view.Parse(" Schedule "))
	require.Equal(t, view.Dashboard, view.Parse("settings"))
	require.Equal(t, view.Dashboard, view.Parse(""))
}

func TestRouter_SelectsKnownViews(t *testing.T) {
	r := view.NewRouter("dash").
		Register(view.Schedule, "sched").
		Register(view.Brief, "brief").
		Register(view.Assistant, "chat")

	cases := map[string]string{
		"dashboard": "dash",
		"schedule":  "sched",
		"brief":     "brief",
		"assistant": "chat",
		"reports":   "dash",
		"🙂":         "dash",
	}
	for name, want := range cases {
		_, got := r.Resolve(name)
		require.Equal(t, want, got, name)
	}
	require.Equal(t, "dash", r.Select(view.State("unknown")))
}

func TestState_Cycle(t *testing.T) {
	require.Equal(t, view.Schedule, view.Dashboard.Next())
	require.Equal(t, view.Dashboard, view.Assistant.Next())
	require.Equal(t, view.Assistant, view.Dashboard.Prev())
	require.Equal(t, "Schedule & Plan", view.Schedule.Label())
	require.Equal(t, "Dashboard", view.State("nope").Label())
}
