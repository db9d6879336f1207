package roster_test

import (
	"strings"
	"testing"

	"github.com/ganot/enablement-desk/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

const header = "Name,Email,Department,Session Date,Time"

func TestParse_SingleRow(t *testing.T) {
	got, err := roster.Parse(header + "\nAlice,alice@x.com,IT,2024-01-05,10:00")
	require.NoError(t, err)
	require.Equal(t, []roster.Participant{{
		Name:        "Alice",
		Email:       "alice@x.com",
		Department:  "IT",
		SessionDate: "2024-01-05",
		Time:        "10:00",
	}}, got)
}

func TestParse_ShortRowsDropped(t *testing.T) {
	got, err := roster.Parse(header + "\nBob,bob@x.com,Ops\nCara,cara@x.com,HR,2024-01-06,11:00")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Cara", got[0].Name)
}

func TestParse_HeaderOnly(t *testing.T) {
	got, err := roster.Parse(header)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = roster.Parse("")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestParse_BlankLinesKeepOrder(t *testing.T) {
	raw := strings.Join([]string{
		header,
		"",
		"Alice,alice@x.com,IT,2024-01-05,10:00",
		"   ",
		"\t",
		"Bob,bob@x.com,Ops,2024-01-06,14:30",
		"",
	}, "\n")
	got, err := roster.Parse(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Alice", got[0].Name)
	require.Equal(t, "Bob", got[1].Name)
}

func TestParse_TrimsAndIgnoresExtraColumns(t *testing.T) {
	got, err := roster.Parse(header + "\r\n  Dan , dan@x.com ,Finance, 2024-02-01 , 09:00 ,extra,more\r\n")
	require.NoError(t, err)
	require.Equal(t, []roster.Participant{{
		Name:        "Dan",
		Email:       "dan@x.com",
		Department:  "Finance",
		SessionDate: "2024-02-01",
		Time:        "09:00",
	}}, got)
}

func TestParse_HeaderContentNotValidated(t *testing.T) {
	got, err := roster.Parse("Alice,alice@x.com,IT,2024-01-05,10:00\nBob,bob@x.com,Ops,2024-01-06,14:30")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Bob", got[0].Name)
}

func TestParse_EmbeddedCommaShiftsColumns(t *testing.T) {
	got, err := roster.Parse(header + "\n\"Doe, Jane\",jane@x.com,IT,2024-01-05,10:00")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, `"Doe`, got[0].Name)
	require.Equal(t, `Jane"`, got[0].Email)
}

func TestParse_Malformed(t *testing.T) {
	_, err := roster.Parse(header + "\n\xff\xfe,bad")
	require.ErrorIs(t, err, roster.ErrMalformed)
	require.Contains(t, err.Error(), roster.FormatHint)

	_, err = roster.Parse(strings.Repeat("a", roster.MaxImportBytes+1))
	require.ErrorIs(t, err, roster.ErrMalformed)
}

func TestRoster_ImportIsAtomic(t *testing.T) {
	r := roster.New()
	_, err := r.Import(header + "\nAlice,alice@x.com,IT,2024-01-05,10:00")
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	_, err = r.Import("\xff")
	require.ErrorIs(t, err, roster.ErrMalformed)
	require.Equal(t, 1, r.Len())
	require.Equal(t, "Alice", r.List()[0].Name)

	r.Clear()
	require.Zero(t, r.Len())
}
