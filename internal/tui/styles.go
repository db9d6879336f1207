package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared by all pages.
type Styles struct {
	App       lipgloss.Style
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Card      lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Pending   lipgloss.Style
	User      lipgloss.Style
	Model     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Spinner   lipgloss.Style
}

var (
	primary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	subtle  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	good    = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	bad     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	border  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

// DefaultStyles returns the desk palette.
func DefaultStyles() Styles {
	return Styles{
		App:       lipgloss.NewStyle().Padding(0, 1),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(subtle),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(primary).Underline(true),
		Footer:    lipgloss.NewStyle().Foreground(subtle).MarginTop(1),
		Title:     lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(subtle),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Done:      lipgloss.NewStyle().Foreground(good),
		Pending:   lipgloss.NewStyle().Foreground(subtle),
		User:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Model:     lipgloss.NewStyle().Bold(true).Foreground(good),
		Error:     lipgloss.NewStyle().Foreground(bad),
		Success:   lipgloss.NewStyle().Foreground(good),
		Spinner:   lipgloss.NewStyle().Foreground(primary),
	}
}
