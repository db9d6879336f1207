package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/ganot/enablement-desk/internal/desk"
	"github.com/ganot/enablement-desk/internal/domain/chat"
	"github.com/ganot/enablement-desk/internal/domain/roster"
)

// replyMsg delivers the outcome of an assistant request.
type replyMsg desk.SendResult

func waitForReply(ch <-chan desk.SendResult) tea.Cmd {
	return func() tea.Msg {
		return replyMsg(<-ch)
	}
}

// AssistantPage is the chat view with roster import.
type AssistantPage struct {
	ctx      context.Context
	desk     Desk
	styles   Styles
	viewport viewport.Model
	input    textarea.Model
	path     textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	width    int

	pending   bool
	importing bool
	status    string
	failed    bool
}

// NewAssistantPage creates the assistant view. Requests run under ctx.
func NewAssistantPage(ctx context.Context, d Desk, styles Styles) *AssistantPage {
	ta := textarea.New()
	ta.Placeholder = "Ask about the rollout… (Enter to send)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4096
	ta.SetHeight(3)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "path/to/roster.csv"
	ti.Prompt = "CSV file: "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	p := &AssistantPage{
		ctx:      ctx,
		desk:     d,
		styles:   styles,
		viewport: viewport.New(80, 16),
		input:    ta,
		path:     ti,
		spinner:  sp,
	}
	p.SetSize(80, 24)
	return p
}

func (p *AssistantPage) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = max(height-7, 3)
	p.input.SetWidth(width)
	p.path.Width = max(width-12, 10)
	if width != p.width || p.renderer == nil {
		p.width = width
		p.renderer = newRenderer(width)
	}
	p.Refresh()
}

func (p *AssistantPage) Capturing() bool { return true }

// Busy reports whether a request from this page is in flight.
func (p *AssistantPage) Busy() bool { return p.pending }

func (p *AssistantPage) Refresh() {
	var sb strings.Builder
	for _, m := range p.desk.Messages() {
		sb.WriteString(p.renderMessage(m))
		sb.WriteString("\n")
	}
	if n := len(p.desk.Participants()); n > 0 {
		sb.WriteString(p.styles.Muted.Render(fmt.Sprintf("%d participants loaded", n)))
		sb.WriteString("\n")
	}
	p.viewport.SetContent(sb.String())
	p.viewport.GotoBottom()
}

func (p *AssistantPage) renderMessage(m chat.Message) string {
	if m.Role == chat.RoleUser {
		return p.styles.User.Render("You") + "\n" + m.Text + "\n"
	}
	body := renderMarkdown(p.renderer, m.Text)
	if m.IsError {
		body = p.styles.Error.Render(m.Text) + "\n"
	}
	return p.styles.Model.Render("Assistant") + "\n" + body
}

func (p *AssistantPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case replyMsg:
		p.pending = false
		switch {
		case errors.Is(msg.Err, desk.ErrBusy):
			p.status, p.failed = "The assistant is still answering another request.", true
		case msg.Err != nil:
			p.status, p.failed = msg.Err.Error(), true
		default:
			p.status, p.failed = "", false
		}
		p.Refresh()
		return nil

	case spinner.TickMsg:
		if !p.pending {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if p.importing {
			return p.updateImport(msg)
		}
		switch msg.String() {
		case "enter":
			prompt := strings.TrimSpace(p.input.Value())
			if prompt == "" || p.pending {
				return nil
			}
			p.input.Reset()
			return p.send(prompt)
		case "esc":
			if p.pending && p.desk.Cancel() {
				p.status, p.failed = "Canceling…", false
			}
			return nil
		case "ctrl+e":
			if p.pending {
				return nil
			}
			return p.send(chat.PilotInvitePrompt)
		case "ctrl+o":
			p.importing = true
			p.input.Blur()
			p.path.Reset()
			return p.path.Focus()
		case "ctrl+x":
			p.desk.ClearRoster(p.ctx)
			p.status, p.failed = "Participant data cleared.", false
			p.Refresh()
			return nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return cmd
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *AssistantPage) send(prompt string) tea.Cmd {
	p.pending = true
	p.status = ""
	ch := p.desk.SendAsync(p.ctx, prompt)
	p.Refresh()
	return tea.Batch(waitForReply(ch), p.spinner.Tick)
}

func (p *AssistantPage) updateImport(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.endImport()
		return nil
	case "enter":
		path := strings.TrimSpace(p.path.Value())
		p.endImport()
		if path == "" {
			return nil
		}
		p.importFile(path)
		return nil
	}
	var cmd tea.Cmd
	p.path, cmd = p.path.Update(msg)
	return cmd
}

func (p *AssistantPage) endImport() {
	p.importing = false
	p.path.Blur()
	p.input.Focus()
}

func (p *AssistantPage) importFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		p.status, p.failed = fmt.Sprintf("read %s: %v", path, err), true
		return
	}
	if info.Size() > roster.MaxImportBytes {
		p.status, p.failed = fmt.Sprintf("%s is larger than %d bytes", path, roster.MaxImportBytes), true
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.status, p.failed = fmt.Sprintf("read %s: %v", path, err), true
		return
	}
	participants, err := p.desk.ImportRoster(p.ctx, string(data))
	if err != nil {
		p.status, p.failed = roster.FormatHint, true
	} else {
		p.status, p.failed = fmt.Sprintf("Imported %d participants from %s", len(participants), path), false
	}
	p.Refresh()
}

func (p *AssistantPage) View() string {
	var sb strings.Builder
	sb.WriteString(p.viewport.View())
	sb.WriteString("\n")

	switch {
	case p.pending || p.desk.Loading():
		sb.WriteString(p.spinner.View() + " Thinking… (esc to cancel)")
	case p.status != "" && p.failed:
		sb.WriteString(p.styles.Error.Render(p.status))
	case p.status != "":
		sb.WriteString(p.styles.Success.Render(p.status))
	}
	sb.WriteString("\n")

	if p.importing {
		sb.WriteString(p.path.View())
	} else {
		sb.WriteString(p.input.View())
	}
	return sb.String()
}
