package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexusai/nexus-crm/internal/agent"
	"github.com/nexusai/nexus-crm/internal/app"
	"github.com/nexusai/nexus-crm/internal/cli/formatter"
	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/metrics"
)

// replyMsg carries the answer of one chat turn back into the model.
type replyMsg struct {
	reply agent.Reply
	err   error
}

type chatKeyMap struct {
	Send key.Binding
	Quit key.Binding
}

func (k chatKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Send, k.Quit} }

func (k chatKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultChatKeys() chatKeyMap {
	return chatKeyMap{
		Send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// chatModel is the full-screen assistant conversation. Each turn runs as a
// Cmd so the spinner keeps moving during the agent's thinking delay.
type chatModel struct {
	ctx      context.Context
	chat     app.ChatUseCase
	metrics  *metrics.Metrics
	role     domain.Role
	clientID string

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    chatKeyMap

	messages []string
	waiting  bool
	quitting bool
}

func newChatModel(ctx context.Context, chat app.ChatUseCase, m *metrics.Metrics, role domain.Role, clientID string) *chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about clients, tickets, contracts..."
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))

	cm := &chatModel{
		ctx:      ctx,
		chat:     chat,
		metrics:  m,
		role:     role,
		clientID: clientID,
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultChatKeys(),
	}
	cm.greet()
	return cm
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" || m.waiting {
				return m, nil
			}
			return m.handleLine(line)
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages, formatter.StyleRed.Render("Error: "+msg.err.Error()))
			return m, nil
		}
		if m.metrics != nil {
			m.metrics.RecordChat(string(msg.reply.Role), msg.reply.Intent)
		}
		m.messages = append(m.messages, strings.TrimRight(formatter.FormatReply(msg.reply), "\n"))
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, msg := range m.messages {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}
	if m.quitting {
		return b.String()
	}
	if m.waiting {
		b.WriteString(m.spinner.View() + formatter.Dim(" NEXUS is typing...") + "\n\n")
	}
	b.WriteString(formatter.StylePurple.Render(string(m.role)) + formatter.Dim("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

// handleLine runs slash commands locally and sends everything else to the
// assistant.
func (m *chatModel) handleLine(line string) (tea.Model, tea.Cmd) {
	switch fields := strings.Fields(line); strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		m.quitting = true
		return m, tea.Quit
	case "/clear":
		m.messages = nil
		return m, nil
	case "/role":
		if len(fields) < 2 {
			m.messages = append(m.messages, formatter.Dim("usage: /role owner|operator|client"))
			return m, nil
		}
		m.role = domain.ParseRole(fields[1])
		m.greet()
		return m, nil
	}

	m.messages = append(m.messages, formatter.Dim("You: ")+line)
	m.waiting = true
	return m, tea.Batch(m.spinner.Tick, m.ask(line))
}

func (m *chatModel) ask(line string) tea.Cmd {
	req := app.ChatRequest{Message: line, Role: m.role, ClientID: m.clientID}
	return func() tea.Msg {
		reply, err := m.chat.Ask(m.ctx, req)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *chatModel) greet() {
	text := m.chat.Greet(m.ctx, m.role)
	m.messages = append(m.messages, strings.TrimRight(formatter.FormatReply(agent.Reply{Text: text, Role: m.role}), "\n"))
}
