package playground

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/pluggedin/pluggedin/internal/domain"
	"github.com/pluggedin/pluggedin/internal/playground"
)

type fetchMsg domain.FetchResult

type sendErrMsg struct{ err error }

type styles struct {
	header  lipgloss.Style
	status  lipgloss.Style
	errText lipgloss.Style
	log     lipgloss.Style
	partial lipgloss.Style
	roles   map[domain.Role]lipgloss.Style
}

func newStyles() styles {
	muted := lipgloss.Color("241")

	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		status:  lipgloss.NewStyle().Foreground(muted),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		log:     lipgloss.NewStyle().Foreground(muted),
		partial: lipgloss.NewStyle().Foreground(muted).Italic(true),
		roles: map[domain.Role]lipgloss.Style{
			domain.RoleHuman: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
			domain.RoleAI:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
			domain.RoleTool:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		},
	}
}

// model is the bubbletea model for one playground session.
type model struct {
	logger    hclog.Logger
	client    *Client
	sessionID uuid.UUID
	profileID string

	poller  *playground.Poller
	scroll  *playground.ScrollKeeper
	results chan domain.FetchResult

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	styles   styles

	messages []domain.Message
	logLines []string
	thinking bool
	ready    bool
	width    int
	height   int
	err      error
}

func newModel(logger hclog.Logger, client *Client, sessionID uuid.UUID, profileID string, poller *playground.Poller, results chan domain.FetchResult) model {
	input := textinput.New()
	input.Placeholder = "Ask the connected MCP servers anything..."
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return model{
		logger:    logger,
		client:    client,
		sessionID: sessionID,
		profileID: profileID,
		poller:    poller,
		scroll:    &playground.ScrollKeeper{},
		results:   results,
		viewport:  viewport.New(0, 0),
		input:     input,
		spin:      sp,
		styles:    newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, waitForFetch(m.results))
}

// waitForFetch forwards poller results into the bubbletea update loop.
func waitForFetch(results chan domain.FetchResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			return nil
		}
		return fetchMsg(result)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.input.Width = msg.Width - 4
		m.ready = true
		m.viewport.SetContent(m.renderConversation())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			content := strings.TrimSpace(m.input.Value())
			if content == "" {
				break
			}
			m.input.Reset()
			m.thinking = true
			m.messages = append(m.messages, domain.Message{Role: domain.RoleHuman, Content: content})
			m.viewport.SetContent(m.renderConversation())
			m.viewport.GotoBottom()
			cmds = append(cmds, m.sendCmd(content))
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			m.scroll.NoteUserScroll(m.viewport.AtBottom())
			cmds = append(cmds, cmd)
		}

	case fetchMsg:
		m.applyFetch(domain.FetchResult(msg))
		cmds = append(cmds, waitForFetch(m.results))

	case sendErrMsg:
		m.err = msg.err
		m.thinking = false
		m.poller.NoteResponseComplete()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sendCmd posts the user message and nudges the poller into thinking mode.
func (m model) sendCmd(content string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.SendMessage(context.Background(), m.sessionID, content); err != nil {
			return sendErrMsg{err: err}
		}
		m.poller.NoteMessageSent()
		return nil
	}
}

// applyFetch rebuilds the conversation from the full log tail, merging any
// partial assistant message, and restores the scroll position afterwards.
func (m *model) applyFetch(result domain.FetchResult) {
	m.err = nil

	list := &playground.MessageList{}
	var logLines []string
	for _, entry := range result.Logs {
		if msg, ok := parseChatMessage(entry); ok {
			list.Append(msg)
			continue
		}
		logLines = append(logLines, fmt.Sprintf("[%s] %s", entry.Type, entry.Message))
	}
	m.messages = list.Messages()
	m.logLines = logLines

	if m.thinking && !result.HasPartialMessage && lastIsFinalResponse(m.messages) {
		m.thinking = false
		m.poller.NoteResponseComplete()
	}

	m.scroll.Capture(m.viewport.YOffset)
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderConversation())

	if offset, ok := m.scroll.Restore(m.viewport.YOffset); ok {
		m.viewport.SetYOffset(offset)
	}
	if !m.scroll.UserControlled() && wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// parseChatMessage decodes a log entry as a chat message. Entries that are not
// JSON-encoded messages stay plain log lines.
func parseChatMessage(entry domain.SessionLog) (domain.Message, bool) {
	if msg, ok := playground.ParsePartialMessage(entry); ok {
		return msg, true
	}
	if entry.Type != domain.LogTypeResponse {
		return domain.Message{}, false
	}

	var msg domain.Message
	if err := json.Unmarshal([]byte(entry.Message), &msg); err != nil {
		return domain.Message{}, false
	}
	if msg.Role == "" {
		return domain.Message{}, false
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = entry.CreatedAt
	}

	return msg, true
}

func lastIsFinalResponse(msgs []domain.Message) bool {
	if len(msgs) == 0 {
		return false
	}
	last := msgs[len(msgs)-1]
	return last.Role == domain.RoleAI && !last.IsPartial
}

func (m model) renderConversation() string {
	var b strings.Builder

	for _, line := range m.logLines {
		b.WriteString(m.styles.log.Render(line))
		b.WriteString("\n")
	}
	if len(m.logLines) > 0 {
		b.WriteString("\n")
	}

	for _, msg := range m.messages {
		role := m.styles.roles[msg.Role]
		b.WriteString(role.Render(string(msg.Role) + ">"))
		b.WriteString(" ")
		if msg.IsPartial {
			b.WriteString(msg.Content)
			b.WriteString(m.styles.partial.Render(" ..."))
		} else {
			b.WriteString(msg.Content)
		}
		b.WriteString("\n\n")
	}

	return b.String()
}

func (m model) View() string {
	if !m.ready {
		return "Connecting to session..."
	}

	header := m.styles.header.Render(fmt.Sprintf("pluggedin playground - profile %s - session %s", m.profileID, m.sessionID))

	status := m.styles.status.Render(fmt.Sprintf("poll %s", m.poller.Interval()))
	if m.thinking {
		status = m.spin.View() + " " + m.styles.status.Render(fmt.Sprintf("thinking - poll %s", m.poller.Interval()))
	}
	if m.err != nil {
		status = m.styles.errText.Render(m.err.Error())
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.viewport.View(), m.input.View(), status)
}
