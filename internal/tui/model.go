package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/wsdemo/internal/connection"
	"github.com/muurk/wsdemo/internal/logging"
)

// Connection is what the component needs from a connection manager.
// *connection.Manager satisfies it.
type Connection interface {
	Open()
	Send(text string)
	Snapshot() connection.Snapshot
	Updates() <-chan struct{}
	Close() error
}

// updateMsg carries a connection snapshot into Update.
type updateMsg struct {
	snapshot connection.Snapshot
}

type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// Model is the demo screen: a text field, a send button, the connection
// status and the last message received from the server.
type Model struct {
	conn Connection

	input      textarea.Model
	draft      string
	serverText string
	state      connection.ReadyState
	lastSeq    uint64
	focus      focusTarget

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	Width  int
	Height int
}

// New creates the component around conn. The connection is opened when the
// program starts (Init), not here.
func New(conn Connection) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.ShowLineNumbers = false
	// No character or height limit. The textarea still caps a value at
	// 10000 lines.
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(InputHeight)
	ta.SetWidth(MinTerminalWidth - 8)
	ta.Blur()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return Model{
		conn:    conn,
		input:   ta,
		state:   connection.Uninstantiated,
		focus:   focusInput,
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Draft returns the pending outbound text.
func (m Model) Draft() string {
	return m.draft
}

// ServerText returns the payload of the most recent inbound message.
func (m Model) ServerText() string {
	return m.serverText
}

// State returns the last observed connection state.
func (m Model) State() connection.ReadyState {
	return m.state
}

// Enabled reports whether the text field and the send button accept input.
func (m Model) Enabled() bool {
	return m.state == connection.Open
}

// Init mounts the component: it opens the connection and starts listening
// for connection updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(mount(m.conn), m.spinner.Tick)
}

func mount(conn Connection) tea.Cmd {
	return func() tea.Msg {
		conn.Open()
		return updateMsg{snapshot: conn.Snapshot()}
	}
}

func waitForUpdate(conn Connection) tea.Cmd {
	return func() tea.Msg {
		<-conn.Updates()
		return updateMsg{snapshot: conn.Snapshot()}
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 10; w > 20 {
			m.input.SetWidth(w)
		}
		return m, nil

	case updateMsg:
		var cmd tea.Cmd
		m, cmd = m.observe(msg.snapshot)
		return m, tea.Batch(cmd, waitForUpdate(m.conn))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m.submit(), nil
		case key.Matches(msg, m.keys.SwitchFocus):
			return m.toggleFocus()
		case m.focus == focusButton && key.Matches(msg, m.keys.Press):
			return m.submit(), nil
		}
		if m.focus != focusInput || !m.Enabled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m = m.setDraft(m.input.Value())
		return m, cmd
	}

	// Cursor blink and other textarea internals
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setDraft replaces the draft with the raw field value. No validation.
func (m Model) setDraft(value string) Model {
	m.draft = value
	return m
}

// submit sends the draft verbatim when the connection is open and the draft
// is not blank. The draft is kept after sending.
func (m Model) submit() Model {
	if !m.Enabled() {
		logging.Debug("Submit ignored, connection not open",
			zap.Stringer("state", m.state),
		)
		return m
	}
	if !Sendable(m.draft) {
		return m
	}
	m.conn.Send(m.draft)
	return m
}

// Sendable reports whether a draft may be submitted: anything except empty
// or whitespace-only text.
func Sendable(draft string) bool {
	return strings.TrimSpace(draft) != ""
}

// observe applies a connection snapshot: the state drives the enabled flag,
// and a message with a new sequence number replaces the server text.
func (m Model) observe(snap connection.Snapshot) (Model, tea.Cmd) {
	m.state = snap.State

	if msg := snap.LastMessage; msg != nil && msg.Seq != m.lastSeq {
		m.lastSeq = msg.Seq
		m.serverText = msg.Data
	}

	if !m.Enabled() {
		m.input.Blur()
		return m, nil
	}
	if m.focus == focusInput && !m.input.Focused() {
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	if m.Enabled() {
		return m, m.input.Focus()
	}
	return m, nil
}

// StatusText maps a ready state to the label shown after
// "The WebSocket is currently".
func StatusText(state connection.ReadyState) string {
	switch state {
	case connection.Connecting:
		return "Connecting"
	case connection.Open:
		return "Open"
	case connection.Closing:
		return "Closing"
	case connection.Closed:
		return "Closed"
	case connection.Uninstantiated:
		return "Uninstantiated"
	default:
		return state.String()
	}
}

func statusColor(state connection.ReadyState) lipgloss.Color {
	switch state {
	case connection.Open:
		return SecondaryColor
	case connection.Connecting, connection.Closing:
		return WarningColor
	default:
		return ErrorColor
	}
}

// ServerMessageLine renders the last server text inside literal brackets.
func ServerMessageLine(text string) string {
	return "Server message is [" + text + "]"
}

// View renders the screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(Heading))
	b.WriteString("\n")

	inputStyle := DisabledInputStyle
	if m.Enabled() {
		inputStyle = BlurredInputStyle
		if m.focus == focusInput {
			inputStyle = FocusedInputStyle
		}
	}
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")

	buttonStyle := DisabledButtonStyle
	if m.Enabled() {
		buttonStyle = ButtonStyle
		if m.focus == focusButton {
			buttonStyle = FocusedButtonStyle
		}
	}
	b.WriteString(buttonStyle.Render("[ Send to server. ]"))
	b.WriteString("\n")

	status := lipgloss.NewStyle().Foreground(statusColor(m.state)).Render(StatusText(m.state))
	statusLine := "The WebSocket is currently " + status
	if m.state == connection.Connecting {
		statusLine = m.spinner.View() + " " + statusLine
	}
	b.WriteString(StatusStyle.Render(statusLine))
	b.WriteString("\n")

	b.WriteString(ServerMessageStyle.Render(ServerMessageLine(m.serverText)))
	b.WriteString("\n")

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return RenderApplicationContainer(b.String(), m.Width)
}
