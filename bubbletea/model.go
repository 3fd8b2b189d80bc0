package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eventchat"
	"github.com/fwojciec/eventchat/term"
)

var _ tea.Model = Model{}

type plainRenderer struct{}

func (plainRenderer) Render(a eventchat.Answer, _ int) string { return a.String() }

// Model is the Bubble Tea model for the event assistant TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	send     SendFunc
	display  *Display
	ctx      context.Context
	sends    *sync.WaitGroup
	session  *eventchat.Session
	styles   term.Styles
	cards    term.Cards
	renderer term.AnswerRenderer

	blocks  []MessageBlock
	current *AssistantBlock
	events  []eventchat.RankedEvent

	onlyFuture bool
	running    bool
	cancel     context.CancelFunc
	doneCh     chan SendDoneMsg
	err        error
	ready      bool
}

// Option configures a [Model].
type Option func(*Model)

// WithOnlyFuture sets the initial "only future events" filter.
func WithOnlyFuture(v bool) Option {
	return func(m *Model) { m.onlyFuture = v }
}

// WithAnswerRenderer sets how final answers are rendered. Defaults to plain
// text.
func WithAnswerRenderer(r term.AnswerRenderer) Option {
	return func(m *Model) { m.renderer = r }
}

// WithBaseURL resolves site-relative event URLs against url.
func WithBaseURL(url string) Option {
	return func(m *Model) { m.cards.BaseURL = url }
}

// New creates a TUI Model. send must render through display. session is
// only read, to show earlier history; send is expected to record new
// exchanges in it.
func New(send SendFunc, display *Display, session *eventchat.Session, theme eventchat.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about events..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := term.NewStyles(theme)
	m := Model{
		Input:    ti,
		send:     send,
		display:  display,
		ctx:      context.Background(),
		sends:    &sync.WaitGroup{},
		session:  session,
		styles:   styles,
		cards:    term.Cards{Styles: styles},
		renderer: plainRenderer{},
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running returns whether a send is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the last send error, if any.
func (m Model) Err() error { return m.err }

// OnlyFuture reports whether questions are restricted to upcoming events.
func (m Model) OnlyFuture() bool { return m.onlyFuture }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PlaceholderMsg:
		if m.current != nil {
			m.current.SetPlaceholder(msg.Text)
		}
		return m.refresh(), m.listen()

	case AnswerMsg:
		if m.current != nil {
			m.current.SetAnswer(msg.Answer)
		}
		return m.refresh(), m.listen()

	case FailureMsg:
		if m.current != nil {
			m.current.SetFailure(msg.Message)
		}
		return m.refresh(), m.listen()

	case EventsMsg:
		m.events = msg.Events
		return m.refresh(), m.listen()

	case SendDoneMsg:
		if m.cancel != nil {
			m.cancel()
		}
		m.running = false
		m.cancel = nil
		m.doneCh = nil
		m.current = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		return m, m.Input.Focus()
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submit(text)

	case tea.KeyCtrlF:
		if !m.running {
			m.onlyFuture = !m.onlyFuture
		}
		return m, nil
	}

	// Only non-character keys reach the viewport, so typing "j" or "k" does
	// not scroll.
	if !m.running {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil

	m.current = NewAssistantBlock(m.renderer, m.styles)
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles), m.current)
	m.events = nil

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.doneCh = make(chan SendDoneMsg, 1)
	m.running = true

	req := eventchat.Request{Message: text, OnlyFuture: m.onlyFuture}
	m.sends.Add(1)
	return m.refresh(), tea.Batch(
		startSend(m.send, ctx, req, m.doneCh, m.sends),
		m.listen(),
	)
}

func (m Model) listen() tea.Cmd {
	if m.doneCh == nil {
		return nil
	}
	return listen(m.display, m.doneCh)
}

// renderSession creates blocks from the session history.
func (m Model) renderSession() Model {
	if m.session == nil {
		return m
	}
	for _, msg := range m.session.Messages {
		switch msg.Role {
		case eventchat.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Text, m.styles))
		case eventchat.RoleAssistant:
			b := NewAssistantBlock(m.renderer, m.styles)
			b.SetAnswer(eventchat.Answer{Text: msg.Text})
			m.blocks = append(m.blocks, b)
		}
	}
	return m
}

func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderContent() string {
	var parts []string
	for _, block := range m.blocks {
		if v := block.View(m.Viewport.Width); v != "" {
			parts = append(parts, v)
		}
	}
	if section := m.cards.Render(m.events, m.Viewport.Width); section != "" {
		parts = append(parts, section)
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.styles.Muted.Render("Generating...")
	}
	filter := "off"
	if m.onlyFuture {
		filter = "on"
	}
	return m.styles.Muted.Render("Enter to send, Ctrl+F upcoming only: " + filter + ", Ctrl+C to quit")
}

// startSend runs the send in a goroutine and reports its completion on
// doneCh. Renders travel separately through the Display. The caller has
// already added the send to wg.
func startSend(send SendFunc, ctx context.Context, req eventchat.Request, doneCh chan<- SendDoneMsg, wg *sync.WaitGroup) tea.Cmd {
	return func() tea.Msg {
		defer wg.Done()
		res, err := send(ctx, req)
		doneCh <- SendDoneMsg{Result: res, Err: err}
		return nil
	}
}
