package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/toast"
	"github.com/crossorg/hrconsole/internal/ux"
)

// ViewType represents the current view being displayed
type ViewType int

// View type constants
const (
	// ViewMain shows the current page
	ViewMain ViewType = iota
	// ViewHelp is the help screen
	ViewHelp
)

// Console is what the shell drives.
type Console interface {
	Open(ctx context.Context, path string) (ux.Renderable, error)
	Logout(ctx context.Context)
	Location() string
}

// Model represents the TUI application state
type Model struct {
	console Console
	ctx     context.Context

	// Navigation state
	path    string
	history []string
	page    ux.Renderable
	loading bool
	lastErr error

	toasts []toast.Message

	// UI state
	currentView ViewType
	noColor     bool
	width       int
	height      int
	ready       bool
	quitting    bool
	wantsLogin  bool

	input    textinput.Model
	viewport viewport.Model
	keys     keyMap

	// Styles
	styles Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Muted       lipgloss.Style
	Border      lipgloss.Style
	Highlighted lipgloss.Style
	Help        lipgloss.Style
	Key         lipgloss.Style
	KeyDesc     lipgloss.Style
	Toasts      toast.Styles
}

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Submit   key.Binding
	Clear    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

// NewModel creates a shell that starts at path.
func NewModel(ctx context.Context, c Console, path string, noColor bool) Model {
	in := textinput.New()
	in.Prompt = "hrconsole> "
	in.Placeholder = "open /notifications, back, home, logout, help"
	in.Focus()

	styles := DefaultStyles()
	if noColor {
		styles = PlainStyles()
	}
	if path == "" {
		path = "/"
	}

	return Model{
		console:     c,
		ctx:         ctx,
		path:        path,
		currentView: ViewMain,
		noColor:     noColor,
		input:       in,
		viewport:    viewport.New(80, 20),
		keys:        defaultKeys(),
		styles:      styles,
	}
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(0, 1),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).  // Purple
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Toasts: toast.DefaultStyles(),
	}
}

// PlainStyles drops every color and border.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title: plain, Subtitle: plain, Status: plain, Error: plain,
		Success: plain, Warning: plain, Muted: plain, Border: plain,
		Highlighted: plain, Help: plain, Key: plain, KeyDesc: plain,
		Toasts: toast.PlainStyles(),
	}
}

// Init opens the starting page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.open(m.path))
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.refreshViewport()
		return m, nil

	case PageLoadedMsg:
		m.loading = false
		m.path = m.console.Location()
		if m.path == "" {
			m.path = msg.Path
		}
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.page = msg.Page
		} else if errors.HasCode(msg.Err, errors.ErrCodeNotLoggedIn) {
			m.page = nil
		}
		m.refreshViewport()
		m.viewport.GotoTop()
		return m, nil

	case NavigatedMsg:
		// A navigation made outside the shell, such as the session-expiry
		// redirect, reloads the page.
		if m.loading || msg.Path == m.path {
			return m, nil
		}
		m.loading = true
		return m, m.open(msg.Path)

	case ToastShownMsg:
		m.toasts = append(m.toasts, msg.Message)
		return m, nil

	case ToastHiddenMsg:
		kept := make([]toast.Message, 0, len(m.toasts))
		for _, t := range m.toasts {
			if t.Key != msg.Key {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.currentView == ViewHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = ViewMain
		} else {
			m.currentView = ViewHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.currentView = ViewMain
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		return m.run(line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// run executes one shell command.
func (m Model) run(line string) (tea.Model, tea.Cmd) {
	if line == "" {
		return m, nil
	}
	m.currentView = ViewMain

	cmd, arg := parseCommand(line)
	switch cmd {
	case "quit", "exit":
		m.quitting = true
		return m, tea.Quit
	case "help", "?":
		m.currentView = ViewHelp
		return m, nil
	case "login":
		m.wantsLogin = true
		m.quitting = true
		return m, tea.Quit
	case "logout":
		m.history = nil
		m.loading = true
		return m, m.logout()
	case "home":
		return m.navigate("/", true)
	case "refresh", "r":
		return m.navigate(m.path, false)
	case "back", "b":
		if len(m.history) == 0 {
			return m, nil
		}
		prev := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		return m.navigate(prev, false)
	case "open", "o":
		if arg == "" {
			m.lastErr = errors.New(errors.ErrCodeAPIRequest, "usage: open <path>")
			m.refreshViewport()
			return m, nil
		}
		return m.navigate(arg, true)
	}

	m.lastErr = errors.New(errors.ErrCodeAPIRequest, "unknown command: "+cmd)
	m.refreshViewport()
	return m, nil
}

func (m Model) navigate(path string, remember bool) (tea.Model, tea.Cmd) {
	if remember && m.path != "" && m.path != path {
		m.history = append(m.history, m.path)
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
	}
	m.loading = true
	return m, m.open(path)
}

func (m Model) open(path string) tea.Cmd {
	c, ctx := m.console, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, openTimeout)
		defer cancel()
		page, err := c.Open(ctx, path)
		return PageLoadedMsg{Path: path, Page: page, Err: err}
	}
}

func (m Model) logout() tea.Cmd {
	c, ctx := m.console, m.ctx
	return func() tea.Msg {
		c.Logout(ctx)
		page, err := c.Open(ctx, "/login")
		return PageLoadedMsg{Path: "/login", Page: page, Err: err}
	}
}

// parseCommand splits a shell line. A bare path is shorthand for open.
func parseCommand(line string) (string, string) {
	if strings.HasPrefix(line, "/") {
		return "open", line
	}
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

// WantsLogin reports whether the shell exited so the user can log in.
func (m Model) WantsLogin() bool {
	return m.wantsLogin
}

// Path returns the page currently shown.
func (m Model) Path() string {
	return m.path
}

const (
	maxHistory   = 50
	openTimeout  = 30 * time.Second
	chromeHeight = 6
)

// PageLoadedMsg carries the result of opening a path.
type PageLoadedMsg struct {
	Path string
	Page ux.Renderable
	Err  error
}

// NavigatedMsg reports a navigation the shell did not start.
type NavigatedMsg struct {
	Path string
}

// ToastShownMsg adds a toast to the overlay.
type ToastShownMsg struct {
	Message toast.Message
}

// ToastHiddenMsg removes a toast from the overlay.
type ToastHiddenMsg struct {
	Key string
}
