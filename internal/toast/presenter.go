package toast

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders each kind of toast.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// DefaultStyles returns colored styles.
func DefaultStyles() Styles {
	return Styles{
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),  // Green
		Warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")), // Yellow
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),             // Cyan
	}
}

// PlainStyles returns styles without color, for --no-color.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Error: plain, Success: plain, Warning: plain, Info: plain}
}

func (s Styles) forKind(k Kind) lipgloss.Style {
	switch k {
	case KindError:
		return s.Error
	case KindSuccess:
		return s.Success
	case KindWarning:
		return s.Warning
	default:
		return s.Info
	}
}

// Icon returns the prefix shown before a message of kind k.
func Icon(k Kind) string {
	switch k {
	case KindError:
		return "✗"
	case KindSuccess:
		return "✓"
	case KindWarning:
		return "!"
	default:
		return "i"
	}
}

// Render formats msg as a single styled line.
func (s Styles) Render(msg Message) string {
	return s.forKind(msg.Kind).Render(fmt.Sprintf("%s %s", Icon(msg.Kind), msg.Content))
}

// TerminalPresenter writes each toast as one line. A printed line cannot be
// taken back, so Hide only forgets the key.
type TerminalPresenter struct {
	w      io.Writer
	styles Styles

	mu      sync.Mutex
	visible map[string]bool
}

// NewTerminalPresenter writes toasts to w.
func NewTerminalPresenter(w io.Writer, styles Styles) *TerminalPresenter {
	return &TerminalPresenter{
		w:       w,
		styles:  styles,
		visible: make(map[string]bool),
	}
}

func (p *TerminalPresenter) Show(msg Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible[msg.Key] = true
	fmt.Fprintln(p.w, p.styles.Render(msg))
}

func (p *TerminalPresenter) Hide(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.visible, key)
}

// Visible returns how many toasts have been shown and not hidden.
func (p *TerminalPresenter) Visible() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.visible)
}
