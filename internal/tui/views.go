package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crossorg/hrconsole/internal/ux"
)

// renderMain renders the header, the page viewport, toasts and the prompt
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.UnsetMarginBottom().Render("hrconsole")
	location := m.styles.Subtitle.Render(m.path)
	status := ""
	if m.loading {
		status = m.styles.Status.Render(" ⟳ loading")
	}
	return title + " " + location + status
}

// renderPage renders the page and the last error into the viewport body.
func (m Model) renderPage() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(m.styles.Error.Render("✗ ") + ux.FormatError(m.lastErr, "").Error())
		b.WriteString("\n\n")
	}
	if m.page != nil {
		b.WriteString(m.page.Render(m.noColor))
	} else if m.lastErr == nil {
		b.WriteString(m.styles.Muted.Render("Nothing to show yet."))
	}

	return b.String()
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderPage())
}

// renderToasts stacks active toasts, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		lines = append(lines, m.styles.Toasts.Render(t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderHelp renders the help view
func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Help"))
	b.WriteString("\n")

	commands := []struct {
		key  string
		desc string
	}{
		{"open <path>", "Open a page, e.g. open /talent-market?keyword=张"},
		{"/<path>", "Shorthand for open"},
		{"back", "Return to the previous page"},
		{"home", "Open the dashboard"},
		{"refresh", "Reload the current page"},
		{"login", "Leave the shell to sign in"},
		{"logout", "End the session"},
		{"quit", "Leave the shell"},
	}
	for _, c := range commands {
		b.WriteString(m.styles.Key.Render(fmt.Sprintf("%-14s", c.key)))
		b.WriteString(" ")
		b.WriteString(m.styles.KeyDesc.Render(c.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, k := range []struct{ key, desc string }{
		{m.keys.Help.Help().Key, m.keys.Help.Help().Desc},
		{m.keys.PageUp.Help().Key, m.keys.PageUp.Help().Desc},
		{m.keys.PageDown.Help().Key, m.keys.PageDown.Help().Desc},
		{m.keys.Clear.Help().Key, m.keys.Clear.Help().Desc},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	} {
		b.WriteString(m.styles.Key.Render(fmt.Sprintf("%-14s", k.key)))
		b.WriteString(" ")
		b.WriteString(m.styles.KeyDesc.Render(k.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press F1 or Esc to return"))

	return b.String()
}

// renderHelpLine renders the help line at the bottom
func (m Model) renderHelpLine() string {
	helpItems := []string{
		m.styles.Key.Render("f1") + " help",
		m.styles.Key.Render("pgup/pgdn") + " scroll",
		m.styles.Key.Render("back") + " previous",
		m.styles.Key.Render("ctrl+c") + " quit",
	}
	return m.styles.Help.Render(strings.Join(helpItems, " • "))
}
