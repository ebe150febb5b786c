package cmd

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/router"
	"github.com/crossorg/hrconsole/internal/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell [path]",
	Short: "Browse the console interactively",
	Long: `Start a full-screen shell. Type a path (or "open <path>") to open a page,
"back" to return, "logout" to end the session and "quit" to leave. Toasts
appear above the prompt. When the session expires the shell returns to the
login page; type "login" to sign in again without leaving.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	app, presenter, err := cc.App(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	start := "/"
	if len(args) == 1 {
		start = args[0]
	}

	for {
		model := tui.NewModel(ctx, app, start, cc.NoColor)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

		app.Nav.OnNavigate(func(res router.Resolution) {
			p.Send(tui.NavigatedMsg{Path: res.Path})
		})
		forward := tui.NewPresenter(p)
		prev := presenter.Use(forward)

		final, err := p.Run()

		presenter.Use(prev)
		forward.Close()
		app.Nav.OnNavigate(nil)
		if err != nil {
			return err
		}

		m, ok := final.(tui.Model)
		if !ok || !m.WantsLogin() {
			return nil
		}

		creds, err := tui.PromptForLogin(ctx, app.Session.Snapshot().Username)
		if err != nil {
			return err
		}
		if err := app.Login(ctx, creds.Username, creds.Password); err != nil {
			start = m.Path()
			continue
		}
		start = afterLogin(m.Path())
	}
}

// afterLogin returns where to go once signed in: the page the login
// redirect remembered, or home.
func afterLogin(current string) string {
	path, query, _ := strings.Cut(current, "?")
	if path != router.PathLogin {
		return current
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return "/"
	}
	if target := values.Get("redirect"); strings.HasPrefix(target, "/") {
		return target
	}
	return "/"
}
