package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/console"
	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the platform",
	Long: `Sign in with a platform account. The session is kept in the console home
directory and shared by every later command until it expires or you log out.

Without --username or --password the console asks for them interactively.

Examples:
  hrconsole login
  hrconsole login -u hr1
  echo "$PASSWORD" | hrconsole login -u hr1 --password-stdin`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the user of the stored session. With --refresh the user is fetched
from the backend first, which also tells whether the session is still valid.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "account name")
	loginCmd.Flags().StringP("password", "p", "", "password (prefer the prompt or --password-stdin)")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	whoamiCmd.Flags().Bool("refresh", false, "fetch the user from the backend")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")

	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if username == "" || password == "" {
		if !tui.ShouldPrompt() {
			return errors.New(errors.ErrCodeLoginRejected,
				"username and password are required when not running interactively").
				WithSuggestion("Pass --username and --password-stdin")
		}
		creds, err := tui.PromptForLogin(ctx, username)
		if err != nil {
			return err
		}
		username, password = creds.Username, creds.Password
	}

	if err := app.Login(ctx, username, password); err != nil {
		return err
	}
	return cc.Print(cmd, console.SessionDetail("已登录", app.Session.Snapshot()))
}

func runLogout(cmd *cobra.Command, args []string) error {
	_, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if !app.Session.IsLoggedIn() {
		fmt.Fprintln(cmd.OutOrStdout(), "未登录")
		return nil
	}
	app.Logout(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "已退出登录")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.RequireLogin(); err != nil {
		return err
	}

	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		if err := app.Session.FetchCurrentUser(cmd.Context()); err != nil {
			return err
		}
	}
	return cc.Print(cmd, console.SessionDetail("当前用户", app.Session.Snapshot()))
}
