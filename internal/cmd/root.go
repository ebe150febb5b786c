package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hrconsole",
	Short: "Talent management admin console",
	Long: `hrconsole is the terminal admin console of the talent management platform.
Administrators, company admins, HR staff and employees sign in with their
platform account and open the same pages the web console offers: companies,
employees, evaluations, notifications, complaints and the talent market.

Pages are addressed by path and guarded by role:

  hrconsole open /employees
  hrconsole open "/talent-market?keyword=张"
  hrconsole shell`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("home", "", "console home directory (default $HRCONSOLE_HOME or ~/.hrconsole)")
	flags.String("config", "", "config file (default <home>/config.yaml)")
	flags.String("api-url", "", "API base URL, overrides api.base_url")
	flags.String("format", "", "output format: text, json or yaml (default from output.format)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "", "log level: debug, info, warn or error")
}
