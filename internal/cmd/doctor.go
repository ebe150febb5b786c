package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/health"
	"github.com/crossorg/hrconsole/internal/ux"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the backend, local state and session",
	Long: `Run the console's health checks:

  api-backend  the configured backend answers
  state-dir    the session state directory is writable
  session      a session is held

Exits non-zero when any check is unhealthy. Not being logged in is only
reported as degraded.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorTimeout time.Duration

func init() {
	doctorCmd.Flags().DurationVar(&doctorTimeout, "timeout", 5*time.Second, "timeout of each check")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}

	manager := health.NewManager(doctorTimeout)
	manager.Add(
		health.NewAPIChecker(app.Client.BaseURL, app.Client.Ping),
		health.NewStateDirChecker(cc.Config.Storage.Dir),
		health.NewSessionChecker(func() (string, bool) {
			s := app.Session.Snapshot()
			return s.Username, s.LoggedIn
		}),
	)

	report := manager.Run(cmd.Context())
	if err := cc.Print(cmd, doctorTable(report)); err != nil {
		return err
	}
	if report.Status != health.StatusUnhealthy {
		return nil
	}
	if report.Unhealthy("api-backend") {
		return errors.New(errors.ErrCodeNetFailure, "backend unreachable at "+app.Client.BaseURL)
	}
	return errors.New(errors.ErrCodeStateWriteFailed, "state directory is not writable")
}

func doctorTable(report health.Report) *ux.Table {
	rows := make([][]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		rows = append(rows, []string{c.Name, c.Status.String(), c.Message, c.Latency.Round(time.Millisecond).String()})
	}
	return &ux.Table{
		Title:   "Doctor",
		Headers: []string{"Check", "Status", "Message", "Latency"},
		Rows:    rows,
		Footer:  fmt.Sprintf("overall: %s", report.Status),
		Source:  report,
	}
}
