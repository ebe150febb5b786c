package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/platform"
)

var evaluationCmd = &cobra.Command{
	Use:     "evaluation",
	Aliases: []string{"eval"},
	Short:   "Evaluation tasks and results",
}

var evaluationTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List evaluation tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setBoolFlag(cmd, q, "pending", "pending")
		return openPage(cmd, pagePath("/evaluation/tasks", q))
	},
}

var evaluationMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List evaluations received (employee)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return openPage(cmd, pagePath("/evaluation/my", pagingQuery(cmd)))
	},
}

var evaluationCreateQuarterlyCmd = &cobra.Command{
	Use:   "create-quarterly",
	Short: "Create the evaluation tasks of a quarter",
	Long: `Create one evaluation task per employee for the given quarter. Without
--year and --quarter the current quarter is used.

Example:
  hrconsole evaluation create-quarterly --year 2026 --quarter 3 --department 2`,
	Args: cobra.NoArgs,
	RunE: runCreateQuarterly,
}

func init() {
	addPagingFlags(evaluationTasksCmd)
	evaluationTasksCmd.Flags().Bool("pending", false, "only tasks not yet submitted")
	addPagingFlags(evaluationMineCmd)

	f := evaluationCreateQuarterlyCmd.Flags()
	f.Int("year", 0, "period year (default current year)")
	f.Int("quarter", 0, "period quarter 1-4 (default current quarter)")
	f.Int64("department", 0, "limit to one department")

	evaluationCmd.AddCommand(evaluationTasksCmd)
	evaluationCmd.AddCommand(evaluationMineCmd)
	evaluationCmd.AddCommand(evaluationCreateQuarterlyCmd)
	rootCmd.AddCommand(evaluationCmd)
}

// quarterRequest fills in the current year and quarter for unset values.
func quarterRequest(year, quarter int, department int64, now time.Time) (platform.QuarterlyTaskRequest, error) {
	if year == 0 {
		year = now.Year()
	}
	if quarter == 0 {
		quarter = (int(now.Month())-1)/3 + 1
	}
	if quarter < 1 || quarter > 4 {
		return platform.QuarterlyTaskRequest{}, usageError("quarter must be between 1 and 4, got %d", quarter)
	}
	return platform.QuarterlyTaskRequest{
		DepartmentID:  department,
		PeriodYear:    year,
		PeriodQuarter: quarter,
	}, nil
}

func runCreateQuarterly(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	year, _ := f.GetInt("year")
	quarter, _ := f.GetInt("quarter")
	department, _ := f.GetInt64("department")
	req, err := quarterRequest(year, quarter, department, time.Now())
	if err != nil {
		return err
	}

	_, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.Authorize("/evaluation/create-quarterly"); err != nil {
		return err
	}

	n, err := app.Client.CreateQuarterlyTasks(cmd.Context(), req)
	if err != nil {
		return err
	}
	app.Toasts.Success(fmt.Sprintf("已创建 %d 个评价任务", n))
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}
