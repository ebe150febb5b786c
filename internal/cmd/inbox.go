package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/tui"
)

var notificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notifications", "inbox"},
	Short:   "Your notifications",
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setBoolFlag(cmd, q, "unread", "unread")
		return openPage(cmd, pagePath("/notifications", q))
	},
}

var notificationShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a notification and mark it read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return openPage(cmd, fmt.Sprintf("/notifications/%d", id))
	},
}

var notificationUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Print the number of unread notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, app, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := app.Authorize("/notifications"); err != nil {
			return err
		}
		n, err := app.Client.UnreadCount(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var notificationReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, app, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := app.Authorize("/notifications"); err != nil {
			return err
		}
		_, err = app.Client.MarkRead(cmd.Context(), id)
		return err
	},
}

var notificationReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, app, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := app.Authorize("/notifications"); err != nil {
			return err
		}
		if _, err := app.Client.MarkAllRead(cmd.Context()); err != nil {
			return err
		}
		app.Toasts.Success("已全部标记为已读")
		return nil
	},
}

var complaintCmd = &cobra.Command{
	Use:     "complaint",
	Aliases: []string{"complaints"},
	Short:   "Evaluation complaints",
}

var complaintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List complaints (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			code, err := complaintStatus(status)
			if err != nil {
				return err
			}
			q.Set("status", strconv.Itoa(code))
		}
		return openPage(cmd, pagePath("/complaints/management", q))
	},
}

var complaintHandleCmd = &cobra.Command{
	Use:   "handle <id>",
	Short: "Record the outcome of a complaint (admin)",
	Long: `Move a complaint to processing, resolved or rejected, with the result
shown to the complainant.

Example:
  hrconsole complaint handle 1 --status resolved --result "已更正评价内容"`,
	Args: cobra.ExactArgs(1),
	RunE: runComplaintHandle,
}

var complaintAddCmd = &cobra.Command{
	Use:   "add",
	Short: "File a complaint against an evaluation",
	Args:  cobra.NoArgs,
	RunE:  runComplaintAdd,
}

func init() {
	addPagingFlags(notificationListCmd)
	notificationListCmd.Flags().Bool("unread", false, "only unread notifications")
	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationShowCmd)
	notificationCmd.AddCommand(notificationUnreadCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	notificationCmd.AddCommand(notificationReadAllCmd)
	rootCmd.AddCommand(notificationCmd)

	addPagingFlags(complaintListCmd)
	complaintListCmd.Flags().String("status", "", "pending, processing, resolved or rejected")

	complaintHandleCmd.Flags().String("status", "resolved", "processing, resolved or rejected")
	complaintHandleCmd.Flags().String("result", "", "handling result shown to the complainant")

	f := complaintAddCmd.Flags()
	f.Int64("evaluation", 0, "id of the evaluation complained about")
	f.Int("type", 1, "complaint type")
	f.String("title", "", "title")
	f.String("content", "", "details")
	f.StringSlice("evidence", nil, "evidence image files")
	_ = complaintAddCmd.MarkFlagRequired("title")
	_ = complaintAddCmd.MarkFlagRequired("content")

	complaintCmd.AddCommand(complaintListCmd)
	complaintCmd.AddCommand(complaintHandleCmd)
	complaintCmd.AddCommand(complaintAddCmd)
	rootCmd.AddCommand(complaintCmd)
}

func complaintStatus(s string) (int, error) {
	switch s {
	case "pending":
		return platform.ComplaintPending, nil
	case "processing":
		return platform.ComplaintProcessing, nil
	case "resolved":
		return platform.ComplaintResolved, nil
	case "rejected":
		return platform.ComplaintRejected, nil
	}
	return 0, usageError("unknown complaint status %q (pending, processing, resolved, rejected)", s)
}

func runComplaintHandle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	statusFlag, _ := cmd.Flags().GetString("status")
	status, err := complaintStatus(statusFlag)
	if err != nil {
		return err
	}
	if status == platform.ComplaintPending {
		return usageError("a handled complaint cannot go back to pending")
	}

	_, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.Authorize("/complaints/management"); err != nil {
		return err
	}

	result, _ := cmd.Flags().GetString("result")
	if result == "" && status != platform.ComplaintProcessing {
		if !tui.ShouldPrompt() {
			return usageError("--result is required")
		}
		if result, err = tui.PromptForString(cmd.Context(), tui.Prompt{Message: "处理结果", Required: true}); err != nil {
			return err
		}
	}

	if _, err := app.Client.HandleComplaint(cmd.Context(), platform.ComplaintHandleRequest{
		ID:           id,
		Status:       status,
		HandleResult: result,
	}); err != nil {
		return err
	}
	app.Toasts.Success("处理成功")
	return nil
}

func runComplaintAdd(cmd *cobra.Command, args []string) error {
	_, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.RequireLogin(); err != nil {
		return err
	}
	ctx := cmd.Context()
	f := cmd.Flags()

	req := platform.ComplaintAddRequest{}
	req.EvaluationID, _ = f.GetInt64("evaluation")
	req.Type, _ = f.GetInt("type")
	req.Title, _ = f.GetString("title")
	req.Content, _ = f.GetString("content")

	if evidence, _ := f.GetStringSlice("evidence"); len(evidence) > 0 {
		files, err := readUploads(evidence)
		if err != nil {
			return err
		}
		if req.EvidenceImages, err = app.Client.UploadEvidence(ctx, files); err != nil {
			return err
		}
	}

	id, err := app.Client.AddComplaint(ctx, req)
	if err != nil {
		return err
	}
	app.Toasts.Success("投诉已提交")
	fmt.Fprintf(cmd.OutOrStdout(), "complaint #%d filed\n", id)
	return nil
}
