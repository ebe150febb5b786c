package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/tui"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Companies and registration requests",
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setFlag(cmd, q, "name", "name")
		return openPage(cmd, pagePath("/companies", q))
	},
}

var companyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return openPage(cmd, fmt.Sprintf("/companies/%d", id))
	},
}

var companyMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show the company you work for (employee)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return openPage(cmd, "/my-company")
	},
}

var companyRegistrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "List registration requests (admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setFlag(cmd, q, "name", "name")
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			code, err := registrationStatus(status)
			if err != nil {
				return err
			}
			q.Set("status", strconv.Itoa(code))
		}
		return openPage(cmd, pagePath("/company/registration/requests", q))
	},
}

var companyApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve or reject a registration request (admin)",
	Long: `Approve a registration request, creating the company and its admin account,
or reject it with --reject and a reason.

Examples:
  hrconsole company approve 1
  hrconsole company approve 1 --reject --reason "营业执照不清晰"`,
	Args: cobra.ExactArgs(1),
	RunE: runCompanyApprove,
}

var companyApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit a company registration request",
	Long: `Submit a registration request. No session is needed. Proof images given
with --proof are uploaded first.

Example:
  hrconsole company apply --name 北辰物流 --admin-name 周九 --admin-username beichen \
    --industry-category 物流 --proof license.png`,
	Args: cobra.NoArgs,
	RunE: runCompanyApply,
}

func init() {
	addPagingFlags(companyListCmd)
	companyListCmd.Flags().String("name", "", "filter by company name")

	addPagingFlags(companyRegistrationsCmd)
	companyRegistrationsCmd.Flags().String("name", "", "filter by company name")
	companyRegistrationsCmd.Flags().String("status", "", "pending, approved or rejected")

	companyApproveCmd.Flags().Bool("reject", false, "reject instead of approve")
	companyApproveCmd.Flags().String("reason", "", "reject reason")
	companyApproveCmd.Flags().BoolP("yes", "y", false, "skip the confirmation")

	f := companyApplyCmd.Flags()
	f.String("name", "", "company name")
	f.String("address", "", "company address")
	f.String("email", "", "company email")
	f.String("admin-name", "", "admin's real name")
	f.String("admin-phone", "", "admin's phone")
	f.String("admin-email", "", "admin's email")
	f.String("admin-id-number", "", "admin's ID card number")
	f.String("admin-username", "", "account name for the company admin")
	f.String("admin-password", "", "initial password for the company admin")
	f.String("industry-category", "", "industry category")
	f.StringSlice("industries", nil, "industries")
	f.StringSlice("proof", nil, "proof image files")
	_ = companyApplyCmd.MarkFlagRequired("name")
	_ = companyApplyCmd.MarkFlagRequired("admin-name")
	_ = companyApplyCmd.MarkFlagRequired("admin-username")

	companyCmd.AddCommand(companyListCmd)
	companyCmd.AddCommand(companyShowCmd)
	companyCmd.AddCommand(companyMineCmd)
	companyCmd.AddCommand(companyRegistrationsCmd)
	companyCmd.AddCommand(companyApproveCmd)
	companyCmd.AddCommand(companyApplyCmd)
	rootCmd.AddCommand(companyCmd)
}

func registrationStatus(s string) (int, error) {
	switch s {
	case "pending":
		return platform.RegistrationPending, nil
	case "approved":
		return platform.RegistrationApproved, nil
	case "rejected":
		return platform.RegistrationRejected, nil
	}
	return 0, usageError("unknown registration status %q (pending, approved, rejected)", s)
}

func runCompanyApprove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	_, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.Authorize("/company/registration/requests"); err != nil {
		return err
	}

	reject, _ := cmd.Flags().GetBool("reject")
	reason, _ := cmd.Flags().GetString("reason")
	yes, _ := cmd.Flags().GetBool("yes")

	if reject && reason == "" {
		if !tui.ShouldPrompt() {
			return usageError("--reason is required when rejecting")
		}
		if reason, err = tui.PromptForString(cmd.Context(), tui.Prompt{Message: "拒绝原因", Required: true}); err != nil {
			return err
		}
	}

	if !yes && tui.ShouldPrompt() {
		action := "通过"
		if reject {
			action = "拒绝"
		}
		ok, err := tui.PromptForConfirmation(cmd.Context(), fmt.Sprintf("确定%s注册申请 #%d？", action, id), true)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if _, err := app.Client.ApproveRegistration(cmd.Context(), platform.RegistrationApproveRequest{
		ID:           id,
		Approved:     !reject,
		RejectReason: reason,
	}); err != nil {
		return err
	}
	if reject {
		app.Toasts.Success("已拒绝该申请")
	} else {
		app.Toasts.Success("审批通过")
	}
	return nil
}

// readUploads loads files from disk for an upload endpoint.
func readUploads(paths []string) ([]platform.UploadFile, error) {
	files := make([]platform.UploadFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, platform.UploadFile{Name: filepath.Base(p), Content: data})
	}
	return files, nil
}

func runCompanyApply(cmd *cobra.Command, args []string) error {
	_, app, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	f := cmd.Flags()

	req := platform.RegistrationApplyRequest{}
	req.CompanyName, _ = f.GetString("name")
	req.Address, _ = f.GetString("address")
	req.CompanyEmail, _ = f.GetString("email")
	req.AdminName, _ = f.GetString("admin-name")
	req.AdminPhone, _ = f.GetString("admin-phone")
	req.AdminEmail, _ = f.GetString("admin-email")
	req.AdminIDNumber, _ = f.GetString("admin-id-number")
	req.AdminUsername, _ = f.GetString("admin-username")
	req.AdminPassword, _ = f.GetString("admin-password")
	req.IndustryCategory, _ = f.GetString("industry-category")
	req.Industries, _ = f.GetStringSlice("industries")

	if proof, _ := f.GetStringSlice("proof"); len(proof) > 0 {
		files, err := readUploads(proof)
		if err != nil {
			return err
		}
		if req.ProofImages, err = app.Client.UploadRegistrationProof(ctx, files); err != nil {
			return err
		}
	}

	id, err := app.Client.ApplyRegistration(ctx, req)
	if err != nil {
		return err
	}
	app.Toasts.Success("申请已提交，请等待审核")
	fmt.Fprintf(cmd.OutOrStdout(), "registration request #%d submitted\n", id)
	return nil
}
