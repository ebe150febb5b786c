package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/tui"
	"github.com/crossorg/hrconsole/internal/ux"
)

var talentCmd = &cobra.Command{
	Use:     "talent",
	Aliases: []string{"market"},
	Short:   "The talent market (company staff)",
}

var talentSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the talent market",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setFlag(cmd, q, "keyword", "keyword")
		setFlag(cmd, q, "gender", "gender")
		setBoolFlag(cmd, q, "working", "working")
		setBoolFlag(cmd, q, "left", "left")
		if cmd.Flags().Changed("min-score") {
			score, _ := cmd.Flags().GetFloat64("min-score")
			q.Set("minScore", strconv.FormatFloat(score, 'f', -1, 64))
		}
		return openPage(cmd, pagePath("/talent-market", q))
	},
}

var talentShowCmd = &cobra.Command{
	Use:   "show <employee-id>",
	Short: "Show a talent's profile and evaluations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return openPage(cmd, fmt.Sprintf("/talent-market/detail/%d", id))
	},
}

var talentCompareCmd = &cobra.Command{
	Use:   "compare [employee-id...]",
	Short: "Compare two to four talents",
	Long: `Compare talents side by side. Without ids an interactive terminal offers
the first page of the market to pick from.

Example:
  hrconsole talent compare 3 7 9`,
	RunE: runTalentCompare,
}

var talentBookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List bookmarked talents",
	Args:  cobra.NoArgs,
	RunE:  runTalentBookmarks,
}

var talentBookmarkCmd = &cobra.Command{
	Use:   "bookmark <employee-id>",
	Short: "Bookmark a talent",
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
		if err := app.Authorize("/talent-market"); err != nil {
			return err
		}
		remark, _ := cmd.Flags().GetString("remark")
		if _, err := app.Client.BookmarkTalent(cmd.Context(), platform.BookmarkRequest{EmployeeID: id, Remark: remark}); err != nil {
			return err
		}
		app.Toasts.Success("收藏成功")
		return nil
	},
}

var talentUnbookmarkCmd = &cobra.Command{
	Use:   "unbookmark <employee-id>",
	Short: "Remove a bookmark",
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
		if err := app.Authorize("/talent-market"); err != nil {
			return err
		}
		if _, err := app.Client.UnbookmarkTalent(cmd.Context(), id); err != nil {
			return err
		}
		app.Toasts.Success("已取消收藏")
		return nil
	},
}

func init() {
	addPagingFlags(talentSearchCmd)
	f := talentSearchCmd.Flags()
	f.String("keyword", "", "name or occupation keyword")
	f.String("gender", "", "gender")
	f.Bool("working", false, "only talents currently employed")
	f.Bool("left", false, "only talents who have left")
	f.Float64("min-score", 0, "minimum average score")
	talentSearchCmd.MarkFlagsMutuallyExclusive("working", "left")

	addPagingFlags(talentBookmarksCmd)
	talentBookmarkCmd.Flags().String("remark", "", "private note")

	talentCmd.AddCommand(talentSearchCmd)
	talentCmd.AddCommand(talentShowCmd)
	talentCmd.AddCommand(talentCompareCmd)
	talentCmd.AddCommand(talentBookmarksCmd)
	talentCmd.AddCommand(talentBookmarkCmd)
	talentCmd.AddCommand(talentUnbookmarkCmd)
	rootCmd.AddCommand(talentCmd)
}

func runTalentCompare(cmd *cobra.Command, args []string) error {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	if len(ids) == 0 {
		if !tui.ShouldPrompt() {
			return usageError("give between 2 and %d employee ids", platform.MaxCompare)
		}
		picked, err := pickTalents(cmd)
		if err != nil {
			return err
		}
		ids = picked
	}

	return openPage(cmd, pagePath("/talent-market/compare", url.Values{"ids": []string{strings.Join(ids, ",")}}))
}

func pickTalents(cmd *cobra.Command) ([]string, error) {
	_, app, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	if err := app.Authorize("/talent-market"); err != nil {
		return nil, err
	}
	page, err := app.Client.SearchTalents(cmd.Context(), platform.TalentSearch{})
	if err != nil {
		return nil, err
	}

	opts := make([]tui.Choice[string], 0, len(page.Records))
	for _, t := range page.Records {
		opts = append(opts, tui.Choice[string]{
			Label: talentLabel(t),
			Value: strconv.FormatInt(t.ID, 10),
		})
	}
	return tui.PromptForMultiSelect(cmd.Context(),
		fmt.Sprintf("选择要对比的人才 (最多 %d 个)", platform.MaxCompare), opts, platform.MaxCompare)
}

func talentLabel(t platform.Talent) string {
	label := t.Name
	if t.LatestOccupation != "" {
		label += " · " + t.LatestOccupation
	}
	if t.EvaluationCount > 0 {
		label += fmt.Sprintf(" · %.1f", t.AverageScore)
	}
	return label
}

func runTalentBookmarks(cmd *cobra.Command, args []string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.Authorize("/talent-market"); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	result, err := app.Client.BookmarkedTalents(cmd.Context(), platform.PageRequest{PageNum: page, PageSize: size})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Records))
	for _, t := range result.Records {
		status := "已离职"
		if t.Status {
			status = "在职"
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			status,
			t.LatestOccupation,
			fmt.Sprintf("%.1f", t.AverageScore),
		})
	}
	return cc.Print(cmd, &ux.Table{
		Title:   "收藏的人才",
		Headers: []string{"ID", "姓名", "状态", "职位", "平均分"},
		Rows:    rows,
		Footer:  fmt.Sprintf("第 %d/%d 页，共 %d 条", result.PageNumber, max(result.TotalPage, 1), result.TotalRow),
		Source:  result,
	})
}
