package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/router"
	"github.com/crossorg/hrconsole/internal/ux"
)

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a console page",
	Long: `Open a page by path, the same way the web console navigates. The route
guard runs first: pages that need a session fail when you are not logged in
and pages reserved for other roles are refused.

Query parameters filter and page lists.

Examples:
  hrconsole open /
  hrconsole open "/employees?name=张&page=2"
  hrconsole open /notifications/42
  hrconsole open "/talent-market/compare?ids=1,2" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List console pages and who may open them",
	Args:  cobra.NoArgs,
	RunE:  runRoutes,
}

func init() {
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(routesCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}
	page, err := app.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return cc.Print(cmd, page)
}

// routeRow is the structured form of one route.
type routeRow struct {
	Path  string   `json:"path" yaml:"path"`
	Name  string   `json:"name" yaml:"name"`
	Title string   `json:"title" yaml:"title"`
	Login bool     `json:"requiresLogin" yaml:"requiresLogin"`
	Roles []string `json:"roles,omitempty" yaml:"roles,omitempty"`
}

func routesTable(routes []router.Route) *ux.Table {
	rows := make([][]string, 0, len(routes))
	source := make([]routeRow, 0, len(routes))
	for _, r := range routes {
		roles := make([]string, 0, len(r.Roles))
		for _, role := range r.Roles {
			roles = append(roles, role.Label())
		}
		access := "公开"
		switch {
		case len(roles) > 0:
			access = strings.Join(roles, "、")
		case r.RequiresAuth:
			access = "已登录用户"
		}
		rows = append(rows, []string{r.Path, r.Title, access})

		row := routeRow{Path: r.Path, Name: r.Name, Title: r.Title, Login: r.RequiresAuth}
		for _, role := range r.Roles {
			row.Roles = append(row.Roles, string(role))
		}
		source = append(source, row)
	}
	return &ux.Table{
		Title:   "页面",
		Headers: []string{"路径", "标题", "可访问"},
		Rows:    rows,
		Source:  source,
	}
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	return cc.Print(cmd, routesTable(router.DefaultRoutes))
}
