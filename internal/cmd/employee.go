package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/ux"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"employees"},
	Short:   "Employees and their employment profiles",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees (admin, company admin, HR)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setFlag(cmd, q, "name", "name")
		setFlag(cmd, q, "department", "department")
		return openPage(cmd, pagePath("/employees", q))
	},
}

var employeeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return openPage(cmd, fmt.Sprintf("/employees/%d/detail", id))
	},
}

var employeeProfilesCmd = &cobra.Command{
	Use:   "profiles <id>",
	Short: "Show the employment history of an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return openPage(cmd, pagePath(fmt.Sprintf("/employees/%d/profile", id), pagingQuery(cmd)))
	},
}

var employeeMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your own employment history (employee)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return openPage(cmd, pagePath("/my-profile", pagingQuery(cmd)))
	},
}

var employeeCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the employees you can see",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, app, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := app.Authorize("/employees"); err != nil {
			return err
		}
		n, err := app.Client.CountEmployees(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var departmentCmd = &cobra.Command{
	Use:     "department",
	Aliases: []string{"departments"},
	Short:   "Departments",
}

var departmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments (admin, company admin, HR)",
	Args:  cobra.NoArgs,
	RunE:  runDepartmentList,
}

var departmentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a department and its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return openPage(cmd, fmt.Sprintf("/departments/%d", id))
	},
}

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Platform accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts (admin, company admin)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := pagingQuery(cmd)
		setFlag(cmd, q, "username", "username")
		setFlag(cmd, q, "role", "role")
		return openPage(cmd, pagePath("/users", q))
	},
}

func init() {
	addPagingFlags(employeeListCmd)
	employeeListCmd.Flags().String("name", "", "filter by name")
	employeeListCmd.Flags().String("department", "", "filter by department id")
	addPagingFlags(employeeProfilesCmd)
	addPagingFlags(employeeMeCmd)

	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeShowCmd)
	employeeCmd.AddCommand(employeeProfilesCmd)
	employeeCmd.AddCommand(employeeMeCmd)
	employeeCmd.AddCommand(employeeCountCmd)
	rootCmd.AddCommand(employeeCmd)

	addPagingFlags(departmentListCmd)
	departmentListCmd.Flags().String("name", "", "filter by department name")
	departmentCmd.AddCommand(departmentListCmd)
	departmentCmd.AddCommand(departmentShowCmd)
	rootCmd.AddCommand(departmentCmd)

	addPagingFlags(userListCmd)
	userListCmd.Flags().String("username", "", "filter by account name")
	userListCmd.Flags().String("role", "", "filter by role")
	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runDepartmentList(cmd *cobra.Command, args []string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := app.Authorize("/employees"); err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	name, _ := cmd.Flags().GetString("name")
	result, err := app.Client.ListDepartments(cmd.Context(), platform.DepartmentQuery{
		PageRequest: platform.PageRequest{PageNum: page, PageSize: size},
		Name:        name,
	})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Records))
	for _, d := range result.Records {
		leader := d.LeaderName
		if leader == "" {
			leader = "-"
		}
		rows = append(rows, []string{strconv.FormatInt(d.ID, 10), d.Name, d.CompanyName, leader})
	}
	return cc.Print(cmd, &ux.Table{
		Title:   "部门",
		Headers: []string{"ID", "名称", "公司", "负责人"},
		Rows:    rows,
		Footer:  fmt.Sprintf("第 %d/%d 页，共 %d 条", result.PageNumber, max(result.TotalPage, 1), result.TotalRow),
		Source:  result,
	})
}
