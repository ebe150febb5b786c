package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/session"
)

// Dashboard is the home view.
type Dashboard struct {
	User                session.Snapshot   `json:"user" yaml:"user"`
	UnreadNotifications int64              `json:"unreadNotifications" yaml:"unreadNotifications"`
	PendingTasks        int64              `json:"pendingTasks" yaml:"pendingTasks"`
	Employees           *int64             `json:"employees,omitempty" yaml:"employees,omitempty"`
	Employee            *platform.Employee `json:"employee,omitempty" yaml:"employee,omitempty"`
	// Notice is set when the employee record is not available yet.
	Notice string `json:"notice,omitempty" yaml:"notice,omitempty"`
}

// Dashboard fetches the home counters concurrently. Staff see the employee
// count; employees see their own record instead.
func (a *App) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap := a.Session.Snapshot()
	d := &Dashboard{User: snap}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := a.Client.UnreadCount(gctx)
		d.UnreadNotifications = n
		return err
	})
	g.Go(func() error {
		n, err := a.Client.PendingTaskCount(gctx)
		d.PendingTasks = n
		return err
	})
	if session.HasRole(snap, session.RoleAdmin, session.RoleCompanyAdmin, session.RoleHR) {
		g.Go(func() error {
			n, err := a.Client.CountEmployees(gctx)
			if err == nil {
				d.Employees = &n
			}
			return err
		})
	}
	if session.IsEmployee(snap) {
		g.Go(func() error {
			me, err := a.Client.MyEmployee(gctx)
			if err != nil {
				d.Notice = messageIfSilent(err)
				if d.Notice != "" {
					return nil
				}
				return err
			}
			d.Employee = me
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

var (
	dashTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dashCard  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 2)
	dashValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)

func (d *Dashboard) card(label string, value int64, noColor bool) string {
	v := fmt.Sprintf("%d", value)
	if noColor {
		return fmt.Sprintf("[%s: %s]", label, v)
	}
	return dashCard.Render(label + "\n" + dashValue.Render(v))
}

// Render draws the counters as cards.
func (d *Dashboard) Render(noColor bool) string {
	var b strings.Builder
	greeting := fmt.Sprintf("欢迎，%s（%s）", d.User.DisplayName(), d.User.Role.Label())
	if !noColor {
		greeting = dashTitle.Render(greeting)
	}
	b.WriteString(greeting)
	b.WriteString("\n\n")

	cards := []string{
		d.card("未读通知", d.UnreadNotifications, noColor),
		d.card("待办评价", d.PendingTasks, noColor),
	}
	if d.Employees != nil {
		cards = append(cards, d.card("员工总数", *d.Employees, noColor))
	}
	if noColor {
		b.WriteString(strings.Join(cards, " "))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if d.Employee != nil {
		fmt.Fprintf(&b, "\n\n所在公司：%s  部门：%s", orDash(d.Employee.CompanyName), orDash(d.Employee.DepartmentName))
	}
	if d.Notice != "" {
		b.WriteString("\n\n")
		b.WriteString(d.Notice)
	}
	return b.String()
}

// Data returns the dashboard itself for structured output.
func (d *Dashboard) Data() interface{} {
	return d
}
