package console

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/crossorg/hrconsole/internal/errors"
	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/router"
	"github.com/crossorg/hrconsole/internal/session"
	"github.com/crossorg/hrconsole/internal/ux"
	"github.com/crossorg/hrconsole/internal/version"
)

// Request is a resolved navigation handed to a view.
type Request struct {
	router.Resolution
	Query url.Values
}

// Param returns a path parameter.
func (r Request) Param(name string) string {
	return r.Params[name]
}

// IDParam parses a numeric path parameter.
func (r Request) IDParam(name string) (int64, error) {
	id, err := strconv.ParseInt(r.Params[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeAPIRequest, fmt.Sprintf("invalid %s %q", name, r.Params[name]))
	}
	return id, nil
}

// Page reads ?page= and ?size= into a page request.
func (r Request) Page() platform.PageRequest {
	num, _ := strconv.Atoi(r.Query.Get("page"))
	size, _ := strconv.Atoi(r.Query.Get("size"))
	return platform.PageRequest{PageNum: num, PageSize: size}.Normalize()
}

// ViewFunc renders one route.
type ViewFunc func(ctx context.Context, a *App, req Request) (ux.Renderable, error)

// views maps route names to renderers.
var views = map[string]ViewFunc{
	"companyRegistrationApply":    registrationApplyView,
	"login":                       loginView,
	"diagnostic":                  diagnosticView,
	"home":                        homeView,
	"homePath":                    homeView,
	"profile":                     profileView,
	"about":                       aboutView,
	"userManagement":              userListView,
	"companyManagement":           companyListView,
	"companyDetail":               companyDetailView,
	"employeeProfile":             employeeProfileView,
	"employeeManagement":          employeeListView,
	"employeeDetail":              employeeDetailView,
	"departmentDetail":            departmentDetailView,
	"myCompany":                   myCompanyView,
	"myProfile":                   myProfileView,
	"updateProfile":               myProfileView,
	"evaluationTasks":             evaluationTasksView,
	"myEvaluation":                myEvaluationView,
	"createQuarterlyEvaluation":   createQuarterlyView,
	"notificationList":            notificationListView,
	"notificationDetail":          notificationDetailView,
	"complaintManagement":         complaintListView,
	"companyRegistrationApproval": registrationListView,
	"talentMarket":                talentSearchView,
	"talentMarketDetail":          talentDetailView,
	"talentCompare":               talentCompareView,
}

// Render draws the view of a resolved navigation.
func (a *App) Render(ctx context.Context, res router.Resolution) (ux.Renderable, error) {
	view, ok := views[res.Route.Name]
	if !ok || !res.Known {
		return nil, errors.NewRouteNotFoundError(res.Path)
	}
	query := url.Values{}
	if i := strings.IndexByte(res.Path, '?'); i >= 0 {
		query, _ = url.ParseQuery(res.Path[i+1:])
	}
	return view(ctx, a, Request{Resolution: res, Query: query})
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

func footer[T any](p *platform.Page[T]) string {
	return fmt.Sprintf("第 %d/%d 页，共 %d 条", p.PageNumber, max(p.TotalPage, 1), p.TotalRow)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func loginView(_ context.Context, a *App, req Request) (ux.Renderable, error) {
	fields := []ux.Field{{Label: "状态", Value: "未登录"}}
	if target := req.Query.Get("redirect"); target != "" {
		fields = append(fields, ux.Field{Label: "登录后前往", Value: target})
	}
	fields = append(fields, ux.Field{Label: "提示", Value: "运行 'hrconsole login' 登录"})
	return &ux.Detail{Title: req.Route.Title, Fields: fields}, nil
}

func registrationApplyView(_ context.Context, _ *App, req Request) (ux.Renderable, error) {
	return &ux.Detail{Title: req.Route.Title, Fields: []ux.Field{
		{Label: "提示", Value: "运行 'hrconsole company apply' 提交企业注册申请"},
	}}, nil
}

// Diagnostic is the connectivity report.
type Diagnostic struct {
	BaseURL   string `json:"baseUrl" yaml:"baseUrl"`
	Reachable bool   `json:"reachable" yaml:"reachable"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	LoggedIn  bool   `json:"loggedIn" yaml:"loggedIn"`
}

func diagnosticView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	d := Diagnostic{BaseURL: a.Client.BaseURL, LoggedIn: a.Session.IsLoggedIn()}
	if err := a.Client.Ping(ctx); err != nil {
		d.Error = errors.MessageOf(err)
	} else {
		d.Reachable = true
	}
	return &ux.Detail{
		Title: req.Route.Title,
		Fields: []ux.Field{
			{Label: "接口地址", Value: d.BaseURL},
			{Label: "连接", Value: yesNo(d.Reachable)},
			{Label: "错误", Value: orDash(d.Error)},
			{Label: "已登录", Value: yesNo(d.LoggedIn)},
		},
		Source: d,
	}, nil
}

func homeView(ctx context.Context, a *App, _ Request) (ux.Renderable, error) {
	d, err := a.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func profileView(_ context.Context, a *App, req Request) (ux.Renderable, error) {
	return SessionDetail(req.Route.Title, a.Session.Snapshot()), nil
}

// SessionDetail renders the identity held by the session.
func SessionDetail(title string, s session.Snapshot) *ux.Detail {
	s.Token = ""
	return &ux.Detail{
		Title: title,
		Fields: []ux.Field{
			{Label: "用户ID", Value: itoa(s.UserID)},
			{Label: "用户名", Value: s.Username},
			{Label: "昵称", Value: orDash(s.Nickname)},
			{Label: "角色", Value: s.Role.Label()},
			{Label: "公司ID", Value: itoa(s.CompanyID)},
		},
		Source: s,
	}
}

func aboutView(_ context.Context, _ *App, req Request) (ux.Renderable, error) {
	info := version.GetInfo()
	return &ux.Detail{
		Title: req.Route.Title,
		Fields: []ux.Field{
			{Label: "版本", Value: info.Version},
			{Label: "提交", Value: info.Commit},
			{Label: "构建时间", Value: info.Date},
			{Label: "平台", Value: info.Platform},
		},
		Source: info,
	}, nil
}

func userListView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.UserQuery{
		PageRequest: req.Page(),
		Username:    req.Query.Get("username"),
		UserRole:    req.Query.Get("role"),
	}
	page, err := a.Client.ListUsers(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, u := range page.Records {
		rows = append(rows, []string{itoa(u.ID), u.Username, orDash(u.Nickname),
			session.ParseRole(u.UserRole).Label(), itoa(u.CompanyID), orDash(u.CreateTime)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "用户名", "昵称", "角色", "公司ID", "创建时间"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func companyListView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	page, err := a.Client.ListCompanies(ctx, platform.CompanyQuery{
		PageRequest: req.Page(),
		Name:        req.Query.Get("name"),
	})
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, c := range page.Records {
		rows = append(rows, []string{itoa(c.ID), c.Name, orDash(c.ContactPersonName),
			orDash(c.IndustryCategory), orDash(c.Phone)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "公司名称", "联系人", "行业", "电话"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func companyDetailView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	id, err := req.IDParam("id")
	if err != nil {
		return nil, err
	}
	c, err := a.Client.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ux.Detail{
		Title: req.Route.Title,
		Fields: []ux.Field{
			{Label: "ID", Value: itoa(c.ID)},
			{Label: "公司名称", Value: c.Name},
			{Label: "联系人", Value: orDash(c.ContactPersonName)},
			{Label: "电话", Value: orDash(c.Phone)},
			{Label: "邮箱", Value: orDash(c.Email)},
			{Label: "行业", Value: orDash(c.IndustryCategory)},
			{Label: "细分行业", Value: orDash(strings.Join(c.Industries, "、"))},
		},
		Source: c,
	}, nil
}

func employeeRows(list []platform.Employee) [][]string {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{itoa(e.ID), e.Name, orDash(e.Gender), orDash(e.Phone),
			orDash(e.CompanyName), orDash(e.DepartmentName)})
	}
	return rows
}

var employeeHeaders = []string{"ID", "姓名", "性别", "电话", "公司", "部门"}

func employeeListView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.EmployeeQuery{PageRequest: req.Page(), Name: req.Query.Get("name")}
	if dep, err := strconv.ParseInt(req.Query.Get("department"), 10, 64); err == nil {
		q.DepartmentID = dep
	}
	page, err := a.Client.ListEmployees(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: employeeHeaders,
		Rows:    employeeRows(page.Records),
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func employeeDetail(title string, e *platform.Employee) *ux.Detail {
	return &ux.Detail{
		Title: title,
		Fields: []ux.Field{
			{Label: "ID", Value: itoa(e.ID)},
			{Label: "姓名", Value: e.Name},
			{Label: "性别", Value: orDash(e.Gender)},
			{Label: "电话", Value: orDash(e.Phone)},
			{Label: "邮箱", Value: orDash(e.Email)},
			{Label: "公司", Value: orDash(e.CompanyName)},
			{Label: "部门", Value: orDash(e.DepartmentName)},
		},
		Source: e,
	}
}

func employeeDetailView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	id, err := req.IDParam("id")
	if err != nil {
		return nil, err
	}
	page, err := a.Client.ListEmployees(ctx, platform.EmployeeQuery{ID: id, PageRequest: platform.PageRequest{PageSize: 1}})
	if err != nil {
		return nil, err
	}
	for _, e := range page.Records {
		if e.ID == id {
			return employeeDetail(req.Route.Title, &e), nil
		}
	}
	return nil, errors.New(errors.ErrCodeAPIBusiness, fmt.Sprintf("employee %d not found", id))
}

func profileTable(title string, page *platform.Page[platform.EmployeeProfile]) *ux.Table {
	rows := make([][]string, 0, len(page.Records))
	for _, p := range page.Records {
		rows = append(rows, []string{itoa(p.ID), orDash(p.CompanyName), orDash(p.Occupation),
			orDash(p.StartDate), orDash(p.EndDate), fmt.Sprintf("%.0f%%", p.AttendanceRate), yesNo(p.HasMajorIncident)})
	}
	return &ux.Table{
		Title:   title,
		Headers: []string{"ID", "公司", "职位", "入职", "离职", "出勤率", "重大事故"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}
}

func employeeProfileView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	id, err := req.IDParam("employeeId")
	if err != nil {
		return nil, err
	}
	page, err := a.Client.ListEmployeeProfiles(ctx, platform.EmployeeProfileQuery{PageRequest: req.Page(), EmployeeID: id})
	if err != nil {
		return nil, err
	}
	return profileTable(req.Route.Title, page), nil
}

func departmentDetailView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	id, err := req.IDParam("id")
	if err != nil {
		return nil, err
	}
	page, err := a.Client.ListDepartments(ctx, platform.DepartmentQuery{ID: id})
	if err != nil {
		return nil, err
	}
	for _, d := range page.Records {
		if d.ID != id {
			continue
		}
		return &ux.Detail{
			Title: req.Route.Title,
			Fields: []ux.Field{
				{Label: "ID", Value: itoa(d.ID)},
				{Label: "部门", Value: d.Name},
				{Label: "公司", Value: orDash(d.CompanyName)},
				{Label: "负责人", Value: orDash(d.LeaderName)},
			},
			Source: d,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeAPIBusiness, "未找到部门")
}

// myCompanyView answers with a placeholder when the employee has no company;
// the backend reports that case without a toast.
func myCompanyView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	me, err := a.Client.MyEmployee(ctx)
	if errors.HasCode(err, errors.ErrCodeAPISilent) {
		return &ux.Detail{Title: req.Route.Title, Fields: []ux.Field{
			{Label: "状态", Value: errors.MessageOf(err)},
		}}, nil
	}
	if err != nil {
		return nil, err
	}
	return employeeDetail(req.Route.Title, me), nil
}

func myProfileView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	page, err := a.Client.ListMyEmployeeProfiles(ctx, platform.EmployeeProfileQuery{PageRequest: req.Page()})
	if err != nil {
		return nil, err
	}
	return profileTable(req.Route.Title, page), nil
}

func evaluationTasksView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.EvaluationTaskQuery{PageRequest: req.Page()}
	if req.Query.Get("pending") == "true" {
		pending := 0
		q.Status = &pending
	}
	page, err := a.Client.ListEvaluationTasks(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, t := range page.Records {
		rows = append(rows, []string{itoa(t.ID), t.EmployeeName, orDash(t.EvaluationTypeText),
			fmt.Sprintf("%dQ%d", t.PeriodYear, t.PeriodQuarter), orDash(t.StatusText), orDash(t.Deadline)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "被评价人", "类型", "周期", "状态", "截止时间"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func myEvaluationView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.EvaluationQuery{PageRequest: req.Page()}
	if me, err := a.Client.MyEmployee(ctx); err == nil && me != nil {
		q.EmployeeID = me.ID
	} else if err != nil && !errors.HasCode(err, errors.ErrCodeAPISilent) {
		return nil, err
	}
	page, err := a.Client.ListEvaluations(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, e := range page.Records {
		rows = append(rows, []string{itoa(e.ID), orDash(e.EvaluatorName), orDash(e.EvaluationTypeText),
			fmt.Sprintf("%dQ%d", e.PeriodYear, e.PeriodQuarter), strings.Join(e.Tags, "、"), orDash(e.Comment)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "评价人", "类型", "周期", "标签", "评语"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func createQuarterlyView(_ context.Context, _ *App, req Request) (ux.Renderable, error) {
	return &ux.Detail{Title: req.Route.Title, Fields: []ux.Field{
		{Label: "提示", Value: "运行 'hrconsole evaluation create --year YYYY --quarter Q' 创建季度评价任务"},
	}}, nil
}

func notificationListView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.NotificationQuery{PageRequest: req.Page()}
	if req.Query.Get("unread") == "true" {
		unread := platform.NotificationUnread
		q.Status = &unread
	}
	page, err := a.Client.ListNotifications(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, n := range page.Records {
		rows = append(rows, []string{itoa(n.ID), n.Title, orDash(n.StatusText), orDash(n.CreateTime)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "标题", "状态", "时间"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func notificationDetailView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	id, err := req.IDParam("id")
	if err != nil {
		return nil, err
	}
	n, err := a.Client.GetNotification(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status == platform.NotificationUnread {
		if _, err := a.Client.MarkRead(ctx, id); err != nil {
			a.Log.WithError(err).Debug("failed to mark notification read", "id", id)
		}
	}
	return &ux.Detail{
		Title: n.Title,
		Fields: []ux.Field{
			{Label: "类型", Value: orDash(n.TypeText)},
			{Label: "时间", Value: orDash(n.CreateTime)},
			{Label: "截止", Value: orDash(n.Deadline)},
			{Label: "内容", Value: orDash(n.Content)},
		},
		Source: n,
	}, nil
}

func complaintListView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.ComplaintQuery{PageRequest: req.Page()}
	if s, err := strconv.Atoi(req.Query.Get("status")); err == nil {
		q.Status = &s
	}
	page, err := a.Client.ListComplaints(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, c := range page.Records {
		rows = append(rows, []string{itoa(c.ID), c.Title, orDash(c.ComplainantName), orDash(c.CompanyName),
			orDash(c.StatusText), orDash(c.CreateTime)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "标题", "投诉人", "公司", "状态", "时间"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func registrationListView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.RegistrationQuery{PageRequest: req.Page(), CompanyName: req.Query.Get("name")}
	if s, err := strconv.Atoi(req.Query.Get("status")); err == nil {
		q.Status = &s
	}
	page, err := a.Client.ListRegistrations(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(page.Records))
	for _, r := range page.Records {
		rows = append(rows, []string{itoa(r.ID), r.CompanyName, orDash(r.AdminName), orDash(r.AdminUsername),
			orDash(r.IndustryCategory), orDash(r.StatusText), orDash(r.CreateTime)})
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: []string{"ID", "公司名称", "管理员", "管理员账号", "行业", "状态", "申请时间"},
		Rows:    rows,
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func talentRows(list []platform.Talent) [][]string {
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		status := "已离职"
		if t.Status {
			status = "在职"
		}
		rows = append(rows, []string{itoa(t.ID), t.Name, orDash(t.LatestOccupation), orDash(t.CurrentCompanyName),
			status, fmt.Sprintf("%.1f", t.AverageScore), strconv.Itoa(t.EvaluationCount), yesNo(t.Bookmarked)})
	}
	return rows
}

var talentHeaders = []string{"ID", "姓名", "职位", "当前公司", "状态", "平均分", "评价数", "已收藏"}

func talentSearchView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	q := platform.TalentSearch{
		PageRequest: req.Page(),
		Keyword:     req.Query.Get("keyword"),
		Gender:      req.Query.Get("gender"),
		OnlyWorking: req.Query.Get("working") == "true",
		OnlyLeft:    req.Query.Get("left") == "true",
	}
	if s, err := strconv.ParseFloat(req.Query.Get("minScore"), 64); err == nil {
		q.MinAverageScore = &s
	}
	page, err := a.Client.SearchTalents(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ux.Table{
		Title:   req.Route.Title,
		Headers: talentHeaders,
		Rows:    talentRows(page.Records),
		Footer:  footer(page),
		Source:  page,
	}, nil
}

func talentDetailView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	id, err := req.IDParam("employeeId")
	if err != nil {
		return nil, err
	}
	t, err := a.Client.TalentDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := []ux.Field{
		{Label: "姓名", Value: t.Name},
		{Label: "职位", Value: orDash(t.LatestOccupation)},
		{Label: "当前公司", Value: orDash(t.CurrentCompanyName)},
		{Label: "平均分", Value: fmt.Sprintf("%.1f", t.AverageScore)},
		{Label: "评价数", Value: strconv.Itoa(t.EvaluationCount)},
		{Label: "本公司员工", Value: yesNo(t.IsOwnEmployee)},
		{Label: "已收藏", Value: yesNo(t.Bookmarked)},
	}
	for _, tag := range t.PositiveTags {
		fields = append(fields, ux.Field{Label: "标签", Value: fmt.Sprintf("%s ×%d", tag.TagName, tag.Count)})
	}
	return &ux.Detail{Title: req.Route.Title, Fields: fields, Source: t}, nil
}

// talentCompareView reads ?ids=1,2,3.
func talentCompareView(ctx context.Context, a *App, req Request) (ux.Renderable, error) {
	ids, err := ParseIDs(req.Query.Get("ids"))
	if err != nil {
		return nil, err
	}
	if len(ids) < 2 || len(ids) > platform.MaxCompare {
		return nil, errors.New(errors.ErrCodeAPIRequest,
			fmt.Sprintf("compare needs 2 to %d talents, got %d", platform.MaxCompare, len(ids)))
	}
	cmp, err := a.Client.CompareTalents(ctx, ids)
	if err != nil {
		return nil, err
	}
	headers := append([]string{"ID", "姓名", "职位", "平均分", "评价数"}, cmp.DimensionNames...)
	rows := make([][]string, 0, len(cmp.Items))
	for _, it := range cmp.Items {
		row := []string{itoa(it.EmployeeID), it.Name, orDash(it.LatestOccupation),
			fmt.Sprintf("%.1f", it.AverageScore), strconv.Itoa(it.EvaluationCount)}
		for _, dim := range cmp.DimensionNames {
			row = append(row, fmt.Sprintf("%.1f", it.DimensionScores[dim]))
		}
		rows = append(rows, row)
	}
	return &ux.Table{Title: req.Route.Title, Headers: headers, Rows: rows, Footer: cmp.AIAnalysisResult, Source: cmp}, nil
}

// ParseIDs parses a comma separated id list.
func ParseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeAPIRequest, fmt.Sprintf("invalid id %q", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// messageIfSilent returns the message of a silent business error, "" for
// anything else.
func messageIfSilent(err error) string {
	if errors.HasCode(err, errors.ErrCodeAPISilent) {
		return errors.MessageOf(err)
	}
	return ""
}
