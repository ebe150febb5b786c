package mockapi

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/crossorg/hrconsole/internal/metrics"
	"github.com/crossorg/hrconsole/internal/platform"
)

type userRecord struct {
	platform.User
	passwordHash []byte
	disabled     bool
}

type fixtureUser struct {
	id        int64
	username  string
	password  string
	nickname  string
	role      string
	companyID int64
	created   string
}

// Fixture accounts. Role spellings follow what the backend has historically
// returned.
var fixtureUsers = []fixtureUser{
	{1, "admin", "admin123", "系统管理员", "admin", 0, "2025-01-01 10:00:00"},
	{2, "company1", "pwd123", "公司管理员", "companyAdmin", 1, "2025-01-01 11:00:00"},
	{3, "hr1", "pwd123", "HR员工", "hr", 1, "2025-01-01 12:00:00"},
	{4, "user1", "pwd123", "普通用户", "user", 1, "2025-01-01 13:00:00"},
}

// data is the mutable in-memory backend state.
type data struct {
	mu sync.Mutex

	users         []*userRecord
	companies     []platform.Company
	departments   []platform.Department
	employees     []platform.Employee
	employeeUsers map[int64]int64 // user id -> employee id
	notifications map[int64][]platform.Notification
	tasks         []platform.EvaluationTask
	complaints    []platform.Complaint
	registrations []platform.CompanyRegistration
	talents       []platform.Talent
	profiles      []platform.EmployeeProfile
	evaluations   []platform.Evaluation
	bookmarks     map[int64]map[int64]bool // user id -> employee ids
	nextID        int64
}

// sizes exposes the record counts as store gauges.
func (d *data) sizes() []metrics.StoreSize {
	count := func(n func() int) func() int {
		return func() int {
			d.mu.Lock()
			defer d.mu.Unlock()
			return n()
		}
	}
	return []metrics.StoreSize{
		{Name: "users", Help: "Number of user accounts", Size: count(func() int { return len(d.users) })},
		{Name: "employees", Help: "Number of employee records", Size: count(func() int { return len(d.employees) })},
		{Name: "complaints", Help: "Number of complaints filed", Size: count(func() int { return len(d.complaints) })},
		{Name: "pending_registrations", Help: "Number of company registrations awaiting review", Size: count(func() int {
			n := 0
			for _, r := range d.registrations {
				if r.Status == platform.RegistrationPending {
					n++
				}
			}
			return n
		})},
	}
}

func newData(bcryptCost int) (*data, error) {
	d := &data{
		employeeUsers: map[int64]int64{4: 1},
		notifications: make(map[int64][]platform.Notification),
		bookmarks:     make(map[int64]map[int64]bool),
		nextID:        100,
	}

	for _, f := range fixtureUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.password), bcryptCost)
		if err != nil {
			return nil, err
		}
		d.users = append(d.users, &userRecord{
			User: platform.User{
				ID:         f.id,
				Username:   f.username,
				Nickname:   f.nickname,
				UserRole:   f.role,
				CompanyID:  f.companyID,
				CreateTime: f.created,
			},
			passwordHash: hash,
		})
	}

	d.companies = []platform.Company{
		{ID: 1, Name: "星海科技有限公司", ContactPersonID: 2, ContactPersonName: "公司管理员", Phone: "010-88886666",
			Email: "hr@xinghai.example", IndustryCategory: "信息技术", Industries: []string{"软件开发", "云计算"}, CreateTime: "2025-01-01 11:00:00"},
		{ID: 2, Name: "远航制造集团", ContactPersonName: "赵六", IndustryCategory: "制造业",
			Industries: []string{"汽车零部件"}, CreateTime: "2025-02-01 09:00:00"},
	}

	d.departments = []platform.Department{
		{ID: 1, Name: "研发部", CompanyID: 1, CompanyName: "星海科技有限公司", LeaderID: 2, LeaderName: "李四"},
		{ID: 2, Name: "市场部", CompanyID: 1, CompanyName: "星海科技有限公司"},
		{ID: 3, Name: "生产部", CompanyID: 2, CompanyName: "远航制造集团"},
	}

	d.employees = []platform.Employee{
		{ID: 1, Name: "张三", Gender: "男", Phone: "13800000001", Email: "zhangsan@xinghai.example",
			CompanyID: 1, CompanyName: "星海科技有限公司", DepartmentID: 1, DepartmentName: "研发部"},
		{ID: 2, Name: "李四", Gender: "女", Phone: "13800000002",
			CompanyID: 1, CompanyName: "星海科技有限公司", DepartmentID: 1, DepartmentName: "研发部"},
		{ID: 3, Name: "王五", Gender: "男", Phone: "13800000003",
			CompanyID: 1, CompanyName: "星海科技有限公司"},
		{ID: 4, Name: "钱七", Gender: "女", Phone: "13800000004",
			CompanyID: 2, CompanyName: "远航制造集团", DepartmentID: 3, DepartmentName: "生产部"},
	}

	for _, u := range d.users {
		d.notifications[u.ID] = []platform.Notification{
			{ID: u.ID*10 + 1, UserID: u.ID, Type: 1, TypeText: "系统通知", Title: "欢迎使用人才管理平台",
				Content: "请完善您的个人资料。", Status: platform.NotificationRead, StatusText: "已读", CreateTime: "2025-03-01 09:00:00"},
			{ID: u.ID*10 + 2, UserID: u.ID, Type: 2, TypeText: "评价任务", Title: "季度评价已开始",
				Content: "请在截止日期前完成同事评价。", Status: platform.NotificationUnread, StatusText: "未读",
				Deadline: "2025-04-15 23:59:59", CreateTime: "2025-04-01 09:00:00"},
			{ID: u.ID*10 + 3, UserID: u.ID, Type: 1, TypeText: "系统通知", Title: "系统维护通知",
				Content: "平台将于周六凌晨维护。", Status: platform.NotificationUnread, StatusText: "未读", CreateTime: "2025-04-02 18:00:00"},
		}
	}

	d.tasks = []platform.EvaluationTask{
		{ID: 1, EmployeeID: 2, EmployeeName: "李四", DepartmentName: "研发部", EvaluatorID: 4, EvaluatorName: "普通用户",
			EvaluationType: 2, EvaluationTypeText: "同事评价", EvaluationPeriod: 1, EvaluationPeriodText: "季度",
			PeriodYear: 2025, PeriodQuarter: 2, Status: 0, StatusText: "待评价", Deadline: "2025-04-15 23:59:59"},
		{ID: 2, EmployeeID: 3, EmployeeName: "王五", EvaluatorID: 4, EvaluatorName: "普通用户",
			EvaluationType: 2, EvaluationTypeText: "同事评价", EvaluationPeriod: 1, EvaluationPeriodText: "季度",
			PeriodYear: 2025, PeriodQuarter: 2, Status: 0, StatusText: "待评价", Deadline: "2025-04-15 23:59:59"},
		{ID: 3, EmployeeID: 1, EmployeeName: "张三", DepartmentName: "研发部", EvaluatorID: 3, EvaluatorName: "HR员工",
			EvaluationType: 3, EvaluationTypeText: "HR评价", EvaluationPeriod: 1, EvaluationPeriodText: "季度",
			PeriodYear: 2025, PeriodQuarter: 2, Status: 0, StatusText: "待评价", Deadline: "2025-04-20 23:59:59"},
	}

	d.complaints = []platform.Complaint{
		{ID: 1, ComplainantID: 4, ComplainantName: "普通用户", EvaluationID: 12, CompanyID: 1, CompanyName: "星海科技有限公司",
			Type: 1, TypeText: "评价不实", Title: "评价内容与事实不符", Content: "上季度评价中的出勤描述有误。",
			Status: platform.ComplaintPending, StatusText: "待处理", CreateTime: "2025-04-03 10:00:00"},
	}

	d.registrations = []platform.CompanyRegistration{
		{ID: 1, CompanyName: "青禾教育", CompanyEmail: "contact@qinghe.example", AdminName: "孙八",
			AdminUsername: "qinghe_admin", IndustryCategory: "教育", Status: platform.RegistrationPending,
			StatusText: "待审核", CreateTime: "2025-04-05 14:00:00"},
	}

	d.talents = []platform.Talent{
		{ID: 1, Name: "张三", Gender: "男", Status: true, CurrentCompanyName: "星海科技有限公司", LatestOccupation: "后端工程师",
			OccupationHistory: []string{"实习生", "后端工程师"}, AverageScore: 4.6, EvaluationCount: 8, ProfileCount: 2,
			PositiveTags: []platform.TagStat{{TagID: 1, TagName: "责任心强", Count: 5}}},
		{ID: 2, Name: "李四", Gender: "女", Status: true, CurrentCompanyName: "星海科技有限公司", LatestOccupation: "技术经理",
			AverageScore: 4.8, EvaluationCount: 12, ProfileCount: 3,
			PositiveTags: []platform.TagStat{{TagID: 2, TagName: "领导力", Count: 7}}},
		{ID: 4, Name: "钱七", Gender: "女", Status: false, CurrentCompanyName: "", LatestOccupation: "质检员",
			AverageScore: 4.1, EvaluationCount: 4, ProfileCount: 1},
	}

	d.profiles = []platform.EmployeeProfile{
		{ID: 1, EmployeeID: 1, EmployeeName: "张三", CompanyID: 2, CompanyName: "远航制造集团", Occupation: "实习生",
			StartDate: "2021-07-01", EndDate: "2022-06-30", AttendanceRate: 97, ReasonForLeaving: "个人发展"},
		{ID: 2, EmployeeID: 1, EmployeeName: "张三", CompanyID: 1, CompanyName: "星海科技有限公司", Occupation: "后端工程师",
			StartDate: "2022-08-01", AttendanceRate: 99},
		{ID: 3, EmployeeID: 2, EmployeeName: "李四", CompanyID: 1, CompanyName: "星海科技有限公司", Occupation: "技术经理",
			StartDate: "2020-03-01", AttendanceRate: 98},
	}

	d.evaluations = []platform.Evaluation{
		{ID: 12, EmployeeID: 1, EmployeeName: "张三", EvaluatorID: 3, EvaluatorName: "HR员工", CompanyID: 1,
			Comment: "工作认真负责。", EvaluationType: 3, EvaluationTypeText: "HR评价", PeriodYear: 2025, PeriodQuarter: 1,
			Tags: []string{"责任心强"}, EvaluationDate: "2025-03-28"},
	}

	return d, nil
}

func (d *data) newID() int64 {
	d.nextID++
	return d.nextID
}

func (d *data) userByName(username string) *userRecord {
	for _, u := range d.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (d *data) userByID(id int64) *userRecord {
	for _, u := range d.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// paginate slices records for a page request.
func paginate[T any](records []T, p platform.PageRequest) platform.Page[T] {
	p = p.Normalize()
	total := int64(len(records))
	start := min((p.PageNum-1)*p.PageSize, len(records))
	end := min(start+p.PageSize, len(records))

	out := make([]T, end-start)
	copy(out, records[start:end])

	pageSize := int64(p.PageSize)
	return platform.Page[T]{
		Records:    out,
		PageNumber: int64(p.PageNum),
		PageSize:   pageSize,
		TotalRow:   total,
		TotalPage:  (total + pageSize - 1) / pageSize,
	}
}
