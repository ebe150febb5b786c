package mockapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/session"
)

const timeLayout = "2006-01-02 15:04:05"

// companyScope returns the company a caller is confined to, 0 for admins.
func companyScope(u platform.User) int64 {
	if session.ParseRole(u.UserRole) == session.RoleAdmin {
		return 0
	}
	return u.CompanyID
}

func (s *Server) handleListCompanies(c *gin.Context) {
	var q platform.CompanyQuery
	if !bind(c, &q) {
		return
	}

	s.data.mu.Lock()
	var rows []platform.Company
	for _, co := range s.data.companies {
		if q.Name != "" && !containsFold(co.Name, q.Name) {
			continue
		}
		if q.ContactPersonName != "" && !containsFold(co.ContactPersonName, q.ContactPersonName) {
			continue
		}
		rows = append(rows, co)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleGetCompany(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)
	scope := companyScope(currentUser(c))
	if scope != 0 && scope != id {
		fail(c, CodeNoAuth, "无权限")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for _, co := range s.data.companies {
		if co.ID == id {
			ok(c, co)
			return
		}
	}
	fail(c, CodeNotFound, "未找到公司")
}

func (s *Server) handleApplyRegistration(c *gin.Context) {
	var req platform.RegistrationApplyRequest
	if !bind(c, &req) {
		return
	}
	if req.CompanyName == "" || req.AdminName == "" || req.AdminUsername == "" {
		fail(c, CodeParamsError, "请求参数错误")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if s.data.userByName(req.AdminUsername) != nil {
		fail(c, CodeFailure, "用户名已存在")
		return
	}
	id := s.data.newID()
	s.data.registrations = append(s.data.registrations, platform.CompanyRegistration{
		ID:               id,
		CompanyName:      req.CompanyName,
		Address:          req.Address,
		CompanyEmail:     req.CompanyEmail,
		AdminName:        req.AdminName,
		AdminPhone:       req.AdminPhone,
		AdminEmail:       req.AdminEmail,
		AdminIDNumber:    req.AdminIDNumber,
		AdminUsername:    req.AdminUsername,
		IndustryCategory: req.IndustryCategory,
		Industries:       req.Industries,
		ProofImages:      req.ProofImages,
		Status:           platform.RegistrationPending,
		StatusText:       "待审核",
		CreateTime:       time.Now().Format(timeLayout),
	})
	ok(c, id)
}

func (s *Server) handleListRegistrations(c *gin.Context) {
	var q platform.RegistrationQuery
	if !bind(c, &q) {
		return
	}

	s.data.mu.Lock()
	var rows []platform.CompanyRegistration
	for _, r := range s.data.registrations {
		if q.CompanyName != "" && !containsFold(r.CompanyName, q.CompanyName) {
			continue
		}
		if q.Status != nil && r.Status != *q.Status {
			continue
		}
		rows = append(rows, r)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleApproveRegistration(c *gin.Context) {
	var req platform.RegistrationApproveRequest
	if !bind(c, &req) {
		return
	}
	if !req.Approved && req.RejectReason == "" {
		fail(c, CodeParamsError, "请填写拒绝原因")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.registrations {
		r := &s.data.registrations[i]
		if r.ID != req.ID {
			continue
		}
		if r.Status != platform.RegistrationPending {
			fail(c, CodeFailure, "该申请已处理")
			return
		}
		if !req.Approved {
			r.Status = platform.RegistrationRejected
			r.StatusText = "已拒绝"
			r.RejectReason = req.RejectReason
			ok(c, true)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.MinCost)
		if err != nil {
			fail(c, CodeSystemError, "系统错误")
			return
		}
		companyID := s.data.newID()
		adminID := s.data.newID()
		s.data.companies = append(s.data.companies, platform.Company{
			ID:                companyID,
			Name:              r.CompanyName,
			ContactPersonID:   adminID,
			ContactPersonName: r.AdminName,
			Phone:             r.AdminPhone,
			Email:             r.CompanyEmail,
			IndustryCategory:  r.IndustryCategory,
			Industries:        r.Industries,
			CreateTime:        time.Now().Format(timeLayout),
		})
		s.data.users = append(s.data.users, &userRecord{
			User: platform.User{
				ID:        adminID,
				Username:  r.AdminUsername,
				Nickname:  r.AdminName,
				UserRole:  string(session.RoleCompanyAdmin),
				CompanyID: companyID,
			},
			passwordHash: hash,
		})
		r.Status = platform.RegistrationApproved
		r.StatusText = "已通过"
		ok(c, true)
		return
	}
	fail(c, CodeNotFound, "申请不存在")
}

func (s *Server) handleListDepartments(c *gin.Context) {
	var q platform.DepartmentQuery
	if !bind(c, &q) {
		return
	}
	scope := companyScope(currentUser(c))

	s.data.mu.Lock()
	var rows []platform.Department
	for _, d := range s.data.departments {
		if scope != 0 && d.CompanyID != scope {
			continue
		}
		if q.CompanyID != 0 && d.CompanyID != q.CompanyID {
			continue
		}
		if q.Name != "" && !containsFold(d.Name, q.Name) {
			continue
		}
		rows = append(rows, d)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleCountEmployees(c *gin.Context) {
	scope := companyScope(currentUser(c))

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	var n int64
	for _, e := range s.data.employees {
		if scope == 0 || e.CompanyID == scope {
			n++
		}
	}
	ok(c, n)
}

func (s *Server) handleMyEmployee(c *gin.Context) {
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	empID, linked := s.data.employeeUsers[u.ID]
	if !linked {
		fail(c, CodeFailure, "员工未分配公司")
		return
	}
	for _, e := range s.data.employees {
		if e.ID == empID {
			ok(c, e)
			return
		}
	}
	fail(c, CodeFailure, "员工未分配公司")
}

func (s *Server) handleListEmployees(c *gin.Context) {
	var q platform.EmployeeQuery
	if !bind(c, &q) {
		return
	}
	scope := companyScope(currentUser(c))

	s.data.mu.Lock()
	var rows []platform.Employee
	for _, e := range s.data.employees {
		if scope != 0 && e.CompanyID != scope {
			continue
		}
		if q.DepartmentID != 0 && e.DepartmentID != q.DepartmentID {
			continue
		}
		if q.Name != "" && !containsFold(e.Name, q.Name) {
			continue
		}
		if q.Phone != "" && e.Phone != q.Phone {
			continue
		}
		rows = append(rows, e)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleListProfiles(c *gin.Context) {
	var q platform.EmployeeProfileQuery
	if !bind(c, &q) {
		return
	}

	s.data.mu.Lock()
	var rows []platform.EmployeeProfile
	for _, p := range s.data.profiles {
		if q.EmployeeID != 0 && p.EmployeeID != q.EmployeeID {
			continue
		}
		if q.CompanyID != 0 && p.CompanyID != q.CompanyID {
			continue
		}
		rows = append(rows, p)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleMyProfiles(c *gin.Context) {
	var q platform.EmployeeProfileQuery
	if !bind(c, &q) {
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	empID, linked := s.data.employeeUsers[u.ID]
	var rows []platform.EmployeeProfile
	for _, p := range s.data.profiles {
		if linked && p.EmployeeID == empID {
			rows = append(rows, p)
		}
	}
	s.data.mu.Unlock()

	if !linked {
		fail(c, CodeFailure, "员工未分配公司")
		return
	}
	ok(c, paginate(rows, q.PageRequest))
}
