package mockapi

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/session"
)

// defaultPassword is given to accounts registered without one.
const defaultPassword = "12345678"

func loginUserOf(u platform.User) platform.LoginUser {
	return platform.LoginUser{
		ID:         u.ID,
		Username:   u.Username,
		Nickname:   u.Nickname,
		CompanyID:  u.CompanyID,
		UserRole:   u.UserRole,
		CreateTime: u.CreateTime,
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req platform.LoginRequest
	if !bind(c, &req) {
		return
	}

	s.data.mu.Lock()
	u := s.data.userByName(req.Username)
	var snapshot *userRecord
	if u != nil {
		cp := *u
		snapshot = &cp
	}
	s.data.mu.Unlock()

	if snapshot == nil {
		s.metrics.RecordLogin(false)
		fail(c, CodeFailure, "用户不存在")
		return
	}
	if snapshot.disabled {
		s.metrics.RecordLogin(false)
		fail(c, CodeFailure, "账号已被禁用")
		return
	}
	if !checkPassword(snapshot, req.Password) {
		s.metrics.RecordLogin(false)
		fail(c, CodeFailure, "密码错误")
		return
	}

	token, err := s.issueToken(snapshot)
	if err != nil {
		s.log.WithError(err).Error("failed to sign token")
		fail(c, CodeSystemError, "系统错误")
		return
	}
	s.setSessionCookie(c, token, int(s.tokenTTL.Seconds()))
	s.metrics.RecordLogin(true)

	resp := loginUserOf(snapshot.User)
	resp.Token = token
	ok(c, resp)
}

func (s *Server) handleLogout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	ok(c, true)
}

func (s *Server) handleGetLoginUser(c *gin.Context) {
	ok(c, loginUserOf(currentUser(c)))
}

func (s *Server) handleListUsers(c *gin.Context) {
	var q platform.UserQuery
	if !bind(c, &q) {
		return
	}
	caller := currentUser(c)
	companyAdmin := session.ParseRole(caller.UserRole) == session.RoleCompanyAdmin

	s.data.mu.Lock()
	var rows []platform.User
	for _, u := range s.data.users {
		if q.Username != "" && !containsFold(u.Username, q.Username) {
			continue
		}
		if q.UserRole != "" && u.UserRole != q.UserRole {
			continue
		}
		if companyAdmin && u.CompanyID != caller.CompanyID {
			continue
		}
		rows = append(rows, u.User)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleGetUser(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	u := s.data.userByID(id)
	if u == nil {
		fail(c, CodeNotFound, "用户不存在")
		return
	}
	ok(c, u.User)
}

func (s *Server) handleRegister(c *gin.Context) {
	var req platform.RegisterRequest
	if !bind(c, &req) {
		return
	}
	if req.Username == "" {
		fail(c, CodeParamsError, "用户名不能为空")
		return
	}
	if req.Password != "" && req.CheckPassword != "" && req.Password != req.CheckPassword {
		fail(c, CodeParamsError, "两次输入的密码不一致")
		return
	}
	password := req.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		fail(c, CodeSystemError, "系统错误")
		return
	}

	caller := currentUser(c)
	companyID := req.CompanyID
	if session.ParseRole(caller.UserRole) == session.RoleCompanyAdmin {
		companyID = caller.CompanyID
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if s.data.userByName(req.Username) != nil {
		fail(c, CodeFailure, "用户名已存在")
		return
	}
	id := s.data.newID()
	s.data.users = append(s.data.users, &userRecord{
		User: platform.User{
			ID:        id,
			Username:  req.Username,
			Nickname:  req.Nickname,
			UserRole:  req.UserRole,
			CompanyID: companyID,
		},
		passwordHash: hash,
	})
	ok(c, id)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req platform.UserUpdateRequest
	if !bind(c, &req) {
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	u := s.data.userByID(req.ID)
	if u == nil {
		fail(c, CodeFailure, "用户不存在")
		return
	}
	if req.Nickname != "" {
		u.Nickname = req.Nickname
	}
	if req.UserRole != "" {
		u.UserRole = req.UserRole
	}
	ok(c, true)
}

func (s *Server) handleToggleUser(c *gin.Context) {
	var req platform.IDRequest
	if !bind(c, &req) {
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	u := s.data.userByID(req.ID)
	if u == nil {
		fail(c, CodeFailure, "用户不存在")
		return
	}
	u.disabled = !u.disabled
	ok(c, true)
}
