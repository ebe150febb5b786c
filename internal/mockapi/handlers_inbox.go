package mockapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crossorg/hrconsole/internal/platform"
)

func (s *Server) handleListNotifications(c *gin.Context) {
	var q platform.NotificationQuery
	if !bind(c, &q) {
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	var rows []platform.NotificationItem
	for _, n := range s.data.notifications[u.ID] {
		if q.Status != nil && n.Status != *q.Status {
			continue
		}
		if q.Type != nil && n.Type != *q.Type {
			continue
		}
		rows = append(rows, platform.NotificationItem{
			ID:         n.ID,
			Title:      n.Title,
			Status:     n.Status,
			StatusText: n.StatusText,
			CreateTime: n.CreateTime,
		})
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleGetNotification(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for _, n := range s.data.notifications[u.ID] {
		if n.ID == id {
			ok(c, n)
			return
		}
	}
	fail(c, CodeNotFound, "通知不存在")
}

func (s *Server) handleUnreadCount(c *gin.Context) {
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	var n int64
	for _, item := range s.data.notifications[u.ID] {
		if item.Status == platform.NotificationUnread {
			n++
		}
	}
	ok(c, n)
}

func markStatus(n *platform.Notification, status int) {
	n.Status = status
	n.StatusText = "未读"
	if status == platform.NotificationRead {
		n.StatusText = "已读"
	}
}

func (s *Server) handleUpdateNotification(c *gin.Context) {
	var req platform.NotificationStatusRequest
	if !bind(c, &req) {
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	items := s.data.notifications[u.ID]
	for i := range items {
		if items[i].ID == req.ID {
			markStatus(&items[i], req.Status)
			ok(c, true)
			return
		}
	}
	fail(c, CodeNotFound, "通知不存在")
}

func (s *Server) handleReadAll(c *gin.Context) {
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	items := s.data.notifications[u.ID]
	for i := range items {
		markStatus(&items[i], platform.NotificationRead)
	}
	ok(c, true)
}

func (s *Server) handlePendingTasks(c *gin.Context) {
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	var n int64
	for _, t := range s.data.tasks {
		if t.EvaluatorID == u.ID && t.Status == 0 {
			n++
		}
	}
	ok(c, n)
}

func (s *Server) handleListTasks(c *gin.Context) {
	var q platform.EvaluationTaskQuery
	if !bind(c, &q) {
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	var rows []platform.EvaluationTask
	for _, t := range s.data.tasks {
		if t.EvaluatorID != u.ID {
			continue
		}
		if q.Status != nil && t.Status != *q.Status {
			continue
		}
		if q.EmployeeID != 0 && t.EmployeeID != q.EmployeeID {
			continue
		}
		rows = append(rows, t)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleAddComplaint(c *gin.Context) {
	var req platform.ComplaintAddRequest
	if !bind(c, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		fail(c, CodeParamsError, "请填写投诉标题和内容")
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	id := s.data.newID()
	s.data.complaints = append(s.data.complaints, platform.Complaint{
		ID:              id,
		ComplainantID:   u.ID,
		ComplainantName: u.Nickname,
		EvaluationID:    req.EvaluationID,
		CompanyID:       u.CompanyID,
		Type:            req.Type,
		Title:           req.Title,
		Content:         req.Content,
		EvidenceImages:  req.EvidenceImages,
		Status:          platform.ComplaintPending,
		StatusText:      "待处理",
		CreateTime:      time.Now().Format(timeLayout),
	})
	ok(c, id)
}

func (s *Server) handleListComplaints(c *gin.Context) {
	var q platform.ComplaintQuery
	if !bind(c, &q) {
		return
	}

	s.data.mu.Lock()
	var rows []platform.Complaint
	for _, cp := range s.data.complaints {
		if q.Status != nil && cp.Status != *q.Status {
			continue
		}
		if q.CompanyID != 0 && cp.CompanyID != q.CompanyID {
			continue
		}
		rows = append(rows, cp)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleGetComplaint(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for _, cp := range s.data.complaints {
		if cp.ID == id {
			ok(c, cp)
			return
		}
	}
	fail(c, CodeNotFound, "投诉不存在")
}

var complaintStatusText = map[int]string{
	platform.ComplaintPending:    "待处理",
	platform.ComplaintProcessing: "处理中",
	platform.ComplaintResolved:   "已处理",
	platform.ComplaintRejected:   "已驳回",
}

func (s *Server) handleHandleComplaint(c *gin.Context) {
	var req platform.ComplaintHandleRequest
	if !bind(c, &req) {
		return
	}
	text, known := complaintStatusText[req.Status]
	if !known {
		fail(c, CodeParamsError, "状态不合法")
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	for i := range s.data.complaints {
		cp := &s.data.complaints[i]
		if cp.ID != req.ID {
			continue
		}
		cp.Status = req.Status
		cp.StatusText = text
		cp.HandleResult = req.HandleResult
		cp.HandlerID = u.ID
		cp.HandlerName = u.Nickname
		cp.HandleTime = time.Now().Format(timeLayout)
		ok(c, true)
		return
	}
	fail(c, CodeNotFound, "投诉不存在")
}

// handleUpload accepts the files field and answers with fake storage URLs.
func (s *Server) handleUpload(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			fail(c, CodeParamsError, "请选择要上传的文件")
			return
		}
		files := form.File[platform.UploadFieldName]
		if len(files) == 0 {
			fail(c, CodeParamsError, "请选择要上传的文件")
			return
		}

		s.data.mu.Lock()
		urls := make([]string, 0, len(files))
		for _, f := range files {
			urls = append(urls, fmt.Sprintf("/uploads/%s/%d-%s", kind, s.data.newID(), f.Filename))
		}
		s.data.mu.Unlock()

		ok(c, urls)
	}
}

func (s *Server) handleCreateQuarterly(c *gin.Context) {
	var req platform.QuarterlyTaskRequest
	if !bind(c, &req) {
		return
	}
	if req.PeriodYear == 0 || req.PeriodQuarter < 1 || req.PeriodQuarter > 4 {
		fail(c, CodeParamsError, "评价周期不合法")
		return
	}
	u := currentUser(c)
	scope := companyScope(u)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	created := 0
	for _, e := range s.data.employees {
		if scope != 0 && e.CompanyID != scope {
			continue
		}
		if req.DepartmentID != 0 && e.DepartmentID != req.DepartmentID {
			continue
		}
		s.data.tasks = append(s.data.tasks, platform.EvaluationTask{
			ID:                   s.data.newID(),
			EmployeeID:           e.ID,
			EmployeeName:         e.Name,
			DepartmentName:       e.DepartmentName,
			EvaluatorID:          u.ID,
			EvaluatorName:        u.Nickname,
			EvaluationType:       3,
			EvaluationTypeText:   "HR评价",
			EvaluationPeriod:     1,
			EvaluationPeriodText: "季度",
			PeriodYear:           req.PeriodYear,
			PeriodQuarter:        req.PeriodQuarter,
			StatusText:           "待评价",
		})
		created++
	}
	ok(c, created)
}

func (s *Server) handleListEvaluations(c *gin.Context) {
	var q platform.EvaluationQuery
	if !bind(c, &q) {
		return
	}

	s.data.mu.Lock()
	var rows []platform.Evaluation
	for _, e := range s.data.evaluations {
		if q.EmployeeID != 0 && e.EmployeeID != q.EmployeeID {
			continue
		}
		if q.EvaluatorID != 0 && e.EvaluatorID != q.EvaluatorID {
			continue
		}
		rows = append(rows, e)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}
