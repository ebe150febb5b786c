package mockapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/session"
)

func (d *data) talentByID(id int64) (platform.Talent, bool) {
	for _, t := range d.talents {
		if t.ID == id {
			return t, true
		}
	}
	return platform.Talent{}, false
}

// decorate marks caller-relative fields on a talent row.
func (d *data) decorate(t platform.Talent, caller platform.User) platform.Talent {
	t.Bookmarked = d.bookmarks[caller.ID][t.ID]
	for _, e := range d.employees {
		if e.ID == t.ID {
			t.IsOwnEmployee = caller.CompanyID != 0 && e.CompanyID == caller.CompanyID
		}
	}
	return t
}

func (s *Server) handleSearchTalents(c *gin.Context) {
	var q platform.TalentSearch
	if !bind(c, &q) {
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	var rows []platform.Talent
	for _, t := range s.data.talents {
		if q.Keyword != "" && !containsFold(t.Name, q.Keyword) && !containsFold(t.LatestOccupation, q.Keyword) {
			continue
		}
		if q.Gender != "" && t.Gender != q.Gender {
			continue
		}
		if q.OnlyWorking && !t.Status {
			continue
		}
		if q.OnlyLeft && t.Status {
			continue
		}
		if q.MinAverageScore != nil && t.AverageScore < *q.MinAverageScore {
			continue
		}
		if q.MaxAverageScore != nil && t.AverageScore > *q.MaxAverageScore {
			continue
		}
		t = s.data.decorate(t, u)
		if q.ExcludeOwnCompany && t.IsOwnEmployee {
			continue
		}
		rows = append(rows, t)
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, q.PageRequest))
}

func (s *Server) handleTalentDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil {
		fail(c, CodeParamsError, "请求参数错误")
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	t, found := s.data.talentByID(id)
	if !found {
		fail(c, CodeNotFound, "人才不存在")
		return
	}
	ok(c, platform.TalentDetail{
		Talent: s.data.decorate(t, u),
		DimensionScores: map[string]float64{
			"工作能力": t.AverageScore,
			"团队协作": t.AverageScore - 0.2,
		},
		FreeEvaluationCount: min(t.EvaluationCount, 3),
		CanRequestContact:   true,
	})
}

func (s *Server) handleBookmark(c *gin.Context) {
	var req platform.BookmarkRequest
	if !bind(c, &req) {
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	if _, found := s.data.talentByID(req.EmployeeID); !found {
		fail(c, CodeNotFound, "人才不存在")
		return
	}
	marks := s.data.bookmarks[u.ID]
	if marks == nil {
		marks = make(map[int64]bool)
		s.data.bookmarks[u.ID] = marks
	}
	if marks[req.EmployeeID] {
		fail(c, CodeFailure, "已收藏该人才")
		return
	}
	marks[req.EmployeeID] = true
	ok(c, s.data.newID())
}

func (s *Server) handleUnbookmark(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil {
		fail(c, CodeParamsError, "请求参数错误")
		return
	}
	u := currentUser(c)

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	delete(s.data.bookmarks[u.ID], id)
	ok(c, true)
}

func (s *Server) handleBookmarks(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.Query("pageNum"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	u := currentUser(c)

	s.data.mu.Lock()
	var rows []platform.Talent
	for _, t := range s.data.talents {
		if s.data.bookmarks[u.ID][t.ID] {
			rows = append(rows, s.data.decorate(t, u))
		}
	}
	s.data.mu.Unlock()

	ok(c, paginate(rows, platform.PageRequest{PageNum: pageNum, PageSize: pageSize}))
}

func (s *Server) handleCompare(c *gin.Context) {
	var req struct {
		EmployeeIDs []int64 `json:"employeeIds"`
	}
	if !bind(c, &req) {
		return
	}
	if len(req.EmployeeIDs) < 2 || len(req.EmployeeIDs) > platform.MaxCompare {
		fail(c, CodeParamsError, "请选择2-4名人才进行对比")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	out := platform.TalentComparison{DimensionNames: []string{"工作能力", "团队协作"}}
	for _, id := range req.EmployeeIDs {
		t, found := s.data.talentByID(id)
		if !found {
			fail(c, CodeNotFound, "人才不存在")
			return
		}
		out.Items = append(out.Items, platform.CompareItem{
			EmployeeID:         t.ID,
			Name:               t.Name,
			CurrentCompanyName: t.CurrentCompanyName,
			LatestOccupation:   t.LatestOccupation,
			AverageScore:       t.AverageScore,
			EvaluationCount:    t.EvaluationCount,
			DimensionScores: map[string]float64{
				"工作能力": t.AverageScore,
				"团队协作": t.AverageScore - 0.2,
			},
		})
	}
	ok(c, out)
}

// handleCheckPermission allows staff roles into the market.
func (s *Server) handleCheckPermission(c *gin.Context) {
	switch session.ParseRole(currentUser(c).UserRole) {
	case session.RoleAdmin, session.RoleCompanyAdmin, session.RoleHR:
		ok(c, true)
	default:
		ok(c, false)
	}
}
