// Package mockapi is an in-memory stand-in for the platform backend, used for
// local development and by tests. It speaks the same envelope and endpoints
// as the real backend for the calls the console makes.
package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/metrics"
	"github.com/crossorg/hrconsole/internal/platform"
	"github.com/crossorg/hrconsole/internal/session"
	"github.com/crossorg/hrconsole/internal/version"
)

// Envelope codes used by the backend.
const (
	CodeSuccess     = 0
	CodeFailure     = 1
	CodeParamsError = 40000
	CodeNotLogin    = 40100
	CodeNoAuth      = 40101
	CodeNotFound    = 40400
	CodeSystemError = 50000
)

// Options configures a Server.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// BcryptCost is the cost used to hash fixture passwords.
	BcryptCost int
	Logger     *log.Logger
}

// Server is the mock backend.
type Server struct {
	engine   *gin.Engine
	data     *data
	secret   []byte
	tokenTTL time.Duration
	log      *log.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// New builds the mock backend with fresh fixtures.
func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "hrconsole-dev-secret"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}

	d, err := newData(opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	reg, m := metrics.NewRegistry()
	s := &Server{
		engine:   gin.New(),
		data:     d,
		secret:   []byte(opts.JWTSecret),
		tokenTTL: opts.TokenTTL,
		log:      opts.Logger.WithComponent("mockapi"),
		registry: reg,
		metrics:  m,
	}
	if err := metrics.TrackStore(reg, d.sizes()...); err != nil {
		return nil, err
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving /api.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the metrics the server records.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		s.metrics.RecordRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), elapsed)
		if code, failed := c.Get(ctxEnvelopeKey); failed {
			s.metrics.RecordEnvelopeError(code.(int))
		}
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", elapsed.String(),
		)
	}
}

func (s *Server) routes() {
	staff := requireRoles(session.RoleAdmin, session.RoleCompanyAdmin, session.RoleHR)
	admin := requireRoles(session.RoleAdmin)
	managers := requireRoles(session.RoleAdmin, session.RoleCompanyAdmin)

	s.engine.GET("/metrics", gin.WrapH(metrics.HandlerFor(s.registry)))

	api := s.engine.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		ok(c, platform.BackendHealth{Status: "ok", Version: version.GetInfo().Short()})
	})

	api.POST("/user/login", s.handleLogin)
	api.POST("/user/logout", s.handleLogout)
	api.POST("/company/registration/apply", s.handleApplyRegistration)
	api.POST("/company/registration/upload/proof", s.handleUpload("proof"))

	authed := api.Group("", s.requireLogin())
	authed.GET("/user/get/login", s.handleGetLoginUser)
	authed.POST("/user/list/page/vo", managers, s.handleListUsers)
	authed.GET("/user/get/vo", managers, s.handleGetUser)
	authed.POST("/user/register", managers, s.handleRegister)
	authed.POST("/user/update", admin, s.handleUpdateUser)
	authed.POST("/user/toggle", admin, s.handleToggleUser)

	authed.POST("/company/list/page/vo", admin, s.handleListCompanies)
	authed.GET("/company/get/vo", staff, s.handleGetCompany)
	authed.POST("/company/registration/list/page", admin, s.handleListRegistrations)
	authed.PUT("/company/registration/approve", admin, s.handleApproveRegistration)

	authed.POST("/department/list/page/vo", staff, s.handleListDepartments)

	authed.GET("/employee/count", s.handleCountEmployees)
	authed.GET("/employee/get/me/vo", s.handleMyEmployee)
	authed.POST("/employee/list/page/vo", staff, s.handleListEmployees)
	authed.POST("/employeeProfile/list/page/vo", staff, s.handleListProfiles)
	authed.POST("/employeeProfile/list/page/vo/me", s.handleMyProfiles)

	authed.POST("/notification/list/page/vo", s.handleListNotifications)
	authed.GET("/notification/get/vo", s.handleGetNotification)
	authed.GET("/notification/unread/count", s.handleUnreadCount)
	authed.PUT("/notification/update/status", s.handleUpdateNotification)
	authed.PUT("/notification/read/all", s.handleReadAll)

	authed.GET("/evaluation/task/pending/count", s.handlePendingTasks)
	authed.POST("/evaluation/task/list/page/vo", s.handleListTasks)
	authed.POST("/evaluation/task/create/quarterly", staff, s.handleCreateQuarterly)
	authed.POST("/evaluation/list/page/vo", s.handleListEvaluations)

	authed.POST("/complaint/add", s.handleAddComplaint)
	authed.POST("/complaint/list/page/vo", admin, s.handleListComplaints)
	authed.GET("/complaint/detail", admin, s.handleGetComplaint)
	authed.POST("/complaint/handle", admin, s.handleHandleComplaint)
	authed.POST("/complaint/upload/evidence", s.handleUpload("evidence"))

	authed.POST("/talent-market/search", staff, s.handleSearchTalents)
	authed.GET("/talent-market/detail/:employeeId", staff, s.handleTalentDetail)
	authed.POST("/talent-market/bookmark", staff, s.handleBookmark)
	authed.DELETE("/talent-market/bookmark/:employeeId", staff, s.handleUnbookmark)
	authed.GET("/talent-market/bookmarks", staff, s.handleBookmarks)
	authed.POST("/talent-market/compare", staff, s.handleCompare)
	authed.GET("/talent-market/check-permission", s.handleCheckPermission)
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": CodeSuccess, "data": data, "message": "ok"})
}

func fail(c *gin.Context, code int, message string) {
	c.Set(ctxEnvelopeKey, code)
	c.JSON(http.StatusOK, gin.H{"code": code, "data": nil, "message": message})
}

// bind decodes the JSON body, answering with a params error on failure.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, CodeParamsError, "请求参数错误")
		return false
	}
	return true
}
