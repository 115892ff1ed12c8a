package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "github.com/hareesh3232/Mock-test-interview/internal/auth"
	"github.com/hareesh3232/Mock-test-interview/internal/dashboard"
	"github.com/hareesh3232/Mock-test-interview/internal/interviews"
	"github.com/hareesh3232/Mock-test-interview/internal/jobs"
	"github.com/hareesh3232/Mock-test-interview/internal/resumes"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/config"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/metrics"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/middleware"
	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/respond"
	"github.com/hareesh3232/Mock-test-interview/internal/users"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	UserHandler      *users.Handler
	GoogleAuth       *googleauth.GoogleService
	ResumeHandler    *resumes.Handler
	JobHandler       *jobs.Handler
	InterviewHandler *interviews.Handler
	DashboardHandler *dashboard.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Health and metrics stay outside auth so probes need no identity.
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", metrics.Handler())

	authed := r.Group("")
	authed.Use(
		middleware.Auth(cfg.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(authed.Group("/auth"))
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(authed)
	}

	api := authed.Group("/api")
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api.Group("/resume"))
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(api.Group("/jobs"))
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.RegisterRoutes(api.Group("/interview"))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api.Group("/dashboard"))
	}

	return r
}

// rateLimitConfig throttles the expensive routes harder than reads.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/api/resume/upload":
				return "UPLOAD"
			case "/api/interview/generate", "/api/interview/submit":
				return "LLM"
			case "/api/interview/:id/status":
				return "POLLING"
			default:
				return "DEFAULT"
			}
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 20},
			"UPLOAD":  {Rate: 0.2, Burst: 3},
			"LLM":     {Rate: 1, Burst: 5},
			"POLLING": {Rate: 5, Burst: 10},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
