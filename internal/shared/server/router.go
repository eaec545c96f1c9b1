package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/analyze"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/config"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/metrics"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/server/middleware"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up. Construction of
// services and repositories lives in the bootstrap package.
type RouterDeps struct {
	Config         config.Config
	JobsHandler    *jobs.Handler
	AnalyzeHandler *analyze.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyze" {
					return "ANALYZE"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				// Analysis requests fan out to the scoring provider, so
				// they get a tighter budget than plain reads.
				"DEFAULT": {Rate: 5, Burst: 20},
				"ANALYZE": {Rate: 0.5, Burst: 3},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.JobsHandler.RegisterRoutes(api)
	deps.AnalyzeHandler.RegisterRoutes(api)

	return r
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
