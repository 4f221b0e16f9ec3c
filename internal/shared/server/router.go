package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docmanager-backend/internal/auth"
	"docmanager-backend/internal/documents"
	"docmanager-backend/internal/queries"
	"docmanager-backend/internal/shared/config"
	"docmanager-backend/internal/shared/metrics"
	"docmanager-backend/internal/shared/server/middleware"
	"docmanager-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up. Construction of the
// handlers lives in bootstrap so tests can swap implementations.
type RouterDeps struct {
	Config          config.Config
	AuthHandler     *auth.Handler
	DocumentHandler *documents.Handler
	QueryHandler    *queries.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	// One limiter shared by both groups so a caller cannot reset their budget
	// by switching endpoints. On the protected group it runs after Identity,
	// keying buckets by user id instead of client IP.
	limits := middleware.DefaultRateLimitConfig()
	limits.Limiter = middleware.NewRateLimiter(nil)

	public := api.Group("")
	public.Use(middleware.RateLimit(limits))
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(public)
	}
	if deps.QueryHandler != nil {
		public.GET("/queries/query", deps.QueryHandler.Process)
	}
	if deps.DocumentHandler != nil {
		protected := api.Group("")
		protected.Use(middleware.Identity(), middleware.RateLimit(limits))
		deps.DocumentHandler.RegisterRoutes(protected)
	}

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
