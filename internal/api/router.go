package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/dbpool"
	"github.com/hfappmaker/worktime/internal/middleware"
	"github.com/hfappmaker/worktime/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log            *logrus.Logger
	Pool           *dbpool.Pool
	Hub            *ws.Hub
	Clients        ClientService
	Contracts      ContractService
	WorkReports    WorkReportService
	EmailTemplates EmailTemplateService
	Audit          AuditQueryService
	SessionLookup  middleware.SessionLookup
	CORSOrigins    []string
	Version        string

	AuditRetentionDays  int
	SessionCacheTTL     time.Duration
	SessionCacheEntries int
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, log, deps.Version)
	clients := NewClientHandler(deps.Clients, log)
	contracts := NewContractHandler(deps.Contracts, log)
	reports := NewWorkReportHandler(deps.WorkReports, log)
	templates := NewEmailTemplateHandler(deps.EmailTemplates, log)
	audit := NewAuditHandler(deps.Audit, deps.AuditRetentionDays, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	cached := middleware.NewCachedSessionLookup(ctx, deps.SessionLookup, deps.SessionCacheTTL, deps.SessionCacheEntries)
	api.Use(middleware.AuthMiddleware(cached, log))

	// Clients.
	api.GET("/clients", clients.List)
	api.POST("/clients", clients.Create)
	api.GET("/clients/:id", clients.Get)
	api.PATCH("/clients/:id", clients.Update)
	api.DELETE("/clients/:id", clients.Delete)

	// Contracts.
	api.GET("/contracts", contracts.List)
	api.POST("/contracts", contracts.Create)
	api.GET("/contracts/:id", contracts.Get)
	api.PATCH("/contracts/:id", contracts.Update)
	api.DELETE("/contracts/:id", contracts.Delete)

	// Work reports.
	api.GET("/work-reports", reports.List)
	api.POST("/work-reports", reports.Create)
	api.PUT("/work-reports/month", reports.UpsertMonth)
	api.GET("/work-reports/:id", reports.Get)
	api.PATCH("/work-reports/:id", reports.Update)
	api.DELETE("/work-reports/:id", reports.Delete)

	// Email templates.
	api.GET("/email-templates", templates.List)
	api.POST("/email-templates", templates.Create)
	api.GET("/email-templates/:id", templates.Get)
	api.PATCH("/email-templates/:id", templates.Update)
	api.DELETE("/email-templates/:id", templates.Delete)
	api.POST("/email-templates/:id/render", templates.Render)

	// Audit trail.
	api.GET("/audit", audit.Query)
	api.DELETE("/audit", audit.Purge)

	// WebSocket endpoint.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, cached))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
