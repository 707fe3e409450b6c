package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/recon-api/internal/config"
	domainRepo "github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/internal/presentation/http/handler"
	"github.com/sellerdesk/recon-api/internal/presentation/http/middleware"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Run     *handler.RunHandler
	Master  *handler.MasterHandler
	Summary *handler.SummaryHandler
	Report  *handler.ReportHandler
	Anomaly *handler.AnomalyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerReconciliationRoutes(v1, h, deps)
		registerQueryRoutes(v1, h)
	}

	return router
}

func registerReconciliationRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	runs := v1.Group("/reconciliation/runs")
	{
		// Repeat submissions with the same Idempotency-Key replay the
		// recorded response instead of triggering a second run.
		runs.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Run.Create)
		runs.GET("", h.Run.List)
		runs.GET("/latest", h.Run.Latest)
		runs.GET("/:id", h.Run.Get)
	}
}

func registerQueryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	master := v1.Group("/master-records")
	{
		master.GET("", h.Master.List)
		master.GET("/:release/:line", h.Master.Get)
	}

	summaries := v1.Group("/summaries")
	{
		summaries.GET("", h.Summary.List)
		summaries.GET("/:month", h.Summary.Get)
	}

	v1.GET("/report", h.Report.Get)
	v1.GET("/anomalies", h.Anomaly.ListAnomalies)
	v1.GET("/rejections", h.Anomaly.ListRejections)
}
