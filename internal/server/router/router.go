package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Animals  *handlers.AnimalHandler
	Health   *handlers.HealthHandler
	Finance  *handlers.FinanceHandler
	Pastures *handlers.PastureHandler
	Insights *handlers.InsightsHandler
	Commands *handlers.CommandHandler
}

// New wires the Gin engine with required routes and middlewares.
// A nil gatherer leaves /metrics unmounted.
func New(h Handlers, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	animals := r.Group("/animals")
	animals.GET("", h.Animals.List)
	animals.POST("", h.Animals.Create)
	animals.GET("/:id", h.Animals.Get)
	animals.PATCH("/:id", h.Animals.Update)
	animals.DELETE("/:id", h.Animals.Delete)
	animals.POST("/:id/vision", h.Animals.Vision)

	health := r.Group("/health")
	health.GET("", h.Health.List)
	health.POST("", h.Health.Create)
	health.PATCH("/:id/status", h.Health.UpdateStatus)

	finance := r.Group("/finance")
	finance.GET("", h.Finance.List)
	finance.POST("", h.Finance.Create)
	finance.GET("/balance", h.Finance.Balance)

	pastures := r.Group("/pastures")
	pastures.GET("", h.Pastures.List)
	pastures.POST("", h.Pastures.Create)
	pastures.PATCH("/:id", h.Pastures.Update)
	pastures.POST("/move", h.Pastures.Move)

	r.GET("/summary", h.Insights.Summary)
	r.POST("/assistant/advice", h.Insights.Advice)
	r.POST("/commands", h.Commands.Handle)

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
