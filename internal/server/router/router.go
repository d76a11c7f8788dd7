package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(handlers.ActorMiddleware())

	api := r.Group("/api")
	write := handlers.RequireWriter()

	customers := api.Group("/customers")
	customers.GET("", handler.ListCustomers)
	customers.GET("/:id", handler.GetCustomer)
	customers.POST("", write, handler.CreateCustomer)
	customers.PUT("/:id", write, handler.UpdateCustomer)
	customers.DELETE("/:id", write, handler.DeleteCustomer)

	jobs := api.Group("/jobs")
	jobs.GET("", handler.ListJobs)
	jobs.GET("/:id", handler.GetJob)
	jobs.GET("/:id/analysis", handler.JobAnalysis)
	jobs.POST("", write, handler.CreateJob)
	jobs.PUT("/:id", write, handler.UpdateJob)
	jobs.DELETE("/:id", write, handler.DeleteJob)

	expenses := api.Group("/expenses")
	expenses.GET("", handler.ListExpenses)
	expenses.POST("", write, handler.CreateExpense)
	expenses.PUT("/:id", write, handler.UpdateExpense)
	expenses.DELETE("/:id", write, handler.DeleteExpense)

	assets := api.Group("/assets")
	assets.GET("", handler.ListAssets)
	assets.POST("", write, handler.CreateAsset)
	assets.PUT("/:id", write, handler.UpdateAsset)
	assets.DELETE("/:id", write, handler.DeleteAsset)

	stockLogs := api.Group("/stock-logs")
	stockLogs.GET("", handler.ListStockLogs)
	stockLogs.POST("", write, handler.CreateStockLog)
	stockLogs.PUT("/:id", write, handler.UpdateStockLog)
	stockLogs.DELETE("/:id", write, handler.DeleteStockLog)

	api.GET("/settings", handler.GetSettings)
	api.PUT("/settings", write, handler.UpdateSettings)

	api.GET("/reports/monthly", handler.MonthlyReport)
	api.GET("/audit", handler.ListAudit)

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
