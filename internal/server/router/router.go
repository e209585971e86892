package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/server/handlers"
	"github.com/mamadbah2/salesboard/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.SalesHandler, corsOrigin string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigin))

	api := r.Group("/api")
	api.GET("/sales", handler.List)
	api.GET("/sales/:id", handler.Get)
	api.GET("/filters", handler.Filters)
	api.GET("/health", handler.Health)

	logger.Info("router initialized")

	return r
}
