package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the HTTP routes.
func NewRouter(metals *MetalsHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestLogger(logger.Named("http")), gin.Recovery())

	r.GET("/healthz", Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	m := r.Group("/metals")
	{
		m.GET("", metals.List)
		m.POST("/refresh", metals.Refresh)
		m.GET("/:id", metals.Detail)
	}
	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
