package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/oltcmd/oltcmd/api/handler"
	"github.com/oltcmd/oltcmd/internal/service"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

// SetupRouter 设置路由；gatherer 为 nil 时不暴露 /metrics
func SetupRouter(mode string, workbench *service.Workbench, gatherer prometheus.Gatherer) *gin.Engine {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	h := handler.NewWorkbenchHandler(workbench)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "OLT Command Workbench",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", h.ListVendors)
			vendors.GET("/:vendor/tree", h.VendorTree)
			vendors.GET("/:vendor/tips", h.VendorTips)
		}

		commands := v1.Group("/commands")
		{
			commands.POST("/select", h.Select)
			commands.POST("/preview", h.Preview)
			commands.POST("/validate", h.Validate)
			commands.POST("/copy", h.Copy)
		}

		v1.GET("/search", h.Search)

		v1.GET("/history", h.History)
		v1.DELETE("/history", h.ClearHistory)

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", h.ListFavorites)
			favorites.POST("", h.AddFavorite)
			favorites.DELETE("", h.RemoveFavorite)
		}

		cat := v1.Group("/catalog")
		{
			cat.GET("/raw", h.CatalogRaw)
			cat.PUT("/raw", h.SaveCatalogRaw)
			cat.POST("/reload", h.ReloadCatalog)
			cat.GET("/export", h.ExportCatalog)
		}

		v1.POST("/tools/onu-removal", h.ONURemoval)

		v1.GET("/preferences", h.GetPreferences)
		v1.PUT("/preferences", h.UpdatePreferences)

		v1.GET("/docs/params/:param", h.ParamHelp)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "NOT_FOUND",
			"message": "endpoint not found",
			"path":    c.Request.URL.Path,
		})
	})

	return r
}

// CORSMiddleware 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware 请求ID中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// LoggingMiddleware 日志中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"duration":   time.Since(start),
			"client_ip":  c.ClientIP(),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("HTTP request failed")
			return
		}
		if status >= http.StatusBadRequest {
			entry.Warn("HTTP request rejected")
			return
		}
		entry.Debug("HTTP request")
	}
}
