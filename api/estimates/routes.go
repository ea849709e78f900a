package estimates

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/ecoamp/core/dashboard"
	"github.com/kilianp07/ecoamp/core/logger"
	"github.com/kilianp07/ecoamp/core/monitoring"
)

// SetupRoutes registers the API routes on r.
func SetupRoutes(r *gin.Engine, d *dashboard.Dashboard) {
	h := NewHandler(d)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	{
		api.POST("/estimate/:tool", h.Estimate)
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/counter", h.GetCounter)
		api.GET("/sweep", h.GetSweep)
	}
}

// NewRouter builds a gin engine with logging and panic reporting middleware.
func NewRouter(d *dashboard.Dashboard, log logger.Logger, mon monitoring.Monitor) *gin.Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	if mon == nil {
		mon = monitoring.NopMonitor{}
	}
	r := gin.New()
	r.Use(recovery(log, mon), requestLog(log))
	SetupRoutes(r, d)
	return r
}

func requestLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugw("http request", map[string]any{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}

func recovery(log logger.Logger, mon monitoring.Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic serving %s: %v", c.Request.URL.Path, r)
				log.Errorf("%v", err)
				mon.CaptureException(err, map[string]string{"module": "api", "path": c.FullPath()})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
