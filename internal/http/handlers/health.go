package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/observability"
)

type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler pings db on each check when it is non-nil.
func NewHealthHandler(db *gorm.DB) *HealthHandler { return &HealthHandler{db: db} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}

type MetricsHandler struct {
	metrics *observability.Metrics
}

func NewMetricsHandler(m *observability.Metrics) *MetricsHandler { return &MetricsHandler{metrics: m} }

// GET /metrics
func (h *MetricsHandler) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.String(http.StatusNotFound, "metrics disabled")
		return
	}
	h.metrics.WriteHTTP(c.Writer, c.Request)
}
