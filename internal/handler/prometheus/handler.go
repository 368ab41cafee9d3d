package prometheus

import (
	"github.com/gin-gonic/gin"

	"github.com/tsireledzonetshilonwe/quick-health-hub/pkg/metrics"
)

// Handler exposes the collectors held by a metrics.Metrics registry.
type Handler struct {
	metrics *metrics.Metrics
}

func New(m *metrics.Metrics) *Handler {
	return &Handler{metrics: m}
}

// RegisterRoutes mounts the scrape endpoint at /metrics on r.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/metrics", h.Handler())
}

func (h *Handler) Handler() gin.HandlerFunc {
	return gin.WrapH(h.metrics.Handler())
}
