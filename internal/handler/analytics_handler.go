package handler

import (
	"net/http"

	"universe-webhook-sync/internal/service"
	"universe-webhook-sync/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/analytics", h.Report)
}

func (h *AnalyticsHandler) Report(c *gin.Context) {
	var filters service.ListFilters
	if err := BindQuery(c, &filters); err != nil {
		return
	}

	report, err := h.service.Report(c, filters)
	if err != nil {
		h.handleError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	log.Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
}
