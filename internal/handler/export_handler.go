package handler

import (
	"fmt"
	"net/http"
	"time"

	"universe-webhook-sync/internal/service"
	"universe-webhook-sync/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/export/csv", h.ExportCSV)
}

func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var filters service.ListFilters
	if err := BindQuery(c, &filters); err != nil {
		return
	}

	data, err := h.service.CSV(c, filters)
	if err != nil {
		log := logger.WithComponent("handler").With(zap.String("operation", "ExportCSV"), zap.Error(err))
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export tickets"})
		return
	}

	filename := fmt.Sprintf("tickets-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
