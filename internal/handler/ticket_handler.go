package handler

import (
	"net/http"

	"universe-webhook-sync/internal/service"
	"universe-webhook-sync/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api")
	{
		router.GET("tickets", h.List)
		router.GET("events", h.ListEvents)
	}
}

// ListTicketsQuery 清單查詢參數
type ListTicketsQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=50"`
	service.ListFilters
}

func (h *TicketHandler) List(c *gin.Context) {
	var query ListTicketsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	page, err := h.service.List(c, query.ListFilters, query.Page, query.Limit)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TicketHandler) ListEvents(c *gin.Context) {
	titles, err := h.service.EventTitles(c)
	if err != nil {
		h.handleError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": titles})
}

func (h *TicketHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	log.Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
