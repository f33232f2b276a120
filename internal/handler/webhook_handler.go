package handler

import (
	"net/http"

	"universe-webhook-sync/internal/service"
	apperrors "universe-webhook-sync/pkg/app_errors"
	"universe-webhook-sync/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Universe 的簽章 header（對，有兩個 i）
const SignatureHeader = "X-Uniiverse-Signature"

type WebhookHandler struct {
	service service.WebhookService
}

func NewWebhookHandler(service service.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

func (h *WebhookHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/webhook", h.Receive)
}

func (h *WebhookHandler) Receive(c *gin.Context) {
	// 簽章蓋在原始 bytes 上，不能先過 JSON binding
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	sig := c.GetHeader(SignatureHeader)
	result, err := h.service.IngestWebhook(c, rawBody, sig)
	if err != nil {
		h.handleError(c, err, "Receive")
		return
	}

	logger.WithComponent("handler").Info("webhook processed",
		zap.String("status", result.Status),
		zap.String("kind", result.Kind),
		zap.Int("processed", result.Processed))
	c.JSON(http.StatusOK, result)
}

func (h *WebhookHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrMissingSignature:
		log.Warn("Missing signature or secret")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing signature or secret"})
	case err == apperrors.ErrInvalidSignature:
		log.Warn("Invalid signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
	case err == apperrors.ErrMalformedPayload:
		log.Warn("Malformed payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed payload"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
