package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"universe-webhook-sync/internal/handler"
	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/service"
	"universe-webhook-sync/internal/service/mocks"
	apperrors "universe-webhook-sync/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupWebhookRouter(svc service.WebhookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewWebhookHandler(svc).RegisterRoutes(r)
	return r
}

func postWebhook(r *gin.Engine, body []byte, sig string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set(handler.SignatureHeader, sig)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_Receive(t *testing.T) {
	body := []byte(`{"event":"ticket_purchase"}`)

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockWebhookService()
		mockService.On("IngestWebhook", mock.Anything, body, "abc123").
			Return(&service.IngestResult{Status: "success", Kind: model.EventKindPurchase, Processed: 2}, nil)

		w := postWebhook(setupWebhookRouter(mockService), body, "abc123")

		assert.Equal(t, http.StatusOK, w.Code)
		var result service.IngestResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, 2, result.Processed)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingSignature", func(t *testing.T) {
		mockService := mocks.NewMockWebhookService()
		mockService.On("IngestWebhook", mock.Anything, body, "").
			Return(nil, apperrors.ErrMissingSignature)

		w := postWebhook(setupWebhookRouter(mockService), body, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Missing signature")
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		mockService := mocks.NewMockWebhookService()
		mockService.On("IngestWebhook", mock.Anything, body, "bad").
			Return(nil, apperrors.ErrInvalidSignature)

		w := postWebhook(setupWebhookRouter(mockService), body, "bad")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid signature")
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		mockService := mocks.NewMockWebhookService()
		mockService.On("IngestWebhook", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrMalformedPayload)

		w := postWebhook(setupWebhookRouter(mockService), []byte("junk"), "abc123")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnexpectedError", func(t *testing.T) {
		mockService := mocks.NewMockWebhookService()
		mockService.On("IngestWebhook", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("sheet unavailable"))

		w := postWebhook(setupWebhookRouter(mockService), body, "abc123")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})
}
