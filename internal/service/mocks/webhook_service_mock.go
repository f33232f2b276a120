package mocks

import (
	"context"

	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockWebhookService struct {
	mock.Mock
}

func NewMockWebhookService() *MockWebhookService {
	return &MockWebhookService{}
}

func (m *MockWebhookService) IngestWebhook(ctx context.Context, rawBody []byte, sig string) (*service.IngestResult, error) {
	args := m.Called(ctx, rawBody, sig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

func (m *MockWebhookService) ProcessJob(ctx context.Context, job *model.WebhookJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
