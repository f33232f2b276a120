package mocks

import (
	"context"

	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/queue"

	"github.com/stretchr/testify/mock"
)

type MockWebhookQueue struct {
	mock.Mock
}

func NewMockWebhookQueue() *MockWebhookQueue {
	return &MockWebhookQueue{}
}

func (m *MockWebhookQueue) PublishJob(ctx context.Context, job *model.WebhookJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockWebhookQueue) SubscribeJobs(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
