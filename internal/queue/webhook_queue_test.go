package queue_test

import (
	"context"
	"testing"
	"time"

	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelQueue_PublishAndSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewWebhookQueue(10)

	deliveries, err := q.SubscribeJobs(ctx)
	require.NoError(t, err)

	job := &model.WebhookJob{ID: "job-1", Kind: model.EventKindPurchase}
	require.NoError(t, q.PublishJob(ctx, job))

	select {
	case delivery := <-deliveries:
		assert.Equal(t, "job-1", delivery.Data.ID)
		delivery.Ack()
	case <-time.After(time.Second):
		t.Fatal("expected a delivery")
	}
}

func TestChannelQueue_NackRequeues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewWebhookQueue(10)

	deliveries, err := q.SubscribeJobs(ctx)
	require.NoError(t, err)

	require.NoError(t, q.PublishJob(ctx, &model.WebhookJob{ID: "job-1", Kind: model.EventKindUpdate}))

	first := <-deliveries
	first.Nack(true)

	select {
	case second := <-deliveries:
		assert.Equal(t, "job-1", second.Data.ID)
		second.Ack()
	case <-time.After(time.Second):
		t.Fatal("expected the job to be redelivered")
	}
}

func TestChannelQueue_SubscribeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := queue.NewWebhookQueue(10)
	deliveries, err := q.SubscribeJobs(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-deliveries:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected delivery channel to close")
	}
}
