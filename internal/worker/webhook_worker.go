package worker

import (
	"context"

	"universe-webhook-sync/internal/queue"
	"universe-webhook-sync/internal/service"
	"universe-webhook-sync/pkg/logger"

	"go.uber.org/zap"
)

type WebhookWorker interface {
	// 訂閱 webhook 隊列
	Start(ctx context.Context) error
}

type WebhookWorkerImpl struct {
	service service.WebhookService
	queue   queue.WebhookQueue
}

func NewWebhookWorker(service service.WebhookService, queue queue.WebhookQueue) WebhookWorker {
	return &WebhookWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *WebhookWorkerImpl) Start(ctx context.Context) error {
	msgs, _ := w.queue.SubscribeJobs(ctx)

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			err := w.service.ProcessJob(ctx, msg.Data)

			if err != nil {
				// 表格儲存暫時連不上時重試；毒藥消息由隊列端丟棄
				log.Error("process webhook job failed, will retry",
					zap.String("job_id", msg.Data.ID), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
