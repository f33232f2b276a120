package queue

import (
	"context"

	"universe-webhook-sync/internal/model"
)

type Delivery struct {
	Data *model.WebhookJob
	Ack  func()
	Nack func(requeue bool)
}

type WebhookQueue interface {
	// 發送已驗簽的 webhook 到隊列
	PublishJob(ctx context.Context, job *model.WebhookJob) error
	// 訂閱 webhook 隊列
	SubscribeJobs(ctx context.Context) (<-chan Delivery, error)
}

type WebhookQueueImpl struct {
	// 使用 Go channel 模擬 MQ，開發與測試用
	ch chan *model.WebhookJob
}

func NewWebhookQueue(bufferSize int) WebhookQueue {
	return &WebhookQueueImpl{
		ch: make(chan *model.WebhookJob, bufferSize),
	}
}

func (q *WebhookQueueImpl) PublishJob(ctx context.Context, job *model.WebhookJob) error {
	q.ch <- job
	return nil
}

func (q *WebhookQueueImpl) SubscribeJobs(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: job,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- job // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
