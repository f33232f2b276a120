package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"universe-webhook-sync/internal/cache"
	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/normalizer"
	"universe-webhook-sync/internal/queue"
	"universe-webhook-sync/internal/reconcile"
	"universe-webhook-sync/internal/signature"
	"universe-webhook-sync/internal/store"
	apperrors "universe-webhook-sync/pkg/app_errors"
	"universe-webhook-sync/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IngestResult 回給 webhook 呼叫端的處理摘要
type IngestResult struct {
	Status    string `json:"status"` // success | ignored | queued
	Kind      string `json:"kind"`
	Processed int    `json:"processed"`
}

type WebhookService interface {
	// 驗簽、解析、正規化並落地（或進隊列）一個 webhook 請求
	IngestWebhook(ctx context.Context, rawBody []byte, sig string) (*IngestResult, error)
	// 處理隊列裡的一筆投遞（worker 用）
	ProcessJob(ctx context.Context, job *model.WebhookJob) error
}

type WebhookServiceImpl struct {
	store        store.TableStore
	cache        cache.SnapshotCache
	webhookQueue queue.WebhookQueue
	secret       string
	targetLabel  string
	async        bool
}

func NewWebhookService(
	tableStore store.TableStore,
	snapshotCache cache.SnapshotCache,
	webhookQueue queue.WebhookQueue,
	secret string,
	targetLabel string,
	async bool,
) WebhookService {
	return &WebhookServiceImpl{
		store:        tableStore,
		cache:        snapshotCache,
		webhookQueue: webhookQueue,
		secret:       secret,
		targetLabel:  targetLabel,
		async:        async,
	}
}

func (s *WebhookServiceImpl) IngestWebhook(ctx context.Context, rawBody []byte, sig string) (*IngestResult, error) {
	// 簽章或密鑰缺席就整包拒絕，不碰儲存
	if sig == "" || s.secret == "" {
		return nil, apperrors.ErrMissingSignature
	}
	if !signature.Verify(rawBody, sig, s.secret) {
		return nil, apperrors.ErrInvalidSignature
	}

	var payload model.RawEventPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, apperrors.ErrMalformedPayload
	}

	kind := payload.Kind()
	records := normalizer.FilterByTarget(normalizer.Normalize(&payload), s.targetLabel)
	if len(records) == 0 {
		return &IngestResult{Status: "ignored", Kind: kind}, nil
	}

	if s.async {
		job := &model.WebhookJob{
			ID:         uuid.New().String(),
			Kind:       kind,
			ReceivedAt: time.Now().UTC(),
			Payload:    json.RawMessage(rawBody),
		}
		// ctx 跟隨請求生命週期；發送失敗回 500 讓來源端重送
		if err := s.webhookQueue.PublishJob(ctx, job); err != nil {
			logger.WithComponent("service").Error("publish webhook job failed", zap.Error(err))
			return nil, apperrors.ErrInternalServerError
		}
		return &IngestResult{Status: "queued", Kind: kind, Processed: len(records)}, nil
	}

	if err := s.apply(ctx, records, kind); err != nil {
		return nil, err
	}
	return &IngestResult{Status: "success", Kind: kind, Processed: len(records)}, nil
}

func (s *WebhookServiceImpl) ProcessJob(ctx context.Context, job *model.WebhookJob) error {
	var payload model.RawEventPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		// 進隊列前已解析過一次，這裡壞掉代表消息本身損毀，不重試
		logger.WithComponent("service").Warn("corrupt job payload, dropping",
			zap.String("job_id", job.ID), zap.Error(err))
		return nil
	}

	records := normalizer.FilterByTarget(normalizer.Normalize(&payload), s.targetLabel)
	if len(records) == 0 {
		return nil
	}
	return s.apply(ctx, records, job.Kind)
}

// apply 執行 reconcile 決策：update 逐列改寫，insert 收集起來一次 append。
// 寫入中途失敗即中止批次（已寫入的列不回滾，儲存端沒有交易邊界）。
func (s *WebhookServiceImpl) apply(ctx context.Context, records []model.TicketRecord, kind string) error {
	log := logger.WithComponent("service")

	snapshot := &store.Snapshot{}
	if kind == model.EventKindUpdate {
		var err error
		snapshot, err = s.store.ReadAll(ctx)
		if err != nil {
			return fmt.Errorf("read store snapshot: %w", err)
		}
	}

	actions, err := reconcile.Plan(records, kind, snapshot)
	if err != nil {
		return err
	}

	inserts := make([][]string, 0, len(actions))
	dirty := false
	for _, action := range actions {
		switch action.Type {
		case reconcile.ActionInsert:
			inserts = append(inserts, action.Record.ToRow())
		case reconcile.ActionUpdate:
			if err := s.store.UpdateRowAt(ctx, action.RowIndex, action.Record.ToRow()); err != nil {
				if dirty {
					s.cache.Invalidate(ctx)
				}
				return fmt.Errorf("update row for ticket %s: %w", action.Record.TicketID, err)
			}
			dirty = true
			log.Info("row updated",
				zap.String("ticket_id", action.Record.TicketID),
				zap.Int("row_index", action.RowIndex))
		}
	}

	if len(inserts) > 0 {
		if err := s.store.AppendRows(ctx, inserts); err != nil {
			if dirty {
				s.cache.Invalidate(ctx)
			}
			return fmt.Errorf("append rows: %w", err)
		}
		dirty = true
		log.Info("rows appended", zap.Int("count", len(inserts)), zap.String("kind", kind))
	}

	if dirty {
		s.cache.Invalidate(ctx)
	}
	return nil
}
