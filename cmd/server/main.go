package main

import (
	"context"
	"log"

	"universe-webhook-sync/config"
	"universe-webhook-sync/internal/cache"
	"universe-webhook-sync/internal/database"
	"universe-webhook-sync/internal/handler"
	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/queue"
	"universe-webhook-sync/internal/service"
	"universe-webhook-sync/internal/store"
	"universe-webhook-sync/internal/worker"
	"universe-webhook-sync/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 沒有也沒關係，線上環境直接吃環境變數
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	defer logger.Sync()

	ctx := context.Background()

	tableStore, cleanup, err := initStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize table store: %v", err)
	}
	defer cleanup()

	// 啟動時校正標題列，取代以前手動跑的 header 維護腳本
	if err := tableStore.EnsureHeaders(ctx, model.Columns()); err != nil {
		log.Fatalf("Failed to ensure store headers: %v", err)
	}

	snapshotCache, webhookQueue := initRedis(cfg)

	recordSource := service.NewRecordSource(tableStore, snapshotCache)
	webhookService := service.NewWebhookService(
		tableStore,
		snapshotCache,
		webhookQueue,
		cfg.Webhook.Secret,
		cfg.Webhook.TargetTicketType,
		cfg.Webhook.Async,
	)
	ticketService := service.NewTicketService(recordSource)
	analyticsService := service.NewAnalyticsService(recordSource)
	exportService := service.NewExportService(recordSource)

	if cfg.Webhook.Async {
		webhookWorker := worker.NewWebhookWorker(webhookService, webhookQueue)
		if err := webhookWorker.Start(ctx); err != nil {
			log.Fatalf("Failed to start webhook worker: %v", err)
		}
	}

	router := gin.Default()
	router.Use(handler.CORSMiddleware())

	handler.RegisterHealthRoutes(router)
	handler.NewWebhookHandler(webhookService).RegisterRoutes(router)
	handler.NewTicketHandler(ticketService).RegisterRoutes(router)
	handler.NewAnalyticsHandler(analyticsService).RegisterRoutes(router)
	handler.NewExportHandler(exportService).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

func initStore(ctx context.Context, cfg *config.Config) (store.TableStore, func(), error) {
	if cfg.Store.Backend == "postgres" {
		pool, err := database.InitDatabase(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		pgStore, err := store.NewPostgresTableStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgStore, pool.Close, nil
	}

	sheetsStore, err := store.NewSheetsTableStore(ctx, &cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	return sheetsStore, func() {}, nil
}

// initRedis Redis 連不上時退化：快取全 miss、隊列用記憶體版
func initRedis(cfg *config.Config) (cache.SnapshotCache, queue.WebhookQueue) {
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, falling back to in-memory queue and no cache: %v", err)
		return cache.NewNoopSnapshotCache(), queue.NewWebhookQueue(100)
	}

	webhookQueue, err := queue.NewRedisStreamWebhookQueue(rdb, "", nil)
	if err != nil {
		log.Printf("Redis stream queue init failed, falling back to in-memory queue: %v", err)
		return cache.NewRedisSnapshotCache(rdb, cfg.Cache.SnapshotTTL), queue.NewWebhookQueue(100)
	}

	return cache.NewRedisSnapshotCache(rdb, cfg.Cache.SnapshotTTL), webhookQueue
}
