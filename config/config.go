package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Webhook  WebhookConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port string
}

// StoreConfig 表格儲存設定。Backend 可選 "sheets" 或 "postgres"。
type StoreConfig struct {
	Backend             string
	SpreadsheetID       string
	SheetName           string
	ServiceAccountEmail string
	PrivateKey          string
}

type WebhookConfig struct {
	Secret           string
	TargetTicketType string
	Async            bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	SnapshotTTL time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Server:   GetServerConfig(),
		Store:    GetStoreConfig(),
		Webhook:  GetWebhookConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Cache:    GetCacheConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server: ServerConfig{Port: "8080"},
		Store: StoreConfig{
			Backend:   "postgres",
			SheetName: "Universe-Webhook-Data",
		},
		Webhook: WebhookConfig{
			Secret:           "test-secret",
			TargetTicketType: "ALL",
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Cache:    CacheConfig{SnapshotTTL: time.Second},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("PORT", "8080"),
	}
}

func GetStoreConfig() StoreConfig {
	return StoreConfig{
		Backend:             getEnv("STORE_BACKEND", "sheets"),
		SpreadsheetID:       getEnv("GOOGLE_SHEETS_ID", ""),
		SheetName:           getEnv("SHEET_NAME", "Universe-Webhook-Data"),
		ServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		PrivateKey:          getEnv("GOOGLE_PRIVATE_KEY", ""),
	}
}

func GetWebhookConfig() WebhookConfig {
	async, err := strconv.ParseBool(getEnv("WEBHOOK_ASYNC", "false"))
	if err != nil {
		async = false
	}

	return WebhookConfig{
		Secret:           getEnv("UNIVERSE_WEBHOOK_SECRET", ""),
		TargetTicketType: getEnv("TARGET_TICKET_TYPE", "ALL"),
		Async:            async,
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetCacheConfig() CacheConfig {
	seconds, err := strconv.Atoi(getEnv("SNAPSHOT_CACHE_TTL_SECONDS", "30"))
	if err != nil || seconds <= 0 {
		seconds = 30
	}

	return CacheConfig{
		SnapshotTTL: time.Duration(seconds) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
