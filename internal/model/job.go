package model

import (
	"encoding/json"
	"time"
)

// WebhookJob 已驗簽的 webhook 投遞，進隊列等單一 worker 依序處理。
// Payload 是原始 JSON body，worker 端才解析。
type WebhookJob struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload"`
}
