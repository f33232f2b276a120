package service

import (
	"context"
	"fmt"
	"time"

	"universe-webhook-sync/internal/cache"
	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/store"
)

// ListFilters 讀取端共用的過濾條件（tickets、analytics、CSV export 一致）
type ListFilters struct {
	DateFrom string   `form:"date_from"`
	DateTo   string   `form:"date_to"`
	Event    string   `form:"event"`
	Events   []string `form:"events"`
	Status   string   `form:"status"`
}

// RecordSource 讀取端的共用底座：拉快照（走快取）、解成 record、套過濾條件
type RecordSource struct {
	store store.TableStore
	cache cache.SnapshotCache
}

func NewRecordSource(tableStore store.TableStore, snapshotCache cache.SnapshotCache) *RecordSource {
	return &RecordSource{store: tableStore, cache: snapshotCache}
}

func (rs *RecordSource) snapshot(ctx context.Context) (*store.Snapshot, error) {
	if snapshot, ok := rs.cache.Get(ctx); ok {
		return snapshot, nil
	}
	snapshot, err := rs.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read store snapshot: %w", err)
	}
	rs.cache.Set(ctx, snapshot)
	return snapshot, nil
}

// Records 回傳套完過濾條件的記錄，保持 append 順序
func (rs *RecordSource) Records(ctx context.Context, filters ListFilters) ([]model.TicketRecord, error) {
	snapshot, err := rs.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]model.TicketRecord, 0, len(snapshot.Rows))
	for _, row := range snapshot.Rows {
		records = append(records, model.RecordFromRow(snapshot.Headers, row))
	}
	return applyFilters(records, filters), nil
}

func applyFilters(records []model.TicketRecord, filters ListFilters) []model.TicketRecord {
	kept := records

	if from, ok := parseFilterDate(filters.DateFrom); ok {
		kept = filterRecords(kept, func(r *model.TicketRecord) bool {
			d, ok := parsePurchaseDate(r.PurchaseDate)
			return ok && !d.Before(from)
		})
	}
	if to, ok := parseFilterDate(filters.DateTo); ok {
		// 含整個結束日
		endOfDay := to.Add(24*time.Hour - time.Second)
		kept = filterRecords(kept, func(r *model.TicketRecord) bool {
			d, ok := parsePurchaseDate(r.PurchaseDate)
			return ok && !d.After(endOfDay)
		})
	}

	// 多選 events 優先於單一 event
	if len(filters.Events) > 0 {
		allowed := make(map[string]bool, len(filters.Events))
		for _, e := range filters.Events {
			allowed[e] = true
		}
		kept = filterRecords(kept, func(r *model.TicketRecord) bool {
			return allowed[r.EventTitle]
		})
	} else if filters.Event != "" {
		kept = filterRecords(kept, func(r *model.TicketRecord) bool {
			return r.EventTitle == filters.Event
		})
	}

	if filters.Status != "" {
		kept = filterRecords(kept, func(r *model.TicketRecord) bool {
			return r.TicketStatus == filters.Status
		})
	}

	return kept
}

func filterRecords(records []model.TicketRecord, keep func(*model.TicketRecord) bool) []model.TicketRecord {
	out := make([]model.TicketRecord, 0, len(records))
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// parseFilterDate query 參數用 ISO 日期，也容忍美式日期
func parseFilterDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "1/2/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePurchaseDate 表格內的 Purchase Date 是美式格式
func parsePurchaseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"1/2/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
