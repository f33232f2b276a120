package normalizer

import (
	"strings"

	"universe-webhook-sync/internal/model"
)

// TargetAll 不做任何過濾
const TargetAll = "ALL"

// FilterByTarget 只保留帶有目標 add-on 的票。比對的是逐項的真正 add-on 名稱
// （判別欄位已在 normalize 階段解析過），主票名稱就算含目標字串也不算命中。
func FilterByTarget(records []model.TicketRecord, targetLabel string) []model.TicketRecord {
	if targetLabel == "" || targetLabel == TargetAll {
		return records
	}

	target := strings.ToLower(targetLabel)
	kept := make([]model.TicketRecord, 0, len(records))
	for _, rec := range records {
		if hasTargetAddOn(rec.AddOnNames, target) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func hasTargetAddOn(names []string, lowerTarget string) bool {
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), lowerTarget) {
			return true
		}
	}
	return false
}
