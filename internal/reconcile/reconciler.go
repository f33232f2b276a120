package reconcile

import (
	"strings"

	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/store"
	apperrors "universe-webhook-sync/pkg/app_errors"
	"universe-webhook-sync/pkg/logger"

	"go.uber.org/zap"
)

type ActionType string

const (
	ActionInsert ActionType = "insert"
	ActionUpdate ActionType = "update"
)

// Action 對表格的一次寫入決策。RowIndex 只在 update 時有意義，
// 指向 Snapshot.Rows 的索引。
type Action struct {
	Type     ActionType
	RowIndex int
	Record   model.TicketRecord
}

// Plan 依事件類型決定每筆 record 要新增還是更新既有列。
//
// purchase：一律新增，不查表。
// update：以 ticket id 為 key 掃描快照。早期版本用主票 cost item id 當 key，
// 購買與更新事件的主票 id 可能不同，會長出重複列；現在一律用 ticket id 比對，
// 並容忍同一張票已存在多列（歷史壞資料），全部更新。更新時保留該列原本的
// Cost Item ID 儲存格，舊的讀取端還拿它當列身份。找不到任何列就退回新增。
func Plan(records []model.TicketRecord, eventKind string, snapshot *store.Snapshot) ([]Action, error) {
	if eventKind != model.EventKindUpdate {
		actions := make([]Action, 0, len(records))
		for _, rec := range records {
			actions = append(actions, Action{Type: ActionInsert, Record: rec})
		}
		return actions, nil
	}

	ticketIDCol := snapshot.ColumnIndex(model.ColTicketID)
	if ticketIDCol < 0 {
		return nil, apperrors.ErrColumnNotFound
	}
	costItemIDCol := snapshot.ColumnIndex(model.ColCostItemID)

	log := logger.WithComponent("reconcile")
	actions := make([]Action, 0, len(records))

	// 同一批 update 內重複的 ticket id 只取第一筆，避免對同一張票發散出互相衝突的寫入
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		if seen[rec.TicketID] {
			log.Warn("duplicate ticket in update batch, discarding later occurrence",
				zap.String("ticket_id", rec.TicketID))
			continue
		}
		seen[rec.TicketID] = true

		matches := matchRows(snapshot, ticketIDCol, rec.TicketID)
		if len(matches) == 0 {
			log.Info("no existing row for ticket, appending as late purchase",
				zap.String("ticket_id", rec.TicketID))
			actions = append(actions, Action{Type: ActionInsert, Record: rec})
			continue
		}

		for _, rowIndex := range matches {
			updated := rec
			if costItemIDCol >= 0 {
				if original := snapshot.Cell(rowIndex, costItemIDCol); original != "" {
					updated.CostItemID = original
				}
			}
			actions = append(actions, Action{Type: ActionUpdate, RowIndex: rowIndex, Record: updated})
		}
	}

	return actions, nil
}

// matchRows 回傳所有 ticket id 相符的列。儲存端可能夾帶空白或型別轉換的殘渣，
// 先嚴格比對、再比對去空白後的字串。
func matchRows(snapshot *store.Snapshot, ticketIDCol int, ticketID string) []int {
	trimmed := strings.TrimSpace(ticketID)
	if trimmed == "" {
		return nil
	}
	var matches []int
	for i := range snapshot.Rows {
		cell := snapshot.Cell(i, ticketIDCol)
		if cell == ticketID || strings.TrimSpace(cell) == trimmed {
			matches = append(matches, i)
		}
	}
	return matches
}
