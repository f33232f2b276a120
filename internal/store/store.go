package store

import "context"

// Snapshot 某一時點的表格內容。Rows 不含標題列，index 0 是第一筆資料列。
type Snapshot struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex 依標題名稱找欄位位置，找不到回傳 -1
func (s *Snapshot) ColumnIndex(name string) int {
	for i, h := range s.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell 容忍短列：超出範圍的儲存格視為空字串
func (s *Snapshot) Cell(rowIndex, colIndex int) string {
	if rowIndex < 0 || rowIndex >= len(s.Rows) || colIndex < 0 {
		return ""
	}
	row := s.Rows[rowIndex]
	if colIndex >= len(row) {
		return ""
	}
	return row[colIndex]
}

// TableStore 把試算表當成單純的表格儲存。
// UpdateRowAt 的 rowIndex 是 Snapshot.Rows 的索引（0-based，不含標題列）。
type TableStore interface {
	ReadAll(ctx context.Context) (*Snapshot, error)
	AppendRows(ctx context.Context, rows [][]string) error
	UpdateRowAt(ctx context.Context, rowIndex int, row []string) error
	Headers(ctx context.Context) ([]string, error)
	// EnsureHeaders 標題列缺漏或過期時以標準 schema 重寫
	EnsureHeaders(ctx context.Context, headers []string) error
}
