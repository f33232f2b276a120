package store

import (
	"context"
	"fmt"
	"strings"

	"universe-webhook-sync/config"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsTableStore Google Sheets 版的 TableStore。
// 一個 sheet 一張表：第一列是標題，其後每列一筆 TicketRecord。
type SheetsTableStore struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsTableStore(ctx context.Context, cfg *config.StoreConfig) (*SheetsTableStore, error) {
	// 私鑰從環境變數來時換行是跳脫過的
	privateKey := strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")
	credentials := fmt.Sprintf(`{"type":"service_account","client_email":%q,"private_key":%q,"token_uri":"https://oauth2.googleapis.com/token"}`,
		cfg.ServiceAccountEmail, privateKey)

	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentials)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsTableStore{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

func (s *SheetsTableStore) ReadAll(ctx context.Context) (*Snapshot, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!A:Z").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	snapshot := &Snapshot{}
	if len(resp.Values) == 0 {
		return snapshot, nil
	}

	snapshot.Headers = toStringRow(resp.Values[0])
	snapshot.Rows = make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		snapshot.Rows = append(snapshot.Rows, toStringRow(row))
	}
	return snapshot, nil
}

func (s *SheetsTableStore) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.sheetName+"!A:Z", &sheets.ValueRange{Values: toValueRows(rows)}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append rows: %w", err)
	}
	return nil
}

func (s *SheetsTableStore) UpdateRowAt(ctx context.Context, rowIndex int, row []string) error {
	// rowIndex 是資料列索引；sheet 列號從 1 起算且第 1 列是標題
	sheetRow := rowIndex + 2
	writeRange := fmt.Sprintf("%s!A%d", s.sheetName, sheetRow)
	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, writeRange, &sheets.ValueRange{Values: toValueRows([][]string{row})}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row %d: %w", sheetRow, err)
	}
	return nil
}

func (s *SheetsTableStore) Headers(ctx context.Context) ([]string, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.sheetName+"!1:1").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStringRow(resp.Values[0]), nil
}

func (s *SheetsTableStore) EnsureHeaders(ctx context.Context, headers []string) error {
	current, err := s.Headers(ctx)
	if err != nil {
		return err
	}
	if equalHeaders(current, headers) {
		return nil
	}

	writeRange := s.sheetName + "!1:1"
	_, err = s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, writeRange, &sheets.ValueRange{Values: toValueRows([][]string{headers})}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	return nil
}

func equalHeaders(current, want []string) bool {
	if len(current) != len(want) {
		return false
	}
	for i := range want {
		if current[i] != want[i] {
			return false
		}
	}
	return true
}

func toStringRow(row []interface{}) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = fmt.Sprint(v)
	}
	return cells
}

func toValueRows(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		values[i] = cells
	}
	return values
}
