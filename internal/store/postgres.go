package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "universe-webhook-sync/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTableStore 以 Postgres 鏡像表格的 TableStore，給連不到 Google Sheets
// 的部署用（STORE_BACKEND=postgres）。列以 text[] 存，id 序列維持 append 順序。
type PostgresTableStore struct {
	pool *pgxpool.Pool
}

func NewPostgresTableStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresTableStore, error) {
	s := &PostgresTableStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresTableStore) ensureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS webhook_rows (
			id BIGSERIAL PRIMARY KEY,
			cells TEXT[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS webhook_headers (
			singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
			cells TEXT[] NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresTableStore) ReadAll(ctx context.Context) (*Snapshot, error) {
	headers, err := s.Headers(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT cells
		FROM webhook_rows
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	defer rows.Close()

	snapshot := &Snapshot{Headers: headers, Rows: make([][]string, 0)}
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		snapshot.Rows = append(snapshot.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (s *PostgresTableStore) AppendRows(ctx context.Context, newRows [][]string) error {
	if len(newRows) == 0 {
		return nil
	}

	query := `
		INSERT INTO webhook_rows (cells)
		VALUES ($1)
	`
	for _, row := range newRows {
		if _, err := s.pool.Exec(ctx, query, row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return nil
}

func (s *PostgresTableStore) UpdateRowAt(ctx context.Context, rowIndex int, row []string) error {
	query := `
		UPDATE webhook_rows
		SET cells = $1, updated_at = $2
		WHERE id = (
			SELECT id FROM webhook_rows ORDER BY id OFFSET $3 LIMIT 1
		)
	`
	result, err := s.pool.Exec(ctx, query, row, time.Now().UTC(), rowIndex)
	if err != nil {
		return fmt.Errorf("update row %d: %w", rowIndex, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (s *PostgresTableStore) Headers(ctx context.Context) ([]string, error) {
	query := `
		SELECT cells
		FROM webhook_headers
		LIMIT 1
	`
	var headers []string
	err := s.pool.QueryRow(ctx, query).Scan(&headers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// 尚未初始化的表沒有標題列，等同空表
			return nil, nil
		}
		return nil, fmt.Errorf("read headers: %w", err)
	}
	return headers, nil
}

func (s *PostgresTableStore) EnsureHeaders(ctx context.Context, headers []string) error {
	query := `
		INSERT INTO webhook_headers (singleton, cells)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton)
		DO UPDATE SET cells = EXCLUDED.cells, updated_at = now()
	`
	if _, err := s.pool.Exec(ctx, query, headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	return nil
}
