package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"universe-webhook-sync/internal/model"
)

type ExportService interface {
	// CSV 帶標題列，套用與清單相同的過濾條件
	CSV(ctx context.Context, filters ListFilters) ([]byte, error)
}

type ExportServiceImpl struct {
	source *RecordSource
}

func NewExportService(source *RecordSource) ExportService {
	return &ExportServiceImpl{source: source}
}

func (s *ExportServiceImpl) CSV(ctx context.Context, filters ListFilters) ([]byte, error) {
	records, err := s.source.Records(ctx, filters)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(model.Columns()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range records {
		if err := w.Write(records[i].ToRow()); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
