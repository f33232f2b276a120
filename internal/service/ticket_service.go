package service

import (
	"context"

	"universe-webhook-sync/internal/model"
)

// Pagination 清單回應的分頁資訊
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type TicketPage struct {
	Data       []model.TicketRecord `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

type TicketService interface {
	List(ctx context.Context, filters ListFilters, page, limit int) (*TicketPage, error)
	// EventTitles 回傳儲存內出現過的活動名稱（去重，保持出現順序）
	EventTitles(ctx context.Context) ([]string, error)
}

type TicketServiceImpl struct {
	source *RecordSource
}

func NewTicketService(source *RecordSource) TicketService {
	return &TicketServiceImpl{source: source}
}

func (s *TicketServiceImpl) List(ctx context.Context, filters ListFilters, page, limit int) (*TicketPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	records, err := s.source.Records(ctx, filters)
	if err != nil {
		return nil, err
	}

	total := len(records)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &TicketPage{
		Data: records[start:end],
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}, nil
}

func (s *TicketServiceImpl) EventTitles(ctx context.Context) ([]string, error) {
	records, err := s.source.Records(ctx, ListFilters{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	titles := make([]string, 0)
	for i := range records {
		title := records[i].EventTitle
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	return titles, nil
}
