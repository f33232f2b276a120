package service

import (
	"context"
	"sort"

	"universe-webhook-sync/internal/analytics"
	"universe-webhook-sync/internal/model"
)

type DailySales struct {
	Date    string  `json:"date"`
	Tickets int     `json:"tickets"`
	Revenue float64 `json:"revenue"`
}

type EventStats struct {
	Name    string  `json:"name"`
	Tickets int     `json:"tickets"`
	Revenue float64 `json:"revenue"`
}

type DistributionEntry struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type AnalyticsReport struct {
	TotalTickets           int                  `json:"totalTickets"`
	TotalRevenue           float64              `json:"totalRevenue"`
	TotalOrders            int                  `json:"totalOrders"`
	AverageTicketsPerOrder float64              `json:"averageTicketsPerOrder"`
	SalesByDay             []DailySales         `json:"salesByDay"`
	TopEvents              []EventStats         `json:"topEvents"`
	LocationDistribution   []DistributionEntry  `json:"locationDistribution"`
	StatusDistribution     []DistributionEntry  `json:"statusDistribution"`
	RecentSales            []model.TicketRecord `json:"recentSales"`
}

type AnalyticsService interface {
	Report(ctx context.Context, filters ListFilters) (*AnalyticsReport, error)
}

type AnalyticsServiceImpl struct {
	source *RecordSource
}

func NewAnalyticsService(source *RecordSource) AnalyticsService {
	return &AnalyticsServiceImpl{source: source}
}

const topEventsLimit = 5

func (s *AnalyticsServiceImpl) Report(ctx context.Context, filters ListFilters) (*AnalyticsReport, error) {
	records, err := s.source.Records(ctx, filters)
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{
		TotalTickets: len(records),
	}

	uniqueTickets := make(map[string]bool, len(records))
	for i := range records {
		report.TotalRevenue += records[i].TotalTicketPrice
		if id := records[i].TicketID; id != "" {
			uniqueTickets[id] = true
		}
	}
	report.TotalOrders = len(uniqueTickets)
	if report.TotalOrders > 0 {
		report.AverageTicketsPerOrder = float64(report.TotalTickets) / float64(report.TotalOrders)
	}

	report.SalesByDay = salesByDay(records)
	report.TopEvents = topEvents(records)
	report.LocationDistribution = distribution(records, func(r *model.TicketRecord) string {
		return analytics.ExtractLocation(r.VenueAddress)
	})
	report.StatusDistribution = distribution(records, func(r *model.TicketRecord) string {
		if r.TicketStatus == "" {
			return "unknown"
		}
		return r.TicketStatus
	})
	report.RecentSales = recentSales(records, 10)

	return report, nil
}

func salesByDay(records []model.TicketRecord) []DailySales {
	byDay := make(map[string]*DailySales)
	order := make([]string, 0)
	for i := range records {
		date := records[i].PurchaseDate
		entry, ok := byDay[date]
		if !ok {
			entry = &DailySales{Date: date}
			byDay[date] = entry
			order = append(order, date)
		}
		entry.Tickets++
		entry.Revenue += records[i].TotalTicketPrice
	}

	out := make([]DailySales, 0, len(order))
	for _, date := range order {
		out = append(out, *byDay[date])
	}
	return out
}

func topEvents(records []model.TicketRecord) []EventStats {
	byEvent := make(map[string]*EventStats)
	order := make([]string, 0)
	for i := range records {
		name := records[i].EventTitle
		entry, ok := byEvent[name]
		if !ok {
			entry = &EventStats{Name: name}
			byEvent[name] = entry
			order = append(order, name)
		}
		entry.Tickets++
		entry.Revenue += records[i].TotalTicketPrice
	}

	out := make([]EventStats, 0, len(order))
	for _, name := range order {
		out = append(out, *byEvent[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	if len(out) > topEventsLimit {
		out = out[:topEventsLimit]
	}
	return out
}

func distribution(records []model.TicketRecord, keyFn func(*model.TicketRecord) string) []DistributionEntry {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range records {
		key := keyFn(&records[i])
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	total := len(records)
	out := make([]DistributionEntry, 0, len(order))
	for _, key := range order {
		entry := DistributionEntry{Key: key, Count: counts[key]}
		if total > 0 {
			entry.Percentage = float64(counts[key]) / float64(total) * 100
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// recentSales 最新的 n 筆，新的在前
func recentSales(records []model.TicketRecord, n int) []model.TicketRecord {
	if len(records) < n {
		n = len(records)
	}
	out := make([]model.TicketRecord, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}
