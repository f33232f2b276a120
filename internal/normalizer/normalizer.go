package normalizer

import (
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // 容器內沒有系統 tzdata 時仍要能解析 America/New_York

	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/pkg/logger"

	"go.uber.org/zap"
)

// 購買時間一律以東岸時間顯示（來源系統的慣例）
const displayTimezone = "America/New_York"

// 郵寄地址欄位的兩個歷史別名，支援 schema 遷移
var addressFieldAliases = []string{"Address", "Mailing Address"}

var (
	displayLocOnce sync.Once
	displayLoc     *time.Location
)

func displayLocation() *time.Location {
	displayLocOnce.Do(func() {
		loc, err := time.LoadLocation(displayTimezone)
		if err != nil {
			logger.WithComponent("normalizer").Warn("load display timezone failed, falling back to UTC", zap.Error(err))
			loc = time.UTC
		}
		displayLoc = loc
	})
	return displayLoc
}

// Normalize 把一個 webhook payload 攤平成每張票一筆的 TicketRecord。
// 同一 payload 內重複的 ticket id 只取第一次出現；找不到對應 event 的票跳過並記 log，
// 不影響批次內其他票。除了診斷 log 之外沒有副作用。
func Normalize(payload *model.RawEventPayload) []model.TicketRecord {
	log := logger.WithComponent("normalizer")
	records := make([]model.TicketRecord, 0, len(payload.Tickets))

	seen := make(map[string]bool, len(payload.Tickets))

	for i := range payload.Tickets {
		ticket := &payload.Tickets[i]
		if seen[ticket.ID] {
			continue
		}
		seen[ticket.ID] = true

		event := findEvent(payload.Events, ticket.EventID)
		if event == nil {
			log.Warn("event not found for ticket, skipping",
				zap.String("ticket_id", ticket.ID),
				zap.String("event_id", ticket.EventID))
			continue
		}

		records = append(records, buildRecord(payload, ticket, event))
	}

	return records
}

func buildRecord(payload *model.RawEventPayload, ticket *model.RawTicket, event *model.ShowEvent) model.TicketRecord {
	costItems := resolveCostItems(payload.CostItems, ticket.CostItemIDs)
	primary, addOns := partition(costItems)

	var rec model.TicketRecord
	rec.TicketID = ticket.ID
	rec.PaymentStatus = ticket.PaymentState
	rec.MailingAddress = findMailingAddress(payload.HostFields, ticket.HostFieldIDs)

	rec.Currency = ticket.SrcCurrency
	if rec.Currency == "" {
		rec.Currency = "USD"
	}

	if primary != nil {
		rec.CostItemID = primary.ID
		rec.QRCode = primary.QRCode
		rec.AttendeeName = primary.AttendeeName()
		rec.TicketName = displayName(payload.Rates, primary)
		rec.Email = primary.GuestEmail
		rec.TicketStatus = primary.State
	}
	if rec.Email == "" {
		rec.Email = ticket.BuyerEmail
	}
	if rec.TicketStatus == "" {
		rec.TicketStatus = ticket.State
	}

	rec.AddOnNames = addOnDisplayNames(payload.Rates, addOns)
	rec.AddOnName = joinWithCounts(rec.AddOnNames)

	rec.FaceValuePrice = faceValue(payload.Rates, costItems)
	rec.TotalTicketPrice = moneyOr(ticket.Price, ticket.SrcPrice)
	if rec.TotalTicketPrice == 0 {
		rec.TotalTicketPrice = rec.FaceValuePrice
	}
	rec.Fees = rec.TotalTicketPrice - rec.FaceValuePrice
	if rec.Fees < 0 {
		rec.Fees = 0
	}

	if len(payload.Listings) > 0 {
		listing := payload.Listings[0]
		rec.EventTitle = listing.Title
		rec.VenueName = listing.VenueName
		rec.VenueAddress = listing.Address
	}

	loc := displayLocation()
	if purchasedAt, err := time.Parse(time.RFC3339, ticket.CreatedAt); err == nil {
		local := purchasedAt.In(loc)
		rec.PurchaseDate = formatDate(local)
		rec.PurchaseTime = formatClock(local)
	}

	start := time.Unix(event.StartStamp, 0)
	end := time.Unix(event.EndStamp, 0)
	localStart := start.In(loc)
	rec.EventDate = formatDate(localStart)
	rec.EventTime = formatClock(localStart)
	rec.EventStartTime = formatISO(start)
	rec.EventEndTime = formatISO(end)

	return rec
}

func findEvent(events []model.ShowEvent, id string) *model.ShowEvent {
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

// resolveCostItems 依 ticket 的成員清單挑出 cost item，維持 payload 順序
func resolveCostItems(all []model.CostItem, ids []string) []*model.CostItem {
	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}
	items := make([]*model.CostItem, 0, len(ids))
	for i := range all {
		if member[all[i].ID] {
			items = append(items, &all[i])
		}
	}
	return items
}

// partition 拆出主票與 add-on。沒有任何主票時退而用第一個 cost item 當主票。
func partition(items []*model.CostItem) (*model.CostItem, []*model.CostItem) {
	var primary *model.CostItem
	addOns := make([]*model.CostItem, 0, len(items))

	for _, item := range items {
		if item.Kind() == model.ItemKindAddOn {
			addOns = append(addOns, item)
		} else if primary == nil {
			primary = item
		}
	}
	if primary == nil && len(items) > 0 {
		primary = items[0]
	}
	return primary, addOns
}

func findRate(rates []model.Rate, id string) *model.Rate {
	if id == "" {
		return nil
	}
	for i := range rates {
		if rates[i].ID == id {
			return &rates[i]
		}
	}
	return nil
}

// displayName rate 名稱優先，rate 缺席時退回 cost item 自己的名稱
func displayName(rates []model.Rate, item *model.CostItem) string {
	if rate := findRate(rates, item.RateID); rate != nil && rate.Name != "" {
		return rate.Name
	}
	return item.Name
}

func addOnDisplayNames(rates []model.Rate, addOns []*model.CostItem) []string {
	names := make([]string, 0, len(addOns))
	for _, addOn := range addOns {
		if name := displayName(rates, addOn); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// joinWithCounts 同名 add-on 合併計數："Name" 或 "Name (N)"，依首次出現順序
func joinWithCounts(names []string) string {
	counts := make(map[string]int, len(names))
	order := make([]string, 0, len(names))
	for _, name := range names {
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		if n := counts[name]; n > 1 {
			parts = append(parts, name+" ("+strconv.Itoa(n)+")")
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

func findMailingAddress(fields []model.HostField, ids []string) string {
	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}
	for i := range fields {
		if !member[fields[i].ID] {
			continue
		}
		for _, alias := range addressFieldAliases {
			if fields[i].Name == alias {
				return fields[i].Value
			}
		}
	}
	return ""
}

// faceValue 全部 cost item 的 rate 價格加總；rate 缺席時用 cost item 自己的價格
func faceValue(rates []model.Rate, items []*model.CostItem) float64 {
	var sum float64
	for _, item := range items {
		if rate := findRate(rates, item.RateID); rate != nil {
			if v := moneyOr(rate.Price, rate.SrcPrice); v != 0 {
				sum += v
				continue
			}
		}
		sum += moneyOr(item.SrcPrice, item.Price)
	}
	return sum
}

// moneyOr 取第一個有值且非零的價格，對齊來源系統的 falsy fallback 行為
func moneyOr(values ...*model.Money) float64 {
	for _, v := range values {
		if v != nil && float64(*v) != 0 {
			return float64(*v)
		}
	}
	return 0
}

func formatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

func formatClock(t time.Time) string {
	return t.Format("3:04:05 PM")
}

func formatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
