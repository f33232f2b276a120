package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Webhook 事件類型
const (
	EventKindPurchase = "ticket_purchase"
	EventKindUpdate   = "ticket_update"
)

// Money 接受 JSON number 或數字字串（Universe 兩種都送過）
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

// RawEventPayload Universe webhook 的頂層結構
type RawEventPayload struct {
	Event      string       `json:"event"`
	Tickets    []RawTicket  `json:"tickets"`
	CostItems  []CostItem   `json:"cost_items"`
	Rates      []Rate       `json:"rates"`
	Events     []ShowEvent  `json:"events"`
	Listings   []Listing    `json:"listings"`
	HostFields []HostField  `json:"host_fields"`
}

// Kind 回傳事件類型；未指定時視為購票事件
func (p *RawEventPayload) Kind() string {
	if p.Event == EventKindUpdate {
		return EventKindUpdate
	}
	return EventKindPurchase
}

type RawTicket struct {
	ID           string   `json:"id"`
	EventID      string   `json:"event_id"`
	CostItemIDs  []string `json:"cost_item_ids"`
	HostFieldIDs []string `json:"host_field_ids"`
	CreatedAt    string   `json:"created_at"`
	State        string   `json:"state"`
	PaymentState string   `json:"payment_state"`
	BuyerEmail   string   `json:"buyer_email"`
	SrcCurrency  string   `json:"src_currency"`
	Price        *Money   `json:"price"`
	SrcPrice     *Money   `json:"src_price"`
}

// ItemKind 解析後的 cost item 類型
type ItemKind int

const (
	ItemKindPrimary ItemKind = iota
	ItemKindAddOn
)

type CostItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RateID         string `json:"rate_id"`
	IsAddOn        *bool  `json:"is_add_on"`
	RateType       string `json:"rate_type"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	GuestFirstName string `json:"guest_first_name"`
	GuestLastName  string `json:"guest_last_name"`
	GuestEmail     string `json:"guest_email"`
	QRCode         string `json:"qr_code"`
	State          string `json:"state"`
	Price          *Money `json:"price"`
	SrcPrice       *Money `json:"src_price"`
}

// Kind 解析 is_add_on 與 rate_type 兩個重複的判別欄位。
// 兩者不一致時以布林值為準；布林值缺席才看 rate_type。
func (ci *CostItem) Kind() ItemKind {
	if ci.IsAddOn != nil {
		if *ci.IsAddOn {
			return ItemKindAddOn
		}
		return ItemKindPrimary
	}
	if ci.RateType == "AddOnRate" {
		return ItemKindAddOn
	}
	return ItemKindPrimary
}

// AttendeeName 組合購票人姓名，帶 guest 欄位的 fallback
func (ci *CostItem) AttendeeName() string {
	first := ci.FirstName
	if first == "" {
		first = ci.GuestFirstName
	}
	last := ci.LastName
	if last == "" {
		last = ci.GuestLastName
	}
	return strings.TrimSpace(first + " " + last)
}

type Rate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    *Money `json:"price"`
	SrcPrice *Money `json:"src_price"`
}

type ShowEvent struct {
	ID         string `json:"id"`
	StartStamp int64  `json:"start_stamp"`
	EndStamp   int64  `json:"end_stamp"`
}

type Listing struct {
	Title     string `json:"title"`
	VenueName string `json:"venue_name"`
	Address   string `json:"address"`
	HostName  string `json:"host_name"`
}

type HostField struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}
