package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Unmarshal(t *testing.T) {
	var payload struct {
		Price Money `json:"price"`
	}

	t.Run("Number", func(t *testing.T) {
		require.NoError(t, json.Unmarshal([]byte(`{"price": 12.5}`), &payload))
		assert.Equal(t, Money(12.5), payload.Price)
	})

	t.Run("NumericString", func(t *testing.T) {
		require.NoError(t, json.Unmarshal([]byte(`{"price": "12.50"}`), &payload))
		assert.Equal(t, Money(12.5), payload.Price)
	})

	t.Run("Null", func(t *testing.T) {
		require.NoError(t, json.Unmarshal([]byte(`{"price": null}`), &payload))
		assert.Equal(t, Money(0), payload.Price)
	})

	t.Run("EmptyString", func(t *testing.T) {
		require.NoError(t, json.Unmarshal([]byte(`{"price": ""}`), &payload))
		assert.Equal(t, Money(0), payload.Price)
	})

	t.Run("Garbage", func(t *testing.T) {
		assert.Error(t, json.Unmarshal([]byte(`{"price": "abc"}`), &payload))
	})
}

func TestCostItem_Kind(t *testing.T) {
	tr := true
	fa := false

	cases := []struct {
		name     string
		item     CostItem
		expected ItemKind
	}{
		{"BooleanTrue", CostItem{IsAddOn: &tr, RateType: "Rate"}, ItemKindAddOn},
		{"BooleanFalse", CostItem{IsAddOn: &fa, RateType: "AddOnRate"}, ItemKindPrimary},
		{"BooleanAbsentAddOnRate", CostItem{RateType: "AddOnRate"}, ItemKindAddOn},
		{"BooleanAbsentRate", CostItem{RateType: "Rate"}, ItemKindPrimary},
		{"NothingSet", CostItem{}, ItemKindPrimary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.item.Kind())
		})
	}
}

func TestTicketRecord_RowRoundTrip(t *testing.T) {
	rec := TicketRecord{
		PurchaseDate:     "7/4/2025",
		PurchaseTime:     "12:30:00 PM",
		AttendeeName:     "Jane Doe",
		Email:            "jane@example.com",
		TicketName:       "General Admission",
		AddOnName:        "Memento Ticket",
		EventTitle:       "Summer Show",
		TicketID:         "t-1",
		CostItemID:       "ci-1",
		TicketStatus:     "paid",
		TotalTicketPrice: 75,
		FaceValuePrice:   60,
		Fees:             15,
		Currency:         "USD",
	}

	row := rec.ToRow()
	require.Len(t, row, len(Columns()))

	decoded := RecordFromRow(Columns(), row)
	assert.Equal(t, rec, decoded)
}

func TestRecordFromRow_ShortRow(t *testing.T) {
	// 表格尾端的空儲存格不會回傳，讀回來要容忍短列
	decoded := RecordFromRow(Columns(), []string{"7/4/2025", "12:30:00 PM"})

	assert.Equal(t, "7/4/2025", decoded.PurchaseDate)
	assert.Empty(t, decoded.TicketID)
	assert.Equal(t, 0.0, decoded.TotalTicketPrice)
}

func TestPayload_Kind(t *testing.T) {
	assert.Equal(t, EventKindUpdate, (&RawEventPayload{Event: "ticket_update"}).Kind())
	assert.Equal(t, EventKindPurchase, (&RawEventPayload{Event: "ticket_purchase"}).Kind())
	// 未指定時視為購票
	assert.Equal(t, EventKindPurchase, (&RawEventPayload{}).Kind())
}
