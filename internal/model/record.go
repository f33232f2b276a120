package model

import "strconv"

// 表格欄位名稱，順序即為儲存的欄位順序
const (
	ColPurchaseDate     = "Purchase Date"
	ColPurchaseTime     = "Purchase Time"
	ColEventDate        = "Event Date"
	ColEventTime        = "Event Time"
	ColAttendeeName     = "Attendee Name"
	ColEmail            = "Email"
	ColMailingAddress   = "Mailing Address"
	ColTicketName       = "Ticket Name"
	ColAddOnName        = "Add-On Name"
	ColEventTitle       = "Event Title"
	ColVenueName        = "Venue Name"
	ColVenueAddress     = "Venue Address"
	ColEventStartTime   = "Event Start Time"
	ColEventEndTime     = "Event End Time"
	ColTicketID         = "Ticket ID"
	ColCostItemID       = "Cost Item ID"
	ColQRCode           = "QR Code"
	ColTicketStatus     = "Ticket Status"
	ColPaymentStatus    = "Payment Status"
	ColTotalTicketPrice = "Total Ticket Price"
	ColFaceValuePrice   = "Face Value Price"
	ColFees             = "Fees"
	ColCurrency         = "Currency"
)

// Columns 回傳儲存的標題列
func Columns() []string {
	return []string{
		ColPurchaseDate,
		ColPurchaseTime,
		ColEventDate,
		ColEventTime,
		ColAttendeeName,
		ColEmail,
		ColMailingAddress,
		ColTicketName,
		ColAddOnName,
		ColEventTitle,
		ColVenueName,
		ColVenueAddress,
		ColEventStartTime,
		ColEventEndTime,
		ColTicketID,
		ColCostItemID,
		ColQRCode,
		ColTicketStatus,
		ColPaymentStatus,
		ColTotalTicketPrice,
		ColFaceValuePrice,
		ColFees,
		ColCurrency,
	}
}

// TicketRecord 每張票一筆，不論掛了幾個 cost item
type TicketRecord struct {
	PurchaseDate     string  `json:"purchaseDate"`
	PurchaseTime     string  `json:"purchaseTime"`
	EventDate        string  `json:"eventDate"`
	EventTime        string  `json:"eventTime"`
	AttendeeName     string  `json:"attendeeName"`
	Email            string  `json:"email"`
	MailingAddress   string  `json:"mailingAddress"`
	TicketName       string  `json:"ticketName"`
	AddOnName        string  `json:"addOnName"`
	EventTitle       string  `json:"eventTitle"`
	VenueName        string  `json:"venueName"`
	VenueAddress     string  `json:"venueAddress"`
	EventStartTime   string  `json:"eventStartTime"`
	EventEndTime     string  `json:"eventEndTime"`
	TicketID         string  `json:"ticketId"`
	CostItemID       string  `json:"costItemId"`
	QRCode           string  `json:"qrCode"`
	TicketStatus     string  `json:"ticketStatus"`
	PaymentStatus    string  `json:"paymentStatus"`
	TotalTicketPrice float64 `json:"totalTicketPrice"`
	FaceValuePrice   float64 `json:"faceValuePrice"`
	Fees             float64 `json:"fees"`
	Currency         string  `json:"currency"`

	// AddOnNames 保留逐項的「真正 add-on」名稱，供 target 過濾使用；不落地
	AddOnNames []string `json:"-"`
}

// ToRow 依 Columns 順序編碼為一列儲存格
func (r *TicketRecord) ToRow() []string {
	return []string{
		r.PurchaseDate,
		r.PurchaseTime,
		r.EventDate,
		r.EventTime,
		r.AttendeeName,
		r.Email,
		r.MailingAddress,
		r.TicketName,
		r.AddOnName,
		r.EventTitle,
		r.VenueName,
		r.VenueAddress,
		r.EventStartTime,
		r.EventEndTime,
		r.TicketID,
		r.CostItemID,
		r.QRCode,
		r.TicketStatus,
		r.PaymentStatus,
		formatPrice(r.TotalTicketPrice),
		formatPrice(r.FaceValuePrice),
		formatPrice(r.Fees),
		r.Currency,
	}
}

// RecordFromRow 依標題列把一列儲存格解回 TicketRecord；缺的欄位視為空字串
func RecordFromRow(headers []string, row []string) TicketRecord {
	cell := func(name string) string {
		for i, h := range headers {
			if h == name {
				if i < len(row) {
					return row[i]
				}
				return ""
			}
		}
		return ""
	}

	return TicketRecord{
		PurchaseDate:     cell(ColPurchaseDate),
		PurchaseTime:     cell(ColPurchaseTime),
		EventDate:        cell(ColEventDate),
		EventTime:        cell(ColEventTime),
		AttendeeName:     cell(ColAttendeeName),
		Email:            cell(ColEmail),
		MailingAddress:   cell(ColMailingAddress),
		TicketName:       cell(ColTicketName),
		AddOnName:        cell(ColAddOnName),
		EventTitle:       cell(ColEventTitle),
		VenueName:        cell(ColVenueName),
		VenueAddress:     cell(ColVenueAddress),
		EventStartTime:   cell(ColEventStartTime),
		EventEndTime:     cell(ColEventEndTime),
		TicketID:         cell(ColTicketID),
		CostItemID:       cell(ColCostItemID),
		QRCode:           cell(ColQRCode),
		TicketStatus:     cell(ColTicketStatus),
		PaymentStatus:    cell(ColPaymentStatus),
		TotalTicketPrice: parsePrice(cell(ColTotalTicketPrice)),
		FaceValuePrice:   parsePrice(cell(ColFaceValuePrice)),
		Fees:             parsePrice(cell(ColFees)),
		Currency:         cell(ColCurrency),
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func parsePrice(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
