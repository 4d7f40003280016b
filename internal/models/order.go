package models

import "time"

// DisplayTimeLayout is the human-readable timestamp format used for order,
// support and review dates.
const DisplayTimeLayout = "Jan 2, 2006 3:04:05 PM"

// Order represents a completed purchase action. Orders are append-only and
// never mutated or removed.
type Order struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"` // price at the time of purchase
	Date      string `json:"date"`
}

// DisplayTime formats a timestamp for the date field of persisted records.
func DisplayTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}
