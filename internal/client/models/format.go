package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDateLayout renders dates as DD/MM/YYYY.
const DefaultDateLayout = "02/01/2006"

// FormatDate renders t with layout, or DefaultDateLayout when layout is empty.
// The zero time renders as an empty string.
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// FormatPrice renders d as sent in prd_price: at least two decimal places,
// and every digit d already carries.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(max(2, -d.Exponent()))
}
