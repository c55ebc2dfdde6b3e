package utils

import (
	"fmt"
	"math"
	"time"
)

// Round2 rounds to cents. Order summaries are frozen at creation, so
// rounding happens exactly once per value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) {
		return "₹0.00"
	}
	return fmt.Sprintf("₹%.2f", amount)
}

func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func NewOrderNotice(orderID uint, customer string, total float64) string {
	return fmt.Sprintf("New order #%d from %s, total %s", orderID, customer, FormatCurrency(total))
}
