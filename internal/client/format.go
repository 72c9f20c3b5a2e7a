package client

import (
	"time"

	"finance/internal/core"
)

// FormatDate renders a date as "May 20, 2025".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// FormatAmount renders an amount with an explicit sign, e.g. "+$12.00" for
// income and "-$4.50" for an expense.
func FormatAmount(m core.Money) string {
	sign := "-"
	if m.Cents > 0 {
		sign = "+"
	}
	return sign + "$" + m.Abs().String()
}
