package format

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is used for the detail screen's "Last Updated" row.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Price renders amount with exactly two decimals and no grouping separators.
func Price(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Money prefixes the currency symbol and appends "/ unit" when unit is set,
// e.g. "₹1234.50 / g".
func Money(symbol string, amount decimal.Decimal, unit string) string {
	s := symbol + Price(amount)
	if unit != "" {
		s += " / " + unit
	}
	return s
}

// Timestamp renders t in loc (UTC when loc is nil).
func Timestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}
