package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offsets used for the detail screen's previous close/open rows.
// These are fixed placeholders with no historical data behind them; the
// feed exposes only the latest price.
var (
	PreviousCloseOffset = decimal.RequireFromString("5.34")
	PreviousOpenOffset  = decimal.RequireFromString("2.123")
)

// DetailView is the per-metal detail derived from a single quote.
type DetailView struct {
	Symbol        Symbol          `json:"symbol"`
	Name          string          `json:"name"`
	Price24K      decimal.Decimal `json:"price_24k"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	PreviousOpen  decimal.Decimal `json:"previous_open"`
	ObservedAt    time.Time       `json:"observed_at"`
}

// NewDetailView derives the detail rows for q.
func NewDetailView(q MetalQuote) DetailView {
	return DetailView{
		Symbol:        q.Symbol,
		Name:          q.Symbol.DisplayName(),
		Price24K:      q.PricePerGram,
		PreviousClose: q.PricePerGram.Sub(PreviousCloseOffset),
		PreviousOpen:  q.PricePerGram.Sub(PreviousOpenOffset),
		ObservedAt:    q.ObservedAt,
	}
}
