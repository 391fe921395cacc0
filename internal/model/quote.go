package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrQuoteNotFound is returned when a quote set has no entry for the requested metal.
var ErrQuoteNotFound = errors.New("metal not found")

// MetalQuote is one metal's price per unit at the feed's observation time.
type MetalQuote struct {
	Symbol       Symbol          `json:"symbol"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	ObservedAt   time.Time       `json:"observed_at"`
}

// QuoteSet is the full result of one successful fetch: one quote per symbol,
// all sharing ObservedAt. It is never modified after construction.
type QuoteSet struct {
	Quotes     []MetalQuote `json:"quotes"`
	ObservedAt time.Time    `json:"observed_at"`
	Currency   string       `json:"currency"`
	Unit       string       `json:"unit"`
}

// NewQuoteSet builds a set in Symbols order from a price per symbol.
// Every symbol must be present in prices.
func NewQuoteSet(prices map[Symbol]decimal.Decimal, observedAt time.Time, currency, unit string) (*QuoteSet, error) {
	quotes := make([]MetalQuote, 0, len(Symbols))
	for _, s := range Symbols {
		p, ok := prices[s]
		if !ok {
			return nil, errors.New("missing price for " + string(s))
		}
		if p.IsNegative() {
			return nil, errors.New("negative price for " + string(s))
		}
		quotes = append(quotes, MetalQuote{Symbol: s, PricePerGram: p, ObservedAt: observedAt})
	}
	return &QuoteSet{
		Quotes:     quotes,
		ObservedAt: observedAt,
		Currency:   currency,
		Unit:       unit,
	}, nil
}

// Lookup finds the quote for an identifier, ignoring case.
func (qs *QuoteSet) Lookup(id string) (MetalQuote, error) {
	sym, err := ParseSymbol(id)
	if err != nil {
		return MetalQuote{}, ErrQuoteNotFound
	}
	for _, q := range qs.Quotes {
		if q.Symbol == sym {
			return q, nil
		}
	}
	return MetalQuote{}, ErrQuoteNotFound
}

// Len returns the number of quotes in the set.
func (qs *QuoteSet) Len() int { return len(qs.Quotes) }
