package model

import (
	"errors"
	"strings"
)

// ErrUnknownSymbol is returned when an identifier does not name a tracked metal.
var ErrUnknownSymbol = errors.New("unknown metal symbol")

// Symbol identifies a precious metal. Values are lowercase.
type Symbol string

const (
	Gold      Symbol = "gold"
	Silver    Symbol = "silver"
	Platinum  Symbol = "platinum"
	Palladium Symbol = "palladium"
)

// Symbols lists every tracked metal in display order.
var Symbols = []Symbol{Gold, Silver, Platinum, Palladium}

// ParseSymbol resolves an identifier case-insensitively.
func ParseSymbol(id string) (Symbol, error) {
	s := Symbol(strings.ToLower(strings.TrimSpace(id)))
	for _, known := range Symbols {
		if s == known {
			return s, nil
		}
	}
	return "", ErrUnknownSymbol
}

// DisplayName returns the symbol with its first letter upper-cased ("gold" -> "Gold").
func (s Symbol) DisplayName() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s Symbol) String() string { return string(s) }
