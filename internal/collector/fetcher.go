package collector

import (
	"context"
	"errors"

	"MetalWatch/internal/model"
)

// Feed failure classes. Returned errors wrap one of these.
var (
	ErrRequestFailed     = errors.New("feed request failed")
	ErrMalformedResponse = errors.New("malformed feed response")
)

// Fetcher retrieves the latest quote set from a price feed.
type Fetcher interface {
	FetchQuotes(ctx context.Context) (*model.QuoteSet, error)
	Name() string
}
