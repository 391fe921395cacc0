package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"MetalWatch/internal/model"
)

// FeedConfig describes the metals.dev endpoint and query parameters.
type FeedConfig struct {
	BaseURL  string
	APIKey   string
	Currency string
	Unit     string
	Timeout  time.Duration
	// Location applies to timestamps that carry no zone. Nil means UTC.
	Location *time.Location
}

// MetalsDevFetcher implements Fetcher against the metals.dev "latest" endpoint.
type MetalsDevFetcher struct {
	Config FeedConfig
	Client *http.Client
}

// NewMetalsDevFetcher creates a new fetcher with optional proxy support.
func NewMetalsDevFetcher(cfg FeedConfig, proxyURL string) *MetalsDevFetcher {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MetalsDevFetcher{
		Config: cfg,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *MetalsDevFetcher) Name() string { return "Metals.dev" }

// latestResponse is the subset of the /v1/latest body we read.
type latestResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Metals       *struct {
		Gold      *feedPrice `json:"gold"`
		Silver    *feedPrice `json:"silver"`
		Platinum  *feedPrice `json:"platinum"`
		Palladium *feedPrice `json:"palladium"`
	} `json:"metals"`
	Timestamps *struct {
		Metal string `json:"metal"`
	} `json:"timestamps"`
}

// feedPrice is a price that must arrive as a JSON number.
// decimal.Decimal alone would also accept "7012.4".
type feedPrice struct {
	decimal.Decimal
}

func (p *feedPrice) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return errors.New("price is a string, want a number")
	}
	return p.Decimal.UnmarshalJSON(b)
}

func (f *MetalsDevFetcher) endpoint() string {
	q := url.Values{}
	q.Set("api_key", f.Config.APIKey)
	q.Set("currency", f.Config.Currency)
	q.Set("unit", f.Config.Unit)
	return fmt.Sprintf("%s/v1/latest?%s", strings.TrimRight(f.Config.BaseURL, "/"), q.Encode())
}

// FetchQuotes performs a single GET and normalizes the body into four quotes.
// There is no retry; the caller decides what to do with a failure.
func (f *MetalsDevFetcher) FetchQuotes(ctx context.Context) (*model.QuoteSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrRequestFailed, resp.StatusCode, truncate(body, 256))
	}

	var latest latestResponse
	if err := json.Unmarshal(body, &latest); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrMalformedResponse, err)
	}
	if latest.Status == "failure" {
		return nil, fmt.Errorf("%w: metals.dev error: %s", ErrRequestFailed, latest.ErrorMessage)
	}
	return f.toQuoteSet(&latest)
}

func (f *MetalsDevFetcher) toQuoteSet(latest *latestResponse) (*model.QuoteSet, error) {
	if latest.Metals == nil {
		return nil, fmt.Errorf("%w: missing metals", ErrMalformedResponse)
	}
	if latest.Timestamps == nil || latest.Timestamps.Metal == "" {
		return nil, fmt.Errorf("%w: missing timestamps.metal", ErrMalformedResponse)
	}
	observedAt, err := parseTimestamp(latest.Timestamps.Metal, f.Config.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	fields := map[model.Symbol]*feedPrice{
		model.Gold:      latest.Metals.Gold,
		model.Silver:    latest.Metals.Silver,
		model.Platinum:  latest.Metals.Platinum,
		model.Palladium: latest.Metals.Palladium,
	}
	prices := make(map[model.Symbol]decimal.Decimal, len(fields))
	for sym, p := range fields {
		if p == nil {
			return nil, fmt.Errorf("%w: missing metals.%s", ErrMalformedResponse, sym)
		}
		prices[sym] = p.Decimal
	}

	qs, err := model.NewQuoteSet(prices, observedAt, f.Config.Currency, f.Config.Unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return qs, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp reads zone-less layouts in loc.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
