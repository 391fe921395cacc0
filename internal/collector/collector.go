package collector

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"MetalWatch/internal/metrics"
	"MetalWatch/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu    sync.Mutex
	Set   *model.QuoteSet
	Err   error
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuotes(_ context.Context) (*model.QuoteSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Set, nil
}

// Calls reports how many times FetchQuotes has been invoked.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Respond swaps the canned result for subsequent calls.
func (m *MockFetcher) Respond(set *model.QuoteSet, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Set, m.Err = set, err
}

// InstrumentedFetcher wraps a Fetcher with logging and Prometheus metrics.
type InstrumentedFetcher struct {
	inner  Fetcher
	logger *zap.Logger
}

// NewInstrumentedFetcher decorates inner. A nil logger disables logging.
func NewInstrumentedFetcher(inner Fetcher, logger *zap.Logger) *InstrumentedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedFetcher{inner: inner, logger: logger.Named("feed")}
}

func (f *InstrumentedFetcher) Name() string { return f.inner.Name() }

func (f *InstrumentedFetcher) FetchQuotes(ctx context.Context) (*model.QuoteSet, error) {
	start := time.Now()
	qs, err := f.inner.FetchQuotes(ctx)
	elapsed := time.Since(start)
	metrics.FeedFetchDuration.Observe(elapsed.Seconds())

	if err != nil {
		metrics.FeedFetches.WithLabelValues(resultLabel(err)).Inc()
		f.logger.Error("fetch quotes failed",
			zap.String("source", f.inner.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, err
	}
	metrics.FeedFetches.WithLabelValues("ok").Inc()
	f.logger.Info("fetched quotes",
		zap.String("source", f.inner.Name()),
		zap.Int("count", qs.Len()),
		zap.Time("observed_at", qs.ObservedAt),
		zap.Duration("elapsed", elapsed))
	return qs, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrRequestFailed):
		return "request_failed"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "error"
	}
}
