package screen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"MetalWatch/internal/collector"
	"MetalWatch/internal/format"
	"MetalWatch/internal/metrics"
	"MetalWatch/internal/model"
)

// Card is one metal's summary on the list screen.
type Card struct {
	Symbol     model.Symbol    `json:"symbol"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"-"`
	PriceText  string          `json:"price"`
	Elapsed    string          `json:"updated"`
	ObservedAt time.Time       `json:"observed_at"`
	Route      string          `json:"route"`
}

// ListView is a snapshot of the list screen.
type ListView struct {
	State      State     `json:"state"`
	Cards      []Card    `json:"cards,omitempty"`
	Error      string    `json:"error,omitempty"`
	Refreshing bool      `json:"refreshing"`
	FetchedAt  time.Time `json:"fetched_at,omitzero"`
}

// liveCard is a displayed card plus the ticker keeping its elapsed text current.
type liveCard struct {
	card    Card
	cancel  func()
	stopped bool
}

// ListScreen owns the current quote set and its error/loading state.
// Prices change only on Mount and Refresh; there is no background polling.
type ListScreen struct {
	fetcher collector.Fetcher
	ticker  Ticker
	opts    Options
	logger  *zap.Logger

	mu        sync.Mutex
	state     State
	cards     []*liveCard
	errMsg    string
	fetchedAt time.Time
	inflight  int
	closed    bool
}

// NewListScreen creates a list screen in the Loading state. Nothing is
// fetched until Mount is called.
func NewListScreen(fetcher collector.Fetcher, ticker Ticker, opts Options, logger *zap.Logger) *ListScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListScreen{
		fetcher: fetcher,
		ticker:  ticker,
		opts:    opts.withDefaults(),
		logger:  logger.Named("list"),
		state:   StateLoading,
	}
}

// RoutePrefix is the navigation path a card links to, followed by the symbol.
const RoutePrefix = "/metals/"

// Mount performs the initial fetch.
func (s *ListScreen) Mount(ctx context.Context) ListView {
	s.logger.Info("list screen mounted")
	return s.Refresh(ctx)
}

// Refresh fetches the feed once and replaces the displayed quote set.
// Overlapping calls are not merged: whichever response arrives last wins.
func (s *ListScreen) Refresh(ctx context.Context) ListView {
	s.mu.Lock()
	if s.closed {
		defer s.mu.Unlock()
		return s.viewLocked()
	}
	s.stopCardsLocked()
	s.transitionLocked(StateLoading)
	s.errMsg = ""
	s.inflight++
	s.mu.Unlock()

	qs, err := s.fetcher.FetchQuotes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.closed {
		return s.viewLocked()
	}

	s.stopCardsLocked()
	if err != nil {
		s.logger.Debug("refresh failed", zap.Error(err))
		s.errMsg = fmt.Sprintf("Could not connect to %s.", s.fetcher.Name())
		s.transitionLocked(StateError)
		return s.viewLocked()
	}

	s.fetchedAt = s.opts.Now()
	s.cards = s.buildCardsLocked(qs)
	s.transitionLocked(StateReady)
	return s.viewLocked()
}

// View returns the current snapshot.
func (s *ListScreen) View() ListView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Close cancels every card ticker. Later Refresh calls do nothing.
func (s *ListScreen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCardsLocked()
	s.closed = true
	s.logger.Info("list screen closed")
}

func (s *ListScreen) buildCardsLocked(qs *model.QuoteSet) []*liveCard {
	now := s.opts.Now()
	cards := make([]*liveCard, 0, qs.Len())
	for _, q := range qs.Quotes {
		lc := &liveCard{card: Card{
			Symbol:     q.Symbol,
			Name:       q.Symbol.DisplayName(),
			Price:      q.PricePerGram,
			PriceText:  format.Money(s.opts.CurrencySymbol, q.PricePerGram, s.opts.CardUnit),
			Elapsed:    format.Elapsed(q.ObservedAt, now),
			ObservedAt: q.ObservedAt,
			Route:      RoutePrefix + q.Symbol.String(),
		}}
		lc.cancel = s.ticker.Every(s.opts.TickInterval, func() { s.tick(lc) })
		cards = append(cards, lc)
	}
	return cards
}

func (s *ListScreen) tick(lc *liveCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lc.stopped {
		return
	}
	lc.card.Elapsed = format.Elapsed(lc.card.ObservedAt, s.opts.Now())
}

func (s *ListScreen) stopCardsLocked() {
	for _, lc := range s.cards {
		lc.stopped = true
		if lc.cancel != nil {
			lc.cancel()
		}
	}
	s.cards = nil
}

func (s *ListScreen) transitionLocked(to State) {
	if s.state != to {
		s.logger.Debug("state transition", zap.String("from", string(s.state)), zap.String("to", string(to)))
	}
	s.state = to
	metrics.ScreenTransitions.WithLabelValues("list", string(to)).Inc()
}

func (s *ListScreen) viewLocked() ListView {
	v := ListView{
		State:      s.state,
		Error:      s.errMsg,
		Refreshing: s.inflight > 0,
		FetchedAt:  s.fetchedAt,
	}
	if s.state == StateReady {
		v.Cards = make([]Card, len(s.cards))
		for i, lc := range s.cards {
			v.Cards[i] = lc.card
		}
	}
	return v
}
