package screen

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"MetalWatch/internal/collector"
	"MetalWatch/internal/format"
	"MetalWatch/internal/metrics"
	"MetalWatch/internal/model"
)

// DetailLine is one labelled row of the detail screen.
type DetailLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailScreenView is a snapshot of the detail screen.
type DetailScreenView struct {
	State  State             `json:"state"`
	ID     string            `json:"id"`
	Title  string            `json:"title,omitempty"`
	Detail *model.DetailView `json:"detail,omitempty"`
	Lines  []DetailLine      `json:"lines,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// DetailScreen shows one metal. Each screen instance fetches the feed exactly once.
type DetailScreen struct {
	fetcher collector.Fetcher
	id      string
	opts    Options
	logger  *zap.Logger

	once sync.Once
	mu   sync.Mutex
	view DetailScreenView
}

// NewDetailScreen creates a detail screen for the identifier supplied by the
// navigation layer. The identifier is matched case-insensitively on Load.
func NewDetailScreen(fetcher collector.Fetcher, id string, opts Options, logger *zap.Logger) *DetailScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailScreen{
		fetcher: fetcher,
		id:      id,
		opts:    opts.withDefaults(),
		logger:  logger.Named("detail").With(zap.String("id", id)),
		view:    DetailScreenView{State: StateLoading, ID: id},
	}
}

// Load fetches the feed and resolves the metal. Only the first call fetches;
// later calls return the settled view.
func (s *DetailScreen) Load(ctx context.Context) DetailScreenView {
	s.once.Do(func() {
		v := s.load(ctx)
		metrics.ScreenTransitions.WithLabelValues("detail", string(v.State)).Inc()
		s.mu.Lock()
		s.view = v
		s.mu.Unlock()
	})
	return s.View()
}

// View returns the current snapshot.
func (s *DetailScreen) View() DetailScreenView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *DetailScreen) load(ctx context.Context) DetailScreenView {
	v := DetailScreenView{ID: s.id}

	qs, err := s.fetcher.FetchQuotes(ctx)
	if err != nil {
		s.logger.Warn("load details failed", zap.Error(err))
		v.State = StateError
		v.Error = detailErrorMessage
		return v
	}

	q, err := qs.Lookup(s.id)
	if err != nil {
		s.logger.Info("metal not found", zap.Error(err))
		v.State = StateNotFound
		v.Error = notFoundMessage
		return v
	}

	dv := model.NewDetailView(q)
	v.State = StateFound
	v.Title = dv.Name + " Details"
	v.Detail = &dv
	v.Lines = s.lines(dv)
	return v
}

func (s *DetailScreen) lines(dv model.DetailView) []DetailLine {
	money := func(amount decimal.Decimal) string {
		return format.Money(s.opts.CurrencySymbol, amount, s.opts.DetailUnit)
	}
	return []DetailLine{
		{Label: "24K Price", Value: money(dv.Price24K)},
		{Label: "Previous Close", Value: money(dv.PreviousClose)},
		{Label: "Previous Open", Value: money(dv.PreviousOpen)},
		{Label: "Last Updated", Value: format.Timestamp(dv.ObservedAt, s.opts.Location)},
	}
}
