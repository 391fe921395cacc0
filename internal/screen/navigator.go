package screen

import (
	"context"

	"go.uber.org/zap"

	"MetalWatch/internal/collector"
)

// Navigator opens screens by route. Every detail navigation gets a fresh
// DetailScreen, and therefore its own fetch.
type Navigator struct {
	fetcher collector.Fetcher
	opts    Options
	logger  *zap.Logger
}

// NewNavigator creates a Navigator sharing fetcher and presentation options.
func NewNavigator(fetcher collector.Fetcher, opts Options, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{fetcher: fetcher, opts: opts, logger: logger}
}

// OpenDetail creates the detail screen for id and loads it.
func (n *Navigator) OpenDetail(ctx context.Context, id string) DetailScreenView {
	return NewDetailScreen(n.fetcher, id, n.opts, n.logger).Load(ctx)
}
