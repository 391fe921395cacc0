// Package screen holds the view-state machines behind the price list and
// the per-metal detail page. Rendering layers read immutable view snapshots.
package screen

import (
	"time"
)

// State is a screen's current view state.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateError    State = "error"
	StateFound    State = "found"
	StateNotFound State = "not_found"
)

// User-facing messages.
const (
	detailErrorMessage = "Could not load metal details."
	notFoundMessage    = "Metal not found"
)

// Ticker schedules a repeating job and returns a func that cancels it.
type Ticker interface {
	Every(interval time.Duration, job func()) (cancel func())
}

// Options controls presentation constants shared by the screens.
type Options struct {
	CurrencySymbol string         // "₹"
	CardUnit       string         // suffix on list cards, "g"
	DetailUnit     string         // suffix on detail rows, "gram"
	TickInterval   time.Duration  // elapsed-text refresh period
	Location       *time.Location // zone for "Last Updated"
	Now            func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
