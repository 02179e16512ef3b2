package newsroom

import (
	"errors"
	"sync"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrEventNotFound is returned when an id does not name a known event
var ErrEventNotFound = errors.New("event not found")

// View is the read-only view model handed to the presentation layer
type View struct {
	Filters    models.FilterState      `json:"filters"`
	Events     []models.Event          `json:"events"`
	Total      int                     `json:"total"`
	SelectedID string                  `json:"selectedId"`
	Selected   *models.Event           `json:"selected"`
	FactCheck  models.FactCheckSession `json:"factCheck"`
	Facets     models.Facets           `json:"facets"`
}

// Board is a single newsroom desk session. Entry points are serialized, so
// after each one returns the selection is either empty or names a visible
// event.
type Board struct {
	mu         sync.RWMutex
	events     []models.Event
	facets     models.Facets
	filters    models.FilterState
	filtered   []models.Event
	selectedID string
	checker    *FactChecker
	recorder   Recorder
}

// Option configures a Board
type Option func(*Board)

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(b *Board) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithFactChecker replaces the default fact checker
func WithFactChecker(c *FactChecker) Option {
	return func(b *Board) {
		b.checker = c
	}
}

// WithFilters sets the initial filter state
func WithFilters(state models.FilterState) Option {
	return func(b *Board) {
		b.filters = state.Apply(models.FilterPatch{})
	}
}

// NewBoard creates a desk over a fixed event collection. The first event is
// selected initially.
func NewBoard(events []models.Event, opts ...Option) *Board {
	b := &Board{
		events:   append([]models.Event(nil), events...),
		filters:  models.DefaultFilterState(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.checker == nil {
		b.checker = NewFactChecker(DefaultFactCheckDelay, nil, b.recorder)
	}
	if len(b.events) > 0 {
		b.selectedID = b.events[0].ID
	}
	b.facets = CollectFacets(b.events)
	b.recomputeLocked()

	return b
}

// OnFiltersChange merges a partial filter update and returns the view it
// produced
func (b *Board) OnFiltersChange(patch models.FilterPatch) View {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filters = b.filters.Apply(patch)
	b.recomputeLocked()

	return b.snapshotLocked()
}

// OnSelectEvent focuses an event. The id is not checked up front; an id
// outside the current view is repaired by reconciliation.
func (b *Board) OnSelectEvent(id string) View {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.selectedID = id
	b.reconcileLocked()

	return b.snapshotLocked()
}

// OnFactCheck starts a fact check for the event with the given id
func (b *Board) OnFactCheck(id string) (models.FactCheckSession, error) {
	b.mu.RLock()
	event, ok := b.lookupLocked(id)
	b.mu.RUnlock()

	if !ok {
		return models.FactCheckSession{}, ErrEventNotFound
	}
	return b.checker.Trigger(event), nil
}

// OnDismiss closes the fact-check modal
func (b *Board) OnDismiss() {
	b.checker.Dismiss()
}

// FactCheck returns the current fact-check session
func (b *Board) FactCheck() models.FactCheckSession {
	return b.checker.Session()
}

// Filters returns the current filter state
func (b *Board) Filters() models.FilterState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filters.Apply(models.FilterPatch{})
}

// FilteredEvents returns the visible events
func (b *Board) FilteredEvents() []models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Event(nil), b.filtered...)
}

// Events returns the full collection
func (b *Board) Events() []models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Event(nil), b.events...)
}

// SelectedID returns the selected event id, or "" when nothing is visible
func (b *Board) SelectedID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selectedID
}

// SelectedEvent returns the event the detail view shows
func (b *Board) SelectedEvent() *models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return DisplayedEvent(b.filtered, b.selectedID)
}

// Snapshot returns the full view model
func (b *Board) Snapshot() View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() View {
	return View{
		Filters:    b.filters.Apply(models.FilterPatch{}),
		Events:     append([]models.Event{}, b.filtered...),
		Total:      len(b.events),
		SelectedID: b.selectedID,
		Selected:   DisplayedEvent(b.filtered, b.selectedID),
		FactCheck:  b.checker.Session(),
		Facets:     b.facets,
	}
}

func (b *Board) recomputeLocked() {
	start := time.Now()
	b.filtered = FilterEvents(b.events, b.filters)
	b.recorder.RecordFilter(len(b.filtered), time.Since(start))

	logrus.WithFields(logrus.Fields{
		"visible":   len(b.filtered),
		"total":     len(b.events),
		"timeframe": b.filters.Timeframe,
	}).Debug("Recomputed filtered events")

	b.reconcileLocked()
}

func (b *Board) reconcileLocked() {
	next := ReconcileSelection(b.selectedID, b.filtered)
	if next != b.selectedID {
		logrus.Debugf("Selection repaired from %q to %q", b.selectedID, next)
	}
	b.selectedID = next
}

func (b *Board) lookupLocked(id string) (models.Event, bool) {
	for _, event := range b.events {
		if event.ID == id {
			return event, true
		}
	}
	return models.Event{}, false
}
