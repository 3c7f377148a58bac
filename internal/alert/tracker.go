package alert

import (
	"sync"
	"time"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// Tracker enforces one notification per stagnation episode. An episode is
// the interval between two changes of a record, so it is keyed by the
// record's updatedAt: any edit or move refreshes the timestamp and opens a
// fresh episode that may notify again.
type Tracker struct {
	mu       sync.Mutex
	notified map[string]time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{notified: make(map[string]time.Time)}
}

// ShouldNotify reports whether the order's current episode has not been
// notified yet.
func (t *Tracker) ShouldNotify(o model.Order) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.notified[o.ID]
	return !ok || !at.Equal(o.UpdatedAt)
}

// MarkNotified records that the order's current episode has fired.
func (t *Tracker) MarkNotified(o model.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notified[o.ID] = o.UpdatedAt
}

// Prune drops state for records no longer present in the snapshot.
func (t *Tracker) Prune(current []model.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	present := make(map[string]bool, len(current))
	for _, o := range current {
		present[o.ID] = true
	}
	for id := range t.notified {
		if !present[id] {
			delete(t.notified, id)
		}
	}
}
