package stream

import "sync"

// EventType discriminates broadcast payloads.
type EventType string

const (
	// EventBoard carries a full board snapshot.
	EventBoard EventType = "board"
	// EventAlert carries a stagnation chime.
	EventAlert EventType = "alert"
)

// Event is a single realtime message pushed to subscribers.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// Broadcaster fans events out to subscribers. Delivery is best effort: a
// subscriber that cannot keep up loses events rather than blocking the
// publisher, mirroring how the snapshot feed drops superseded snapshots.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// New creates an empty broadcaster.
func New() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a subscriber. The returned cancel function must be
// called to release it; the channel is closed on cancel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the current subscriber count.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
