package alert

import (
	"log/slog"
	"sync/atomic"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// Tone is one note of the audible stagnation cue. The service only describes
// the sound; playback happens on the client.
type Tone struct {
	FrequencyHz float64 `json:"frequencyHz"`
	DurationMs  int     `json:"durationMs"`
	Gain        float64 `json:"gain"`
}

// ChimeTones is the two-tone cue: two short notes at distinct pitches,
// low volume.
func ChimeTones() []Tone {
	return []Tone{
		{FrequencyHz: 880, DurationMs: 180, Gain: 0.05},
		{FrequencyHz: 660, DurationMs: 180, Gain: 0.05},
	}
}

// Notifier delivers stagnation alerts. The return value reports whether the
// alert was actually delivered; an undelivered alert leaves the episode
// open so it can fire later.
type Notifier interface {
	StaleOrder(o model.Order) bool
}

// ChimeSink receives delivered chimes, typically a broadcast to connected
// clients.
type ChimeSink interface {
	Chime(o model.Order, tones []Tone)
}

// ChimeNotifier delivers the audible cue. It stays silent until Arm is
// called: browsers refuse unsolicited audio before the user interacts with
// the page, so the gate opens on the first user-initiated request.
type ChimeNotifier struct {
	armed  atomic.Bool
	sink   ChimeSink
	logger *slog.Logger
}

// NewChimeNotifier constructs the notifier. sink may be nil.
func NewChimeNotifier(sink ChimeSink, logger *slog.Logger) *ChimeNotifier {
	return &ChimeNotifier{sink: sink, logger: logger}
}

// Arm opens the gate. Safe to call repeatedly.
func (n *ChimeNotifier) Arm() {
	n.armed.Store(true)
}

// Armed reports whether the gate is open.
func (n *ChimeNotifier) Armed() bool {
	return n.armed.Load()
}

// StaleOrder delivers the chime for a stagnant order. Returns false while
// unarmed so the caller does not consume the episode.
func (n *ChimeNotifier) StaleOrder(o model.Order) bool {
	if !n.armed.Load() {
		return false
	}
	if n.sink != nil {
		n.sink.Chime(o, ChimeTones())
	}
	n.logger.Warn("order stagnating",
		slog.String("order", o.Number),
		slog.String("customer", o.Customer),
		slog.String("state", string(o.State)),
		slog.Time("updated_at", o.UpdatedAt),
	)
	return true
}
