package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/domain/repository"
	"github.com/uragrafica/printflow/internal/metrics"
)

// Publisher receives the board after every applied snapshot.
type Publisher interface {
	BoardChanged(orders []model.Order)
}

// SynchronizerParams bundles the synchronizer's collaborators.
type SynchronizerParams struct {
	Session    *Session
	Orders     repository.OrderRepository
	Evaluator  *alert.Evaluator
	Tracker    *alert.Tracker
	Notifier   alert.Notifier
	Publisher  Publisher
	Metrics    *metrics.Registry
	Logger     *slog.Logger
	NextNumber func([]model.Order) string
}

// Synchronizer reconciles pushed snapshots into the session. Each pass
// rewrites retired legacy states in the local copy, recomputes the advisory
// next order number, re-evaluates stagnation alerts, publishes the board,
// and finally drains the corrective writes the rewrite produced.
type Synchronizer struct {
	session    *Session
	orders     repository.OrderRepository
	evaluator  *alert.Evaluator
	tracker    *alert.Tracker
	notifier   alert.Notifier
	publisher  Publisher
	metrics    *metrics.Registry
	logger     *slog.Logger
	nextNumber func([]model.Order) string
	now        func() time.Time
}

// NewSynchronizer constructs a synchronizer.
func NewSynchronizer(p SynchronizerParams) *Synchronizer {
	return &Synchronizer{
		session:    p.Session,
		orders:     p.Orders,
		evaluator:  p.Evaluator,
		tracker:    p.Tracker,
		notifier:   p.Notifier,
		publisher:  p.Publisher,
		metrics:    p.Metrics,
		logger:     p.Logger,
		nextNumber: p.NextNumber,
		now:        time.Now,
	}
}

// Apply replaces the working set with the snapshot. The corrected legacy
// values are visible to everything in this pass even while their persisted
// rewrites are still in flight.
func (s *Synchronizer) Apply(ctx context.Context, snapshot []model.Order) {
	var corrections []model.Order
	for i := range snapshot {
		if next, migrated := model.MigrateLegacy(snapshot[i].State); migrated {
			snapshot[i].State = next
			corrections = append(corrections, snapshot[i])
		}
	}

	s.session.Replace(snapshot, s.nextNumber(snapshot))
	s.metrics.SnapshotsApplied.Inc()
	s.metrics.BoardOrders.Set(float64(len(snapshot)))

	s.evaluateStagnation(snapshot)

	if s.publisher != nil {
		s.publisher.BoardChanged(s.session.Orders())
	}

	s.drainCorrections(ctx, corrections)
}

func (s *Synchronizer) evaluateStagnation(snapshot []model.Order) {
	now := s.now()
	for _, o := range s.evaluator.Evaluate(snapshot, now) {
		if !s.tracker.ShouldNotify(o) {
			continue
		}
		if !s.notifier.StaleOrder(o) {
			// not delivered (e.g. gate still closed); keep the episode open
			continue
		}
		s.tracker.MarkNotified(o)
		s.metrics.StaleAlerts.Inc()
		s.logger.Info("stale order alert",
			slog.String("order", o.Number),
			slog.String("state", string(o.State)),
		)
	}
	s.tracker.Prune(snapshot)
}

// drainCorrections issues the queued legacy-state rewrites. Best effort: a
// failure is logged and counted, and the next snapshot carrying the legacy
// value will queue the rewrite again.
func (s *Synchronizer) drainCorrections(ctx context.Context, corrections []model.Order) {
	for _, o := range corrections {
		state := o.State
		if _, err := s.orders.Update(ctx, o.ID, model.OrderPatch{State: &state}); err != nil {
			s.metrics.CorrectiveWriteFailures.Inc()
			s.logger.Error("corrective state rewrite failed",
				slog.String("order", o.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.metrics.CorrectiveWrites.Inc()
	}
}
