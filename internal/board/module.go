package board

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/domain/repository"
	"github.com/uragrafica/printflow/internal/metrics"
)

// Module wires the session and synchronizer.
var Module = fx.Options(
	fx.Provide(NewSession),
	fx.Provide(newSynchronizer),
)

type synchronizerParams struct {
	fx.In

	Session    *Session
	Orders     repository.OrderRepository
	Evaluator  *alert.Evaluator
	Tracker    *alert.Tracker
	Notifier   alert.Notifier
	Publisher  Publisher `optional:"true"`
	Metrics    *metrics.Registry
	Logger     *slog.Logger
	NextNumber NextNumberFunc
}

// NextNumberFunc computes the advisory next order number for a record set.
type NextNumberFunc func([]model.Order) string

func newSynchronizer(p synchronizerParams) *Synchronizer {
	return NewSynchronizer(SynchronizerParams{
		Session:    p.Session,
		Orders:     p.Orders,
		Evaluator:  p.Evaluator,
		Tracker:    p.Tracker,
		Notifier:   p.Notifier,
		Publisher:  p.Publisher,
		Metrics:    p.Metrics,
		Logger:     p.Logger,
		NextNumber: p.NextNumber,
	})
}
