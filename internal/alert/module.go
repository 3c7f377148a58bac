package alert

import (
	"go.uber.org/fx"

	"github.com/uragrafica/printflow/internal/config"
)

// Module wires the stagnation evaluator and episode tracker. The notifier is
// provided by the application layer, which owns the broadcast sink.
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) *Evaluator { return NewEvaluator(cfg.StaleThreshold) }),
	fx.Provide(NewTracker),
)
