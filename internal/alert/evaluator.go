package alert

import (
	"time"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// DefaultThreshold is how long an order may sit untouched before it is
// considered stagnant.
const DefaultThreshold = 96 * time.Hour

// Evaluator decides which orders have remained too long in a monitored
// state. It is pure: the same record set and clock always yield the same
// qualifying set.
type Evaluator struct {
	threshold time.Duration
	monitored map[model.WorkflowState]bool
}

// NewEvaluator builds an evaluator monitoring every workflow state except
// the terminal Delivered one.
func NewEvaluator(threshold time.Duration) *Evaluator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	monitored := make(map[model.WorkflowState]bool)
	for _, s := range model.States() {
		if s != model.StateDelivered {
			monitored[s] = true
		}
	}
	return &Evaluator{threshold: threshold, monitored: monitored}
}

// Threshold returns the stagnation threshold.
func (e *Evaluator) Threshold() time.Duration {
	return e.threshold
}

// Stagnant reports whether the order qualifies for an alert at the given
// instant. The boundary is inclusive: an order last touched exactly
// threshold ago qualifies.
func (e *Evaluator) Stagnant(o model.Order, now time.Time) bool {
	if !e.monitored[o.State] {
		return false
	}
	return now.Sub(o.UpdatedAt) >= e.threshold
}

// Evaluate returns the qualifying subset of orders, preserving input order.
func (e *Evaluator) Evaluate(orders []model.Order, now time.Time) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if e.Stagnant(o, now) {
			out = append(out, o)
		}
	}
	return out
}
