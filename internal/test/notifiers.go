package test

import (
	"sync"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/domain/model"
)

// NotifierStub records delivered alerts. Deliver controls the reported
// delivery outcome, modeling the unarmed chime gate.
type NotifierStub struct {
	mu      sync.Mutex
	Deliver bool
	Alerts  []model.Order
}

// NewNotifierStub constructs a delivering notifier.
func NewNotifierStub() *NotifierStub {
	return &NotifierStub{Deliver: true}
}

func (n *NotifierStub) StaleOrder(o model.Order) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.Deliver {
		return false
	}
	n.Alerts = append(n.Alerts, o)
	return true
}

// Count returns how many alerts were delivered.
func (n *NotifierStub) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Alerts)
}

var _ alert.Notifier = (*NotifierStub)(nil)
