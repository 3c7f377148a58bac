package board

import (
	"sync"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// Session holds the in-memory working set of orders. It is a read-through
// cache over the store: only the Synchronizer may call Replace, everything
// else reads. The set is swapped wholesale on every snapshot, never patched.
type Session struct {
	mu         sync.RWMutex
	orders     []model.Order
	nextNumber string
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{nextNumber: "001"}
}

// Replace swaps the working set and the derived next-number suggestion.
func (s *Session) Replace(orders []model.Order, nextNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
	s.nextNumber = nextNumber
}

// Orders returns a copy of the working set in snapshot order.
func (s *Session) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Find returns the order with the given identifier.
func (s *Session) Find(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// Filter returns the orders matching a case-insensitive substring query.
func (s *Session) Filter(query string) []model.Order {
	return model.Filter(s.Orders(), query)
}

// NextNumber returns the advisory next order number. It does not reserve
// anything; concurrent creators may race to the same suggestion.
func (s *Session) NextNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextNumber
}

// Len returns the current number of orders.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
