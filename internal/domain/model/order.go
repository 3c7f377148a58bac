package model

import (
	"strings"
	"time"
)

// Order describes a single print job tracked on the board.
type Order struct {
	ID        string
	Number    string
	Customer  string
	Product   string
	State     WorkflowState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderDraft carries the fields a caller supplies when creating an order.
// Identifier and timestamps are assigned by the store.
type OrderDraft struct {
	Number   string
	Customer string
	Product  string
	State    WorkflowState
}

// OrderPatch describes a partial update. Nil fields are left untouched.
type OrderPatch struct {
	Number   *string
	Customer *string
	Product  *string
	State    *WorkflowState
}

// Empty reports whether the patch changes nothing.
func (p OrderPatch) Empty() bool {
	return p.Number == nil && p.Customer == nil && p.Product == nil && p.State == nil
}

// Matches reports whether the order matches a case-insensitive substring
// query over number, customer and product. The empty query matches all.
func (o Order) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Number), q) ||
		strings.Contains(strings.ToLower(o.Customer), q) ||
		strings.Contains(strings.ToLower(o.Product), q)
}

// Filter returns the orders matching query, preserving input order.
func Filter(orders []Order, query string) []Order {
	if strings.TrimSpace(query) == "" {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Matches(query) {
			out = append(out, o)
		}
	}
	return out
}
