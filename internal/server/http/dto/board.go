package dto

import "time"

// OrderResponse is the wire shape of a single order card.
type OrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Customer    string    `json:"customer"`
	Product     string    `json:"product"`
	State       string    `json:"state"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ColumnResponse is one kanban column. Count reflects the currently applied
// search filter, not the full board.
type ColumnResponse struct {
	State    string          `json:"state"`
	Progress int             `json:"progress"`
	Count    int             `json:"count"`
	Orders   []OrderResponse `json:"orders"`
}

// BoardResponse is the full column-partitioned board view.
type BoardResponse struct {
	Columns         []ColumnResponse `json:"columns"`
	SuggestedNumber string           `json:"suggestedNumber"`
	Total           int              `json:"total"`
}

// CreateOrderRequest carries the add-order form fields.
type CreateOrderRequest struct {
	OrderNumber string `json:"orderNumber"`
	Customer    string `json:"customer"`
	Product     string `json:"product"`
	State       string `json:"state"`
}

// UpdateOrderRequest is a partial edit; nil fields stay untouched.
type UpdateOrderRequest struct {
	OrderNumber *string `json:"orderNumber"`
	Customer    *string `json:"customer"`
	Product     *string `json:"product"`
	State       *string `json:"state"`
}

// MoveOrderRequest shifts an order one column left or right.
type MoveOrderRequest struct {
	Direction string `json:"direction"`
}

// SetStateRequest moves an order directly to a column.
type SetStateRequest struct {
	State string `json:"state"`
}

// ImportResponse summarizes a completed import.
type ImportResponse struct {
	Mode     string `json:"mode"`
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// ErrorResponse carries a user-visible failure reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
