package stream

import (
	"time"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/domain/model"
)

// OrderSummary is the wire shape of an order inside broadcast events.
type OrderSummary struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Customer    string    `json:"customer"`
	Product     string    `json:"product"`
	State       string    `json:"state"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BoardPayload carries a full board snapshot.
type BoardPayload struct {
	Orders []OrderSummary `json:"orders"`
	Total  int            `json:"total"`
}

// AlertPayload carries a stagnation chime: the stalled order plus the tone
// sequence the client should play.
type AlertPayload struct {
	Order OrderSummary `json:"order"`
	Tones []alert.Tone `json:"tones"`
}

// NewBoardPayload builds a snapshot payload preserving order.
func NewBoardPayload(orders []model.Order) BoardPayload {
	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, summarize(o))
	}
	return BoardPayload{Orders: summaries, Total: len(summaries)}
}

// NewAlertPayload builds a chime payload.
func NewAlertPayload(o model.Order, tones []alert.Tone) AlertPayload {
	return AlertPayload{Order: summarize(o), Tones: tones}
}

func summarize(o model.Order) OrderSummary {
	return OrderSummary{
		ID:          o.ID,
		OrderNumber: o.Number,
		Customer:    o.Customer,
		Product:     o.Product,
		State:       string(o.State),
		Progress:    o.State.Progress(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
