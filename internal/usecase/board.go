package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uragrafica/printflow/internal/board"
	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/domain/repository"
)

// BoardUseCase encapsulates order lifecycle operations. Reads are served
// from the session's working set; every mutation goes to the store and
// becomes visible only through the next pushed snapshot.
type BoardUseCase struct {
	orders  repository.OrderRepository
	session *board.Session
}

// NewBoardUseCase constructs BoardUseCase.
func NewBoardUseCase(orders repository.OrderRepository, session *board.Session) *BoardUseCase {
	return &BoardUseCase{orders: orders, session: session}
}

// List returns the working set filtered by a case-insensitive substring
// query over number, customer and product.
func (u *BoardUseCase) List(query string) []model.Order {
	return u.session.Filter(query)
}

// NextNumber returns the advisory next order number.
func (u *BoardUseCase) NextNumber() string {
	return u.session.NextNumber()
}

// Create validates and creates a new order. Required fields are trimmed and
// checked before any store call; no partial record is ever created.
func (u *BoardUseCase) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	draft.Number = strings.TrimSpace(draft.Number)
	draft.Customer = strings.TrimSpace(draft.Customer)
	draft.Product = strings.TrimSpace(draft.Product)

	if draft.Number == "" || draft.Customer == "" || draft.Product == "" {
		return nil, domainErrors.ErrMissingField
	}
	if draft.State == "" {
		draft.State = model.Normalize(draft.State)
	}
	if !draft.State.Valid() {
		return nil, domainErrors.ErrInvalidState
	}

	order, err := u.orders.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// Move shifts the order one workflow step in the given direction (-1 or +1).
// Moving past either end of the sequence is a no-op.
func (u *BoardUseCase) Move(ctx context.Context, id string, dir int) (*model.Order, error) {
	current, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := current.State.Step(dir)
	if next == current.State {
		return current, nil
	}
	return u.orders.Update(ctx, id, model.OrderPatch{State: &next})
}

// SetState moves the order directly to the given workflow state.
func (u *BoardUseCase) SetState(ctx context.Context, id string, state model.WorkflowState) (*model.Order, error) {
	if !state.Valid() {
		return nil, domainErrors.ErrInvalidState
	}
	return u.orders.Update(ctx, id, model.OrderPatch{State: &state})
}

// Edit applies a partial update. Present text fields are trimmed and must
// not end up empty; a present state must be a workflow member.
func (u *BoardUseCase) Edit(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	if patch.Empty() {
		return u.find(ctx, id)
	}

	for _, field := range []**string{&patch.Number, &patch.Customer, &patch.Product} {
		if *field == nil {
			continue
		}
		trimmed := strings.TrimSpace(**field)
		if trimmed == "" {
			return nil, domainErrors.ErrMissingField
		}
		*field = &trimmed
	}
	if patch.State != nil && !patch.State.Valid() {
		return nil, domainErrors.ErrInvalidState
	}

	return u.orders.Update(ctx, id, patch)
}

// Delete removes the order permanently. The caller must confirm explicitly;
// there is no soft delete and no undo.
func (u *BoardUseCase) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domainErrors.ErrConfirmationRequired
	}
	return u.orders.Delete(ctx, id)
}

// Clear removes every order. Requires explicit confirmation.
func (u *BoardUseCase) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domainErrors.ErrConfirmationRequired
	}
	return u.orders.DeleteAll(ctx)
}

// Export serializes the working set, identifiers included, pretty-printed.
func (u *BoardUseCase) Export() ([]byte, error) {
	return json.MarshalIndent(transferRecordsFrom(u.session.Orders()), "", "  ")
}

// MigrationPayload serializes the working set compactly for a
// clipboard-based move to another deployment. The clipboard write itself
// (and its manual-copy fallback) happens on the client.
func (u *BoardUseCase) MigrationPayload() ([]byte, error) {
	return json.Marshal(transferRecordsFrom(u.session.Orders()))
}

func (u *BoardUseCase) find(ctx context.Context, id string) (*model.Order, error) {
	if o, ok := u.session.Find(id); ok {
		return &o, nil
	}
	// the session may lag a snapshot behind; fall back to the store
	return u.orders.Get(ctx, id)
}
