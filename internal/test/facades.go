package test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// BoardFacadeStub is a configurable stand-in for the application facade.
// Unset functions fall back to permissive defaults.
type BoardFacadeStub struct {
	BoardFn            func(query string) ([]model.Order, string)
	CreateOrderFn      func(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	MoveOrderFn        func(ctx context.Context, id string, dir int) (*model.Order, error)
	SetOrderStateFn    func(ctx context.Context, id string, state model.WorkflowState) (*model.Order, error)
	EditOrderFn        func(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	DeleteOrderFn      func(ctx context.Context, id string, confirmed bool) error
	ClearBoardFn       func(ctx context.Context, confirmed bool) error
	ExportBoardFn      func() ([]byte, error)
	MigrationPayloadFn func() ([]byte, error)
	ImportOrdersFn     func(ctx context.Context, payload []byte, mode model.ImportMode) (*model.ImportResult, error)
	HealthCheckFn      func(ctx context.Context) error

	interactions atomic.Int64
}

// Interactions reports how many times RegisterInteraction was called.
func (s *BoardFacadeStub) Interactions() int {
	return int(s.interactions.Load())
}

func (s *BoardFacadeStub) Board(query string) ([]model.Order, string) {
	if s.BoardFn != nil {
		return s.BoardFn(query)
	}
	return nil, "001"
}

func (s *BoardFacadeStub) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, draft)
	}
	now := time.Unix(0, 0)
	return &model.Order{
		ID:        "stub-id",
		Number:    draft.Number,
		Customer:  draft.Customer,
		Product:   draft.Product,
		State:     draft.State,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *BoardFacadeStub) MoveOrder(ctx context.Context, id string, dir int) (*model.Order, error) {
	if s.MoveOrderFn != nil {
		return s.MoveOrderFn(ctx, id, dir)
	}
	return &model.Order{ID: id, State: model.StateDesign}, nil
}

func (s *BoardFacadeStub) SetOrderState(ctx context.Context, id string, state model.WorkflowState) (*model.Order, error) {
	if s.SetOrderStateFn != nil {
		return s.SetOrderStateFn(ctx, id, state)
	}
	return &model.Order{ID: id, State: state}, nil
}

func (s *BoardFacadeStub) EditOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	if s.EditOrderFn != nil {
		return s.EditOrderFn(ctx, id, patch)
	}
	return &model.Order{ID: id, State: model.StateDesign}, nil
}

func (s *BoardFacadeStub) DeleteOrder(ctx context.Context, id string, confirmed bool) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, id, confirmed)
	}
	return nil
}

func (s *BoardFacadeStub) ClearBoard(ctx context.Context, confirmed bool) error {
	if s.ClearBoardFn != nil {
		return s.ClearBoardFn(ctx, confirmed)
	}
	return nil
}

func (s *BoardFacadeStub) ExportBoard() ([]byte, error) {
	if s.ExportBoardFn != nil {
		return s.ExportBoardFn()
	}
	return []byte("[]"), nil
}

func (s *BoardFacadeStub) MigrationPayload() ([]byte, error) {
	if s.MigrationPayloadFn != nil {
		return s.MigrationPayloadFn()
	}
	return []byte("[]"), nil
}

func (s *BoardFacadeStub) ImportOrders(ctx context.Context, payload []byte, mode model.ImportMode) (*model.ImportResult, error) {
	if s.ImportOrdersFn != nil {
		return s.ImportOrdersFn(ctx, payload, mode)
	}
	return &model.ImportResult{Mode: mode}, nil
}

func (s *BoardFacadeStub) RegisterInteraction() {
	s.interactions.Add(1)
}

func (s *BoardFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthCheckFn != nil {
		return s.HealthCheckFn(ctx)
	}
	return nil
}
