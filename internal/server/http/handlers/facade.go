package handlers

import (
	"context"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// OrderFacade encapsulates single-order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	MoveOrder(ctx context.Context, id string, dir int) (*model.Order, error)
	SetOrderState(ctx context.Context, id string, state model.WorkflowState) (*model.Order, error)
	EditOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string, confirmed bool) error
}

// TransferFacade provides board export, migration and import operations.
type TransferFacade interface {
	ExportBoard() ([]byte, error)
	MigrationPayload() ([]byte, error)
	ImportOrders(ctx context.Context, payload []byte, mode model.ImportMode) (*model.ImportResult, error)
}

// BoardFacade aggregates the full set of operations used across handlers.
type BoardFacade interface {
	OrderFacade
	TransferFacade

	Board(query string) ([]model.Order, string)
	ClearBoard(ctx context.Context, confirmed bool) error
	RegisterInteraction()
	HealthCheck(ctx context.Context) error
}
