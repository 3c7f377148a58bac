package app

import (
	"context"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/metrics"
	"github.com/uragrafica/printflow/internal/usecase"
)

// HealthChecker reports the readiness of backing storage.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// BoardFacade exposes the application's operations to the HTTP layer. Every
// user-initiated mutation also arms the chime notifier: a request proves the
// user has interacted, so audible alerts may start playing.
type BoardFacade struct {
	board    *usecase.BoardUseCase
	importer *usecase.ImportUseCase
	notifier *alert.ChimeNotifier
	metrics  *metrics.Registry
	health   HealthChecker
}

// NewBoardFacade constructs the facade.
func NewBoardFacade(board *usecase.BoardUseCase, importer *usecase.ImportUseCase, notifier *alert.ChimeNotifier, registry *metrics.Registry, health HealthChecker) *BoardFacade {
	return &BoardFacade{board: board, importer: importer, notifier: notifier, metrics: registry, health: health}
}

// Board returns the filtered working set and the advisory next order number.
func (f *BoardFacade) Board(query string) ([]model.Order, string) {
	return f.board.List(query), f.board.NextNumber()
}

func (f *BoardFacade) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	return f.board.Create(ctx, draft)
}

func (f *BoardFacade) MoveOrder(ctx context.Context, id string, dir int) (*model.Order, error) {
	return f.board.Move(ctx, id, dir)
}

func (f *BoardFacade) SetOrderState(ctx context.Context, id string, state model.WorkflowState) (*model.Order, error) {
	return f.board.SetState(ctx, id, state)
}

func (f *BoardFacade) EditOrder(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	return f.board.Edit(ctx, id, patch)
}

func (f *BoardFacade) DeleteOrder(ctx context.Context, id string, confirmed bool) error {
	return f.board.Delete(ctx, id, confirmed)
}

func (f *BoardFacade) ClearBoard(ctx context.Context, confirmed bool) error {
	return f.board.Clear(ctx, confirmed)
}

func (f *BoardFacade) ExportBoard() ([]byte, error) {
	return f.board.Export()
}

func (f *BoardFacade) MigrationPayload() ([]byte, error) {
	return f.board.MigrationPayload()
}

func (f *BoardFacade) ImportOrders(ctx context.Context, payload []byte, mode model.ImportMode) (*model.ImportResult, error) {
	result, err := f.importer.Import(ctx, payload, mode)
	if err != nil {
		return nil, err
	}
	f.metrics.ImportedOrders.Add(float64(result.Imported))
	return result, nil
}

// RegisterInteraction opens the audible alert gate.
func (f *BoardFacade) RegisterInteraction() {
	f.notifier.Arm()
}

func (f *BoardFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
