package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/board"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/metrics"
	testhelpers "github.com/uragrafica/printflow/internal/test"
	"github.com/uragrafica/printflow/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newTestFacade(repo *testhelpers.OrderRepositoryStub, session *board.Session, health HealthChecker) (*BoardFacade, *alert.ChimeNotifier, *metrics.Registry) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	notifier := alert.NewChimeNotifier(nil, logger)
	registry := metrics.NewRegistry()
	facade := NewBoardFacade(
		usecase.NewBoardUseCase(repo, session),
		usecase.NewImportUseCase(repo, session),
		notifier,
		registry,
		health,
	)
	return facade, notifier, registry
}

func TestBoardFacadeBoard(t *testing.T) {
	session := board.NewSession()
	session.Replace([]model.Order{
		{ID: "a", Number: "001", Customer: "Acme", Product: "Flyers", State: model.StateDesign},
		{ID: "b", Number: "002", Customer: "Ajax", Product: "Cards", State: model.StateDesign},
	}, "003")

	facade, _, _ := newTestFacade(testhelpers.NewOrderRepositoryStub(), session, healthStub{})

	orders, suggested := facade.Board("")
	if len(orders) != 2 || suggested != "003" {
		t.Fatalf("unexpected board: %d orders, suggested %q", len(orders), suggested)
	}

	orders, _ = facade.Board("acme")
	if len(orders) != 1 || orders[0].ID != "a" {
		t.Fatalf("unexpected filtered board %+v", orders)
	}
}

func TestBoardFacadeRegisterInteractionArmsNotifier(t *testing.T) {
	facade, notifier, _ := newTestFacade(testhelpers.NewOrderRepositoryStub(), board.NewSession(), healthStub{})

	if notifier.Armed() {
		t.Fatal("notifier should start unarmed")
	}
	facade.RegisterInteraction()
	if !notifier.Armed() {
		t.Fatal("expected interaction to arm notifier")
	}
}

func TestBoardFacadeImportCountsOrders(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	facade, _, registry := newTestFacade(repo, board.NewSession(), healthStub{})

	payload := []byte(`[{"orderNumber":"001","customer":"Acme","product":"Flyers","state":"Design"}]`)
	result, err := facade.ImportOrders(context.Background(), payload, model.ImportModeMerge)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("expected 1 imported, got %d", result.Imported)
	}
	if got := testutil.ToFloat64(registry.ImportedOrders); got != 1 {
		t.Fatalf("expected imported counter 1, got %v", got)
	}
}

func TestBoardFacadeImportErrorLeavesCounter(t *testing.T) {
	facade, _, registry := newTestFacade(testhelpers.NewOrderRepositoryStub(), board.NewSession(), healthStub{})

	if _, err := facade.ImportOrders(context.Background(), []byte("{"), model.ImportModeMerge); err == nil {
		t.Fatal("expected malformed payload error")
	}
	if got := testutil.ToFloat64(registry.ImportedOrders); got != 0 {
		t.Fatalf("expected imported counter 0, got %v", got)
	}
}

func TestBoardFacadeHealthCheck(t *testing.T) {
	facade, _, _ := newTestFacade(testhelpers.NewOrderRepositoryStub(), board.NewSession(), healthStub{err: errors.New("down")})
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check failure")
	}
}
