package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/server/http/dto"
	"github.com/uragrafica/printflow/internal/stream"
	testhelpers "github.com/uragrafica/printflow/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrMissingField, http.StatusBadRequest},
		{domainErrors.ErrInvalidState, http.StatusUnprocessableEntity},
		{domainErrors.ErrMalformedImport, http.StatusBadRequest},
		{domainErrors.ErrConfirmationRequired, http.StatusPreconditionRequired},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := statusFromError(tc.err); got != tc.status {
			t.Fatalf("statusFromError(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestBoardHandlerView(t *testing.T) {
	now := time.Unix(1700000000, 0)
	facade := &testhelpers.BoardFacadeStub{
		BoardFn: func(query string) ([]model.Order, string) {
			return []model.Order{
				{ID: "a", Number: "002", Customer: "Acme", Product: "Flyers", State: model.StateProduction, CreatedAt: now, UpdatedAt: now},
				{ID: "b", Number: "001", Customer: "Ajax", Product: "Cards", State: model.StateDesign, CreatedAt: now, UpdatedAt: now},
			}, "003"
		},
	}

	resp := performRequest(t, http.MethodGet, "/board", "/board", NewBoardHandler(facade).View, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var board dto.BoardResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	if len(board.Columns) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(board.Columns))
	}
	if board.SuggestedNumber != "003" {
		t.Fatalf("unexpected suggested number %q", board.SuggestedNumber)
	}
	if board.Total != 2 {
		t.Fatalf("expected total 2, got %d", board.Total)
	}

	design := board.Columns[0]
	if design.State != "Design" || design.Count != 1 || design.Progress != 20 {
		t.Fatalf("unexpected design column %+v", design)
	}
	if design.Orders[0].OrderNumber != "001" {
		t.Fatalf("unexpected order in design column %+v", design.Orders[0])
	}
	production := board.Columns[1]
	if production.Count != 1 || production.Orders[0].Progress != 40 {
		t.Fatalf("unexpected production column %+v", production)
	}
	for _, col := range board.Columns[2:] {
		if col.Count != 0 || col.Orders == nil {
			t.Fatalf("expected empty slice column, got %+v", col)
		}
	}
}

func TestBoardHandlerViewPassesQuery(t *testing.T) {
	var gotQuery string
	facade := &testhelpers.BoardFacadeStub{
		BoardFn: func(query string) ([]model.Order, string) {
			gotQuery = query
			return nil, "001"
		},
	}
	resp := performRequest(t, http.MethodGet, "/board", "/board?q=acme", NewBoardHandler(facade).View, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotQuery != "acme" {
		t.Fatalf("expected query to reach facade, got %q", gotQuery)
	}
}

func TestBoardHandlerClear(t *testing.T) {
	var gotConfirmed bool
	facade := &testhelpers.BoardFacadeStub{
		ClearBoardFn: func(ctx context.Context, confirmed bool) error {
			gotConfirmed = confirmed
			if !confirmed {
				return domainErrors.ErrConfirmationRequired
			}
			return nil
		},
	}
	handler := NewBoardHandler(facade)

	resp := performRequest(t, http.MethodPost, "/clear", "/clear", handler.Clear, nil)
	if resp.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected status 428 without confirmation, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/clear", "/clear?confirm=true", handler.Clear, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if !gotConfirmed {
		t.Fatal("expected confirmation to reach facade")
	}
	if facade.Interactions() != 2 {
		t.Fatalf("expected 2 interactions, got %d", facade.Interactions())
	}
}

func TestBoardHandlerInteraction(t *testing.T) {
	facade := &testhelpers.BoardFacadeStub{}
	resp := performRequest(t, http.MethodPost, "/interaction", "/interaction", NewBoardHandler(facade).Interaction, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if facade.Interactions() != 1 {
		t.Fatalf("expected 1 interaction, got %d", facade.Interactions())
	}
}

func TestBoardHandlerPing(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/ping", "/ping", NewBoardHandler(&testhelpers.BoardFacadeStub{}).Ping, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	failing := &testhelpers.BoardFacadeStub{HealthCheckFn: func(context.Context) error { return errors.New("down") }}
	resp = performRequest(t, http.MethodGet, "/ping", "/ping", NewBoardHandler(failing).Ping, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	var gotDraft model.OrderDraft
	facade := &testhelpers.BoardFacadeStub{
		CreateOrderFn: func(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
			gotDraft = draft
			return &model.Order{ID: "new-id", Number: draft.Number, Customer: draft.Customer, Product: draft.Product, State: model.StateDesign}, nil
		},
	}

	body, _ := json.Marshal(dto.CreateOrderRequest{OrderNumber: "007", Customer: "Acme", Product: "Posters", State: "Design"})
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotDraft.Number != "007" || gotDraft.Customer != "Acme" || gotDraft.State != model.StateDesign {
		t.Fatalf("unexpected draft %+v", gotDraft)
	}

	var created dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if created.ID != "new-id" || created.Progress != 20 {
		t.Fatalf("unexpected response %+v", created)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{"invalid json", []byte("{"), nil, http.StatusBadRequest},
		{"missing field", []byte(`{"customer":"Acme"}`), domainErrors.ErrMissingField, http.StatusBadRequest},
		{"invalid state", []byte(`{"orderNumber":"001","customer":"A","product":"B","state":"Shipped"}`), domainErrors.ErrInvalidState, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := &testhelpers.BoardFacadeStub{
				CreateOrderFn: func(context.Context, model.OrderDraft) (*model.Order, error) {
					return nil, tc.err
				},
			}
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerMove(t *testing.T) {
	var gotID string
	var gotDir int
	facade := &testhelpers.BoardFacadeStub{
		MoveOrderFn: func(ctx context.Context, id string, dir int) (*model.Order, error) {
			gotID, gotDir = id, dir
			return &model.Order{ID: id, State: model.StateFinishing}, nil
		},
	}
	handler := NewOrderHandler(facade)

	body, _ := json.Marshal(dto.MoveOrderRequest{Direction: "right"})
	resp := performRequest(t, http.MethodPost, "/orders/:id/move", "/orders/abc/move", handler.Move, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotID != "abc" || gotDir != 1 {
		t.Fatalf("unexpected move target %q dir %d", gotID, gotDir)
	}

	body, _ = json.Marshal(dto.MoveOrderRequest{Direction: "left"})
	resp = performRequest(t, http.MethodPost, "/orders/:id/move", "/orders/abc/move", handler.Move, body)
	if resp.Code != http.StatusOK || gotDir != -1 {
		t.Fatalf("expected left move, got status %d dir %d", resp.Code, gotDir)
	}

	body, _ = json.Marshal(dto.MoveOrderRequest{Direction: "up"})
	resp = performRequest(t, http.MethodPost, "/orders/:id/move", "/orders/abc/move", handler.Move, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown direction, got %d", resp.Code)
	}
}

func TestOrderHandlerMoveNotFound(t *testing.T) {
	facade := &testhelpers.BoardFacadeStub{
		MoveOrderFn: func(context.Context, string, int) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		},
	}
	body, _ := json.Marshal(dto.MoveOrderRequest{Direction: "right"})
	resp := performRequest(t, http.MethodPost, "/orders/:id/move", "/orders/missing/move", NewOrderHandler(facade).Move, body)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerSetState(t *testing.T) {
	var gotState model.WorkflowState
	facade := &testhelpers.BoardFacadeStub{
		SetOrderStateFn: func(ctx context.Context, id string, state model.WorkflowState) (*model.Order, error) {
			gotState = state
			return &model.Order{ID: id, State: state}, nil
		},
	}
	body, _ := json.Marshal(dto.SetStateRequest{State: "Delivered"})
	resp := performRequest(t, http.MethodPut, "/orders/:id/state", "/orders/abc/state", NewOrderHandler(facade).SetState, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotState != model.StateDelivered {
		t.Fatalf("unexpected state %q", gotState)
	}
}

func TestOrderHandlerEdit(t *testing.T) {
	var gotPatch model.OrderPatch
	facade := &testhelpers.BoardFacadeStub{
		EditOrderFn: func(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
			gotPatch = patch
			return &model.Order{ID: id, State: model.StateDesign}, nil
		},
	}

	customer := "New Customer"
	state := "Production"
	body, _ := json.Marshal(dto.UpdateOrderRequest{Customer: &customer, State: &state})
	resp := performRequest(t, http.MethodPatch, "/orders/:id", "/orders/abc", NewOrderHandler(facade).Edit, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotPatch.Customer == nil || *gotPatch.Customer != customer {
		t.Fatalf("expected customer in patch, got %+v", gotPatch)
	}
	if gotPatch.State == nil || *gotPatch.State != model.StateProduction {
		t.Fatalf("expected state in patch, got %+v", gotPatch)
	}
	if gotPatch.Number != nil || gotPatch.Product != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", gotPatch)
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	var gotConfirmed bool
	facade := &testhelpers.BoardFacadeStub{
		DeleteOrderFn: func(ctx context.Context, id string, confirmed bool) error {
			gotConfirmed = confirmed
			if !confirmed {
				return domainErrors.ErrConfirmationRequired
			}
			return nil
		},
	}
	handler := NewOrderHandler(facade)

	resp := performRequest(t, http.MethodDelete, "/orders/:id", "/orders/abc", handler.Delete, nil)
	if resp.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected status 428 without confirmation, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/abc?confirm=true", handler.Delete, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if !gotConfirmed {
		t.Fatal("expected confirmation to reach facade")
	}
}

func TestTransferHandlerExport(t *testing.T) {
	facade := &testhelpers.BoardFacadeStub{
		ExportBoardFn: func() ([]byte, error) { return []byte("[\n  {}\n]"), nil },
	}
	resp := performRequest(t, http.MethodGet, "/export", "/export", NewTransferHandler(facade).Export, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "board-export.json") {
		t.Fatalf("expected attachment header, got %q", resp.Header().Get("Content-Disposition"))
	}
	if resp.Body.String() != "[\n  {}\n]" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestTransferHandlerImport(t *testing.T) {
	var gotMode model.ImportMode
	var gotPayload []byte
	facade := &testhelpers.BoardFacadeStub{
		ImportOrdersFn: func(ctx context.Context, payload []byte, mode model.ImportMode) (*model.ImportResult, error) {
			gotMode, gotPayload = mode, payload
			return &model.ImportResult{Mode: mode, Imported: 3}, nil
		},
	}
	handler := NewTransferHandler(facade)

	resp := performRequest(t, http.MethodPost, "/import", "/import", handler.Import, []byte("[]"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotMode != model.ImportModeMerge {
		t.Fatalf("expected default merge mode, got %q", gotMode)
	}
	if string(gotPayload) != "[]" {
		t.Fatalf("unexpected payload %q", gotPayload)
	}

	var result dto.ImportResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Imported != 3 || result.Mode != "merge" {
		t.Fatalf("unexpected result %+v", result)
	}

	resp = performRequest(t, http.MethodPost, "/import", "/import?mode=store", handler.Import, []byte("[]"))
	if resp.Code != http.StatusOK || gotMode != model.ImportModeStore {
		t.Fatalf("expected store mode, got status %d mode %q", resp.Code, gotMode)
	}
}

func TestTransferHandlerImportMalformed(t *testing.T) {
	facade := &testhelpers.BoardFacadeStub{
		ImportOrdersFn: func(context.Context, []byte, model.ImportMode) (*model.ImportResult, error) {
			return nil, domainErrors.ErrMalformedImport
		},
	}
	resp := performRequest(t, http.MethodPost, "/import", "/import", NewTransferHandler(facade).Import, []byte("not json"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestEventsHandlerSubscribe(t *testing.T) {
	broadcaster := stream.New()
	handler := NewEventsHandler(broadcaster)

	router := gin.New()
	router.GET("/events", handler.Subscribe)

	// c.Stream needs a real ResponseWriter, a bare recorder cannot
	// signal client disconnects
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open event stream: %v", err)
	}
	defer resp.Body.Close()

	deadline := time.After(2 * time.Second)
	for broadcaster.Subscribers() == 0 {
		select {
		case <-deadline:
			t.Fatal("subscriber never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	broadcaster.Publish(stream.Event{Type: stream.EventBoard, Payload: stream.BoardPayload{Total: 1}})

	abort := time.AfterFunc(2*time.Second, cancel)
	defer abort.Stop()

	reader := bufio.NewReader(resp.Body)
	found := false
	for !found {
		line, err := reader.ReadString('\n')
		if strings.Contains(line, "event:board") {
			found = true
			break
		}
		if err != nil {
			break
		}
	}
	if !found {
		t.Fatal("board event never arrived on the stream")
	}

	cancel()
	deadline = time.After(2 * time.Second)
	for broadcaster.Subscribers() != 0 {
		select {
		case <-deadline:
			t.Fatalf("expected subscriber released, got %d", broadcaster.Subscribers())
		case <-time.After(5 * time.Millisecond):
		}
	}
}
