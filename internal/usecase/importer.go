package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uragrafica/printflow/internal/board"
	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/domain/repository"
)

// TransferRecord is the wire shape shared by export, migration and import.
// Import additionally accepts the legacy field aliases of the original
// deployment (orden/cliente/producto/estado).
type TransferRecord struct {
	ID       string `json:"id,omitempty"`
	Number   string `json:"orderNumber"`
	Customer string `json:"customer"`
	Product  string `json:"product"`
	State    string `json:"state"`

	LegacyNumber   string `json:"orden,omitempty"`
	LegacyCustomer string `json:"cliente,omitempty"`
	LegacyProduct  string `json:"producto,omitempty"`
	LegacyState    string `json:"estado,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

func transferRecordsFrom(orders []model.Order) []TransferRecord {
	out := make([]TransferRecord, 0, len(orders))
	for _, o := range orders {
		out = append(out, TransferRecord{
			ID:        o.ID,
			Number:    o.Number,
			Customer:  o.Customer,
			Product:   o.Product,
			State:     string(o.State),
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}
	return out
}

func coalesce(primary, legacy string) string {
	if primary != "" {
		return primary
	}
	return legacy
}

// toOrder normalizes a candidate: legacy aliases are folded in, text fields
// trimmed, an unrecognized state is substituted by the first workflow state,
// and missing timestamps default to now.
func (r TransferRecord) toOrder(now time.Time) model.Order {
	o := model.Order{
		ID:        r.ID,
		Number:    strings.TrimSpace(coalesce(r.Number, r.LegacyNumber)),
		Customer:  strings.TrimSpace(coalesce(r.Customer, r.LegacyCustomer)),
		Product:   strings.TrimSpace(coalesce(r.Product, r.LegacyProduct)),
		State:     model.Normalize(model.WorkflowState(coalesce(r.State, r.LegacyState))),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = now
	}
	return o
}

// ImportUseCase merges externally supplied record sets into the store.
type ImportUseCase struct {
	orders  repository.OrderRepository
	session *board.Session
}

// NewImportUseCase constructs ImportUseCase.
func NewImportUseCase(orders repository.OrderRepository, session *board.Session) *ImportUseCase {
	return &ImportUseCase{orders: orders, session: session}
}

// ParseCandidates decodes an import payload. The whole payload is validated
// before anything is mutated: a malformed payload (invalid JSON, non-array
// top level, non-object elements) fails the import atomically. A bare
// `null`, which json.Unmarshal would silently accept as an empty slice, is
// rejected like any other non-array value.
func ParseCandidates(payload []byte) ([]TransferRecord, error) {
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value is not an array", domainErrors.ErrMalformedImport)
	}
	var records []TransferRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrMalformedImport, err)
	}
	return records, nil
}

// Import reconciles the candidates with the store using the given mode.
func (u *ImportUseCase) Import(ctx context.Context, payload []byte, mode model.ImportMode) (*model.ImportResult, error) {
	candidates, err := ParseCandidates(payload)
	if err != nil {
		return nil, err
	}

	switch mode {
	case model.ImportModeMerge:
		return u.merge(ctx, candidates)
	case model.ImportModeStore:
		return u.store(ctx, candidates)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", domainErrors.ErrMalformedImport, mode)
	}
}

// merge builds the union of the current set and the candidates keyed by
// identifier. Candidates win on conflict; a candidate without an identifier
// gets a freshly generated one, so it can never collide.
func (u *ImportUseCase) merge(ctx context.Context, candidates []TransferRecord) (*model.ImportResult, error) {
	now := time.Now()
	merged := make([]model.Order, 0, len(candidates))
	for _, c := range candidates {
		o := c.toOrder(now)
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		merged = append(merged, o)
	}

	if err := u.orders.Upsert(ctx, merged); err != nil {
		return nil, fmt.Errorf("merge import: %w", err)
	}
	return &model.ImportResult{Mode: model.ImportModeMerge, Imported: len(merged)}, nil
}

// store creates an independent new record per candidate. Customer and
// product are copied verbatim, a missing order number is filled from the
// auto-numbering sequence, and the store assigns fresh identifiers and
// timestamps.
func (u *ImportUseCase) store(ctx context.Context, candidates []TransferRecord) (*model.ImportResult, error) {
	working := u.session.Orders()
	created := 0

	for _, c := range candidates {
		o := c.toOrder(time.Now())
		if o.Number == "" {
			o.Number = NextNumber(working)
		}

		inserted, err := u.orders.Create(ctx, model.OrderDraft{
			Number:   o.Number,
			Customer: o.Customer,
			Product:  o.Product,
			State:    o.State,
		})
		if err != nil {
			return nil, fmt.Errorf("store import after %d records: %w", created, err)
		}
		created++
		// keep the numbering sequence advancing within this import
		working = append(working, *inserted)
	}

	return &model.ImportResult{Mode: model.ImportModeStore, Imported: created}, nil
}
