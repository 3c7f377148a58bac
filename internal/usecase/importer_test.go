package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/uragrafica/printflow/internal/board"
	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
	testhelpers "github.com/uragrafica/printflow/internal/test"
)

func newImportUseCase(t *testing.T, orders ...model.Order) (*ImportUseCase, *testhelpers.OrderRepositoryStub) {
	t.Helper()
	repo := testhelpers.NewOrderRepositoryStub()
	repo.Seed(orders...)
	session := board.NewSession()
	session.Replace(orders, NextNumber(orders))
	return NewImportUseCase(repo, session), repo
}

func TestImportRejectsMalformedPayloadAtomically(t *testing.T) {
	uc, repo := newImportUseCase(t)

	for _, payload := range []string{
		`{"orderNumber":"001"}`, // object, not array
		`[{"orderNumber":`,      // truncated
		`"just a string"`,
		`[1,2,3]`, // array of non-objects
		`null`,    // decodes without error but is not an array
		"  \n null",
		``,
	} {
		_, err := uc.Import(context.Background(), []byte(payload), model.ImportModeMerge)
		if !errors.Is(err, domainErrors.ErrMalformedImport) {
			t.Fatalf("payload %q: expected ErrMalformedImport, got %v", payload, err)
		}
	}

	if orders, _ := repo.List(context.Background()); len(orders) != 0 {
		t.Fatalf("malformed input must not create records, got %d", len(orders))
	}
}

func TestImportRejectsUnknownMode(t *testing.T) {
	uc, _ := newImportUseCase(t)
	if _, err := uc.Import(context.Background(), []byte(`[]`), model.ImportMode("zip")); !errors.Is(err, domainErrors.ErrMalformedImport) {
		t.Fatalf("expected ErrMalformedImport, got %v", err)
	}
}

func TestMergeImportCandidatesWinByIdentifier(t *testing.T) {
	existing := model.Order{ID: "A", Number: "001", Customer: "Old", Product: "Flyers", State: model.StateDesign}
	uc, repo := newImportUseCase(t, existing)

	payload := []byte(`[{"id":"A","orderNumber":"001","customer":"X","product":"Flyers","state":"Design"}]`)
	result, err := uc.Import(context.Background(), payload, model.ImportModeMerge)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 1 || result.Mode != model.ImportModeMerge {
		t.Fatalf("unexpected result %+v", result)
	}

	stored, err := repo.Get(context.Background(), "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Customer != "X" {
		t.Fatalf("candidate must win on conflict, got %q", stored.Customer)
	}
	if orders, _ := repo.List(context.Background()); len(orders) != 1 {
		t.Fatalf("merge must not duplicate identifiers, got %d records", len(orders))
	}
}

func TestMergeImportIsIdempotent(t *testing.T) {
	uc, repo := newImportUseCase(t)
	payload := []byte(`[{"id":"A","customer":"X","product":"P"},{"id":"B","customer":"Y","product":"Q"}]`)

	for i := 0; i < 2; i++ {
		if _, err := uc.Import(context.Background(), payload, model.ImportModeMerge); err != nil {
			t.Fatalf("import %d failed: %v", i, err)
		}
	}

	orders, _ := repo.List(context.Background())
	if len(orders) != 2 {
		t.Fatalf("re-importing the same file must not duplicate, got %d records", len(orders))
	}
}

func TestMergeImportGeneratesMissingIdentifiers(t *testing.T) {
	uc, repo := newImportUseCase(t)
	payload := []byte(`[{"customer":"X","product":"P"}]`)

	if _, err := uc.Import(context.Background(), payload, model.ImportModeMerge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, _ := repo.List(context.Background())
	if len(orders) != 1 || orders[0].ID == "" {
		t.Fatalf("expected generated identifier, got %+v", orders)
	}
}

func TestMergeImportNormalizesInvalidState(t *testing.T) {
	uc, repo := newImportUseCase(t)
	payload := []byte(`[{"id":"A","customer":"X","product":"P","state":"Bogus"}]`)

	if _, err := uc.Import(context.Background(), payload, model.ImportModeMerge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.Get(context.Background(), "A")
	if stored.State != model.StateDesign {
		t.Fatalf("invalid state must collapse to the first workflow state, got %q", stored.State)
	}
}

func TestMergeImportAcceptsLegacyAliases(t *testing.T) {
	uc, repo := newImportUseCase(t)
	payload := []byte(`[{"id":"A","orden":"012","cliente":"Acme","producto":"Tarjetas","estado":"Production"}]`)

	if _, err := uc.Import(context.Background(), payload, model.ImportModeMerge); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := repo.Get(context.Background(), "A")
	if stored.Number != "012" || stored.Customer != "Acme" || stored.Product != "Tarjetas" {
		t.Fatalf("legacy aliases must be honored, got %+v", stored)
	}
	if stored.State != model.StateProduction {
		t.Fatalf("unexpected state %q", stored.State)
	}
}

func TestStoreImportNeverDeduplicates(t *testing.T) {
	uc, repo := newImportUseCase(t)
	payload := []byte(`[{"id":"A","customer":"X","product":"P","orderNumber":"001"},{"id":"B","customer":"Y","product":"Q","orderNumber":"002"}]`)

	for i := 0; i < 2; i++ {
		result, err := uc.Import(context.Background(), payload, model.ImportModeStore)
		if err != nil {
			t.Fatalf("import %d failed: %v", i, err)
		}
		if result.Imported != 2 {
			t.Fatalf("expected 2 imports, got %d", result.Imported)
		}
	}

	orders, _ := repo.List(context.Background())
	if len(orders) != 4 {
		t.Fatalf("store mode must duplicate on re-import, got %d records", len(orders))
	}
}

func TestStoreImportFillsMissingNumbersSequentially(t *testing.T) {
	existing := model.Order{ID: "seed", Number: "007", Customer: "Acme", Product: "Flyers", State: model.StateDesign}
	uc, repo := newImportUseCase(t, existing)
	payload := []byte(`[{"customer":"X","product":"P"},{"customer":"Y","product":"Q"}]`)

	if _, err := uc.Import(context.Background(), payload, model.ImportModeStore); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders, _ := repo.List(context.Background())
	numbers := make(map[string]bool)
	for _, o := range orders {
		numbers[o.Number] = true
	}
	if !numbers["008"] || !numbers["009"] {
		t.Fatalf("expected sequential numbers 008 and 009, got %v", numbers)
	}
}

func TestStoreImportCopiesFieldsVerbatim(t *testing.T) {
	uc, repo := newImportUseCase(t)
	payload := []byte(`[{"customer":"Acme","product":"Posters","state":"Bogus","orderNumber":"030"}]`)

	if _, err := uc.Import(context.Background(), payload, model.ImportModeStore); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orders, _ := repo.List(context.Background())
	if len(orders) != 1 {
		t.Fatalf("expected one record, got %d", len(orders))
	}
	o := orders[0]
	if o.Customer != "Acme" || o.Product != "Posters" || o.Number != "030" {
		t.Fatalf("unexpected record %+v", o)
	}
	if o.State != model.StateDesign {
		t.Fatalf("unrecognized state must become the first workflow state, got %q", o.State)
	}
}
