package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
)

// OrderRepositoryStub keeps orders in memory for tests. Individual methods
// can be overridden through the Fn fields; the Err field makes every call
// fail.
type OrderRepositoryStub struct {
	mu   sync.Mutex
	list []model.Order
	seq  int

	Err      error
	CreateFn func(context.Context, model.OrderDraft) (*model.Order, error)
	UpdateFn func(context.Context, string, model.OrderPatch) (*model.Order, error)
	DeleteFn func(context.Context, string) error
	UpsertFn func(context.Context, []model.Order) error

	// Updates records every patch applied through Update, oldest first.
	Updates []model.OrderPatch
}

// NewOrderRepositoryStub constructs an empty stub repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{}
}

// Seed replaces the stored set, newest first.
func (s *OrderRepositoryStub) Seed(orders ...model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append([]model.Order(nil), orders...)
}

func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now()
	order := model.Order{
		ID:        fmt.Sprintf("stub-%d", s.seq),
		Number:    draft.Number,
		Customer:  draft.Customer,
		Product:   draft.Product,
		State:     draft.State,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.list = append([]model.Order{order}, s.list...)
	return &order, nil
}

func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.list {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.list...), nil
}

func (s *OrderRepositoryStub) Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, patch)
	for i := range s.list {
		if s.list[i].ID != id {
			continue
		}
		if patch.Number != nil {
			s.list[i].Number = *patch.Number
		}
		if patch.Customer != nil {
			s.list[i].Customer = *patch.Customer
		}
		if patch.Product != nil {
			s.list[i].Product = *patch.Product
		}
		if patch.State != nil {
			s.list[i].State = *patch.State
		}
		s.list[i].UpdatedAt = time.Now()
		out := s.list[i]
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) DeleteAll(ctx context.Context) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	return nil
}

func (s *OrderRepositoryStub) Upsert(ctx context.Context, orders []model.Order) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, orders)
	}
	if s.Err != nil {
		return s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		replaced := false
		for i := range s.list {
			if s.list[i].ID == o.ID {
				s.list[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			s.list = append([]model.Order{o}, s.list...)
		}
	}
	return nil
}
