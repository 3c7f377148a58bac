package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/domain/repository"
)

// NotifyChannel is the Postgres notification channel every mutation pings so
// the snapshot feed can push a fresh board to its subscribers.
const NotifyChannel = "printflow_orders"

// Pool is the subset of pgxpool.Pool the storage layer uses, satisfied by
// pgxmock in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage is the order repository backed by PostgreSQL.
type Storage struct {
	pool   Pool
	raw    *pgxpool.Pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, raw: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            number TEXT NOT NULL,
            customer TEXT NOT NULL,
            product TEXT NOT NULL,
            state TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, number, customer, product, state, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.Customer, &o.Product, &o.State, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	const query = `INSERT INTO orders (number, customer, product, state) VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at, updated_at`
	order := model.Order{
		Number:   draft.Number,
		Customer: draft.Customer,
		Product:  draft.Product,
		State:    draft.State,
	}
	err := r.storage.pool.QueryRow(ctx, query, draft.Number, draft.Customer, draft.Product, draft.State).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.storage.notifyChanged(ctx)
	return &order, nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.Customer, &o.Product, &o.State, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	sets := []string{"updated_at=NOW()"}
	args := make([]any, 0, 5)
	idx := 1

	if patch.Number != nil {
		sets = append(sets, fmt.Sprintf("number=$%d", idx))
		args = append(args, *patch.Number)
		idx++
	}
	if patch.Customer != nil {
		sets = append(sets, fmt.Sprintf("customer=$%d", idx))
		args = append(args, *patch.Customer)
		idx++
	}
	if patch.Product != nil {
		sets = append(sets, fmt.Sprintf("product=$%d", idx))
		args = append(args, *patch.Product)
		idx++
	}
	if patch.State != nil {
		sets = append(sets, fmt.Sprintf("state=$%d", idx))
		args = append(args, *patch.State)
		idx++
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), idx, orderColumns)

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	r.storage.notifyChanged(ctx)
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	r.storage.notifyChanged(ctx)
	return nil
}

func (r *orderRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.storage.pool.Exec(ctx, `DELETE FROM orders`); err != nil {
		return err
	}
	r.storage.notifyChanged(ctx)
	return nil
}

func (r *orderRepository) Upsert(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	const query = `INSERT INTO orders (id, number, customer, product, state, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (id) DO UPDATE
                   SET number = EXCLUDED.number,
                       customer = EXCLUDED.customer,
                       product = EXCLUDED.product,
                       state = EXCLUDED.state,
                       updated_at = NOW()`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, o := range orders {
			if _, err := tx.Exec(ctx, query, o.ID, o.Number, o.Customer, o.Product, o.State, o.CreatedAt, o.UpdatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.storage.notifyChanged(ctx)
	return nil
}

// notifyChanged pings the snapshot feed. Best effort: a missed ping is
// recovered by the feed's poll fallback.
func (s *Storage) notifyChanged(ctx context.Context) {
	if _, err := s.pool.Exec(ctx, `SELECT pg_notify($1, '')`, NotifyChannel); err != nil && ctx.Err() == nil {
		s.logger.Warn("notify board change failed", slog.String("error", err.Error()))
	}
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
