package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// Feed pushes full board snapshots whenever the orders table changes. It
// listens on NotifyChannel and additionally refreshes every pollInterval so
// a missed notification cannot strand a stale board.
type Feed struct {
	storage      *Storage
	pollInterval time.Duration
	logger       *slog.Logger
	snapshots    chan []model.Order
}

// NewFeed constructs the snapshot feed.
func NewFeed(storage *Storage, pollInterval time.Duration, logger *slog.Logger) *Feed {
	return &Feed{
		storage:      storage,
		pollInterval: pollInterval,
		logger:       logger,
		snapshots:    make(chan []model.Order, 1),
	}
}

// Snapshots returns the delivery channel. Closed when Run returns.
func (f *Feed) Snapshots() <-chan []model.Order {
	return f.snapshots
}

// Run produces snapshots until ctx is cancelled. An initial snapshot is
// emitted immediately so consumers start from current state.
func (f *Feed) Run(ctx context.Context) error {
	defer close(f.snapshots)

	f.publish(ctx)

	if f.storage.raw == nil {
		return f.pollLoop(ctx)
	}

	for {
		err := f.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.logger.Warn("board feed listener interrupted", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.pollInterval):
		}
		f.publish(ctx)
	}
}

func (f *Feed) listen(ctx context.Context) error {
	conn, err := f.storage.raw.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `LISTEN `+NotifyChannel); err != nil {
		return err
	}

	for {
		waitCtx, cancel := context.WithTimeout(ctx, f.pollInterval)
		_, err := conn.Conn().WaitForNotification(waitCtx)
		cancel()

		switch {
		case err == nil:
			// a change was announced
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			// quiet period, refresh anyway
		default:
			return err
		}

		f.publish(ctx)
	}
}

func (f *Feed) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			f.publish(ctx)
		}
	}
}

func (f *Feed) publish(ctx context.Context) {
	orders, err := f.storage.Orders().List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			f.logger.Error("load board snapshot failed", slog.String("error", err.Error()))
		}
		return
	}

	// Never block the feed loop: when the consumer is busy, the pending
	// snapshot is replaced with the fresher one.
	for {
		select {
		case f.snapshots <- orders:
			return
		default:
			select {
			case <-f.snapshots:
			default:
			}
		}
	}
}
