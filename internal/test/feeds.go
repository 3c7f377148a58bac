package test

import (
	"context"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// FeedStub replays canned snapshots, standing in for the realtime store
// feed. Run delivers every queued snapshot and then blocks until the
// context is cancelled.
type FeedStub struct {
	Queue [][]model.Order
	ch    chan []model.Order
}

// NewFeedStub constructs a feed that will deliver the given snapshots.
func NewFeedStub(snapshots ...[]model.Order) *FeedStub {
	return &FeedStub{Queue: snapshots, ch: make(chan []model.Order)}
}

func (f *FeedStub) Run(ctx context.Context) error {
	defer close(f.ch)
	for _, snap := range f.Queue {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f.ch <- snap:
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *FeedStub) Snapshots() <-chan []model.Order {
	return f.ch
}
