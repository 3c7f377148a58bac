package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/uragrafica/printflow/internal/board"
	"github.com/uragrafica/printflow/internal/feed"
)

// BoardWatcher runs the snapshot feed and applies every pushed snapshot to
// the board session through the synchronizer.
type BoardWatcher struct {
	source feed.Source
	sync   *board.Synchronizer
	logger *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewBoardWatcher constructs the watcher.
func NewBoardWatcher(source feed.Source, synchronizer *board.Synchronizer, logger *slog.Logger) *BoardWatcher {
	return &BoardWatcher{source: source, sync: synchronizer, logger: logger}
}

// Start launches the feed and the snapshot consumer in the background.
func (w *BoardWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.source.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("snapshot feed terminated", slog.String("error", err.Error()))
		}
	}()

	w.wg.Add(1)
	go w.consume(runCtx)
}

// Stop waits for the feed and consumer to finish.
func (w *BoardWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *BoardWatcher) consume(ctx context.Context) {
	defer w.wg.Done()
	snapshots := w.source.Snapshots()
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			w.sync.Apply(ctx, snapshot)
		}
	}
}
