package feed

import (
	"context"

	"github.com/uragrafica/printflow/internal/domain/model"
)

// Source yields full board snapshots whenever the backing store changes.
// Consumers must treat every snapshot as a complete replacement of the
// working set; there is no incremental form. Implementations may coalesce
// bursts of changes into a single snapshot.
type Source interface {
	// Run blocks producing snapshots until ctx is cancelled.
	Run(ctx context.Context) error
	// Snapshots returns the channel snapshots are delivered on. The channel
	// is closed when Run returns.
	Snapshots() <-chan []model.Order
}
