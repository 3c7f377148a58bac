package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/uragrafica/printflow/internal/config"
	"github.com/uragrafica/printflow/internal/domain/repository"
	"github.com/uragrafica/printflow/internal/feed"
)

// Module wires PostgreSQL storage, the order repository, and the snapshot feed.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		newFeed,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func newFeed(storage *Storage, cfg *config.Config, logger *slog.Logger) feed.Source {
	return NewFeed(storage, cfg.FeedPollInterval, logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
