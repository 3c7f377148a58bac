package di

import (
	"go.uber.org/fx"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/app"
	"github.com/uragrafica/printflow/internal/board"
	"github.com/uragrafica/printflow/internal/config"
	"github.com/uragrafica/printflow/internal/logger"
	"github.com/uragrafica/printflow/internal/metrics"
	"github.com/uragrafica/printflow/internal/server/http/handlers"
	"github.com/uragrafica/printflow/internal/server/http/router"
	"github.com/uragrafica/printflow/internal/storage/postgres"
	"github.com/uragrafica/printflow/internal/stream"
	"github.com/uragrafica/printflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		postgres.Module,
		stream.Module,
		alert.Module,
		board.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.BoardFacade) handlers.BoardFacade { return f },
			func(n *alert.ChimeNotifier) alert.Notifier { return n },
			func(s *postgres.Storage) app.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
