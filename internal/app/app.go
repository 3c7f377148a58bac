package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/uragrafica/printflow/internal/alert"
	"github.com/uragrafica/printflow/internal/board"
	"github.com/uragrafica/printflow/internal/config"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/feed"
	"github.com/uragrafica/printflow/internal/stream"
	"github.com/uragrafica/printflow/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewBoardFacade,
		newChimeNotifier,
		newBoardPublisher,
		newHTTPServer,
		newBoardWatcher,
	),
	fx.Invoke(registerLifecycle),
)

// boardPublisher forwards applied snapshots to connected clients.
type boardPublisher struct {
	broadcaster *stream.Broadcaster
}

func (p *boardPublisher) BoardChanged(orders []model.Order) {
	p.broadcaster.Publish(stream.Event{Type: stream.EventBoard, Payload: stream.NewBoardPayload(orders)})
}

func newBoardPublisher(broadcaster *stream.Broadcaster) board.Publisher {
	return &boardPublisher{broadcaster: broadcaster}
}

// chimeSink forwards delivered chimes to connected clients.
type chimeSink struct {
	broadcaster *stream.Broadcaster
}

func (s *chimeSink) Chime(o model.Order, tones []alert.Tone) {
	s.broadcaster.Publish(stream.Event{Type: stream.EventAlert, Payload: stream.NewAlertPayload(o, tones)})
}

func newChimeNotifier(broadcaster *stream.Broadcaster, logger *slog.Logger) *alert.ChimeNotifier {
	return alert.NewChimeNotifier(&chimeSink{broadcaster: broadcaster}, logger)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type watcherParams struct {
	fx.In

	Source       feed.Source
	Synchronizer *board.Synchronizer
	Logger       *slog.Logger
}

func newBoardWatcher(p watcherParams) *worker.BoardWatcher {
	return worker.NewBoardWatcher(p.Source, p.Synchronizer, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Ctx        context.Context
	Logger     *slog.Logger
	Server     *http.Server
	Watcher    *worker.BoardWatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting printflow", slog.String("addr", p.Server.Addr))
			// the start ctx dies once startup completes; the watcher
			// outlives it on the application context
			p.Watcher.Start(p.Ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Watcher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("printflow stopped")
			return nil
		},
	})
}
