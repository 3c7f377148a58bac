package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/uragrafica/printflow/internal/metrics"
	"github.com/uragrafica/printflow/internal/server/http/handlers"
	"github.com/uragrafica/printflow/internal/server/http/middleware"
	"github.com/uragrafica/printflow/internal/stream"
)

// Setup configures gin router with handlers and middleware. The event
// stream path is excluded from response compression: gzip buffers defeat
// server-sent events.
func Setup(facade handlers.BoardFacade, broadcaster *stream.Broadcaster, registry *metrics.Registry, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events"})))

	boardHandler := handlers.NewBoardHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	transferHandler := handlers.NewTransferHandler(facade)
	eventsHandler := handlers.NewEventsHandler(broadcaster)

	engine.GET("/ping", boardHandler.Ping)
	engine.GET("/metrics", gin.WrapH(registry.Handler()))

	api := engine.Group("/api")
	api.GET("/board", boardHandler.View)
	api.GET("/board/export", transferHandler.Export)
	api.GET("/board/migration", transferHandler.Migration)
	api.POST("/board/import", transferHandler.Import)
	api.POST("/board/clear", boardHandler.Clear)

	api.POST("/orders", orderHandler.Create)
	api.POST("/orders/:id/move", orderHandler.Move)
	api.PATCH("/orders/:id", orderHandler.Edit)
	api.PUT("/orders/:id/state", orderHandler.SetState)
	api.DELETE("/orders/:id", orderHandler.Delete)

	api.GET("/events", eventsHandler.Subscribe)
	api.POST("/session/interaction", boardHandler.Interaction)

	engine.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	return engine
}
