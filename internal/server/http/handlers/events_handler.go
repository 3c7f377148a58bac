package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/uragrafica/printflow/internal/stream"
)

// EventsHandler streams board and alert events to connected clients over
// server-sent events.
type EventsHandler struct {
	broadcaster *stream.Broadcaster
}

// NewEventsHandler constructs EventsHandler.
func NewEventsHandler(broadcaster *stream.Broadcaster) *EventsHandler {
	return &EventsHandler{broadcaster: broadcaster}
}

// Subscribe handles GET /api/events. The connection stays open until the
// client goes away; events the client cannot keep up with are dropped.
func (h *EventsHandler) Subscribe(c *gin.Context) {
	events, cancel := h.broadcaster.Subscribe()
	defer cancel()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event.Payload)
			return true
		}
	})
}
