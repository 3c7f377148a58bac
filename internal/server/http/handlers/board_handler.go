package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BoardHandler manages board-level endpoints.
type BoardHandler struct {
	facade BoardFacade
}

// NewBoardHandler constructs BoardHandler.
func NewBoardHandler(facade BoardFacade) *BoardHandler {
	return &BoardHandler{facade: facade}
}

// View handles GET /api/board. An optional q parameter narrows the board to
// orders whose number, customer or product contains the query.
func (h *BoardHandler) View(c *gin.Context) {
	orders, suggested := h.facade.Board(c.Query("q"))
	c.JSON(http.StatusOK, toBoardResponse(orders, suggested))
}

// Clear handles POST /api/board/clear. Requires confirm=true; the wipe is
// permanent and cannot be undone.
func (h *BoardHandler) Clear(c *gin.Context) {
	h.facade.RegisterInteraction()
	if err := h.facade.ClearBoard(c.Request.Context(), confirmed(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Interaction handles POST /api/session/interaction. Clients call it on the
// first user gesture so audible alerts may start playing.
func (h *BoardHandler) Interaction(c *gin.Context) {
	h.facade.RegisterInteraction()
	c.Status(http.StatusNoContent)
}

// Ping handles GET /ping.
func (h *BoardHandler) Ping(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
