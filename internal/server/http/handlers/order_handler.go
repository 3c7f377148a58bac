package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/server/http/dto"
)

// OrderHandler manages single-order endpoints.
type OrderHandler struct {
	facade BoardFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade BoardFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	h.facade.RegisterInteraction()

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), model.OrderDraft{
		Number:   req.OrderNumber,
		Customer: req.Customer,
		Product:  req.Product,
		State:    model.WorkflowState(req.State),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Move handles POST /api/orders/:id/move. Direction is "left" or "right";
// a move past either end of the workflow leaves the order where it is.
func (h *OrderHandler) Move(c *gin.Context) {
	h.facade.RegisterInteraction()

	var req dto.MoveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var dir int
	switch req.Direction {
	case "left":
		dir = -1
	case "right":
		dir = 1
	default:
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.MoveOrder(c.Request.Context(), c.Param("id"), dir)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// SetState handles PUT /api/orders/:id/state.
func (h *OrderHandler) SetState(c *gin.Context) {
	h.facade.RegisterInteraction()

	var req dto.SetStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.SetOrderState(c.Request.Context(), c.Param("id"), model.WorkflowState(req.State))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Edit handles PATCH /api/orders/:id. Absent fields stay untouched.
func (h *OrderHandler) Edit(c *gin.Context) {
	h.facade.RegisterInteraction()

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	patch := model.OrderPatch{
		Number:   req.OrderNumber,
		Customer: req.Customer,
		Product:  req.Product,
	}
	if req.State != nil {
		state := model.WorkflowState(*req.State)
		patch.State = &state
	}

	order, err := h.facade.EditOrder(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id. Requires confirm=true.
func (h *OrderHandler) Delete(c *gin.Context) {
	h.facade.RegisterInteraction()

	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
