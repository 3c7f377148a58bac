package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/uragrafica/printflow/internal/domain/errors"
	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/server/http/dto"
)

// statusFromError maps domain failures onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrMissingField):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrMalformedImport):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFromError(err), dto.ErrorResponse{Error: err.Error()})
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:          order.ID,
		OrderNumber: order.Number,
		Customer:    order.Customer,
		Product:     order.Product,
		State:       string(order.State),
		Progress:    order.State.Progress(),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// toBoardResponse partitions orders into one column per workflow state,
// preserving the incoming (newest created first) order within each column.
func toBoardResponse(orders []model.Order, suggestedNumber string) dto.BoardResponse {
	states := model.States()
	columns := make([]dto.ColumnResponse, 0, len(states))
	byState := make(map[model.WorkflowState][]dto.OrderResponse, len(states))

	for _, o := range orders {
		byState[o.State] = append(byState[o.State], toOrderResponse(o))
	}

	for _, state := range states {
		cards := byState[state]
		if cards == nil {
			cards = []dto.OrderResponse{}
		}
		columns = append(columns, dto.ColumnResponse{
			State:    string(state),
			Progress: state.Progress(),
			Count:    len(cards),
			Orders:   cards,
		})
	}

	return dto.BoardResponse{
		Columns:         columns,
		SuggestedNumber: suggestedNumber,
		Total:           len(orders),
	}
}

func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
