package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uragrafica/printflow/internal/domain/model"
	"github.com/uragrafica/printflow/internal/server/http/dto"
)

// TransferHandler manages board export, migration and import endpoints.
type TransferHandler struct {
	facade BoardFacade
}

// NewTransferHandler constructs TransferHandler.
func NewTransferHandler(facade BoardFacade) *TransferHandler {
	return &TransferHandler{facade: facade}
}

// Export handles GET /api/board/export: the full board, identifiers
// included, pretty-printed for download as a backup file.
func (h *TransferHandler) Export(c *gin.Context) {
	payload, err := h.facade.ExportBoard()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="board-export.json"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// Migration handles GET /api/board/migration: a compact payload meant for
// the client's clipboard when moving the board to another deployment.
func (h *TransferHandler) Migration(c *gin.Context) {
	payload, err := h.facade.MigrationPayload()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// Import handles POST /api/board/import?mode=merge|store. The body is the
// raw record array; a malformed payload fails before anything is written.
func (h *TransferHandler) Import(c *gin.Context) {
	h.facade.RegisterInteraction()

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	mode := model.ImportMode(c.DefaultQuery("mode", string(model.ImportModeMerge)))
	result, err := h.facade.ImportOrders(c.Request.Context(), payload, mode)
	if err != nil {
		abortWithError(c, err)
		return
	}

	message := fmt.Sprintf("imported %d orders", result.Imported)
	if result.Mode == model.ImportModeStore {
		message = fmt.Sprintf("stored %d new orders", result.Imported)
	}
	c.JSON(http.StatusOK, dto.ImportResponse{
		Mode:     string(result.Mode),
		Imported: result.Imported,
		Message:  message,
	})
}
