package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reqdto "reserve-portal/internal/handler/dto/request"
	resdto "reserve-portal/internal/handler/dto/response"
	"reserve-portal/internal/handler/httperr"
	"reserve-portal/internal/usecase/commands"
	"reserve-portal/internal/usecase/queries"
)

type ItemHandler struct {
	inventoryCommands commands.InventoryCommands
	itemQueries       queries.ItemQueries
}

func NewItemHandler(inventoryCommands commands.InventoryCommands, itemQueries queries.ItemQueries) *ItemHandler {
	return &ItemHandler{
		inventoryCommands: inventoryCommands,
		itemQueries:       itemQueries,
	}
}

// @Summary Get item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid item ID format", nil)
		return
	}

	view, err := h.itemQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "ITEM_NOT_FOUND", "Item not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromItemView(view))
}

// @Summary Adjust item inventory
// @Description Administrative synchronous inventory adjustment
// @Tags items
// @Accept json
// @Param id path int true "Item ID"
// @Param request body reqdto.AdjustInventoryRequest true "Signed inventory delta"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /items/{id}/inventory [post]
func (h *ItemHandler) AdjustInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid item ID format", nil)
		return
	}

	var req reqdto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid request format", nil)
		return
	}

	if err := h.inventoryCommands.Adjust(c.Request.Context(), id, req.Delta); err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "ITEM_NOT_FOUND", "Item not found", nil)
		case errors.Is(err, commands.ErrInsufficientInventory):
			httperr.AbortWithError(c, http.StatusConflict, err, "INSUFFICIENT_INVENTORY", "Adjustment would leave inventory out of bounds", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
