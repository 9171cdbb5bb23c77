package handlers

import (
	"net/http"

	"pos_backend/internal/services"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ItemHandler holds the inventory service.
type ItemHandler struct {
	inventoryService services.InventoryService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(is services.InventoryService) *ItemHandler {
	return &ItemHandler{inventoryService: is}
}

// GetItems handles listing a company's items with optional filter
// (all, low-stock, out-of-stock, in-stock) and search term.
func (h *ItemHandler) GetItems(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.inventoryService.GetItems(companyID, c.DefaultQuery("filter", "all"), c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateItem handles adding an item to a company's inventory. The initial
// quantity is recorded as the first stock history entry.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	item, err := h.inventoryService.CreateItem(c.Request.Context(), companyID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles rewriting an item's fields. A quantity change produces
// an audit entry alongside the update.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// AdjustStock handles increasing or decreasing an item's quantity.
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	item, err := h.inventoryService.AdjustStock(c.Request.Context(), itemID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles deleting an item and, via cascade, its stock history.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteItem(itemID); err != nil {
		respondServiceError(c, err, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// GetStockHistory handles fetching an item's audit trail, newest first.
func (h *ItemHandler) GetStockHistory(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := h.inventoryService.GetStockHistory(itemID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch stock history")
		return
	}
	c.JSON(http.StatusOK, history)
}
