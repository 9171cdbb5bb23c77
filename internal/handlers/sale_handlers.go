package handlers

import (
	"net/http"

	"pos_backend/internal/services"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// CreateSale handles checkout: it records the sale, its line items and the
// stock decrements in one transaction.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	result, err := h.saleService.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create sale")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Sale recorded successfully",
		"sale_id":      result.SaleID,
		"total_amount": result.TotalAmount,
	})
}

// GetSalesHistory handles fetching all sales, newest first.
func (h *SaleHandler) GetSalesHistory(c *gin.Context) {
	sales, err := h.saleService.GetSalesHistory()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sales history")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSalesToday handles fetching sales created today.
func (h *SaleHandler) GetSalesToday(c *gin.Context) {
	sales, err := h.saleService.GetSalesToday()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch today's sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale handles fetching a single sale with its items.
func (h *SaleHandler) GetSale(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := h.saleService.GetSaleWithItems(saleID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sale")
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetSaleDetails handles the receipt view: sale items joined with current
// product names.
func (h *SaleHandler) GetSaleDetails(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := h.saleService.GetSaleDetails(saleID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sale details")
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateSaleStatus handles moving a sale through its status lifecycle.
func (h *SaleHandler) UpdateSaleStatus(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}

	if err := h.saleService.UpdateSaleStatus(saleID, req); err != nil {
		respondServiceError(c, err, "Failed to update sale status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"sale_id":    saleID,
		"new_status": req.Status,
	})
}
