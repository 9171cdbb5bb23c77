package handlers

import (
	"net/http"

	"pos_backend/internal/services"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// GetProducts handles fetching the whole catalog.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles fetching a single product.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(productID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles adding a product to the catalog.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	product, err := h.productService.CreateProduct(req)
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles rewriting a product's fields.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	product, err := h.productService.UpdateProduct(productID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateStocks handles setting the absolute on-hand count of a product.
func (h *ProductHandler) UpdateStocks(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateStocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	product, err := h.productService.UpdateStocks(productID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update stocks")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product that has no sales history.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(productID); err != nil {
		respondServiceError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
