package router

import (
	"pos_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Route paths match the frontend the service was written for, so sale and
// dashboard reads live at top-level paths rather than nested resources.

// SetupProductRoutes sets up the product catalog routes.
func SetupProductRoutes(engine *gin.Engine, productHandler *handlers.ProductHandler) {
	productRoutes := engine.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProduct)
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.PATCH("/:id/stock", productHandler.UpdateStocks)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupSaleRoutes sets up the sale and checkout routes.
func SetupSaleRoutes(engine *gin.Engine, saleHandler *handlers.SaleHandler) {
	saleRoutes := engine.Group("/sales")
	{
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.GET("/:id", saleHandler.GetSale)
		saleRoutes.PUT("/:id/status", saleHandler.UpdateSaleStatus)
	}
	engine.GET("/sales-history", saleHandler.GetSalesHistory)
	engine.GET("/sales-today", saleHandler.GetSalesToday)
	engine.GET("/sale-details/:id", saleHandler.GetSaleDetails)
}

// SetupCompanyRoutes sets up the company routes, including the nested item
// listing and creation under a company.
func SetupCompanyRoutes(engine *gin.Engine, companyHandler *handlers.CompanyHandler, itemHandler *handlers.ItemHandler) {
	companyRoutes := engine.Group("/companies")
	{
		companyRoutes.GET("", companyHandler.GetCompanies)
		companyRoutes.GET("/search/:query", companyHandler.SearchCompanies)
		companyRoutes.POST("", companyHandler.CreateCompany)
		companyRoutes.GET("/:id", companyHandler.GetCompany)
		companyRoutes.PUT("/:id", companyHandler.UpdateCompany)
		companyRoutes.DELETE("/:id", companyHandler.DeleteCompany)
		companyRoutes.GET("/:id/stats", companyHandler.GetCompanyStats)
		companyRoutes.GET("/:id/export", companyHandler.ExportCompany)

		companyRoutes.GET("/:id/items", itemHandler.GetItems)
		companyRoutes.POST("/:id/items", itemHandler.CreateItem)
	}
}

// SetupItemRoutes sets up the item-level inventory routes.
func SetupItemRoutes(engine *gin.Engine, itemHandler *handlers.ItemHandler) {
	itemRoutes := engine.Group("/items")
	{
		itemRoutes.PUT("/:id", itemHandler.UpdateItem)
		itemRoutes.DELETE("/:id", itemHandler.DeleteItem)
		itemRoutes.POST("/:id/adjust-stock", itemHandler.AdjustStock)
		itemRoutes.GET("/:id/history", itemHandler.GetStockHistory)
	}
}

// SetupDashboardRoutes sets up the reporting routes.
func SetupDashboardRoutes(engine *gin.Engine, dashboardHandler *handlers.DashboardHandler) {
	engine.GET("/dashboard-stats", dashboardHandler.GetDashboardStats)
	engine.GET("/inventory/stats", dashboardHandler.GetInventoryStats)
}
