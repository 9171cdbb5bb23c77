package router

import (
	"database/sql"
	"net/http"

	"pos_backend/internal/handlers"
	"pos_backend/internal/repositories"
	"pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	productRepo := repositories.NewProductRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	// Initialize Services
	productService := services.NewProductService(productRepo, saleRepo, db)
	saleService := services.NewSaleService(saleRepo, productRepo, db)
	companyService := services.NewCompanyService(companyRepo, itemRepo, db)
	inventoryService := services.NewInventoryService(itemRepo, companyRepo, db)
	dashboardService := services.NewDashboardService(saleRepo, productRepo, itemRepo)

	// Initialize Handlers
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	itemHandler := handlers.NewItemHandler(inventoryService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	SetupProductRoutes(engine, productHandler)
	SetupSaleRoutes(engine, saleHandler)
	SetupCompanyRoutes(engine, companyHandler, itemHandler)
	SetupItemRoutes(engine, itemHandler)
	SetupDashboardRoutes(engine, dashboardHandler)
}
