package services

import (
	"fmt"

	"pos_backend/internal/models"
	"pos_backend/internal/repositories"
)

const (
	lowStockProductThreshold = 10
	recentSalesLimit         = 5
)

type DashboardService interface {
	GetDashboardStats() (*models.DashboardStats, error)
	GetInventoryStats() (*models.InventoryStats, error)
}

type dashboardService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	itemRepo    repositories.ItemRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(sr repositories.SaleRepository, pr repositories.ProductRepository, ir repositories.ItemRepository) DashboardService {
	return &dashboardService{
		saleRepo:    sr,
		productRepo: pr,
		itemRepo:    ir,
	}
}

func (s *dashboardService) GetDashboardStats() (*models.DashboardStats, error) {
	totalSales, err := s.saleRepo.GetSalesTotal()
	if err != nil {
		return nil, fmt.Errorf("failed to get total sales: %w", err)
	}
	todaySales, err := s.saleRepo.GetSalesTotalToday()
	if err != nil {
		return nil, fmt.Errorf("failed to get today's sales: %w", err)
	}
	productCount, err := s.productRepo.CountProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	lowStock, err := s.productRepo.GetLowStockProducts(lowStockProductThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}
	recent, err := s.saleRepo.GetRecentSales(recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}

	return &models.DashboardStats{
		TotalSales:   totalSales,
		TodaySales:   todaySales,
		ProductCount: productCount,
		LowStock:     lowStock,
		RecentSales:  recent,
	}, nil
}

func (s *dashboardService) GetInventoryStats() (*models.InventoryStats, error) {
	stats, err := s.itemRepo.GetGlobalStats()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory stats: %w", err)
	}
	return stats, nil
}
