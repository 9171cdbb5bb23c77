package models

import "time"

// DashboardStats is the POS landing-page summary.
type DashboardStats struct {
	TotalSales   float64   `json:"totalSales"`
	TodaySales   float64   `json:"todaySales"`
	ProductCount int       `json:"productCount"`
	LowStock     []Product `json:"lowStock"`
	RecentSales  []Sale    `json:"recentSales"`
}

// StockDistribution buckets a company's items by stock level.
type StockDistribution struct {
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// CompanyStats summarizes one company's inventory.
type CompanyStats struct {
	ItemCount         int               `json:"itemCount"`
	TotalValue        float64           `json:"totalValue"`
	LowStockCount     int               `json:"lowStockCount"`
	OutOfStockCount   int               `json:"outOfStockCount"`
	TopItems          []InventoryItem   `json:"topItems"`
	StockDistribution StockDistribution `json:"stockDistribution"`
}

// InventoryStats summarizes the whole inventory across companies.
type InventoryStats struct {
	TotalCompanies      int             `json:"totalCompanies"`
	TotalItems          int             `json:"totalItems"`
	TotalInventoryValue float64         `json:"totalInventoryValue"`
	LowStockItems       int             `json:"lowStockItems"`
	RecentItems         []InventoryItem `json:"recentItems"`
}

// ExportItem is an inventory item decorated for export downloads.
type ExportItem struct {
	InventoryItem
	TotalValue  float64 `json:"total_value"`
	StockStatus string  `json:"stock_status"`
}

// CompanyExport is the JSON document returned by the export endpoint.
type CompanyExport struct {
	Company    Company      `json:"company"`
	ExportDate time.Time    `json:"exportDate"`
	TotalItems int          `json:"totalItems"`
	TotalValue float64      `json:"totalValue"`
	Items      []ExportItem `json:"items"`
}
