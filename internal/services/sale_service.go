package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pos_backend/internal/models"
	"pos_backend/internal/repositories"
	"pos_backend/pkg/utils"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInvalidSaleStatus = errors.New("invalid sale status")
)

// Sale status constants.
const (
	SaleStatusPending    = "pending"
	SaleStatusProcessing = "processing"
	SaleStatusCompleted  = "completed"
	SaleStatusCancelled  = "cancelled"
)

// CreateSaleItemRequest is one cart line of a checkout request. ProductName is
// an optional display override; UnitPrice is accepted but ignored for money
// computation, the catalog price is always authoritative.
type CreateSaleItemRequest struct {
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
}

// CreateSaleRequest is used for creating a new sale (checkout).
type CreateSaleRequest struct {
	CustomerName    string                  `json:"customer_name"`
	CustomerAddress string                  `json:"customer_address"`
	SaleItems       []CreateSaleItemRequest `json:"sale_items"`
}

// CheckoutResult is returned on successful checkout.
type CheckoutResult struct {
	SaleID      int64   `json:"sale_id"`
	TotalAmount float64 `json:"total_amount"`
}

// UpdateSaleStatusRequest is used for updating the status of a sale.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SaleDetails bundles a sale with its line items.
type SaleDetails struct {
	Sale  *models.Sale      `json:"sale"`
	Items []models.SaleItem `json:"items"`
}

// SaleService owns checkout and the sale read paths.
type SaleService interface {
	CreateSale(ctx context.Context, req CreateSaleRequest) (*CheckoutResult, error)
	GetSalesHistory() ([]models.Sale, error)
	GetSalesToday() ([]models.Sale, error)
	GetSaleWithItems(saleID int64) (*SaleDetails, error)
	GetSaleDetails(saleID int64) (*SaleDetails, error)
	UpdateSaleStatus(saleID int64, req UpdateSaleStatusRequest) error
}

type saleService struct {
	saleRepo    repositories.SaleRepository
	productRepo repositories.ProductRepository
	db          *sql.DB // for managing transactions
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(sr repositories.SaleRepository, pr repositories.ProductRepository, db *sql.DB) SaleService {
	return &saleService{
		saleRepo:    sr,
		productRepo: pr,
		db:          db,
	}
}

// CreateSale runs the checkout flow: validate every cart line against locked
// product rows, then insert the sale header, its item snapshots and the stock
// decrements in a single transaction. Nothing is written until every line has
// been validated.
func (s *saleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*CheckoutResult, error) {
	if utils.IsEmpty(req.CustomerName) || utils.IsEmpty(req.CustomerAddress) {
		return nil, fmt.Errorf("%w: customer name and address required", ErrValidation)
	}
	if len(req.SaleItems) == 0 {
		return nil, fmt.Errorf("%w: no items in cart", ErrValidation)
	}
	for _, item := range req.SaleItems {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for product ID %d must be positive", ErrValidation, item.ProductID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// Phase 1: lock and validate every referenced product. Quantities are
	// accumulated per product so duplicate cart lines cannot oversell.
	products := make(map[int64]*models.Product)
	required := make(map[int64]int)
	for _, item := range req.SaleItems {
		if _, ok := products[item.ProductID]; !ok {
			product, repoErr := s.productRepo.GetProductForUpdate(tx, item.ProductID)
			if repoErr != nil {
				if errors.Is(repoErr, repositories.ErrNotFound) {
					return nil, fmt.Errorf("%w: product ID %d not found in database; available product ids: %v",
						ErrValidation, item.ProductID, s.availableProductIDs())
				}
				return nil, fmt.Errorf("failed to fetch product %d: %w", item.ProductID, repoErr)
			}
			products[item.ProductID] = product
		}
		required[item.ProductID] += item.Quantity
	}
	for productID, quantity := range required {
		product := products[productID]
		if product.Stocks < quantity {
			return nil, fmt.Errorf("%w: not enough %s in stock. Requested: %d, Available: %d",
				ErrInsufficientStock, product.Name, quantity, product.Stocks)
		}
	}

	// Phase 2: totals from the authoritative catalog price.
	var totalAmount float64
	for _, item := range req.SaleItems {
		totalAmount += products[item.ProductID].Price * float64(item.Quantity)
	}

	// Phase 3: writes. Any failure rolls everything back via the deferred
	// Rollback.
	sale := models.Sale{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		TotalAmount:     totalAmount,
		Status:          SaleStatusPending,
	}
	saleID, err := s.saleRepo.CreateSale(tx, &sale)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	for _, item := range req.SaleItems {
		product := products[item.ProductID]
		productName := item.ProductName
		if productName == "" {
			productName = product.Name
		}
		saleItem := models.SaleItem{
			SaleID:      saleID,
			ProductID:   item.ProductID,
			ProductName: productName,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		}
		if _, err := s.saleRepo.CreateSaleItem(tx, &saleItem); err != nil {
			return nil, fmt.Errorf("failed to create sale item (product_id: %d): %w", item.ProductID, err)
		}
		if err := s.productRepo.DecrementStocks(tx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to decrement stock for product %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}

	return &CheckoutResult{SaleID: saleID, TotalAmount: totalAmount}, nil
}

// availableProductIDs is best effort diagnostic detail for unknown-product
// checkout failures.
func (s *saleService) availableProductIDs() []int64 {
	products, err := s.productRepo.GetProducts()
	if err != nil {
		return nil
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *saleService) GetSalesHistory() ([]models.Sale, error) {
	sales, err := s.saleRepo.GetSalesHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to get sales history: %w", err)
	}
	return sales, nil
}

func (s *saleService) GetSalesToday() ([]models.Sale, error) {
	sales, err := s.saleRepo.GetSalesToday()
	if err != nil {
		return nil, fmt.Errorf("failed to get today's sales: %w", err)
	}
	return sales, nil
}

func (s *saleService) GetSaleWithItems(saleID int64) (*SaleDetails, error) {
	return s.getSale(saleID, s.saleRepo.GetSaleItemsBySaleID)
}

// GetSaleDetails returns the sale with line items carrying the current
// catalog product names instead of the stored snapshots.
func (s *saleService) GetSaleDetails(saleID int64) (*SaleDetails, error) {
	return s.getSale(saleID, s.saleRepo.GetSaleItemsWithProductNames)
}

func (s *saleService) getSale(saleID int64, fetchItems func(int64) ([]models.SaleItem, error)) (*SaleDetails, error) {
	sale, err := s.saleRepo.GetSaleByID(saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by ID: %w", err)
	}
	items, err := fetchItems(saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale items: %w", err)
	}
	return &SaleDetails{Sale: sale, Items: items}, nil
}

func (s *saleService) UpdateSaleStatus(saleID int64, req UpdateSaleStatusRequest) error {
	if !isValidSaleStatus(req.Status) {
		return fmt.Errorf("%w: %s", ErrInvalidSaleStatus, req.Status)
	}
	if err := s.saleRepo.UpdateSaleStatus(s.db, saleID, req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to update sale status: %w", err)
	}
	return nil
}

func isValidSaleStatus(status string) bool {
	switch status {
	case SaleStatusPending, SaleStatusProcessing, SaleStatusCompleted, SaleStatusCancelled:
		return true
	default:
		return false
	}
}
