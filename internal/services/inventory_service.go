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

var ErrItemNotFound = errors.New("inventory item not found")

// Stock adjustment defaults.
const (
	defaultAdjustReason = "stock_adjustment"
	defaultActor        = "system"
)

// CreateItemRequest is used for creating an inventory item under a company.
type CreateItemRequest struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Quantity          float64  `json:"quantity"`
	Unit              string   `json:"unit"`
	UnitPrice         *float64 `json:"unit_price"`
	Description       string   `json:"description"`
	SKU               string   `json:"sku"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}

// UpdateItemRequest is used for the general field-update endpoint. Quantity
// and UnitPrice are pointers so a missing field is distinguishable from zero.
type UpdateItemRequest struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Quantity          *float64 `json:"quantity"`
	Unit              string   `json:"unit"`
	UnitPrice         *float64 `json:"unit_price"`
	Description       string   `json:"description"`
	SKU               string   `json:"sku"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
}

// AdjustStockRequest is the input of the stock adjustment primitive.
type AdjustStockRequest struct {
	Action    string  `json:"action"`
	Quantity  float64 `json:"quantity"`
	Reason    string  `json:"reason"`
	Notes     string  `json:"notes"`
	CreatedBy string  `json:"created_by"`
}

// InventoryService owns inventory items and their audit trail. Every
// quantity-changing mutation appends exactly one stock history row inside the
// same transaction as the quantity write.
type InventoryService interface {
	GetItems(companyID int64, filter, search string) ([]models.InventoryItem, error)
	CreateItem(ctx context.Context, companyID int64, req CreateItemRequest) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, itemID int64, req UpdateItemRequest) (*models.InventoryItem, error)
	AdjustStock(ctx context.Context, itemID int64, req AdjustStockRequest) (*models.InventoryItem, error)
	DeleteItem(itemID int64) error
	GetStockHistory(itemID int64) ([]models.StockHistory, error)
}

type inventoryService struct {
	itemRepo    repositories.ItemRepository
	companyRepo repositories.CompanyRepository
	db          *sql.DB // for managing transactions
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(ir repositories.ItemRepository, cr repositories.CompanyRepository, db *sql.DB) InventoryService {
	return &inventoryService{
		itemRepo:    ir,
		companyRepo: cr,
		db:          db,
	}
}

func (s *inventoryService) GetItems(companyID int64, filter, search string) ([]models.InventoryItem, error) {
	items, err := s.itemRepo.GetItemsByCompany(companyID, filter, search)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, companyID int64, req CreateItemRequest) (*models.InventoryItem, error) {
	if utils.IsEmpty(req.Name) || req.UnitPrice == nil {
		return nil, fmt.Errorf("%w: item name and unit price are required", ErrValidation)
	}
	if *req.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price cannot be negative", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}

	if _, err := s.companyRepo.GetCompanyByID(companyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company %d: %w", companyID, err)
	}

	item := models.InventoryItem{
		CompanyID:         companyID,
		Name:              req.Name,
		Category:          utils.NewNullString(req.Category),
		Quantity:          req.Quantity,
		Unit:              defaultString(req.Unit, "pcs"),
		UnitPrice:         *req.UnitPrice,
		Description:       utils.NewNullString(req.Description),
		SKU:               utils.NewNullString(req.SKU),
		LowStockThreshold: defaultFloat(req.LowStockThreshold, 10),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	itemID, err := s.itemRepo.CreateItem(tx, &item)
	if err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	history := models.StockHistory{
		ItemID:         itemID,
		Action:         models.StockActionCreate,
		QuantityChange: req.Quantity,
		NewQuantity:    req.Quantity,
		Reason:         "initial_stock",
		Notes:          utils.NewNullString("Item created"),
		CreatedBy:      defaultActor,
	}
	if _, err := s.itemRepo.CreateStockHistory(tx, &history); err != nil {
		return nil, fmt.Errorf("failed to record initial stock history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item creation: %w", err)
	}

	return s.itemRepo.GetItemByID(itemID)
}

// UpdateItem rewrites the item's fields and, when the quantity changed,
// appends a derived stock history row in the same transaction.
func (s *inventoryService) UpdateItem(ctx context.Context, itemID int64, req UpdateItemRequest) (*models.InventoryItem, error) {
	if utils.IsEmpty(req.Name) || req.UnitPrice == nil || req.Quantity == nil {
		return nil, fmt.Errorf("%w: item name, quantity and unit price are required", ErrValidation)
	}
	if *req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := s.itemRepo.GetItemForUpdate(tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to lock item %d: %w", itemID, err)
	}

	updated := models.InventoryItem{
		ID:                itemID,
		CompanyID:         current.CompanyID,
		Name:              req.Name,
		Category:          utils.NewNullString(req.Category),
		Quantity:          *req.Quantity,
		Unit:              defaultString(req.Unit, "pcs"),
		UnitPrice:         *req.UnitPrice,
		Description:       utils.NewNullString(req.Description),
		SKU:               utils.NewNullString(req.SKU),
		LowStockThreshold: defaultFloat(req.LowStockThreshold, 10),
	}
	if err := s.itemRepo.UpdateItem(tx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", itemID, err)
	}

	if delta := *req.Quantity - current.Quantity; delta != 0 {
		action := models.StockActionIncrease
		change := delta
		if delta < 0 {
			action = models.StockActionDecrease
			change = -delta
		}
		history := models.StockHistory{
			ItemID:         itemID,
			Action:         action,
			QuantityChange: change,
			NewQuantity:    *req.Quantity,
			Reason:         "manual_update",
			Notes:          utils.NewNullString("Item quantity updated"),
			CreatedBy:      defaultActor,
		}
		if _, err := s.itemRepo.CreateStockHistory(tx, &history); err != nil {
			return nil, fmt.Errorf("failed to record quantity change: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item update: %w", err)
	}

	return s.itemRepo.GetItemByID(itemID)
}

// AdjustStock is the stock adjustment primitive: lock the row, compute the
// new quantity, reject below-zero results, write the quantity and the audit
// row, commit. Concurrent adjustments on the same item serialize on the row
// lock.
func (s *inventoryService) AdjustStock(ctx context.Context, itemID int64, req AdjustStockRequest) (*models.InventoryItem, error) {
	if req.Action != models.StockActionIncrease && req.Action != models.StockActionDecrease {
		return nil, fmt.Errorf("%w: action must be %q or %q", ErrValidation, models.StockActionIncrease, models.StockActionDecrease)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.itemRepo.GetItemForUpdate(tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to lock item %d: %w", itemID, err)
	}

	newQuantity := item.Quantity + req.Quantity
	if req.Action == models.StockActionDecrease {
		newQuantity = item.Quantity - req.Quantity
	}
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: cannot reduce stock below zero", ErrInsufficientStock)
	}

	if err := s.itemRepo.UpdateQuantity(tx, itemID, newQuantity); err != nil {
		return nil, fmt.Errorf("failed to update quantity for item %d: %w", itemID, err)
	}

	history := models.StockHistory{
		ItemID:         itemID,
		Action:         req.Action,
		QuantityChange: req.Quantity,
		NewQuantity:    newQuantity,
		Reason:         defaultString(req.Reason, defaultAdjustReason),
		Notes:          utils.NewNullString(req.Notes),
		CreatedBy:      defaultString(req.CreatedBy, defaultActor),
	}
	if _, err := s.itemRepo.CreateStockHistory(tx, &history); err != nil {
		return nil, fmt.Errorf("failed to record stock adjustment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}

	return s.itemRepo.GetItemByID(itemID)
}

func (s *inventoryService) DeleteItem(itemID int64) error {
	if err := s.itemRepo.DeleteItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}
	return nil
}

func (s *inventoryService) GetStockHistory(itemID int64) ([]models.StockHistory, error) {
	if _, err := s.itemRepo.GetItemByID(itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch item %d: %w", itemID, err)
	}
	history, err := s.itemRepo.GetStockHistory(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock history: %w", err)
	}
	return history, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func defaultFloat(f *float64, fallback float64) float64 {
	if f == nil {
		return fallback
	}
	return *f
}
