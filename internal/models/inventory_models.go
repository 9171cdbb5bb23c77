package models

import "time"

// Company owns inventory items. ItemCount and StockStatus are derived on
// read from the owned items, never stored.
type Company struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	ItemCount   int    `json:"item_count"`
	StockStatus string `json:"stock_status,omitempty"`
}

// InventoryItem is a stocked item owned by a company. Quantity is a decimal
// because items can be tracked in fractional units (kg, liters).
type InventoryItem struct {
	ID                int64     `json:"id" db:"id"`
	CompanyID         int64     `json:"company_id" db:"company_id"`
	Name              string    `json:"name" db:"name"`
	Category          *string   `json:"category,omitempty" db:"category"`
	Quantity          float64   `json:"quantity" db:"quantity"`
	Unit              string    `json:"unit" db:"unit"`
	UnitPrice         float64   `json:"unit_price" db:"unit_price"`
	Description       *string   `json:"description,omitempty" db:"description"`
	SKU               *string   `json:"sku,omitempty" db:"sku"`
	LowStockThreshold float64   `json:"low_stock_threshold" db:"low_stock_threshold"`
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`

	// CompanyName is populated by joined listings only.
	CompanyName string `json:"company_name,omitempty"`
}

// Stock history actions.
const (
	StockActionCreate   = "create"
	StockActionIncrease = "increase"
	StockActionDecrease = "decrease"
)

// StockHistory is one append-only audit row per quantity-changing mutation.
// NewQuantity records the post-change value.
type StockHistory struct {
	ID             int64     `json:"id" db:"id"`
	ItemID         int64     `json:"item_id" db:"item_id"`
	Action         string    `json:"action" db:"action"`
	QuantityChange float64   `json:"quantity_change" db:"quantity_change"`
	NewQuantity    float64   `json:"new_quantity" db:"new_quantity"`
	Reason         string    `json:"reason" db:"reason"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	CreatedBy      string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
