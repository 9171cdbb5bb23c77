package models

import "time"

// Sale is a completed checkout header. Rows are never deleted; only the
// status field changes after creation.
type Sale struct {
	ID              int64     `json:"id" db:"id"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	CustomerAddress string    `json:"customer_address" db:"customer_address"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// ItemsCount is computed by the history listing query, not stored.
	ItemsCount int `json:"items_count,omitempty" db:"items_count"`
}

// SaleItem is one line of a sale. ProductName and UnitPrice are snapshots
// taken at sale time and never updated afterwards.
type SaleItem struct {
	ID          int64   `json:"id" db:"id"`
	SaleID      int64   `json:"sale_id" db:"sale_id"`
	ProductID   int64   `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Quantity    int     `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
}
