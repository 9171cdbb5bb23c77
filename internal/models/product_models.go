package models

import "time"

// Product is a sellable catalog entry with an on-hand stock count.
type Product struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	ServiceType   *string   `json:"service_type,omitempty" db:"service_type"`
	ContainerType *string   `json:"container_type,omitempty" db:"container_type"`
	Price         float64   `json:"price" db:"price"`
	Stocks        int       `json:"stocks" db:"stocks"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
