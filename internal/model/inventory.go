package model

import "time"

// InventoryItem is a production input (seed, fertilizer, packaging).
// An item is low on stock when Quantity <= LowStockThreshold.
type InventoryItem struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	Category          string    `json:"category" gorm:"type:varchar(100)"`
	Quantity          float64   `json:"quantity" gorm:"not null;default:0"`
	Unit              string    `json:"unit" gorm:"type:varchar(32);not null"`
	LowStockThreshold float64   `json:"lowStockThreshold" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
