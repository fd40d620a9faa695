package model

import (
	"time"

	"gorm.io/datatypes"
)

// Sales order statuses.
const (
	OrderQuote     = "Quote"
	OrderConfirmed = "Confirmed"
	OrderShipped   = "Shipped"
	OrderCompleted = "Completed"
	OrderCancelled = "Cancelled"
)

// Customer is a buyer of farm produce.
type Customer struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	ContactPerson string    `json:"contactPerson" gorm:"type:varchar(255)"`
	Phone         string    `json:"phone" gorm:"type:varchar(32)"`
	Email         string    `json:"email" gorm:"type:varchar(255)"`
	Address       string    `json:"address" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderItem is one line of a sales order. Items live as an embedded
// array on the order row, not as separate rows, so an order is always
// written in a single statement.
type OrderItem struct {
	ItemID    string  `json:"itemId"`
	CropID    uint    `json:"cropId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// SalesOrder is a customer order from quote through completion.
type SalesOrder struct {
	ID          uint                           `json:"id" gorm:"primarykey"`
	CustomerID  uint                           `json:"customerId" gorm:"index;not null"`
	OrderDate   string                         `json:"orderDate" gorm:"type:date;not null"`
	Status      string                         `json:"status" gorm:"type:varchar(16);not null;default:'Quote'"`
	Items       datatypes.JSONSlice[OrderItem] `json:"items"`
	TotalAmount float64                        `json:"totalAmount" gorm:"not null;default:0"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}
