package model

import "time"

// Ledger entry types.
const (
	LedgerIncome  = "income"
	LedgerExpense = "expense"
)

// LedgerEntry is a single income or expense line in the farm ledger.
// CropID links the entry to the crop it concerns, when any.
type LedgerEntry struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Date        string    `json:"date" gorm:"type:date;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Type        string    `json:"type" gorm:"type:varchar(16);not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	CropID      *uint     `json:"cropId,omitempty" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
