package model

import (
	"time"

	"gorm.io/datatypes"
)

// FarmInfo is the farm profile printed on invoices, payslips and
// product labels. The logo is embedded image data.
type FarmInfo struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"taxId"`
}

// FarmSettingID is the primary key of the singleton settings row.
const FarmSettingID = 1

// FarmSetting holds the single farm profile row, upserted whole.
type FarmSetting struct {
	ID        uint                         `json:"id" gorm:"primarykey"`
	Info      datatypes.JSONType[FarmInfo] `json:"info"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

// Alert is a derived dashboard notification. Alerts are computed from
// inventory and crop state on demand and never persisted.
type Alert struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // "task" or "warning"
	Message string `json:"message"`
}

// Alert types.
const (
	AlertTask    = "task"
	AlertWarning = "warning"
)
