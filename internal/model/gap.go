package model

import "time"

// Activity types recorded in the GAP traceability logs. Values are
// kept in Thai to match what the operators record and what the
// traceability lookup matches on.
const (
	ActivityPlanting    = "เพาะปลูก"
	ActivityFertilizing = "ให้ปุ๋ย"
	ActivityPestControl = "กำจัดศัตรูพืช"
	ActivityWatering    = "รดน้ำ"
	ActivityHarvest     = "เก็บเกี่ยว"
)

// Plot is a cultivation plot. CurrentCropID points at the crop the
// plot is presently growing, nil when the plot lies fallow.
type Plot struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	CurrentCropID *uint     `json:"currentCropId,omitempty" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ActivityLog records one GAP activity performed on a plot. Harvest
// entries anchor the public traceability chain.
type ActivityLog struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	PlotID        uint      `json:"plotId" gorm:"index;not null"`
	ActivityType  string    `json:"activityType" gorm:"type:varchar(32);not null"`
	Date          string    `json:"date" gorm:"type:date;not null"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	MaterialsUsed *string   `json:"materialsUsed,omitempty" gorm:"type:text"`
	Personnel     string    `json:"personnel" gorm:"type:varchar(255);not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
