package model

import "time"

// Crop status values, as the dashboard displays them.
const (
	CropPlanted      = "Planted"
	CropGrowing      = "Growing"
	CropHarvestReady = "Harvest Ready"
)

// Crop represents a cultivated crop. Optimal ranges are optional;
// sensors compare readings against them when both bounds are present.
type Crop struct {
	ID                 uint     `json:"id" gorm:"primarykey"`
	Name               string   `json:"name" gorm:"type:varchar(255);not null"`
	Status             string   `json:"status" gorm:"type:varchar(32);not null;default:'Planted'"`
	PlantingDate       string   `json:"plantingDate" gorm:"type:date;not null"`
	ExpectedHarvest    *string  `json:"expectedHarvest,omitempty" gorm:"type:date"`
	ImageURL           *string  `json:"imageUrl,omitempty" gorm:"type:text"`
	OptimalTempMin     *float64 `json:"optimalTempMin,omitempty"`
	OptimalTempMax     *float64 `json:"optimalTempMax,omitempty"`
	OptimalHumidityMin *float64 `json:"optimalHumidityMin,omitempty"`
	OptimalHumidityMax *float64 `json:"optimalHumidityMax,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
