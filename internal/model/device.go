package model

import "time"

// Device types and statuses.
const (
	DeviceSensor = "Sensor"
	DevicePump   = "Pump"
	DeviceLight  = "Light"

	DeviceActive   = "Active"
	DeviceInactive = "Inactive"
	DeviceError    = "Error"
)

// Device represents a smart-farm device (sensor, pump or grow light).
type Device struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Type      string    `json:"type" gorm:"type:varchar(32);not null"`
	Status    string    `json:"status" gorm:"type:varchar(32);not null;default:'Inactive'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnvironmentReading is one sampled point of the environment chart.
type EnvironmentReading struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Time        string  `json:"time" gorm:"type:varchar(16);not null"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       float64 `json:"light"`
}
