package gorm

import (
	"time"

	"carcheck/backend/internal/constants"
)

// Tire is a physical tire set. CurrentMileage is the total distance driven
// on the set, valid as of its last unmount; while mounted the live wear is
// derived from the mount event plus the odometer delta, never persisted
// incrementally.
type Tire struct {
	ID    string             `gorm:"column:id;primaryKey;type:uuid"`
	CarID string             `gorm:"column:car_id;type:uuid;index"`
	Type  constants.TireType `gorm:"column:type"`
	Brand *string            `gorm:"column:brand"`
	Model *string            `gorm:"column:model"`

	CurrentMileage int `gorm:"column:current_mileage"`

	// Archived is terminal: once set the tire can never be mounted again.
	Archived bool `gorm:"column:archived;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Tire) TableName() string {
	return "tires"
}

// TireChangeEvent is an immutable mount/unmount record capturing the car's
// odometer and the affected set's cumulative mileage at that moment.
type TireChangeEvent struct {
	ID          string                   `gorm:"column:id;primaryKey;type:uuid"`
	CarID       string                   `gorm:"column:car_id;type:uuid;index"`
	TireID      string                   `gorm:"column:tire_id;type:uuid;index"`
	Date        time.Time                `gorm:"column:date"`
	CarMileage  int                      `gorm:"column:car_mileage"`
	TireMileage int                      `gorm:"column:tire_mileage"`
	ChangeType  constants.TireChangeType `gorm:"column:change_type"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TireChangeEvent) TableName() string {
	return "tire_change_events"
}
