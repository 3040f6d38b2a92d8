package gorm

import (
	"time"

	"carcheck/backend/internal/constants"
)

// CarEvent is an append-only audit entry. Written once, never mutated or
// deleted by normal operation.
type CarEvent struct {
	ID          string              `gorm:"column:id;primaryKey;type:uuid"`
	CarID       string              `gorm:"column:car_id;type:uuid;index"`
	Type        constants.EventType `gorm:"column:type"`
	Date        time.Time           `gorm:"column:date;index"`
	Description string              `gorm:"column:description"`

	Metadata map[string]interface{} `gorm:"column:metadata;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (CarEvent) TableName() string {
	return "car_events"
}
