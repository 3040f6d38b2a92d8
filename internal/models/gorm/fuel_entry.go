package gorm

import "time"

// FuelEntry is one fill-up in the car's chronological fuel ledger.
// KmDriven and Consumption are derived from the immediate chronological
// predecessor and recomputed transactionally on every ledger mutation.
type FuelEntry struct {
	ID      string    `gorm:"column:id;primaryKey;type:uuid"`
	CarID   string    `gorm:"column:car_id;type:uuid;index"`
	Date    time.Time `gorm:"column:date;index"`
	Mileage int       `gorm:"column:mileage"`
	Liters  float64   `gorm:"column:liters"`

	KmDriven    *int     `gorm:"column:km_driven"`
	Consumption *float64 `gorm:"column:consumption"`

	PricePerLiter *float64 `gorm:"column:price_per_liter"`
	TotalCost     *float64 `gorm:"column:total_cost"`
	Notes         *string  `gorm:"column:notes"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (FuelEntry) TableName() string {
	return "fuel_entries"
}
