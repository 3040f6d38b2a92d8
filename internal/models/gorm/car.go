package gorm

import (
	"time"

	"carcheck/backend/internal/constants"
)

type Car struct {
	ID           string  `gorm:"column:id;primaryKey;type:uuid"`
	UserID       string  `gorm:"column:user_id;index"`
	Make         string  `gorm:"column:make"`
	Model        string  `gorm:"column:model"`
	Year         int     `gorm:"column:year"`
	VIN          *string `gorm:"column:vin"`
	LicensePlate *string `gorm:"column:license_plate"`

	// Live odometer reading. Never decreases through ledger mutations.
	Mileage int `gorm:"column:mileage"`

	CurrentTireID *string `gorm:"column:current_tire_id;type:uuid"`

	Inspection Inspection `gorm:"embedded;embeddedPrefix:inspection_"`
	TUV        TUV        `gorm:"embedded;embeddedPrefix:tuv_"`
	Insurance  Insurance  `gorm:"embedded;embeddedPrefix:insurance_"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	FuelEntries      []FuelEntry       `gorm:"foreignKey:CarID"`
	Tires            []Tire            `gorm:"foreignKey:CarID"`
	TireChangeEvents []TireChangeEvent `gorm:"foreignKey:CarID"`
	Events           []CarEvent        `gorm:"foreignKey:CarID"`
}

// TableName specifies the table name for GORM
func (Car) TableName() string {
	return "cars"
}

// Inspection is the dual-criterion service record: due by elapsed calendar
// time or by distance driven, whichever comes first. The three next-date
// fields are derived and recomputed on every relevant mutation.
type Inspection struct {
	LastDate    *time.Time `gorm:"column:last_date"`
	LastMileage *int       `gorm:"column:last_mileage"`

	IntervalYears    int  `gorm:"column:interval_years;default:1"`
	IntervalKm       int  `gorm:"column:interval_km;default:15000"`
	DistanceTracking bool `gorm:"column:distance_tracking;default:true"`

	NextDateByYear *time.Time `gorm:"column:next_date_by_year"`
	NextDateByKm   *time.Time `gorm:"column:next_date_by_km"`
	NextDate       *time.Time `gorm:"column:next_date"`

	Completed bool `gorm:"column:completed;default:false"`
}

// TUV is the statutory periodic test: a single last/next date pair, the next
// appointment always a fixed two years after the last.
type TUV struct {
	LastAppointment *time.Time `gorm:"column:last_appointment"`
	NextAppointment *time.Time `gorm:"column:next_appointment"`
	Completed       bool       `gorm:"column:completed;default:false"`
}

type Insurance struct {
	Provider     *string    `gorm:"column:provider"`
	PolicyNumber *string    `gorm:"column:policy_number"`
	ExpiryDate   *time.Time `gorm:"column:expiry_date"`
}

// MountedTireType returns the type of the currently mounted, non-archived
// tire set, or empty when nothing is mounted.
func (c *Car) MountedTireType() constants.TireType {
	if c.CurrentTireID == nil {
		return ""
	}
	for i := range c.Tires {
		if c.Tires[i].ID == *c.CurrentTireID && !c.Tires[i].Archived {
			return c.Tires[i].Type
		}
	}
	return ""
}
