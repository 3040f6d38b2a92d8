package responses

import (
	"time"

	gormModels "carcheck/backend/internal/models/gorm"
)

// MaintenanceStatus is the derived urgency view for one due-date criterion.
type MaintenanceStatus struct {
	NextDate         *time.Time `json:"next_date"`
	Status           string     `json:"status"`
	TimeProgress     *float64   `json:"time_progress,omitempty"`
	DistanceProgress *float64   `json:"distance_progress,omitempty"`
	RemainingKm      *int       `json:"remaining_km,omitempty"`
	Severity         string     `json:"severity,omitempty"`
}

// SeasonalChange is the projected next recommended tire swap.
type SeasonalChange struct {
	Date      time.Time `json:"date"`
	Direction string    `json:"direction"`
}

// CarStatusResponse is the computed dashboard view of one car: urgency
// classification and progress for every tracked maintenance criterion.
type CarStatusResponse struct {
	CarID          string            `json:"car_id"`
	Mileage        int               `json:"mileage"`
	Inspection     MaintenanceStatus `json:"inspection"`
	TUV            MaintenanceStatus `json:"tuv"`
	SeasonalChange *SeasonalChange   `json:"seasonal_change,omitempty"`
}

// TireWearResponse reports the derived wear of one tire set.
type TireWearResponse struct {
	TireID         string `json:"tire_id"`
	Type           string `json:"type"`
	Mounted        bool   `json:"mounted"`
	Archived       bool   `json:"archived"`
	CurrentMileage int    `json:"current_mileage"`
}

// FuelStatsResponse aggregates a car's fuel ledger.
type FuelStatsResponse struct {
	EntryCount         int      `json:"entry_count"`
	TotalLiters        float64  `json:"total_liters"`
	TotalCost          float64  `json:"total_cost"`
	TotalKmTracked     int      `json:"total_km_tracked"`
	AverageConsumption *float64 `json:"average_consumption,omitempty"`
	CostPerKm          *float64 `json:"cost_per_km,omitempty"`
}

// ShareLinkResponse carries a single-use read-only token for a car.
type ShareLinkResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// SharedCarView is what a redeemed share link exposes: the car aggregate and
// its computed status, nothing writable.
type SharedCarView struct {
	Car    *gormModels.Car    `json:"car"`
	Status *CarStatusResponse `json:"status"`
}
