package dtos

import "carcheck/backend/internal/common"

// Date fields arrive either as bare YYYY-MM-DD (HTML date inputs) or as full
// RFC3339 timestamps; services normalize them via maintenance.ParseFlexibleDate.

type CreateCarReq struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	VIN          *string `json:"vin,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`
	Mileage      int     `json:"mileage"`
}

type UpdateCarReq struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	VIN          *string `json:"vin,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`
}

// MileageUpdateReq accepts the odometer reading as a RoundedInt so that
// clients sending fractional km (some odometer APIs do) still parse.
type MileageUpdateReq struct {
	Mileage common.RoundedInt `json:"mileage"`
}

type TUVUpdateReq struct {
	LastAppointment *string `json:"last_appointment"`
	Completed       *bool   `json:"completed,omitempty"`
}

type InspectionUpdateReq struct {
	LastDate         *string `json:"last_date"`
	LastMileage      *int    `json:"last_mileage"`
	IntervalYears    *int    `json:"interval_years,omitempty"`
	IntervalKm       *int    `json:"interval_km,omitempty"`
	DistanceTracking *bool   `json:"distance_tracking,omitempty"`
	Completed        *bool   `json:"completed,omitempty"`
}

type InsuranceUpdateReq struct {
	Provider     *string `json:"provider"`
	PolicyNumber *string `json:"policy_number"`
	ExpiryDate   *string `json:"expiry_date"`
}

type FuelEntryReq struct {
	Date          string   `json:"date"`
	Mileage       int      `json:"mileage"`
	Liters        float64  `json:"liters"`
	PricePerLiter *float64 `json:"price_per_liter,omitempty"`
	TotalCost     *float64 `json:"total_cost,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type TireCreateReq struct {
	Type           string  `json:"type"`
	Brand          *string `json:"brand,omitempty"`
	Model          *string `json:"model,omitempty"`
	CurrentMileage int     `json:"current_mileage"`
}

type TireUpdateReq struct {
	Brand    *string `json:"brand,omitempty"`
	Model    *string `json:"model,omitempty"`
	Type     *string `json:"type,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

type TireChangeReq struct {
	TireID     string  `json:"tire_id"`
	CarMileage int     `json:"car_mileage"`
	ChangeDate *string `json:"change_date,omitempty"`
}
