package services

import (
	"context"
	"fmt"
	"time"

	"carcheck/backend/internal/constants"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/maintenance"
	"carcheck/backend/internal/models/dtos"
	gormModels "carcheck/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaintenanceService handles the TUV and inspection records on a car and
// keeps their derived next-date fields consistent.
type MaintenanceService struct {
	db      *gorm.DB
	carRepo *repositories.CarRepository
}

func NewMaintenanceService(db *gorm.DB, carRepo *repositories.CarRepository) *MaintenanceService {
	return &MaintenanceService{db: db, carRepo: carRepo}
}

// UpdateTUV sets the last statutory test appointment. The next appointment is
// always derived, exactly two years later.
func (svc *MaintenanceService) UpdateTUV(ctx context.Context, userID, carID string, req *dtos.TUVUpdateReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	if req.LastAppointment != nil {
		if *req.LastAppointment == "" {
			car.TUV.LastAppointment = nil
		} else {
			parsed := maintenance.ParseFlexibleDate(*req.LastAppointment)
			if parsed == nil {
				return nil, NewValidationError("INVALID_DATE", "Invalid appointment date")
			}
			car.TUV.LastAppointment = parsed
		}
	}
	if req.Completed != nil {
		car.TUV.Completed = *req.Completed
	}

	car.TUV.NextAppointment = maintenance.NextTUV(car.TUV.LastAppointment)

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
			return fmt.Errorf("failed to update TUV record: %w", err)
		}
		return appendCarEvent(tx, car.ID, constants.EventTUVUpdate,
			describeDateUpdate("TUV appointment", car.TUV.LastAppointment, car.TUV.NextAppointment), nil)
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// UpdateInspection edits the service record and recomputes all three derived
// next-date fields. Non-positive intervals are ignored in favor of the
// current configuration.
func (svc *MaintenanceService) UpdateInspection(ctx context.Context, userID, carID string, req *dtos.InspectionUpdateReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	insp := &car.Inspection

	if req.LastDate != nil {
		if *req.LastDate == "" {
			insp.LastDate = nil
		} else {
			parsed := maintenance.ParseFlexibleDate(*req.LastDate)
			if parsed == nil {
				return nil, NewValidationError("INVALID_DATE", "Invalid inspection date")
			}
			insp.LastDate = parsed
		}
	}
	if req.LastMileage != nil {
		if *req.LastMileage < 0 {
			return nil, NewValidationError("INVALID_MILEAGE", constants.MsgInvalidMileage)
		}
		insp.LastMileage = req.LastMileage
	}
	if req.IntervalYears != nil && *req.IntervalYears > 0 {
		insp.IntervalYears = *req.IntervalYears
	}
	if req.IntervalKm != nil && *req.IntervalKm > 0 {
		insp.IntervalKm = *req.IntervalKm
	}
	if req.DistanceTracking != nil {
		insp.DistanceTracking = *req.DistanceTracking
	}
	if req.Completed != nil {
		insp.Completed = *req.Completed
	}

	refreshInspectionProjection(car, time.Now())

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
			return fmt.Errorf("failed to update inspection record: %w", err)
		}
		return appendCarEvent(tx, car.ID, constants.EventInspectionUpdate,
			describeDateUpdate("Inspection", insp.LastDate, insp.NextDate),
			map[string]interface{}{
				"interval_years":    insp.IntervalYears,
				"interval_km":       insp.IntervalKm,
				"distance_tracking": insp.DistanceTracking,
			})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// UpdateInsurance edits the insurance record on a car. Empty strings clear
// the corresponding field.
func (svc *MaintenanceService) UpdateInsurance(ctx context.Context, userID, carID string, req *dtos.InsuranceUpdateReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	ins := &car.Insurance

	if req.Provider != nil {
		ins.Provider = nilIfEmpty(req.Provider)
	}
	if req.PolicyNumber != nil {
		ins.PolicyNumber = nilIfEmpty(req.PolicyNumber)
	}
	if req.ExpiryDate != nil {
		if *req.ExpiryDate == "" {
			ins.ExpiryDate = nil
		} else {
			parsed := maintenance.ParseFlexibleDate(*req.ExpiryDate)
			if parsed == nil {
				return nil, NewValidationError("INVALID_DATE", "Invalid insurance expiry date")
			}
			ins.ExpiryDate = parsed
		}
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
			return fmt.Errorf("failed to update insurance record: %w", err)
		}
		provider := "-"
		if ins.Provider != nil {
			provider = *ins.Provider
		}
		return appendCarEvent(tx, car.ID, constants.EventInsuranceUpdate,
			fmt.Sprintf("Insurance updated: provider %s", provider), nil)
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func describeDateUpdate(label string, last, next *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%s updated: last %s, next due %s", label, format(last), format(next))
}
