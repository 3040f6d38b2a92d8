package services

import (
	"context"
	"fmt"
	"time"

	"carcheck/backend/internal/constants"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/maintenance"
	"carcheck/backend/internal/models/dtos"
	"carcheck/backend/internal/models/dtos/responses"
	gormModels "carcheck/backend/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CarService owns vehicle CRUD, odometer updates, and derived status views.
// Every mutation is one read-modify-write unit: load the full aggregate,
// recompute in memory, persist in a single transaction.
type CarService struct {
	db      *gorm.DB
	carRepo *repositories.CarRepository
}

func NewCarService(db *gorm.DB, carRepo *repositories.CarRepository) *CarService {
	return &CarService{db: db, carRepo: carRepo}
}

func (svc *CarService) CreateCar(ctx context.Context, userID string, req *dtos.CreateCarReq) (*gormModels.Car, error) {
	if req.Make == "" || req.Model == "" || req.Year == 0 {
		return nil, NewValidationError("MISSING_FIELDS", "Make, model and year are required")
	}
	if req.Mileage < 0 {
		return nil, NewValidationError("INVALID_MILEAGE", constants.MsgInvalidMileage)
	}

	car := &gormModels.Car{
		ID:           uuid.NewString(),
		UserID:       userID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
		Mileage:      req.Mileage,
		Inspection: gormModels.Inspection{
			IntervalYears:    1,
			IntervalKm:       15000,
			DistanceTracking: true,
		},
	}

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(car).Error; err != nil {
			return fmt.Errorf("failed to create car: %w", err)
		}
		return appendCarEvent(tx, car.ID, constants.EventCarCreated,
			fmt.Sprintf("Car created: %s %s (%d) at %d km", car.Make, car.Model, car.Year, car.Mileage),
			map[string]interface{}{"mileage": car.Mileage})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, car.ID)
}

func (svc *CarService) UpdateCar(ctx context.Context, userID, carID string, req *dtos.UpdateCarReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.VIN != nil {
		car.VIN = req.VIN
	}
	if req.LicensePlate != nil {
		car.LicensePlate = req.LicensePlate
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
			return fmt.Errorf("failed to update car: %w", err)
		}
		return appendCarEvent(tx, car.ID, constants.EventCarUpdated,
			fmt.Sprintf("Car details updated: %s %s", car.Make, car.Model), nil)
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// UpdateMileage sets the live odometer reading and refreshes the inspection
// distance projection, which depends on it.
func (svc *CarService) UpdateMileage(ctx context.Context, userID, carID string, newMileage int) (*gormModels.Car, error) {
	if newMileage < 0 {
		return nil, NewValidationError("INVALID_MILEAGE", constants.MsgInvalidMileage)
	}

	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	oldMileage := car.Mileage
	car.Mileage = newMileage
	refreshInspectionProjection(car, time.Now())

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
			return fmt.Errorf("failed to update mileage: %w", err)
		}
		return appendCarEvent(tx, car.ID, constants.EventMileageUpdate,
			fmt.Sprintf("Mileage updated: %d km -> %d km", oldMileage, newMileage),
			map[string]interface{}{"old_mileage": oldMileage, "new_mileage": newMileage})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// Status computes the dashboard view: urgency classification and progress for
// inspection, TUV, and the seasonal tire swap. Pure recomputation; nothing is
// persisted.
func (svc *CarService) Status(car *gormModels.Car, now time.Time) *responses.CarStatusResponse {
	insp := car.Inspection

	inspStatus := responses.MaintenanceStatus{
		NextDate:         insp.NextDate,
		Status:           string(maintenance.Classify(now, insp.NextDate)),
		TimeProgress:     maintenance.TimeProgress(now, insp.LastDate, insp.NextDateByYear),
		DistanceProgress: maintenance.DistanceProgress(insp.LastMileage, car.Mileage, insp.IntervalKm),
		RemainingKm:      maintenance.RemainingKm(insp.LastMileage, car.Mileage, insp.IntervalKm),
	}
	inspStatus.Severity = worstSeverity(inspStatus.TimeProgress, inspStatus.DistanceProgress)

	tuvStatus := responses.MaintenanceStatus{
		NextDate:     car.TUV.NextAppointment,
		Status:       string(maintenance.Classify(now, car.TUV.NextAppointment)),
		TimeProgress: maintenance.TimeProgress(now, car.TUV.LastAppointment, car.TUV.NextAppointment),
	}
	if tuvStatus.TimeProgress != nil {
		tuvStatus.Severity = string(maintenance.SeverityFor(*tuvStatus.TimeProgress))
	}

	resp := &responses.CarStatusResponse{
		CarID:      car.ID,
		Mileage:    car.Mileage,
		Inspection: inspStatus,
		TUV:        tuvStatus,
	}

	if change := maintenance.NextSeasonalChange(now, car.MountedTireType()); change != nil {
		resp.SeasonalChange = &responses.SeasonalChange{
			Date:      change.Date,
			Direction: change.Direction,
		}
	}

	return resp
}

func worstSeverity(progresses ...*float64) string {
	worst := ""
	rank := map[maintenance.Severity]int{
		maintenance.SeverityOK:      0,
		maintenance.SeverityWarning: 1,
		maintenance.SeverityDanger:  2,
	}
	best := -1
	for _, p := range progresses {
		if p == nil {
			continue
		}
		sev := maintenance.SeverityFor(*p)
		if rank[sev] > best {
			best = rank[sev]
			worst = string(sev)
		}
	}
	return worst
}

// refreshInspectionProjection recomputes the three derived next-date fields
// from the current odometer reading.
func refreshInspectionProjection(car *gormModels.Car, now time.Time) {
	insp := &car.Inspection
	insp.NextDateByYear = maintenance.NextByTime(insp.LastDate, insp.IntervalYears)
	insp.NextDateByKm = maintenance.NextByDistance(now, insp.LastDate, insp.LastMileage,
		car.Mileage, insp.IntervalKm, insp.DistanceTracking)
	insp.NextDate = maintenance.EarlierOf(insp.NextDateByYear, insp.NextDateByKm)
}

// appendCarEvent writes one append-only audit record inside the caller's
// transaction.
func appendCarEvent(tx *gorm.DB, carID string, eventType constants.EventType, description string, metadata map[string]interface{}) error {
	event := &gormModels.CarEvent{
		ID:          uuid.NewString(),
		CarID:       carID,
		Type:        eventType,
		Date:        time.Now(),
		Description: description,
		Metadata:    metadata,
	}
	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("failed to append car event: %w", err)
	}
	return nil
}
