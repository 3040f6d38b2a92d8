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

// TireService manages a car's tire sets and the immutable mount/unmount
// event log. A set's cumulative mileage is only persisted at unmount; while
// mounted, live wear is derived from the last mount event plus the odometer
// delta.
type TireService struct {
	db      *gorm.DB
	carRepo *repositories.CarRepository
}

func NewTireService(db *gorm.DB, carRepo *repositories.CarRepository) *TireService {
	return &TireService{db: db, carRepo: carRepo}
}

func (svc *TireService) CreateTire(ctx context.Context, userID, carID string, req *dtos.TireCreateReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	tireType := constants.TireType(req.Type)
	if !tireType.Valid() {
		return nil, NewValidationError("INVALID_TIRE_TYPE", fmt.Sprintf("Unknown tire type %q", req.Type))
	}
	if req.CurrentMileage < 0 {
		return nil, NewValidationError("INVALID_MILEAGE", constants.MsgInvalidMileage)
	}
	for i := range car.Tires {
		if car.Tires[i].Type == tireType && !car.Tires[i].Archived {
			return nil, NewValidationError("DUPLICATE_TIRE_TYPE", constants.MsgDuplicateTireType)
		}
	}

	tire := &gormModels.Tire{
		ID:             uuid.NewString(),
		CarID:          carID,
		Type:           tireType,
		Brand:          req.Brand,
		Model:          req.Model,
		CurrentMileage: req.CurrentMileage,
	}

	if err := svc.db.WithContext(ctx).Create(tire).Error; err != nil {
		return nil, fmt.Errorf("failed to create tire set: %w", err)
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// UpdateTire edits a set's metadata. Archiving is terminal and refused while
// the set is mounted; un-archiving is never allowed.
func (svc *TireService) UpdateTire(ctx context.Context, userID, carID, tireID string, req *dtos.TireUpdateReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}
	tire := findTire(car.Tires, tireID)
	if tire == nil {
		return nil, NewNotFoundError(constants.MsgTireNotFound)
	}

	if req.Type != nil {
		newType := constants.TireType(*req.Type)
		if !newType.Valid() {
			return nil, NewValidationError("INVALID_TIRE_TYPE", fmt.Sprintf("Unknown tire type %q", *req.Type))
		}
		for i := range car.Tires {
			if car.Tires[i].ID != tireID && car.Tires[i].Type == newType && !car.Tires[i].Archived {
				return nil, NewValidationError("DUPLICATE_TIRE_TYPE", constants.MsgDuplicateTireType)
			}
		}
		tire.Type = newType
	}
	if req.Brand != nil {
		tire.Brand = req.Brand
	}
	if req.Model != nil {
		tire.Model = req.Model
	}
	if req.Archived != nil {
		if !*req.Archived && tire.Archived {
			return nil, NewValidationError("TIRE_ARCHIVED", "An archived tire set cannot be restored")
		}
		if *req.Archived && car.CurrentTireID != nil && *car.CurrentTireID == tireID {
			return nil, NewValidationError("TIRE_MOUNTED", constants.MsgTireMountedArchive)
		}
		tire.Archived = *req.Archived
	}

	if err := svc.db.WithContext(ctx).Save(tire).Error; err != nil {
		return nil, fmt.Errorf("failed to update tire set: %w", err)
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// ChangeTire mounts a set. If another set is currently mounted it is first
// unmounted: its cumulative mileage is rolled forward by the odometer delta
// since its mount, and an unmount event records the result. Both events are
// written in the same transaction as the car update.
func (svc *TireService) ChangeTire(ctx context.Context, userID, carID string, req *dtos.TireChangeReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}
	tire := findTire(car.Tires, req.TireID)
	if tire == nil {
		return nil, NewNotFoundError(constants.MsgTireNotFound)
	}
	if tire.Archived {
		return nil, NewValidationError("TIRE_ARCHIVED", constants.MsgTireArchivedMount)
	}
	if car.CurrentTireID != nil && *car.CurrentTireID == req.TireID {
		return nil, NewValidationError("TIRE_ALREADY_MOUNTED", "This tire set is already mounted")
	}
	if req.CarMileage < car.Mileage {
		return nil, NewValidationError("INVALID_MILEAGE", constants.MsgInvalidMileage)
	}

	changeDate := time.Now()
	if req.ChangeDate != nil {
		parsed := maintenance.ParseFlexibleDate(*req.ChangeDate)
		if parsed == nil {
			return nil, NewValidationError("INVALID_DATE", "Invalid change date")
		}
		changeDate = *parsed
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if car.CurrentTireID != nil {
			if err := svc.unmountCurrent(tx, car, req.CarMileage, changeDate); err != nil {
				return err
			}
		}

		mountEvent := &gormModels.TireChangeEvent{
			ID:          uuid.NewString(),
			CarID:       car.ID,
			TireID:      tire.ID,
			Date:        changeDate,
			CarMileage:  req.CarMileage,
			TireMileage: tire.CurrentMileage,
			ChangeType:  constants.TireMount,
		}
		if err := tx.Create(mountEvent).Error; err != nil {
			return fmt.Errorf("failed to record mount event: %w", err)
		}

		car.CurrentTireID = &tire.ID
		if req.CarMileage > car.Mileage {
			car.Mileage = req.CarMileage
		}
		refreshInspectionProjection(car, time.Now())

		if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
			return fmt.Errorf("failed to update car after tire change: %w", err)
		}

		return appendCarEvent(tx, car.ID, constants.EventTireChange,
			fmt.Sprintf("Mounted %s tires at %d km", tire.Type, req.CarMileage),
			map[string]interface{}{"tire_id": tire.ID, "car_mileage": req.CarMileage})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// unmountCurrent settles the mounted set: wear since its last mount event is
// added to its stored mileage and an unmount event snapshots the result.
func (svc *TireService) unmountCurrent(tx *gorm.DB, car *gormModels.Car, carMileage int, date time.Time) error {
	mounted := findTire(car.Tires, *car.CurrentTireID)
	if mounted == nil {
		return NewNotFoundError(constants.MsgTireNotFound)
	}

	newTireMileage := mounted.CurrentMileage
	if mount := lastMountEvent(car.TireChangeEvents, mounted.ID); mount != nil {
		driven := carMileage - mount.CarMileage
		if driven > 0 {
			newTireMileage = mount.TireMileage + driven
		}
	}

	unmountEvent := &gormModels.TireChangeEvent{
		ID:          uuid.NewString(),
		CarID:       car.ID,
		TireID:      mounted.ID,
		Date:        date,
		CarMileage:  carMileage,
		TireMileage: newTireMileage,
		ChangeType:  constants.TireUnmount,
	}
	if err := tx.Create(unmountEvent).Error; err != nil {
		return fmt.Errorf("failed to record unmount event: %w", err)
	}

	mounted.CurrentMileage = newTireMileage
	if err := tx.Model(&gormModels.Tire{}).
		Where("id = ?", mounted.ID).
		Update("current_mileage", newTireMileage).Error; err != nil {
		return fmt.Errorf("failed to settle tire mileage: %w", err)
	}
	return nil
}

// Wear reports every set's mileage. For the mounted set the figure is
// derived on read from the last mount event and the live odometer; nothing
// is persisted.
func (svc *TireService) Wear(car *gormModels.Car) []responses.TireWearResponse {
	out := make([]responses.TireWearResponse, 0, len(car.Tires))
	for i := range car.Tires {
		tire := &car.Tires[i]
		mounted := car.CurrentTireID != nil && *car.CurrentTireID == tire.ID

		mileage := tire.CurrentMileage
		if mounted {
			if mount := lastMountEvent(car.TireChangeEvents, tire.ID); mount != nil {
				if driven := car.Mileage - mount.CarMileage; driven > 0 {
					mileage = mount.TireMileage + driven
				} else {
					mileage = mount.TireMileage
				}
			}
		}

		out = append(out, responses.TireWearResponse{
			TireID:         tire.ID,
			Type:           string(tire.Type),
			Mounted:        mounted,
			Archived:       tire.Archived,
			CurrentMileage: mileage,
		})
	}
	return out
}

func findTire(tires []gormModels.Tire, id string) *gormModels.Tire {
	for i := range tires {
		if tires[i].ID == id {
			return &tires[i]
		}
	}
	return nil
}

// lastMountEvent finds the most recent mount event for a tire; events are
// preloaded in chronological order.
func lastMountEvent(events []gormModels.TireChangeEvent, tireID string) *gormModels.TireChangeEvent {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].TireID == tireID && events[i].ChangeType == constants.TireMount {
			return &events[i]
		}
	}
	return nil
}
