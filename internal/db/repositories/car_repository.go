package repositories

import (
	"context"
	"fmt"

	gormModels "carcheck/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type CarRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new GORM-based car repository
func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

var ErrCarNotFound = fmt.Errorf("car not found")

// GetByID retrieves a car with its full aggregate preloaded: fuel ledger and
// tire events in chronological order, tires, audit log newest-first.
func (r *CarRepository) GetByID(ctx context.Context, id string) (*gormModels.Car, error) {
	var car gormModels.Car

	err := r.db.WithContext(ctx).
		Preload("FuelEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Preload("Tires").
		Preload("TireChangeEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("id = ?", id).
		First(&car).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to fetch car: %w", err)
	}

	return &car, nil
}

// GetByIDForUser retrieves a car only if it belongs to the given user.
func (r *CarRepository) GetByIDForUser(ctx context.Context, id, userID string) (*gormModels.Car, error) {
	car, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car.UserID != userID {
		return nil, ErrCarNotFound
	}
	return car, nil
}

// ListForUser returns all cars owned by a user, without sub-records.
func (r *CarRepository) ListForUser(ctx context.Context, userID string) ([]gormModels.Car, error) {
	var cars []gormModels.Car

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cars).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	return cars, nil
}

// ListAll returns every car with the sub-records needed for status
// recomputation. Used by the maintenance sweep worker.
func (r *CarRepository) ListAll(ctx context.Context) ([]gormModels.Car, error) {
	var cars []gormModels.Car

	err := r.db.WithContext(ctx).
		Preload("Tires").
		Find(&cars).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	return cars, nil
}

// Delete removes a car and all its sub-records.
func (r *CarRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car gormModels.Car
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&car).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCarNotFound
			}
			return fmt.Errorf("failed to fetch car: %w", err)
		}

		for _, model := range []interface{}{
			&gormModels.FuelEntry{},
			&gormModels.Tire{},
			&gormModels.TireChangeEvent{},
			&gormModels.CarEvent{},
		} {
			if err := tx.Where("car_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete car sub-records: %w", err)
			}
		}

		if err := tx.Delete(&car).Error; err != nil {
			return fmt.Errorf("failed to delete car: %w", err)
		}
		return nil
	})
}
