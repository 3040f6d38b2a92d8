package services

import (
	"context"
	"fmt"
	"math"
	"sort"
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

// FuelLedgerService owns the chronological fill-up ledger of a car. Every
// mutation validates odometer monotonicity against the strict chronological
// neighbors, then reconciles the derived per-entry fields (km driven,
// consumption) and the car's live odometer in one transaction.
type FuelLedgerService struct {
	db      *gorm.DB
	carRepo *repositories.CarRepository
}

func NewFuelLedgerService(db *gorm.DB, carRepo *repositories.CarRepository) *FuelLedgerService {
	return &FuelLedgerService{db: db, carRepo: carRepo}
}

// AddEntry inserts a fill-up at any point in the timeline. The new entry and
// its chronological successor get recomputed km/consumption figures; entries
// outside that window are untouched.
func (svc *FuelLedgerService) AddEntry(ctx context.Context, userID, carID string, req *dtos.FuelEntryReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}

	entry, err := buildFuelEntry(carID, req)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.NewString()
	// Same-date entries tie-break on creation time. The timestamp has to be
	// fixed before the snapshot is built, or validation and reconcile would
	// order the new entry differently than later reads of the persisted row.
	entry.CreatedAt = time.Now()

	ledger := append(cloneEntries(car.FuelEntries), *entry)
	if err := validateLedgerOrder(ledger, entry.ID); err != nil {
		return nil, err
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create fuel entry: %w", err)
		}
		if err := svc.reconcile(tx, car, ledger); err != nil {
			return err
		}
		return appendCarEvent(tx, car.ID, constants.EventFuelEntry,
			fmt.Sprintf("Fuel entry added: %.1f l at %d km", entry.Liters, entry.Mileage),
			map[string]interface{}{"entry_id": entry.ID, "mileage": entry.Mileage, "liters": entry.Liters})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// UpdateEntry rewrites an existing fill-up. Moving an entry along the
// timeline reconciles the successors at both its old and its new position.
func (svc *FuelLedgerService) UpdateEntry(ctx context.Context, userID, carID, entryID string, req *dtos.FuelEntryReq) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}
	if findEntry(car.FuelEntries, entryID) == nil {
		return nil, NewNotFoundError(constants.MsgFuelEntryNotFound)
	}

	updated, err := buildFuelEntry(carID, req)
	if err != nil {
		return nil, err
	}
	updated.ID = entryID

	ledger := cloneEntries(car.FuelEntries)
	for i := range ledger {
		if ledger[i].ID == entryID {
			updated.CreatedAt = ledger[i].CreatedAt
			ledger[i] = *updated
			break
		}
	}
	if err := validateLedgerOrder(ledger, entryID); err != nil {
		return nil, err
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&gormModels.FuelEntry{}).
			Where("id = ?", entryID).
			Updates(map[string]interface{}{
				"date":            updated.Date,
				"mileage":         updated.Mileage,
				"liters":          updated.Liters,
				"price_per_liter": updated.PricePerLiter,
				"total_cost":      updated.TotalCost,
				"notes":           updated.Notes,
				// derived fields reset; the reconcile pass recomputes them
				"km_driven":   nil,
				"consumption": nil,
			}).Error; err != nil {
			return fmt.Errorf("failed to update fuel entry: %w", err)
		}
		if err := svc.reconcile(tx, car, ledger); err != nil {
			return err
		}
		return appendCarEvent(tx, car.ID, constants.EventFuelEntry,
			fmt.Sprintf("Fuel entry updated: %.1f l at %d km", updated.Liters, updated.Mileage),
			map[string]interface{}{"entry_id": entryID, "mileage": updated.Mileage, "liters": updated.Liters})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// DeleteEntry removes a fill-up and re-links its successor to the entry
// before the gap. The car's odometer never decreases.
func (svc *FuelLedgerService) DeleteEntry(ctx context.Context, userID, carID, entryID string) (*gormModels.Car, error) {
	car, err := svc.carRepo.GetByIDForUser(ctx, carID, userID)
	if err != nil {
		return nil, NewNotFoundError(constants.MsgCarNotFound)
	}
	removed := findEntry(car.FuelEntries, entryID)
	if removed == nil {
		return nil, NewNotFoundError(constants.MsgFuelEntryNotFound)
	}

	ledger := make([]gormModels.FuelEntry, 0, len(car.FuelEntries)-1)
	for _, e := range car.FuelEntries {
		if e.ID != entryID {
			ledger = append(ledger, e)
		}
	}

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", entryID).Delete(&gormModels.FuelEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete fuel entry: %w", err)
		}
		if err := svc.reconcile(tx, car, ledger); err != nil {
			return err
		}
		return appendCarEvent(tx, car.ID, constants.EventFuelEntry,
			fmt.Sprintf("Fuel entry removed: %.1f l at %d km", removed.Liters, removed.Mileage),
			map[string]interface{}{"entry_id": entryID})
	})
	if err != nil {
		return nil, err
	}

	return svc.carRepo.GetByID(ctx, carID)
}

// Stats aggregates the ledger. Consumption-weighted figures only count
// entries with a known predecessor, so the first fill-up never skews them.
func (svc *FuelLedgerService) Stats(car *gormModels.Car) *responses.FuelStatsResponse {
	stats := &responses.FuelStatsResponse{EntryCount: len(car.FuelEntries)}

	trackedLiters := 0.0
	for _, e := range car.FuelEntries {
		stats.TotalLiters += e.Liters
		if e.TotalCost != nil {
			stats.TotalCost += *e.TotalCost
		}
		if e.KmDriven != nil {
			stats.TotalKmTracked += *e.KmDriven
			trackedLiters += e.Liters
		}
	}

	if stats.TotalKmTracked > 0 {
		avg := round1(trackedLiters / float64(stats.TotalKmTracked) * 100)
		stats.AverageConsumption = &avg
		if stats.TotalCost > 0 {
			cpk := math.Round(stats.TotalCost/float64(stats.TotalKmTracked)*1000) / 1000
			stats.CostPerKm = &cpk
		}
	}

	return stats
}

// reconcile recomputes every derived field in the given ledger snapshot and
// persists only the rows whose figures changed, then rolls the car's odometer
// forward and refreshes the inspection projection.
func (svc *FuelLedgerService) reconcile(tx *gorm.DB, car *gormModels.Car, ledger []gormModels.FuelEntry) error {
	sortLedger(ledger)

	for i := range ledger {
		var kmDriven *int
		var consumption *float64
		if i > 0 {
			km := ledger[i].Mileage - ledger[i-1].Mileage
			kmDriven = &km
			if km > 0 {
				c := round1(ledger[i].Liters / float64(km) * 100)
				consumption = &c
			}
		}
		if !intPtrEq(ledger[i].KmDriven, kmDriven) || !floatPtrEq(ledger[i].Consumption, consumption) {
			if err := tx.Model(&gormModels.FuelEntry{}).
				Where("id = ?", ledger[i].ID).
				Updates(map[string]interface{}{"km_driven": kmDriven, "consumption": consumption}).Error; err != nil {
				return fmt.Errorf("failed to reconcile fuel entry: %w", err)
			}
		}
		ledger[i].KmDriven = kmDriven
		ledger[i].Consumption = consumption
	}

	for i := range ledger {
		if ledger[i].Mileage > car.Mileage {
			car.Mileage = ledger[i].Mileage
		}
	}
	refreshInspectionProjection(car, time.Now())

	if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
		return fmt.Errorf("failed to update car after ledger change: %w", err)
	}
	return nil
}

// buildFuelEntry validates the request and derives the missing price field
// when only one of price-per-liter and total cost was given.
func buildFuelEntry(carID string, req *dtos.FuelEntryReq) (*gormModels.FuelEntry, error) {
	date := maintenance.ParseFlexibleDate(req.Date)
	if date == nil {
		return nil, NewValidationError("INVALID_DATE", "Invalid fuel entry date")
	}
	if req.Mileage < 0 {
		return nil, NewValidationError("INVALID_MILEAGE", constants.MsgInvalidMileage)
	}
	if req.Liters <= 0 {
		return nil, NewValidationError("INVALID_LITERS", constants.MsgInvalidLiters)
	}

	entry := &gormModels.FuelEntry{
		CarID:         carID,
		Date:          *date,
		Mileage:       req.Mileage,
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
		TotalCost:     req.TotalCost,
		Notes:         req.Notes,
	}

	if entry.PricePerLiter != nil && entry.TotalCost == nil {
		total := math.Round(*entry.PricePerLiter*entry.Liters*100) / 100
		entry.TotalCost = &total
	} else if entry.TotalCost != nil && entry.PricePerLiter == nil {
		ppl := math.Round(*entry.TotalCost/entry.Liters*1000) / 1000
		entry.PricePerLiter = &ppl
	}

	return entry, nil
}

// validateLedgerOrder checks that the entry with the given ID sits between
// its strict chronological neighbors in odometer order.
func validateLedgerOrder(ledger []gormModels.FuelEntry, entryID string) error {
	sortLedger(ledger)
	for i := range ledger {
		if ledger[i].ID != entryID {
			continue
		}
		if i > 0 && ledger[i].Mileage < ledger[i-1].Mileage {
			return NewValidationError("MILEAGE_BELOW_PREV", constants.MsgMileageBelowPrev)
		}
		if i < len(ledger)-1 && ledger[i].Mileage > ledger[i+1].Mileage {
			return NewValidationError("MILEAGE_ABOVE_NEXT", constants.MsgMileageAboveNext)
		}
		return nil
	}
	return NewNotFoundError(constants.MsgFuelEntryNotFound)
}

func sortLedger(ledger []gormModels.FuelEntry) {
	sort.SliceStable(ledger, func(i, j int) bool {
		if !ledger[i].Date.Equal(ledger[j].Date) {
			return ledger[i].Date.Before(ledger[j].Date)
		}
		return ledger[i].CreatedAt.Before(ledger[j].CreatedAt)
	})
}

func findEntry(entries []gormModels.FuelEntry, id string) *gormModels.FuelEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

func cloneEntries(entries []gormModels.FuelEntry) []gormModels.FuelEntry {
	out := make([]gormModels.FuelEntry, len(entries))
	copy(out, entries)
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
