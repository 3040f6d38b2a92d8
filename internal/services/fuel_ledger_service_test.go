package services

import (
	"context"
	"testing"
	"time"

	"carcheck/backend/internal/models/dtos"
	gormModels "carcheck/backend/internal/models/gorm"
)

func addEntry(t *testing.T, svc *FuelLedgerService, carID string, date time.Time, mileage int, liters float64) *gormModels.Car {
	t.Helper()
	car, err := svc.AddEntry(context.Background(), testUserID, carID, &dtos.FuelEntryReq{
		Date:    dateStr(date),
		Mileage: mileage,
		Liters:  liters,
	})
	if err != nil {
		t.Fatalf("failed to add fuel entry at %d km: %v", mileage, err)
	}
	return car
}

func entryAt(t *testing.T, car *gormModels.Car, mileage int) *gormModels.FuelEntry {
	t.Helper()
	for i := range car.FuelEntries {
		if car.FuelEntries[i].Mileage == mileage {
			return &car.FuelEntries[i]
		}
	}
	t.Fatalf("no fuel entry at %d km", mileage)
	return nil
}

func TestAddEntry_FirstEntryHasNoDerivedFields(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	car = addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)

	e := entryAt(t, car, 1000)
	if e.KmDriven != nil {
		t.Errorf("first entry KmDriven = %d, want nil", *e.KmDriven)
	}
	if e.Consumption != nil {
		t.Errorf("first entry Consumption = %v, want nil", *e.Consumption)
	}
}

func TestAddEntry_OutOfOrderInsertReconcilesSuccessor(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)

	if got := *entryAt(t, car, 2000).KmDriven; got != 1000 {
		t.Fatalf("successor KmDriven before insert = %d, want 1000", got)
	}

	// Backdated fill-up lands between the two existing entries.
	car = addEntry(t, svc, car.ID, day(2024, time.March, 5), 1500, 45)

	mid := entryAt(t, car, 1500)
	if mid.KmDriven == nil || *mid.KmDriven != 500 {
		t.Errorf("inserted entry KmDriven = %v, want 500", mid.KmDriven)
	}
	if mid.Consumption == nil || *mid.Consumption != 9.0 {
		t.Errorf("inserted entry Consumption = %v, want 9.0", mid.Consumption)
	}

	succ := entryAt(t, car, 2000)
	if succ.KmDriven == nil || *succ.KmDriven != 500 {
		t.Errorf("successor KmDriven after insert = %v, want 500", succ.KmDriven)
	}
	if succ.Consumption == nil || *succ.Consumption != 12.0 {
		t.Errorf("successor Consumption after insert = %v, want 12.0", succ.Consumption)
	}
}

func TestAddEntry_RippleStopsAtSuccessor(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 20), 3000, 55)

	thirdBefore := *entryAt(t, car, 3000).KmDriven

	car = addEntry(t, svc, car.ID, day(2024, time.March, 5), 1500, 45)

	if got := *entryAt(t, car, 3000).KmDriven; got != thirdBefore {
		t.Errorf("entry beyond the successor changed: KmDriven = %d, want %d", got, thirdBefore)
	}
}

func TestAddEntry_MileageAboveNextRejectedWithoutSideEffects(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)

	_, err := svc.AddEntry(context.Background(), testUserID, car.ID, &dtos.FuelEntryReq{
		Date:    dateStr(day(2024, time.March, 5)),
		Mileage: 2500,
		Liters:  50,
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	after, err := repo.GetByID(context.Background(), car.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.FuelEntries) != 2 {
		t.Errorf("ledger length after rejected insert = %d, want 2", len(after.FuelEntries))
	}
	if got := *entryAt(t, after, 2000).KmDriven; got != 1000 {
		t.Errorf("successor KmDriven after rejected insert = %d, want 1000", got)
	}
	if after.Mileage != car.Mileage {
		t.Errorf("car mileage changed after rejected insert: %d, want %d", after.Mileage, car.Mileage)
	}
}

func TestAddEntry_MileageBelowPrevRejected(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)

	_, err := svc.AddEntry(context.Background(), testUserID, car.ID, &dtos.FuelEntryReq{
		Date:    dateStr(day(2024, time.March, 10)),
		Mileage: 900,
		Liters:  30,
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddEntry_SecondFillUpSameDay(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.May, 5), 1000, 40)

	// Same calendar day, higher odometer: orders after the first entry by
	// creation time and must be accepted.
	car = addEntry(t, svc, car.ID, day(2024, time.May, 5), 1500, 45)

	second := entryAt(t, car, 1500)
	if second.KmDriven == nil || *second.KmDriven != 500 {
		t.Errorf("second same-day entry KmDriven = %v, want 500", second.KmDriven)
	}
	if second.Consumption == nil || *second.Consumption != 9.0 {
		t.Errorf("second same-day entry Consumption = %v, want 9.0", second.Consumption)
	}
	if first := entryAt(t, car, 1000); first.KmDriven != nil {
		t.Errorf("first same-day entry KmDriven = %v, want nil", first.KmDriven)
	}
}

func TestAddEntry_RollsCarMileageForward(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	car = addEntry(t, svc, car.ID, day(2024, time.March, 1), 1800, 40)
	if car.Mileage != 1800 {
		t.Errorf("car mileage = %d, want 1800", car.Mileage)
	}

	// A backdated entry below the current odometer must not roll it back.
	car = addEntry(t, svc, car.ID, day(2024, time.February, 1), 1200, 35)
	if car.Mileage != 1800 {
		t.Errorf("car mileage after backdated entry = %d, want 1800", car.Mileage)
	}
}

func TestAddEntry_DerivesPriceFields(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	car, err := svc.AddEntry(context.Background(), testUserID, car.ID, &dtos.FuelEntryReq{
		Date:          dateStr(day(2024, time.March, 1)),
		Mileage:       1000,
		Liters:        40,
		PricePerLiter: fPtr(1.75),
	})
	if err != nil {
		t.Fatal(err)
	}
	e := entryAt(t, car, 1000)
	if e.TotalCost == nil || *e.TotalCost != 70.0 {
		t.Errorf("derived TotalCost = %v, want 70.0", e.TotalCost)
	}

	car, err = svc.AddEntry(context.Background(), testUserID, car.ID, &dtos.FuelEntryReq{
		Date:      dateStr(day(2024, time.March, 10)),
		Mileage:   1500,
		Liters:    50,
		TotalCost: fPtr(90.0),
	})
	if err != nil {
		t.Fatal(err)
	}
	e = entryAt(t, car, 1500)
	if e.PricePerLiter == nil || *e.PricePerLiter != 1.8 {
		t.Errorf("derived PricePerLiter = %v, want 1.8", e.PricePerLiter)
	}
}

func TestAddEntry_InvalidInputs(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	cases := []struct {
		name string
		req  dtos.FuelEntryReq
	}{
		{"zero liters", dtos.FuelEntryReq{Date: "2024-03-01", Mileage: 1000, Liters: 0}},
		{"negative liters", dtos.FuelEntryReq{Date: "2024-03-01", Mileage: 1000, Liters: -5}},
		{"negative mileage", dtos.FuelEntryReq{Date: "2024-03-01", Mileage: -1, Liters: 40}},
		{"garbage date", dtos.FuelEntryReq{Date: "not-a-date", Mileage: 1000, Liters: 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddEntry(context.Background(), testUserID, car.ID, &tc.req); !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateEntry_MoveReconcilesBothPositions(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 20), 3000, 55)

	// Move the middle entry earlier and lower; both the March 20 entry and
	// the moved entry itself must be recomputed against their new neighbors.
	moved := entryAt(t, car, 2000)
	car, err := svc.UpdateEntry(context.Background(), testUserID, car.ID, moved.ID, &dtos.FuelEntryReq{
		Date:    dateStr(day(2024, time.March, 5)),
		Mileage: 1400,
		Liters:  60,
	})
	if err != nil {
		t.Fatal(err)
	}

	mid := entryAt(t, car, 1400)
	if mid.KmDriven == nil || *mid.KmDriven != 400 {
		t.Errorf("moved entry KmDriven = %v, want 400", mid.KmDriven)
	}
	last := entryAt(t, car, 3000)
	if last.KmDriven == nil || *last.KmDriven != 1600 {
		t.Errorf("trailing entry KmDriven = %v, want 1600", last.KmDriven)
	}
}

func TestUpdateEntry_BreakingMonotonicityRejected(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)

	first := entryAt(t, car, 1000)
	_, err := svc.UpdateEntry(context.Background(), testUserID, car.ID, first.ID, &dtos.FuelEntryReq{
		Date:    dateStr(day(2024, time.March, 1)),
		Mileage: 2500,
		Liters:  40,
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteEntry_RelinksSuccessorAcrossGap(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	addEntry(t, svc, car.ID, day(2024, time.March, 5), 1500, 45)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)

	mid := entryAt(t, car, 1500)
	car, err := svc.DeleteEntry(context.Background(), testUserID, car.ID, mid.ID)
	if err != nil {
		t.Fatal(err)
	}

	if len(car.FuelEntries) != 2 {
		t.Fatalf("ledger length after delete = %d, want 2", len(car.FuelEntries))
	}
	succ := entryAt(t, car, 2000)
	if succ.KmDriven == nil || *succ.KmDriven != 1000 {
		t.Errorf("successor KmDriven after delete = %v, want 1000", succ.KmDriven)
	}
}

func TestDeleteEntry_CarMileageNeverDecreases(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	addEntry(t, svc, car.ID, day(2024, time.March, 1), 1000, 40)
	car = addEntry(t, svc, car.ID, day(2024, time.March, 10), 2000, 60)

	last := entryAt(t, car, 2000)
	car, err := svc.DeleteEntry(context.Background(), testUserID, car.ID, last.ID)
	if err != nil {
		t.Fatal(err)
	}
	if car.Mileage != 2000 {
		t.Errorf("car mileage after deleting highest entry = %d, want 2000", car.Mileage)
	}
}

func TestDeleteEntry_UnknownEntry(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	if _, err := svc.DeleteEntry(context.Background(), testUserID, car.ID, "missing"); !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestStats_AggregatesLedger(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	mustAdd := func(date time.Time, mileage int, liters float64, total *float64) {
		t.Helper()
		var err error
		car, err = svc.AddEntry(context.Background(), testUserID, car.ID, &dtos.FuelEntryReq{
			Date:      dateStr(date),
			Mileage:   mileage,
			Liters:    liters,
			TotalCost: total,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	mustAdd(day(2024, time.March, 1), 1000, 40, fPtr(70))
	mustAdd(day(2024, time.March, 10), 1500, 40, fPtr(72))
	mustAdd(day(2024, time.March, 20), 2000, 50, fPtr(80))

	stats := svc.Stats(car)
	if stats.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", stats.EntryCount)
	}
	if stats.TotalLiters != 130 {
		t.Errorf("TotalLiters = %v, want 130", stats.TotalLiters)
	}
	if stats.TotalCost != 222 {
		t.Errorf("TotalCost = %v, want 222", stats.TotalCost)
	}
	if stats.TotalKmTracked != 1000 {
		t.Errorf("TotalKmTracked = %d, want 1000", stats.TotalKmTracked)
	}
	// 90 liters over 1000 tracked km.
	if stats.AverageConsumption == nil || *stats.AverageConsumption != 9.0 {
		t.Errorf("AverageConsumption = %v, want 9.0", stats.AverageConsumption)
	}
	if stats.CostPerKm == nil || *stats.CostPerKm != 0.222 {
		t.Errorf("CostPerKm = %v, want 0.222", stats.CostPerKm)
	}
}

func TestStats_EmptyLedger(t *testing.T) {
	gdb, repo := newTestServices(t)
	car := createTestCar(t, gdb, repo, 1000)
	svc := NewFuelLedgerService(gdb, repo)

	stats := svc.Stats(car)
	if stats.EntryCount != 0 || stats.AverageConsumption != nil || stats.CostPerKm != nil {
		t.Errorf("empty ledger stats = %+v, want zero values", stats)
	}
}
