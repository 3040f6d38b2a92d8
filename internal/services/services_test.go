package services

import (
	"context"
	"testing"
	"time"

	"carcheck/backend/internal/db"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/models/dtos"
	gormModels "carcheck/backend/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = "user-1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func newTestServices(t *testing.T) (*gorm.DB, *repositories.CarRepository) {
	t.Helper()
	gdb := setupTestDB(t)
	return gdb, repositories.NewCarRepository(gdb)
}

func createTestCar(t *testing.T, gdb *gorm.DB, repo *repositories.CarRepository, mileage int) *gormModels.Car {
	t.Helper()

	svc := NewCarService(gdb, repo)
	car, err := svc.CreateCar(context.Background(), testUserID, &dtos.CreateCarReq{
		Make:    "Volkswagen",
		Model:   "Golf",
		Year:    2018,
		Mileage: mileage,
	})
	if err != nil {
		t.Fatalf("failed to create test car: %v", err)
	}
	return car
}

func strPtr(s string) *string    { return &s }
func iPtr(i int) *int            { return &i }
func fPtr(f float64) *float64    { return &f }
func bPtr(b bool) *bool          { return &b }
func dateStr(t time.Time) string { return t.Format("2006-01-02") }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
