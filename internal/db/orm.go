package db

import (
	"fmt"
	"log"

	gormModels "carcheck/backend/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}

// Migrate creates or updates the CarCheck schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&gormModels.Car{},
		&gormModels.FuelEntry{},
		&gormModels.Tire{},
		&gormModels.TireChangeEvent{},
		&gormModels.CarEvent{},
	)
}
