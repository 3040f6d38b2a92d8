package workers

import (
	"context"
	"time"

	"carcheck/backend/internal/common"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/metrics"
	"carcheck/backend/internal/services"

	"gorm.io/gorm"
)

type WorkersContainer struct {
	MaintenanceSweep *MaintenanceSweepWorker
}

func InitWorkers(
	db *gorm.DB,
	carRepo *repositories.CarRepository,
	carSvc *services.CarService,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *WorkersContainer {
	sweep := NewMaintenanceSweepWorker(db, carRepo, carSvc, cache, metricsReg, 15*time.Minute)

	go sweep.Start(context.Background())

	return &WorkersContainer{
		MaintenanceSweep: sweep,
	}
}
