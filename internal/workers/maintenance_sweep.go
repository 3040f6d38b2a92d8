package workers

import (
	"context"
	"sync"
	"time"

	"carcheck/backend/internal/common"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/logging"
	"carcheck/backend/internal/maintenance"
	"carcheck/backend/internal/metrics"
	"carcheck/backend/internal/services"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MaintenanceSweepWorker periodically reclassifies every car's maintenance
// status and publishes fleet-wide overdue/upcoming gauges. It also primes the
// status cache so dashboard reads after the sweep are cheap.
type MaintenanceSweepWorker struct {
	db       *gorm.DB
	carRepo  *repositories.CarRepository
	carSvc   *services.CarService
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	interval time.Duration
}

func NewMaintenanceSweepWorker(
	db *gorm.DB,
	carRepo *repositories.CarRepository,
	carSvc *services.CarService,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
	interval time.Duration,
) *MaintenanceSweepWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &MaintenanceSweepWorker{
		db:       db,
		carRepo:  carRepo,
		carSvc:   carSvc,
		cache:    cache,
		metrics:  metricsReg,
		interval: interval,
	}
}

// Start runs the sweep immediately, then on every tick until ctx is done.
func (w *MaintenanceSweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

type sweepCounts struct {
	mu                 sync.Mutex
	inspectionOverdue  int
	inspectionUpcoming int
	tuvOverdue         int
	tuvUpcoming        int
}

func (w *MaintenanceSweepWorker) sweep(ctx context.Context) {
	start := time.Now()
	now := time.Now()

	cars, err := w.carRepo.ListAll(ctx)
	if err != nil {
		logging.Error("Maintenance sweep: failed to list cars", "error", err)
		return
	}

	counts := &sweepCounts{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range cars {
		car := &cars[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			status := w.carSvc.Status(car, now)

			counts.mu.Lock()
			switch status.Inspection.Status {
			case string(maintenance.StatusOverdue):
				counts.inspectionOverdue++
			case string(maintenance.StatusUpcoming):
				counts.inspectionUpcoming++
			}
			switch status.TUV.Status {
			case string(maintenance.StatusOverdue):
				counts.tuvOverdue++
			case string(maintenance.StatusUpcoming):
				counts.tuvUpcoming++
			}
			counts.mu.Unlock()

			w.cache.Set("car_status:"+car.ID, status, w.interval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Warn("Maintenance sweep interrupted", "error", err)
		return
	}

	w.metrics.CarsOverdue.WithLabelValues("inspection").Set(float64(counts.inspectionOverdue))
	w.metrics.CarsUpcoming.WithLabelValues("inspection").Set(float64(counts.inspectionUpcoming))
	w.metrics.CarsOverdue.WithLabelValues("tuv").Set(float64(counts.tuvOverdue))
	w.metrics.CarsUpcoming.WithLabelValues("tuv").Set(float64(counts.tuvUpcoming))
	w.metrics.MaintenanceSweepRuns.Inc()
	w.metrics.MaintenanceSweepTime.Observe(time.Since(start).Seconds())

	logging.Info("Maintenance sweep completed",
		"cars", len(cars),
		"inspection_overdue", counts.inspectionOverdue,
		"tuv_overdue", counts.tuvOverdue,
		"duration_ms", int(time.Since(start).Milliseconds()),
	)
}
