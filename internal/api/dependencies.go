package api

import (
	"os"

	"carcheck/backend/internal/common"
	"carcheck/backend/internal/db"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/metrics"
	"carcheck/backend/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Car  *repositories.CarRepository
	Keys *repositories.KeysRepo
}

type Services struct {
	Cars        *services.CarService
	Fuel        *services.FuelLedgerService
	Tires       *services.TireService
	Maintenance *services.MaintenanceService
	ShareLinks  *common.ShareLinkService
	Cache       common.CacheInterface
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	Redis    *redis.Client
}

func InitDependencies(metricsReg *metrics.MetricsRegistry, redisClient *redis.Client) (*Dependencies, error) {
	carRepo := repositories.NewCarRepository(db.PgDB)

	repos := &Repositories{
		Car:  carRepo,
		Keys: repositories.NewApiKeysRepo(db.DB),
	}

	var cache common.CacheInterface
	if redisClient != nil {
		cache = common.NewRedisCacheService(redisClient)
	} else {
		cache = common.NewCacheService(600, 120)
	}

	shareSecret := os.Getenv("SHARE_TOKEN_SECRET")
	if shareSecret == "" {
		shareSecret = "carcheck-dev-secret"
	}

	svcs := &Services{
		Cars:        services.NewCarService(db.PgDB, carRepo),
		Fuel:        services.NewFuelLedgerService(db.PgDB, carRepo),
		Tires:       services.NewTireService(db.PgDB, carRepo),
		Maintenance: services.NewMaintenanceService(db.PgDB, carRepo),
		ShareLinks:  common.NewShareLinkService([]byte(shareSecret), redisClient),
		Cache:       cache,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		Redis:    redisClient,
	}, nil
}
