package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carcheck/backend/internal/auth"
	"carcheck/backend/internal/common"
	"carcheck/backend/internal/db"
	"carcheck/backend/internal/db/repositories"
	"carcheck/backend/internal/metrics"
	"carcheck/backend/internal/services"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = "user-1"

// promauto registers into the default registry, so the registry must be
// created exactly once per test binary.
var testMetrics = metrics.NewMetricsRegistry()

func newTestDeps(t *testing.T) *Dependencies {
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

	carRepo := repositories.NewCarRepository(gdb)

	return &Dependencies{
		Repo: &Repositories{Car: carRepo},
		Services: &Services{
			Cars:        services.NewCarService(gdb, carRepo),
			Fuel:        services.NewFuelLedgerService(gdb, carRepo),
			Tires:       services.NewTireService(gdb, carRepo),
			Maintenance: services.NewMaintenanceService(gdb, carRepo),
			ShareLinks:  common.NewShareLinkService([]byte("test-secret"), nil),
			Cache:       common.NewCacheService(60, 30),
		},
		Metrics: testMetrics,
	}
}

func newTestRouter(deps *Dependencies) chi.Router {
	h := NewHandlers(deps)
	r := chi.NewRouter()
	r.Get("/share/{token}", h.ViewSharedCar())
	r.Route("/api/v1/cars", func(cars chi.Router) {
		cars.Get("/", h.ListCars())
		cars.Post("/", h.CreateCar())
		cars.Route("/{carID}", func(car chi.Router) {
			car.Get("/", h.GetCar())
			car.Put("/mileage", h.UpdateMileage())
			car.Get("/status", h.GetCarStatus())
			car.Post("/fuel", h.AddFuelEntry())
			car.Post("/share", h.CreateShareLink())
		})
	})
	return r
}

// doRequest performs a request with authenticated claims already in context.
func doRequest(t *testing.T, router http.Handler, method, target, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		ctx := auth.SetUserClaims(req.Context(), &auth.APIKeyClaims{UserIDValue: userID})
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createCarViaAPI(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cars", testUserID, map[string]interface{}{
		"make": "Volkswagen", "model": "Golf", "year": 2018, "mileage": 10000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create car returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			ID string `json:"ID"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Fatal("create response carries no car ID")
	}
	return resp.Data.ID
}

func TestCreateCarHandler(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	createCarViaAPI(t, router)
}

func TestCreateCarHandler_MissingFields(t *testing.T) {
	router := newTestRouter(newTestDeps(t))

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cars", testUserID, map[string]interface{}{
		"make": "Volkswagen",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlers_MissingClaims(t *testing.T) {
	router := newTestRouter(newTestDeps(t))

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cars", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetCarHandler_ForeignUser(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cars/"+carID, "someone-else", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateMileageHandler_AcceptsFractionalInput(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodPut, "/api/v1/cars/"+carID+"/mileage", testUserID, map[string]interface{}{
		"mileage": 10500.4,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Mileage int `json:"Mileage"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Mileage != 10501 {
		t.Errorf("mileage = %d, want 10501 (rounded up)", resp.Data.Mileage)
	}
}

func TestAddFuelEntryHandler_ValidationMapsTo400(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cars/"+carID+"/fuel", testUserID, map[string]interface{}{
		"date": "2024-03-01", "mileage": 10500, "liters": 0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddFuelEntryHandler(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cars/"+carID+"/fuel", testUserID, map[string]interface{}{
		"date": "2024-03-01", "mileage": 10500, "liters": 42.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetCarStatusHandler(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cars/"+carID+"/status", testUserID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			CarID string `json:"car_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.CarID != carID {
		t.Errorf("status car_id = %q, want %q", resp.Data.CarID, carID)
	}
}

func TestCreateShareLinkHandler(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cars/"+carID+"/share", testUserID, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			URL       string `json:"url"`
			ExpiresIn int    `json:"expires_in"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.URL == "" || resp.Data.ExpiresIn == 0 {
		t.Errorf("share link response = %+v, want url and expiry", resp.Data)
	}
}

func TestViewSharedCarHandler_SingleUse(t *testing.T) {
	router := newTestRouter(newTestDeps(t))
	carID := createCarViaAPI(t, router)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/cars/"+carID+"/share", testUserID, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("share link status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	// The view route is public: no user claims attached.
	rec = doRequest(t, router, http.MethodGet, created.Data.URL, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("shared view status = %d: %s", rec.Code, rec.Body.String())
	}
	var view struct {
		Data struct {
			Car struct {
				ID string `json:"ID"`
			} `json:"car"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Data.Car.ID != carID {
		t.Errorf("shared car ID = %q, want %q", view.Data.Car.ID, carID)
	}

	// Second redemption of the same link must be refused.
	rec = doRequest(t, router, http.MethodGet, created.Data.URL, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("second redemption status = %d, want 401", rec.Code)
	}
}
