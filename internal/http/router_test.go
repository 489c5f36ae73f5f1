package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/tbourn/vehicle-insurance-api/docs"
	"github.com/tbourn/vehicle-insurance-api/internal/config"
	"github.com/tbourn/vehicle-insurance-api/internal/domain"
	"github.com/tbourn/vehicle-insurance-api/internal/http/middleware"
	"github.com/tbourn/vehicle-insurance-api/internal/repo"
)

// --- tiny fake history service ---
type fakeHistory struct{}

func (fakeHistory) DrivingHistory(_ context.Context, id string) (*domain.DrivingHistory, error) {
	return &domain.DrivingHistory{DriverName: "John Doe", PolicyID: id}, nil
}

func (fakeHistory) ClaimsHistory(context.Context, string) (*domain.ClaimsHistory, error) {
	return nil, nil
}

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:routerdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:    "/api/v1",
		RateRPS:        100,
		RateBurst:      50,
		IdempotencyTTL: time.Hour,
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
	}
}

func serve(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), fakeHistory{}, testConfig())

	// /health works
	w := serve(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = serve(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	if w = serve(r, http.MethodGet, "/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	if w = serve(r, http.MethodPost, "/health", ""); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// Swagger is off unless enabled
	if w = serve(r, http.MethodGet, "/swagger/index.html", ""); w.Code != http.StatusNotFound {
		t.Fatalf("swagger disabled expected 404, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	RegisterRoutes(r, newTestDB(t), fakeHistory{}, cfg)

	w := serve(r, http.MethodGet, "/health", "", "Origin", "http://example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	// routes are mounted under the configured base path
	if w := serve(r, http.MethodGet, "/api/v2/quotes", ""); w.Code != http.StatusOK {
		t.Fatalf("GET /api/v2/quotes = %d", w.Code)
	}
}

func TestRegisterRoutes_SwaggerEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	RegisterRoutes(r, newTestDB(t), fakeHistory{}, cfg)

	if w := serve(r, http.MethodGet, "/swagger/index.html", ""); w.Code != http.StatusOK {
		t.Fatalf("GET /swagger/index.html = %d", w.Code)
	}
	w := serve(r, http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /swagger/doc.json = %d", w.Code)
	}
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json: %v", err)
	}
	if doc.BasePath != "/api/v1" || doc.Paths["/bills/{id}"]["put"] == nil || doc.Paths["/claims-history"]["get"] == nil {
		t.Fatalf("unexpected doc: base=%q paths=%d", doc.BasePath, len(doc.Paths))
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, http.MethodPost, "/echo", "0123456789AB") // 12 bytes
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, http.MethodGet, path, "")
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}

// Smoke test that a request traverses the full middleware pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour}
	RegisterRoutes(r, newTestDB(t), fakeHistory{}, cfg)

	w := serve(r, http.MethodGet, "/api/v1/driving-history/D-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET = %d", w.Code)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("Cache-Control=%q", cc)
	}
	var dh domain.DrivingHistory
	if err := json.Unmarshal(w.Body.Bytes(), &dh); err != nil || dh.PolicyID != "D-1" {
		t.Fatalf("body=%s err=%v", w.Body.String(), err)
	}

	// gzip when the client accepts it
	w = serve(r, http.MethodGet, "/api/v1/quotes", "", "Accept-Encoding", "gzip")
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %q", w.Header().Get("Content-Encoding"))
	}
}

func TestRegisterRoutes_BillFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)
	RegisterRoutes(r, db, fakeHistory{}, testConfig())

	// no certificate → 204
	body := `{"bill_no":1001,"policy_no":555,"status":"Completed","amount":"10.00"}`
	if w := serve(r, http.MethodPost, "/api/v1/bills", body); w.Code != http.StatusNoContent {
		t.Fatalf("no certificate = %d", w.Code)
	}

	if err := repo.Create(context.Background(), db, &domain.Certificate{PolicyNo: 555}); err != nil {
		t.Fatalf("seed certificate: %v", err)
	}
	w := serve(r, http.MethodPost, "/api/v1/bills", body)
	if w.Code != http.StatusOK || w.Body.String() != "1001" {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api/v1/bills/555", "")
	if w.Code != http.StatusOK || w.Body.String() != "1001" {
		t.Fatalf("bill no = %d %s", w.Code, w.Body.String())
	}
	if w = serve(r, http.MethodGet, "/api/v1/bills/abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric = %d", w.Code)
	}
}

func TestRegisterRoutes_QuoteIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), fakeHistory{}, testConfig())

	body := `{"vehicle_make":"Toyota","vehicle_model":"Corolla","vehicle_year":2020,"premium_amount":"500.00"}`
	first := serve(r, http.MethodPost, "/api/v1/quotes", body, middleware.HeaderIdempotencyKey, "quote-key-1")
	if first.Code != http.StatusCreated {
		t.Fatalf("first = %d %s", first.Code, first.Body.String())
	}
	if loc := first.Header().Get("Location"); loc != "/api/v1/quotes/1" {
		t.Fatalf("Location=%q", loc)
	}

	second := serve(r, http.MethodPost, "/api/v1/quotes", body, middleware.HeaderIdempotencyKey, "quote-key-1")
	if second.Code != http.StatusCreated || second.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("replay = %d replayed=%q", second.Code, second.Header().Get("Idempotency-Replayed"))
	}

	var items []domain.VehicleInsuranceQuote
	w := serve(r, http.MethodGet, "/api/v1/quotes", "")
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("items=%d err=%v", len(items), err)
	}

	// invalid key is rejected before the handler
	if w := serve(r, http.MethodPost, "/api/v1/quotes", body, middleware.HeaderIdempotencyKey, "bad key!"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad key = %d", w.Code)
	}
}

func Test_idempotencyShim_Proxies(t *testing.T) {
	db := newTestDB(t)
	shim := idempotencyShim{db: db}
	ctx := context.Background()
	now := time.Now().UTC()

	if rec, err := shim.Find(ctx, "POST /api/v1/quotes", "k", now); !errors.Is(err, repo.ErrNotFound) || rec != nil {
		t.Fatalf("miss: rec=%v err=%v", rec, err)
	}
	if err := shim.Save(ctx, "POST /api/v1/quotes", "k", 7, http.StatusCreated, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rec, err := shim.Find(ctx, "POST /api/v1/quotes", "k", now)
	if err != nil || rec == nil || rec.ResourceID != 7 {
		t.Fatalf("hit: rec=%+v err=%v", rec, err)
	}
	// same key under another route is a different record
	if rec, _ := shim.Find(ctx, "POST /api/v1/bills", "k", now); rec != nil {
		t.Fatalf("scope leak: %+v", rec)
	}
}

func TestRegisterRoutes_IdempotencyLookupError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newTestDB(t)
	RegisterRoutes(r, db, fakeHistory{}, testConfig())

	// Force queries to fail by closing the underlying connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	_ = sqlDB.Close()

	// Lookup errors never block the request; 405 comes from NoMethod.
	w := serve(r, http.MethodPost, "/health", "{}", middleware.HeaderIdempotencyKey, "force-error")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
