package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/tradepulse/config"
)

const appTestCSV = "Transaction_ID,Country,Product,Import_Export,Quantity,Value,Date,Category,Port,Customs_Code,Weight,Shipping_Method,Supplier,Customer,Invoice_Number,Payment_Terms\n" +
	"t1,India,Tea,Export,10,1200.5,2023-05-14,Food,Mumbai,C1,3.5,Sea,S1,C1,I1,Net 30\n" +
	"t2,United States,Copper,Import,4,800,2023-06-02,Metals,Houston,C2,9.25,Air,S2,C2,I2,Prepaid\n" +
	"t3,India,Steel,Import,7,430.75,2023-06-20,Metals,Chennai,C3,12,Land,S3,C3,I3,Net 60\n"

func useConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = old })
}

func csvConfig(file string) config.Config {
	return config.Config{
		Server:    config.ServerConfig{Port: "8080"},
		Data:      config.DataConfig{Source: config.SourceCSV, File: file, Delimiter: ',', SampleSize: 2, SampleSeed: 55058},
		Render:    config.RenderConfig{Parallel: 2},
		RateLimit: config.RateLimitConfig{RPS: 0},
	}
}

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when the mirror cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	cfg := csvConfig("")
	cfg.Data.Source = config.SourcePostgres
	cfg.Postgres = config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329,
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}
	useConfig(t, cfg)

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_UnknownSource(t *testing.T) {
	cfg := csvConfig("x.csv")
	cfg.Data.Source = "s3"
	useConfig(t, cfg)

	if _, _, err := InitializeApp(); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestInitializeApp_CSVHappyPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "trades.csv")
	if err := os.WriteFile(file, []byte(appTestCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	useConfig(t, csvConfig(file))

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("charts status=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "weight_distribution") {
		t.Fatalf("charts body lacks the histogram: %s", w.Body.String())
	}
}

func TestInitializeApp_MissingFile(t *testing.T) {
	useConfig(t, csvConfig(filepath.Join(t.TempDir(), "absent.csv")))

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("a missing file must not fail startup: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "data file not found") {
		t.Fatalf("unexpected page status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", w.Code)
	}
}

func TestInitializeApp_PostgresHappyPath(t *testing.T) {
	// Override opener to return a sqlmock DB
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	// readyz reads the ingestion log summary
	mock.ExpectQuery(`SELECT COUNT\(\*\), SUM\(row_count\), MAX\(ingested_at\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum", "max"}).AddRow(int64(1), int64(3), time.Now()))

	old := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { postgresOpener = old })

	cfg := csvConfig("")
	cfg.Data.Source = config.SourcePostgres
	useConfig(t, cfg)

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}

	// Call cleanup and ensure it doesn't panic
	mock.ExpectClose()
	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
