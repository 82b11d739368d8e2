package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepulse/internal/domain/dto"
	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/ingestion"
	"github.com/guttosm/tradepulse/internal/service"
	"github.com/guttosm/tradepulse/internal/web"
)

type mockDashboardService struct {
	d   *models.Dashboard
	err error
}

func (m *mockDashboardService) Dashboard(_ context.Context) (*models.Dashboard, error) {
	return m.d, m.err
}

func (m *mockDashboardService) Build(ctx context.Context) (*models.Dashboard, error) {
	return m.Dashboard(ctx)
}

func (m *mockDashboardService) Chart(_ context.Context, id string) (models.Artifact, error) {
	if m.err != nil {
		return models.Artifact{}, m.err
	}
	a, ok := m.d.Chart(id)
	if !ok {
		return models.Artifact{}, fmt.Errorf("%w: %s", service.ErrChartNotFound, id)
	}
	return a, nil
}

func (m *mockDashboardService) Table(_ context.Context, page, size int) (models.TablePage, error) {
	if m.err != nil {
		return models.TablePage{}, m.err
	}
	return models.TablePage{
		Header: m.d.Table.Header,
		Rows:   m.d.Table.Paginate(page, size),
		Page:   page,
		Size:   size,
		Total:  m.d.Table.Len(),
	}, nil
}

func (m *mockDashboardService) Sample(_ context.Context) (*models.Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.d.Sample, nil
}

func (m *mockDashboardService) Ready(_ context.Context) error { return m.err }

var _ service.DashboardService = (*mockDashboardService)(nil)

func testDashboard() *models.Dashboard {
	table := &models.Table{
		Source: "trades.csv",
		Header: []string{"Transaction_ID", "Country"},
	}
	for i := 0; i < 5; i++ {
		table.Records = append(table.Records, []string{fmt.Sprintf("t%d", i), "IN"})
		table.Transactions = append(table.Transactions, models.Transaction{TransactionID: fmt.Sprintf("t%d", i), Country: "IN"})
	}
	return &models.Dashboard{
		Fingerprint: "fp-1",
		BuiltAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Table:       table,
		Sample:      table.Subset([]int{4, 1}),
		Charts: []models.Artifact{
			{ID: "value_by_category", Title: "Box Plot of Transaction Values by Category", Kind: models.KindImage, ContentType: "image/png", Data: []byte("\x89PNG")},
			{ID: "trade_volume_by_country", Title: "Trade Volume by Country", Kind: models.KindFigure, ContentType: "application/json", Data: []byte(`{"data":[],"layout":{}}`)},
		},
	}
}

func setupRouterWithMock(s service.DashboardService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	r.SetHTMLTemplate(web.Template())
	r.GET("/", h.Index)
	v1 := r.Group("/api/v1")
	v1.GET("/charts", h.ListCharts)
	v1.GET("/charts/:id", h.GetChart)
	v1.GET("/transactions", h.ListTransactions)
	v1.GET("/sample", h.GetSample)
	v1.GET("/export.xlsx", h.ExportWorkbook)
	return r
}

func TestListCharts(t *testing.T) {
	r := setupRouterWithMock(&mockDashboardService{d: testDashboard()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out dto.ChartListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Fingerprint != "fp-1" || out.Rows != 5 || len(out.Charts) != 2 {
		t.Fatalf("unexpected body: %+v", out)
	}
	first := out.Charts[0]
	if first.Position != 1 || first.ID != "value_by_category" || first.Kind != "image" || first.URL != "/api/v1/charts/value_by_category" {
		t.Fatalf("unexpected first chart: %+v", first)
	}
	if out.Charts[1].Position != 2 || out.Charts[1].Kind != "figure" {
		t.Fatalf("unexpected second chart: %+v", out.Charts[1])
	}
}

func TestGetChart_TableDriven(t *testing.T) {
	cases := []struct {
		name        string
		svc         *mockDashboardService
		path        string
		status      int
		contentType string
	}{
		{name: "png", svc: &mockDashboardService{d: testDashboard()}, path: "/api/v1/charts/value_by_category", status: http.StatusOK, contentType: "image/png"},
		{name: "figure", svc: &mockDashboardService{d: testDashboard()}, path: "/api/v1/charts/trade_volume_by_country", status: http.StatusOK, contentType: "application/json"},
		{name: "unknown", svc: &mockDashboardService{d: testDashboard()}, path: "/api/v1/charts/nope", status: http.StatusNotFound, contentType: "application/json"},
		{name: "missing source", svc: &mockDashboardService{err: ingestion.ErrSourceNotFound}, path: "/api/v1/charts/value_by_category", status: http.StatusServiceUnavailable, contentType: "application/json"},
		{name: "build failure", svc: &mockDashboardService{err: errors.New("render failed")}, path: "/api/v1/charts/value_by_category", status: http.StatusInternalServerError, contentType: "application/json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tc.contentType) {
				t.Fatalf("content type %q, want %q", ct, tc.contentType)
			}
		})
	}
}

func TestGetChart_MissingSourceMessage(t *testing.T) {
	r := setupRouterWithMock(&mockDashboardService{err: fmt.Errorf("%w: ./data/import_export.csv", ingestion.ErrSourceNotFound)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))

	var out dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Message != "data file not found" || !strings.Contains(out.ErrorDetails, "import_export.csv") {
		t.Fatalf("unexpected error body: %+v", out)
	}
}

func TestListTransactions_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockDashboardService
		query  string
		status int
		assert func(t *testing.T, out dto.TableResponse)
	}{
		{
			name:   "defaults",
			svc:    &mockDashboardService{d: testDashboard()},
			query:  "/api/v1/transactions",
			status: http.StatusOK,
			assert: func(t *testing.T, out dto.TableResponse) {
				if out.Page != 1 || out.Size != defaultPageSize || out.Total != 5 || len(out.Rows) != 5 {
					t.Fatalf("unexpected page: %+v", out)
				}
			},
		},
		{
			name:   "second page",
			svc:    &mockDashboardService{d: testDashboard()},
			query:  "/api/v1/transactions?page=2&size=2",
			status: http.StatusOK,
			assert: func(t *testing.T, out dto.TableResponse) {
				if len(out.Rows) != 2 || out.Rows[0][0] != "t2" || out.Rows[1][0] != "t3" {
					t.Fatalf("unexpected rows: %+v", out.Rows)
				}
			},
		},
		{
			name:   "past the end",
			svc:    &mockDashboardService{d: testDashboard()},
			query:  "/api/v1/transactions?page=9&size=2",
			status: http.StatusOK,
			assert: func(t *testing.T, out dto.TableResponse) {
				if len(out.Rows) != 0 || out.Total != 5 {
					t.Fatalf("unexpected page: %+v", out)
				}
			},
		},
		{
			name:   "huge page",
			svc:    &mockDashboardService{d: testDashboard()},
			query:  "/api/v1/transactions?page=9223372036854775807&size=1000",
			status: http.StatusOK,
			assert: func(t *testing.T, out dto.TableResponse) {
				if len(out.Rows) != 0 || out.Total != 5 || out.Page != math.MaxInt64 {
					t.Fatalf("unexpected page: %+v", out)
				}
			},
		},
		{name: "page zero", svc: &mockDashboardService{d: testDashboard()}, query: "/api/v1/transactions?page=0", status: http.StatusBadRequest},
		{name: "page not a number", svc: &mockDashboardService{d: testDashboard()}, query: "/api/v1/transactions?page=x", status: http.StatusBadRequest},
		{name: "size too large", svc: &mockDashboardService{d: testDashboard()}, query: "/api/v1/transactions?size=1001", status: http.StatusBadRequest},
		{name: "missing source", svc: &mockDashboardService{err: ingestion.ErrSourceNotFound}, query: "/api/v1/transactions", status: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				var out dto.TableResponse
				if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				tc.assert(t, out)
			}
		})
	}
}

func TestGetSample(t *testing.T) {
	r := setupRouterWithMock(&mockDashboardService{d: testDashboard()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sample", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out dto.TableResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Total != 2 || out.Rows[0][0] != "t4" || out.Rows[1][0] != "t1" {
		t.Fatalf("unexpected sample: %+v", out)
	}
}

func TestExportWorkbook(t *testing.T) {
	r := setupRouterWithMock(&mockDashboardService{d: testDashboard()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export.xlsx", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("content type %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "tradepulse.xlsx") {
		t.Fatalf("content disposition %q", w.Header().Get("Content-Disposition"))
	}
	// XLSX is a zip archive.
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Fatalf("body is not a zip archive")
	}
}

func TestIndex(t *testing.T) {
	cases := []struct {
		name     string
		svc      *mockDashboardService
		status   int
		contains []string
		absent   []string
	}{
		{
			name:     "dashboard",
			svc:      &mockDashboardService{d: testDashboard()},
			status:   http.StatusOK,
			contains: []string{web.DefaultTitle, "Box Plot of Transaction Values by Category", "/api/v1/charts/value_by_category", "figure-trade_volume_by_country"},
		},
		{
			name:     "missing source",
			svc:      &mockDashboardService{err: fmt.Errorf("%w: ./data/import_export.csv", ingestion.ErrSourceNotFound)},
			status:   http.StatusServiceUnavailable,
			contains: []string{"data file not found"},
			absent:   []string{"/api/v1/charts/"},
		},
		{
			name:     "build failure",
			svc:      &mockDashboardService{err: errors.New("render failed")},
			status:   http.StatusInternalServerError,
			contains: []string{"failed to build dashboard"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			body := w.Body.String()
			for _, s := range tc.contains {
				if !strings.Contains(body, s) {
					t.Fatalf("body does not contain %q", s)
				}
			}
			for _, s := range tc.absent {
				if strings.Contains(body, s) {
					t.Fatalf("body unexpectedly contains %q", s)
				}
			}
		})
	}
}
