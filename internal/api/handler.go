package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepulse/internal/domain/dto"
	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/export"
	"github.com/guttosm/tradepulse/internal/ingestion"
	"github.com/guttosm/tradepulse/internal/service"
	"github.com/guttosm/tradepulse/internal/web"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000

	chartsPath       = "/api/v1/charts/"
	transactionsPath = "/api/v1/transactions"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler provides HTTP handlers for the dashboard page and its artifacts.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Ask the dashboard service for the cached dashboard
//   - Translate domain results into response DTOs
//   - Map source and build failures to HTTP status codes
type Handler struct {
	svc         service.DashboardService
	previewRows int
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.DashboardService): builds and caches the dashboard.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.DashboardService) *Handler {
	return &Handler{svc: svc, previewRows: web.DefaultPreviewRows}
}

// failure maps a service error to a status code and a message.
func failure(err error) (int, string) {
	switch {
	case errors.Is(err, ingestion.ErrSourceNotFound):
		return http.StatusServiceUnavailable, "data file not found"
	case errors.Is(err, service.ErrChartNotFound):
		return http.StatusNotFound, "chart not found"
	default:
		return http.StatusInternalServerError, "failed to build dashboard"
	}
}

func abort(c *gin.Context, err error) {
	status, msg := failure(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}

// Index renders the dashboard page.
//
// Responses:
//   - 200 OK: title, table preview, sample and the 13 charts in order.
//   - 503 Service Unavailable: the data file is missing; the page shows the error and no charts.
//   - 500 Internal Server Error: loading or rendering failed; no charts are shown.
func (h *Handler) Index(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		status, msg := failure(err)
		_ = c.Error(err)
		c.HTML(status, web.TemplateName, web.ErrorPage(msg, err))
		return
	}
	page := web.NewPage(d, func(a models.Artifact) string { return chartsPath + a.ID }, h.previewRows, transactionsPath)
	c.HTML(http.StatusOK, web.TemplateName, page)
}

// ListCharts godoc
// @Summary      List charts
// @Description  Returns the dashboard charts in display order
// @Tags         charts
// @Produce      json
// @Success      200  {object}  dto.ChartListResponse  "Success"
// @Failure      503  {object}  dto.ErrorResponse      "Data file not found"
// @Failure      500  {object}  dto.ErrorResponse      "Build failed"
// @Router       /api/v1/charts [get]
func (h *Handler) ListCharts(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	resp := dto.ChartListResponse{Fingerprint: d.Fingerprint, Rows: d.Table.Len()}
	for i, a := range d.Charts {
		resp.Charts = append(resp.Charts, dto.ChartResponse{
			Position: i + 1,
			ID:       a.ID,
			Title:    a.Title,
			Kind:     string(a.Kind),
			URL:      chartsPath + a.ID,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GetChart godoc
// @Summary      Get chart
// @Description  Returns one chart: a PNG image or a Plotly figure as JSON
// @Tags         charts
// @Produce      png,json
// @Param        id   path      string  true  "Chart id" example(weight_distribution)
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse  "Unknown chart"
// @Failure      503  {object}  dto.ErrorResponse  "Data file not found"
// @Router       /api/v1/charts/{id} [get]
func (h *Handler) GetChart(c *gin.Context) {
	a, err := h.svc.Chart(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

// ListTransactions godoc
// @Summary      List transactions
// @Description  Returns one page of the raw transaction table
// @Tags         table
// @Produce      json
// @Param        page  query     int  false  "1-based page" example(1)
// @Param        size  query     int  false  "Rows per page (max 1000)" example(100)
// @Success      200   {object}  dto.TableResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      503   {object}  dto.ErrorResponse  "Data file not found"
// @Router       /api/v1/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("page must be a positive integer", err))
		return
	}
	size, err := intQuery(c, "size", defaultPageSize)
	if err != nil || size < 1 || size > maxPageSize {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("size must be between 1 and 1000", err))
		return
	}

	p, err := h.svc.Table(c.Request.Context(), page, size)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TableResponse{Header: p.Header, Rows: p.Rows, Page: p.Page, Size: p.Size, Total: p.Total})
}

// GetSample godoc
// @Summary      Get sample
// @Description  Returns the seeded random sample of the transaction table
// @Tags         table
// @Produce      json
// @Success      200  {object}  dto.TableResponse  "Success"
// @Failure      503  {object}  dto.ErrorResponse  "Data file not found"
// @Router       /api/v1/sample [get]
func (h *Handler) GetSample(c *gin.Context) {
	s, err := h.svc.Sample(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TableResponse{Header: s.Header, Rows: s.Records, Page: 1, Size: s.Len(), Total: s.Len()})
}

// ExportWorkbook godoc
// @Summary      Export workbook
// @Description  Returns the table, the sample and the chart count tables as XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      503  {object}  dto.ErrorResponse  "Data file not found"
// @Router       /api/v1/export.xlsx [get]
func (h *Handler) ExportWorkbook(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, d); err != nil {
		abort(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.WorkbookFile+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
