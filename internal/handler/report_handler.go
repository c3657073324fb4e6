package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"entregas/internal/domain"
	"entregas/internal/export"
	"entregas/internal/middleware"
	"entregas/internal/service"
)

const dateLayout = "2006-01-02"

// ReportHandler handles the ledger and dashboard endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseDate reads an optional YYYY-MM-DD query parameter.
func parseDate(c *gin.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' date: must be YYYY-MM-DD", name)
	}
	return &t, nil
}

// parseLedgerFilter extracts the ledger filter from query params. Writes the
// error response and returns false on failure.
func parseLedgerFilter(c *gin.Context) (domain.ReportFilter, bool) {
	tenant, err := middleware.ResolveTenant(c, c.Query("empresa"))
	if err != nil {
		HandleError(c, err)
		return domain.ReportFilter{}, false
	}

	filter := domain.ReportFilter{
		Tenant:       tenant,
		OnCreditOnly: c.Query("fiado") == "true",
	}
	// The date is irrelevant when only credit deliveries are requested.
	if !filter.OnCreditOnly {
		date, err := parseDate(c, "data")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return domain.ReportFilter{}, false
		}
		filter.Date = date
	}
	return filter, true
}

// Ledger handles GET /caderno
// @Summary      Delivery ledger
// @Description  Tenant deliveries, newest first, optionally on one date or only on credit
// @Tags         reports
// @Produce      json
// @Param        empresa query string true "Tenant"
// @Param        data query string false "Exact date (YYYY-MM-DD)"
// @Param        fiado query bool false "Only deliveries on credit; ignores data"
// @Success      200 {array} domain.Delivery
// @Failure      400 {object} APIResponse
// @Router       /caderno [get]
func (h *ReportHandler) Ledger(c *gin.Context) {
	filter, ok := parseLedgerFilter(c)
	if !ok {
		return
	}

	deliveries, err := h.reportService.Ledger(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, deliveries)
}

// Export handles GET /caderno/export
// @Summary      Export the delivery ledger
// @Tags         reports
// @Produce      text/csv
// @Param        format query string false "csv (default) or xlsx"
// @Router       /caderno/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	filter, ok := parseLedgerFilter(c)
	if !ok {
		return
	}

	deliveries, err := h.reportService.Ledger(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Rendered to memory first so a failure can still produce an error response.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, deliveries); err != nil {
		HandleError(c, err)
		return
	}

	day := time.Now()
	if filter.Date != nil {
		day = *filter.Date
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.BuildFilename(filter.Tenant, day, format)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Dashboard handles GET /dashboard-data
// @Summary      Dashboard summary
// @Description  Per-day totals of the reference month, per-month counts and today's totals
// @Tags         reports
// @Produce      json
// @Param        empresa query string false "Tenant; defaults to the configured tenant"
// @Param        data query string false "Reference date (YYYY-MM-DD); defaults to today"
// @Success      200 {object} domain.DashboardSummary
// @Failure      400 {object} APIResponse
// @Router       /dashboard-data [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	tenant, err := middleware.ResolveTenant(c, c.Query("empresa"))
	if err != nil {
		HandleError(c, err)
		return
	}
	ref, err := parseDate(c, "data")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.reportService.Dashboard(c.Request.Context(), tenant, ref)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
