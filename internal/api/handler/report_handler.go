package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/api/metrics"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// ReportHandler streams the admin CSV exports.
type ReportHandler struct {
	service ports.ReportService
	loc     *time.Location
}

// NewReportHandler parses date-only query parameters in loc (UTC when nil).
func NewReportHandler(service ports.ReportService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{service: service, loc: loc}
}

// Global handles GET /admin/reports/download.
//
// @Summary      Global timesheet CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        start  query  string  true  "First day (YYYY-MM-DD)"
// @Param        end    query  string  true  "Last day, inclusive"
// @Success      200    {file}  file
// @Failure      400    {object}  map[string]any
// @Failure      403    {object}  map[string]string
// @Router       /admin/reports/download [get]
func (h *ReportHandler) Global(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	r, err := dateRangeQuery(c, h.loc)
	if err != nil {
		return err
	}

	report, err := h.service.GlobalReport(c.Request().Context(), p, r)
	if err != nil {
		return err
	}
	return writeCSV(c, "global", report)
}

// Concert handles GET /concerts/:id/report.
//
// @Summary      Per-concert CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id   path    string  true  "Concert ID"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /concerts/{id}/report [get]
func (h *ReportHandler) Concert(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	report, err := h.service.ConcertReport(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return writeCSV(c, "concert", report)
}

// Translator handles GET /translators/:id/report.
//
// @Summary      Per-translator CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id     path   string  true  "Translator ID"
// @Param        start  query  string  true  "First day (YYYY-MM-DD)"
// @Param        end    query  string  true  "Last day, inclusive"
// @Success      200    {file}  file
// @Failure      400    {object}  map[string]any
// @Failure      404    {object}  map[string]string
// @Router       /translators/{id}/report [get]
func (h *ReportHandler) Translator(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	r, err := dateRangeQuery(c, h.loc)
	if err != nil {
		return err
	}

	report, err := h.service.TranslatorReport(c.Request().Context(), p, c.Param("id"), r)
	if err != nil {
		return err
	}
	return writeCSV(c, "translator", report)
}

func writeCSV(c echo.Context, kind string, report *ports.Report) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(report.Header); err != nil {
		return err
	}
	if err := w.WriteAll(report.Rows); err != nil {
		return err
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(kind).Inc()
	metrics.ReportRows.WithLabelValues(kind).Observe(float64(len(report.Rows)))
	return nil
}
