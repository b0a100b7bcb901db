package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/api/metrics"
	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// TimeEntryHandler serves the self-service shift endpoints and the admin
// entry views.
type TimeEntryHandler struct {
	service ports.ShiftService
	loc     *time.Location
}

// NewTimeEntryHandler parses date-only query parameters in loc (UTC when nil).
func NewTimeEntryHandler(service ports.ShiftService, loc *time.Location) *TimeEntryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeEntryHandler{service: service, loc: loc}
}

// Create handles POST /time-entries.
//
// With both clockIn and clockOut the entry is recorded retroactively;
// otherwise a shift is opened.
//
// @Summary      Clock in or record a past shift
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTimeEntryRequest  true  "Shift details"
// @Success      201   {object}  domain.TimeEntry
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /time-entries [post]
func (h *TimeEntryHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTimeEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.ClockOut != nil && req.ClockIn == nil {
		return domain.NewValidationError("clockIn", "is required when clockOut is given")
	}

	ctx := c.Request().Context()
	if req.ClockIn != nil && req.ClockOut != nil {
		entry, err := h.service.CreateRetroactiveShift(ctx, p, toRetroactiveInput(req))
		if err != nil {
			return err
		}
		recordClosed(entry, "retroactive")
		return c.JSON(http.StatusCreated, entry)
	}

	entry, err := h.service.OpenShift(ctx, p, toOpenShiftInput(req))
	if err != nil {
		if isConflict(err) {
			metrics.ShiftConflictsTotal.Inc()
		}
		return err
	}
	metrics.ShiftsOpenedTotal.WithLabelValues(string(entry.ShiftType)).Inc()
	return c.JSON(http.StatusCreated, entry)
}

// List handles GET /time-entries.
//
// @Summary      List own time entries
// @Tags         time-entries
// @Produce      json
// @Security     BearerAuth
// @Param        start  query     string  false  "First day (YYYY-MM-DD or RFC 3339)"
// @Param        end    query     string  false  "Last day, inclusive"
// @Success      200    {object}  timeEntryListResponse
// @Failure      400    {object}  map[string]any
// @Router       /time-entries [get]
func (h *TimeEntryHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	r, err := dateRangeQuery(c, h.loc)
	if err != nil {
		return err
	}

	entries, err := h.service.ListOwnEntries(c.Request().Context(), p, r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(entries))
}

// Active handles GET /time-entries/active.
//
// @Summary      Current open shift
// @Tags         time-entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  activeEntryResponse
// @Router       /time-entries/active [get]
func (h *TimeEntryHandler) Active(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	entry, err := h.service.ActiveShift(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activeEntryResponse{Entry: entry})
}

// Close handles PATCH /time-entries/:id. Without a clockOut the current time
// is used.
//
// @Summary      Clock out
// @Tags         time-entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true   "Entry ID"
// @Param        body  body      closeTimeEntryRequest  false  "Clock-out time"
// @Success      200   {object}  domain.TimeEntry
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /time-entries/{id} [patch]
func (h *TimeEntryHandler) Close(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req closeTimeEntryRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return domain.NewValidationError("body", "invalid payload")
		}
	}
	var clockOut time.Time
	if req.ClockOut != nil {
		clockOut = *req.ClockOut
	}

	entry, err := h.service.CloseShift(c.Request().Context(), p, c.Param("id"), clockOut)
	if err != nil {
		return err
	}
	recordClosed(entry, "live")
	return c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /time-entries/:id.
//
// @Summary      Delete own time entry
// @Tags         time-entries
// @Security     BearerAuth
// @Param        id  path  string  true  "Entry ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /time-entries/{id} [delete]
func (h *TimeEntryHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteOwnEntry(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAll handles GET /admin/time-entries. Open entries are included.
//
// @Summary      List all time entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        start  query     string  false  "First day (YYYY-MM-DD or RFC 3339)"
// @Param        end    query     string  false  "Last day, inclusive"
// @Success      200    {object}  timeEntryListResponse
// @Failure      403    {object}  map[string]string
// @Router       /admin/time-entries [get]
func (h *TimeEntryHandler) ListAll(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	r, err := dateRangeQuery(c, h.loc)
	if err != nil {
		return err
	}

	entries, err := h.service.ListAllEntries(c.Request().Context(), p, r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(entries))
}

// Edit handles PUT /admin/time-entries/:id.
//
// @Summary      Correct a time entry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Entry ID"
// @Param        body  body      editTimeEntryRequest  true  "Corrections"
// @Success      200   {object}  domain.TimeEntry
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /admin/time-entries/{id} [put]
func (h *TimeEntryHandler) Edit(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req editTimeEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.service.EditEntry(c.Request().Context(), p, c.Param("id"), toEditInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

func recordClosed(e *domain.TimeEntry, mode string) {
	st := string(e.ShiftType)
	metrics.ShiftsClosedTotal.WithLabelValues(st, mode).Inc()
	if e.RoundedHours != nil {
		metrics.BillableHoursTotal.WithLabelValues(st).Add(*e.RoundedHours)
	}
}

func isConflict(err error) bool {
	return errors.Is(err, domain.ErrActiveShiftExists)
}
