package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/core/domain"
)

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date (midnight in loc) or an RFC 3339
// timestamp. An empty value yields the zero time.
func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(field, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

// dateRangeQuery reads the start and end query parameters.
func dateRangeQuery(c echo.Context, loc *time.Location) (domain.DateRange, error) {
	from, err := parseDate("start", c.QueryParam("start"), loc)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := parseDate("end", c.QueryParam("end"), loc)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.DateRange{From: from, To: to}, nil
}

func boolQuery(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError(name, "must be true or false")
	}
	return v, nil
}
