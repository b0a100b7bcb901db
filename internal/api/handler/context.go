package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/api/middleware"
	"github.com/concertshift/timesheet/internal/core/domain"
)

// ctxPrincipal returns the caller resolved by the Auth middleware. A missing
// or unusable principal is reported as domain.ErrUnauthorized before any
// service call is made.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if !p.Authenticated() {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}
