package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// ConcertHandler serves the concert registry.
type ConcertHandler struct {
	service ports.ConcertService
}

func NewConcertHandler(service ports.ConcertService) *ConcertHandler {
	return &ConcertHandler{service: service}
}

type createConcertRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type updateConcertRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type concertListResponse struct {
	Concerts []*domain.Concert `json:"concerts"`
}

// List handles GET /concerts. Translators always get the active-only view.
//
// @Summary      List concerts
// @Tags         concerts
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active concerts"
// @Success      200     {object}  concertListResponse
// @Router       /concerts [get]
func (h *ConcertHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	activeOnly, err := boolQuery(c, "active")
	if err != nil {
		return err
	}

	concerts, err := h.service.ListConcerts(c.Request().Context(), p, activeOnly)
	if err != nil {
		return err
	}
	if concerts == nil {
		concerts = []*domain.Concert{}
	}
	return c.JSON(http.StatusOK, concertListResponse{Concerts: concerts})
}

// Create handles POST /concerts. New concerts are active unless isActive is
// false.
//
// @Summary      Create a concert
// @Tags         concerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createConcertRequest  true  "Concert"
// @Success      201   {object}  domain.Concert
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]string
// @Router       /concerts [post]
func (h *ConcertHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createConcertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	concert, err := h.service.CreateConcert(c.Request().Context(), p, req.Name, active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, concert)
}

// Update handles PATCH /concerts/:id: toggle isActive or rename.
//
// @Summary      Update a concert
// @Tags         concerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Concert ID"
// @Param        body  body      updateConcertRequest  true  "Fields to change"
// @Success      200   {object}  domain.Concert
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /concerts/{id} [patch]
func (h *ConcertHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateConcertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	concert, err := h.service.UpdateConcert(c.Request().Context(), p, c.Param("id"), ports.ConcertUpdate{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, concert)
}
