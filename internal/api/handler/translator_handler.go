package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// TranslatorHandler serves admin management of translator accounts.
type TranslatorHandler struct {
	service ports.TranslatorService
}

func NewTranslatorHandler(service ports.TranslatorService) *TranslatorHandler {
	return &TranslatorHandler{service: service}
}

type createTranslatorRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type translatorListResponse struct {
	Translators []*domain.User `json:"translators"`
}

// List handles GET /translators.
//
// @Summary      List translators
// @Tags         translators
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  translatorListResponse
// @Failure      403  {object}  map[string]string
// @Router       /translators [get]
func (h *TranslatorHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListTranslators(c.Request().Context(), p)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, translatorListResponse{Translators: users})
}

// Create handles POST /translators.
//
// @Summary      Provision a translator
// @Tags         translators
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTranslatorRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /translators [post]
func (h *TranslatorHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTranslatorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.CreateTranslator(c.Request().Context(), p, ports.CreateTranslatorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Delete handles DELETE /translators/:id. The translator's entries go with
// them.
//
// @Summary      Delete a translator
// @Tags         translators
// @Security     BearerAuth
// @Param        id  path  string  true  "Translator ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /translators/{id} [delete]
func (h *TranslatorHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTranslator(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
