package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/repository"
)

// LocationHandler exposes the venues sheet. Venues are create-only; past
// events carry their own denormalized venue copy.
type LocationHandler struct {
	Repo *repository.LocationRepo
}

func NewLocationHandler(r *repository.LocationRepo) *LocationHandler {
	return &LocationHandler{Repo: r}
}

// List handles GET /v1/locations.
func (h *LocationHandler) List(c echo.Context) error {
	locs, err := h.Repo.Load(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": locs})
}

// Create handles POST /v1/locations and registers a new venue. All four
// address fields are required so that event snapshots are never partial.
func (h *LocationHandler) Create(c echo.Context) error {
	var body struct {
		Name       string `json:"name"`
		Street     string `json:"street"`
		PostalCode string `json:"postal_code"`
		City       string `json:"city"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	loc := model.Location{
		Name:       strings.TrimSpace(body.Name),
		Street:     strings.TrimSpace(body.Street),
		PostalCode: strings.TrimSpace(body.PostalCode),
		City:       strings.TrimSpace(body.City),
	}
	if loc.Name == "" || loc.Street == "" || loc.PostalCode == "" || loc.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, street, postal_code and city are required"})
	}
	created, err := h.Repo.Append(c.Request().Context(), loc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}
