package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/repository"
)

// RepertoireHandler exposes the repertoire sheet: list the pieces for the
// selection widgets, register new pieces, correct existing ones. There is
// no delete path; ids are never reused.
type RepertoireHandler struct {
	Repo *repository.RepertoireRepo
}

func NewRepertoireHandler(r *repository.RepertoireRepo) *RepertoireHandler {
	return &RepertoireHandler{Repo: r}
}

type repertoireReq struct {
	Title             string `json:"title"`
	ComposerLastName  string `json:"composer_last_name"`
	ComposerFirstName string `json:"composer_first_name"`
	ArrangerLastName  string `json:"arranger_last_name"`
	ArrangerFirstName string `json:"arranger_first_name"`
	Duration          string `json:"duration"`
	Publisher         string `json:"publisher"`
	WorkType          string `json:"work_type"`
	ISWC              string `json:"iswc"`
}

func (r repertoireReq) item() model.RepertoireItem {
	return model.RepertoireItem{
		Title:             strings.TrimSpace(r.Title),
		ComposerLastName:  strings.TrimSpace(r.ComposerLastName),
		ComposerFirstName: strings.TrimSpace(r.ComposerFirstName),
		ArrangerLastName:  strings.TrimSpace(r.ArrangerLastName),
		ArrangerFirstName: strings.TrimSpace(r.ArrangerFirstName),
		Duration:          strings.TrimSpace(r.Duration),
		Publisher:         strings.TrimSpace(r.Publisher),
		WorkType:          strings.TrimSpace(r.WorkType),
		ISWC:              strings.TrimSpace(r.ISWC),
	}
}

// List handles GET /v1/repertoire and returns all pieces with their labels.
func (h *RepertoireHandler) List(c echo.Context) error {
	items, err := h.Repo.Load(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /v1/repertoire and registers a new piece. Title and
// composer last name are required because the label derives from them.
func (h *RepertoireHandler) Create(c echo.Context) error {
	var req repertoireReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	it := req.item()
	if it.Title == "" || it.ComposerLastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and composer_last_name are required"})
	}
	created, err := h.Repo.Append(c.Request().Context(), it)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/repertoire/:id and overwrites a piece's fields in
// place. The id itself is immutable.
func (h *RepertoireHandler) Update(c echo.Context) error {
	id := model.NormalizeID(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req repertoireReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	it := req.item()
	if it.Title == "" || it.ComposerLastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and composer_last_name are required"})
	}
	if it.WorkType == "" {
		it.WorkType = model.DefaultWorkType
	}
	if err := h.Repo.Update(c.Request().Context(), id, it); err != nil {
		return writeError(c, err)
	}
	it.ID = id
	it.Label = it.DeriveLabel()
	return c.JSON(http.StatusOK, it)
}
