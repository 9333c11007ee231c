package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/draft"
	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/repository"
)

// EventHandler exposes the committed gigs. Events are written through the
// draft endpoints; this handler reads them and re-renders setlist
// documents for rows whose document step failed or whose template changed.
type EventHandler struct {
	Events     *repository.EventRepo
	Repertoire *repository.RepertoireRepo
	Generator  draft.SetlistGenerator
}

func NewEventHandler(e *repository.EventRepo, r *repository.RepertoireRepo, g draft.SetlistGenerator) *EventHandler {
	return &EventHandler{Events: e, Repertoire: r, Generator: g}
}

// List handles GET /v1/events.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Events.Load(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	ev, err := h.Events.GetByID(c.Request().Context(), model.NormalizeID(c.Param("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// RegenerateSetlist handles POST /v1/events/:id/setlist. The document is
// rebuilt from the persisted row, which is why a failed document step at
// commit time is recoverable and never rolls the row back.
func (h *EventHandler) RegenerateSetlist(c echo.Context) error {
	if h.Generator == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "setlist generation not configured"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, model.NormalizeID(c.Param("id")))
	if err != nil {
		return writeError(c, err)
	}

	items, err := h.Repertoire.Load(ctx)
	if err != nil {
		return writeError(c, err)
	}
	byID := make(map[string]model.RepertoireItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	var songs []model.RepertoireItem
	for _, id := range ev.SongIDs {
		if it, ok := byID[id]; ok {
			songs = append(songs, it)
		}
	}

	link, err := h.Generator.Generate(ctx, ev, songs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "setlist generation failed"})
	}
	if err := h.Events.SetFileLink(ctx, ev.ID, link); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"file_link": link, "setlist_filename": ev.SetlistFilename})
}
