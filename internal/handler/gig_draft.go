package handler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moritzgrimm/gigbook/internal/draft"
	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/repository"
)

// DraftHandler holds the session's draft state and drives the composition
// state machine through the Composer. The state itself is an
// immutable-update value; the handler owns the single mutable slot it
// lives in, which mirrors the one-draft-per-session model of the form UI.
type DraftHandler struct {
	Composer   *draft.Composer
	Repertoire *repository.RepertoireRepo

	mu    sync.Mutex
	state draft.State
}

func NewDraftHandler(c *draft.Composer, r *repository.RepertoireRepo) *DraftHandler {
	return &DraftHandler{Composer: c, Repertoire: r, state: draft.Empty()}
}

// draftView decorates the state with the resolved labels of the selected
// songs so the page can render the selection without a second request.
func (h *DraftHandler) draftView(c echo.Context, s draft.State) echo.Map {
	labels := make([]string, 0, len(s.SongIDs))
	if items, err := h.Repertoire.Load(c.Request().Context()); err == nil {
		byID := make(map[string]string, len(items))
		for _, it := range items {
			byID[it.ID] = it.Label
		}
		for _, id := range s.SongIDs {
			if l, ok := byID[id]; ok {
				labels = append(labels, l)
			}
		}
	}
	return echo.Map{"draft": s, "song_labels": labels}
}

// Get handles GET /v1/draft and returns the current draft.
func (h *DraftHandler) Get(c echo.Context) error {
	h.mu.Lock()
	s := h.state
	h.mu.Unlock()
	return c.JSON(http.StatusOK, h.draftView(c, s))
}

// Start handles POST /v1/draft/start: begin a fresh draft with defaults,
// discarding whatever was in progress.
func (h *DraftHandler) Start(c echo.Context) error {
	h.mu.Lock()
	h.state = draft.StartNew(time.Now())
	s := h.state
	h.mu.Unlock()
	return c.JSON(http.StatusOK, h.draftView(c, s))
}

// LoadExisting handles POST /v1/draft/load/:id: populate the draft from a
// persisted event for editing. Song ids that no longer resolve are dropped
// from the restored selection (and reported as drift by the composer).
func (h *DraftHandler) LoadExisting(c echo.Context) error {
	s, err := h.Composer.LoadExisting(c.Request().Context(), model.NormalizeID(c.Param("id")))
	if err != nil {
		return writeError(c, err)
	}
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
	return c.JSON(http.StatusOK, h.draftView(c, s))
}

// SetFields handles PATCH /v1/draft with a {"field": "value", ...} body.
// Pure draft mutation: values are not validated until commit.
func (h *DraftHandler) SetFields(c echo.Context) error {
	var body map[string]string
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Phase != draft.PhaseEditing {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no draft in progress"})
	}
	next := h.state
	for field, value := range body {
		var err error
		if next, err = next.Set(field, value); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}
	h.state = next
	return c.JSON(http.StatusOK, h.draftView(c, next))
}

// PutSongs handles PUT /v1/draft/songs with {"song_ids": [...]}. Order is
// kept as given: it is the performance order on the setlist.
func (h *DraftHandler) PutSongs(c echo.Context) error {
	var body struct {
		SongIDs []string `json:"song_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ids := make([]string, 0, len(body.SongIDs))
	for _, id := range body.SongIDs {
		ids = append(ids, model.NormalizeID(id))
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Phase != draft.PhaseEditing {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no draft in progress"})
	}
	h.state = h.state.WithSongs(ids)
	return c.JSON(http.StatusOK, h.draftView(c, h.state))
}

// Cancel handles POST /v1/draft/cancel and resets the draft to empty.
func (h *DraftHandler) Cancel(c echo.Context) error {
	h.mu.Lock()
	h.state = draft.Empty()
	h.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

// Commit handles POST /v1/draft/commit. On success the draft auto-resets
// and the committed event is returned. A failed validation or transport
// error leaves the draft untouched for correction/retry. A partial commit
// (row written, document step failed) still resets the draft and reports
// 201 with a warning: the booking record exists and the document can be
// regenerated later.
func (h *DraftHandler) Commit(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, res, err := h.Composer.Commit(c.Request().Context(), h.state)
	h.state = next
	if err != nil {
		var pe *draft.PartialCommitError
		if errors.As(err, &pe) {
			return c.JSON(http.StatusCreated, echo.Map{
				"event":   res.Event,
				"warning": "event saved, but setlist generation failed; regenerate via POST /v1/events/" + res.Event.ID + "/setlist",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}
