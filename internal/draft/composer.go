package draft

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/repository"
)

// ValidationError reports the draft fields that block a commit. The draft
// itself is untouched when validation fails.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "draft invalid: " + strings.Join(e.Problems, "; ")
}

// PartialCommitError means the event row was persisted but the setlist
// document step failed afterwards. This asymmetry is deliberate: the gig
// record matters more than the document, which can be regenerated from the
// persisted row at any time, while a lost row cannot be reconstructed from
// a document.
type PartialCommitError struct {
	Event model.Event
	Err   error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("event %s committed but setlist generation failed: %v", e.Event.ID, e.Err)
}
func (e *PartialCommitError) Unwrap() error { return e.Err }

// SetlistGenerator renders the setlist document for a committed gig and
// returns a link (path or URL) to the artifact.
type SetlistGenerator interface {
	Generate(ctx context.Context, ev model.Event, songs []model.RepertoireItem) (string, error)
}

// Notifier receives observability events. Implementations must be
// best-effort; Composer never lets a notification failure affect a commit.
type Notifier interface {
	GigCommitted(ctx context.Context, ev model.Event)
	// RepertoireDrift fires when a stored song id no longer resolves
	// against the repertoire sheet, so operators can detect drift between
	// the two sheets instead of selections shrinking silently.
	RepertoireDrift(ctx context.Context, eventID string, missingIDs []string)
}

// Composer owns the transitions of the draft state machine that touch the
// store: loading an existing gig into a draft and committing a draft.
type Composer struct {
	Events     *repository.EventRepo
	Locations  *repository.LocationRepo
	Repertoire *repository.RepertoireRepo
	Generator  SetlistGenerator // optional
	Notify     Notifier         // optional
}

// Result of a successful (or partially successful) commit.
type Result struct {
	Event       model.Event `json:"event"`
	SetlistFile string      `json:"setlist_file,omitempty"`
}

// LoadExisting populates a draft from a persisted event. Each stored song
// id is resolved against the current repertoire; ids with no matching row
// are dropped from the restored selection and reported as drift.
func (c *Composer) LoadExisting(ctx context.Context, eventID string) (State, error) {
	ev, err := c.Events.GetByID(ctx, eventID)
	if err != nil {
		return Empty(), err
	}
	items, err := c.Repertoire.Load(ctx)
	if err != nil {
		return Empty(), err
	}
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}
	var kept, missing []string
	for _, id := range ev.SongIDs {
		if known[id] {
			kept = append(kept, id)
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		log.Printf("draft: event %s references %d unknown song id(s): %s",
			eventID, len(missing), strings.Join(missing, ","))
		if c.Notify != nil {
			c.Notify.RepertoireDrift(ctx, eventID, missing)
		}
	}
	return State{
		Phase:     PhaseEditing,
		EventID:   ev.ID,
		Date:      ev.Date,
		Time:      ev.Time,
		Ensemble:  ev.Ensemble,
		VenueName: ev.LocationName,
		SongIDs:   kept,
	}, nil
}

// Commit validates the draft, persists the gig and returns the reset state.
// The sequence is: validate; register a new venue first when one was
// entered; snapshot the venue into the event row; join the song ids in
// selection order; update when editing an existing event, otherwise
// allocate an id and append; then optionally generate the setlist document.
//
// On validation failure the input state is returned unchanged. On a
// transport failure nothing was written and the state is also returned
// unchanged so the user can retry. A *PartialCommitError still returns the
// reset state: the row is committed and only the document is missing.
func (c *Composer) Commit(ctx context.Context, s State) (State, Result, error) {
	if err := c.validate(s); err != nil {
		return s, Result{}, err
	}

	venue, err := c.resolveVenue(ctx, s)
	if err != nil {
		return s, Result{}, err
	}

	ev := model.Event{
		ID:           s.EventID,
		Date:         s.Date,
		Time:         s.Time,
		Ensemble:     s.Ensemble,
		LocationName: venue.Name,
		Street:       venue.Street,
		PostalCode:   venue.PostalCode,
		City:         venue.City,
		SongIDs:      append([]string(nil), s.SongIDs...),
		FileLink:     model.FileLinkNone,
	}
	ev.SetlistFilename = model.SetlistFilename(ev.Ensemble, ev.Date, ev.City)

	if s.EventID != "" {
		// Keep a previously uploaded document link on edit. A failed read
		// here aborts the commit: writing through it would stamp the row
		// with the "no document" sentinel.
		prev, err := c.Events.GetByID(ctx, s.EventID)
		if err != nil {
			return s, Result{}, err
		}
		ev.FileLink = prev.FileLink
		if err := c.Events.Update(ctx, s.EventID, ev); err != nil {
			return s, Result{}, err
		}
	} else {
		ev, err = c.Events.Append(ctx, ev)
		if err != nil {
			return s, Result{}, err
		}
	}

	if c.Notify != nil {
		c.Notify.GigCommitted(ctx, ev)
	}

	res := Result{Event: ev}
	next := Empty()

	if c.Generator != nil {
		songs, genErr := c.resolveSongs(ctx, ev.SongIDs)
		var link string
		if genErr == nil {
			link, genErr = c.Generator.Generate(ctx, ev, songs)
		}
		if genErr != nil {
			// The row is committed and stays committed.
			return next, res, &PartialCommitError{Event: ev, Err: genErr}
		}
		if err := c.Events.SetFileLink(ctx, ev.ID, link); err != nil {
			return next, res, &PartialCommitError{Event: ev, Err: err}
		}
		ev.FileLink = link
		res.Event = ev
		res.SetlistFile = link
		next.LastSetlist = ev.SetlistFilename
	}
	return next, res, nil
}

func (c *Composer) validate(s State) error {
	var problems []string
	if s.Phase != PhaseEditing {
		problems = append(problems, "no draft in progress")
	}
	if _, err := time.Parse(model.DateLayout, s.Date); err != nil {
		problems = append(problems, "date must be DD.MM.YYYY")
	}
	if _, err := time.Parse(model.TimeLayout, s.Time); err != nil {
		problems = append(problems, "time must be HH:MM")
	}
	if !model.ValidEnsemble(s.Ensemble) {
		problems = append(problems, "unknown ensemble")
	}
	if s.wantsNewVenue() {
		if s.NewVenueName == "" || s.NewVenueStreet == "" ||
			s.NewVenuePostal == "" || s.NewVenueCity == "" {
			problems = append(problems, "new venue must be fully specified")
		}
	} else if s.VenueName == "" {
		problems = append(problems, "venue required")
	}
	if len(s.SongIDs) == 0 {
		problems = append(problems, "at least one song required")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// resolveVenue returns the venue snapshot for the draft, registering a new
// venue row first when the draft entered one.
func (c *Composer) resolveVenue(ctx context.Context, s State) (model.Location, error) {
	if s.wantsNewVenue() {
		return c.Locations.Append(ctx, model.Location{
			Name:       s.NewVenueName,
			Street:     s.NewVenueStreet,
			PostalCode: s.NewVenuePostal,
			City:       s.NewVenueCity,
		})
	}
	return c.Locations.GetByName(ctx, s.VenueName)
}

// resolveSongs maps the ordered id list onto repertoire items, skipping ids
// that no longer resolve.
func (c *Composer) resolveSongs(ctx context.Context, ids []string) ([]model.RepertoireItem, error) {
	items, err := c.Repertoire.Load(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.RepertoireItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	var songs []model.RepertoireItem
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			songs = append(songs, it)
		}
	}
	return songs, nil
}

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPartialCommit reports whether err is a partial commit.
func IsPartialCommit(err error) bool {
	var pe *PartialCommitError
	return errors.As(err, &pe)
}
