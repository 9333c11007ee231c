// Package draft models the gig currently being composed: an in-memory,
// session-local working set that is mutated across form interactions and
// only turned into an Events row by Composer.Commit. State is an
// immutable-update value; every operation returns a new State and never
// touches the receiver, so a failed commit observably leaves the draft
// exactly as it was.
package draft

import (
	"fmt"
	"time"

	"github.com/moritzgrimm/gigbook/internal/model"
)

// Phase of the composition state machine.
type Phase string

const (
	PhaseEmpty     Phase = "empty"
	PhaseEditing   Phase = "editing"
	PhaseSubmitted Phase = "submitted"
)

// Defaults applied by StartNew.
const (
	defaultTime     = "19:00"
	defaultEnsemble = model.EnsembleTutti
)

// State is the draft of one gig. VenueName selects an existing venue;
// setting any NewVenue* field switches the draft to registering a new venue
// at commit time. SongIDs keeps selection order, which is the performance
// order. EventID is set when an existing gig was loaded for editing.
type State struct {
	Phase    Phase  `json:"phase"`
	EventID  string `json:"event_id,omitempty"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Ensemble string `json:"ensemble"`

	VenueName      string `json:"venue_name"`
	NewVenueName   string `json:"new_venue_name"`
	NewVenueStreet string `json:"new_venue_street"`
	NewVenuePostal string `json:"new_venue_postal_code"`
	NewVenueCity   string `json:"new_venue_city"`

	SongIDs []string `json:"song_ids"`

	// LastSetlist carries the filename of a just-generated document across
	// the auto-reset so the page can still display it.
	LastSetlist string `json:"last_setlist,omitempty"`
}

// Empty returns the reset state.
func Empty() State { return State{Phase: PhaseEmpty} }

// StartNew begins a fresh draft with the tool's defaults: today's date,
// the usual start time, the full ensemble, no venue, no songs.
func StartNew(now time.Time) State {
	return State{
		Phase:    PhaseEditing,
		Date:     now.Format(model.DateLayout),
		Time:     defaultTime,
		Ensemble: defaultEnsemble,
	}
}

// Set returns a copy of the state with one scalar field replaced. It is a
// pure mutation: no side effects and no validation at set time; commit is
// where invalid values are rejected. Unknown field names are an error so
// that a typo in the form wiring surfaces immediately.
func (s State) Set(field, value string) (State, error) {
	next := s.clone()
	switch field {
	case "date":
		next.Date = value
	case "time":
		next.Time = value
	case "ensemble":
		next.Ensemble = value
	case "venue_name":
		next.VenueName = value
	case "new_venue_name":
		next.NewVenueName = value
	case "new_venue_street":
		next.NewVenueStreet = value
	case "new_venue_postal_code":
		next.NewVenuePostal = value
	case "new_venue_city":
		next.NewVenueCity = value
	default:
		return s, fmt.Errorf("draft: unknown field %q", field)
	}
	return next, nil
}

// WithSongs replaces the song selection, preserving the given order.
func (s State) WithSongs(ids []string) State {
	next := s.clone()
	next.SongIDs = append([]string(nil), ids...)
	return next
}

// wantsNewVenue reports whether any new-venue field has been entered.
func (s State) wantsNewVenue() bool {
	return s.NewVenueName != "" || s.NewVenueStreet != "" ||
		s.NewVenuePostal != "" || s.NewVenueCity != ""
}

func (s State) clone() State {
	next := s
	next.SongIDs = append([]string(nil), s.SongIDs...)
	return next
}
