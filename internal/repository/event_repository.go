package repository

import (
	"context"
	"strings"
	"time"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/schema"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

// EventRepo reads and writes the Events sheet.
type EventRepo struct {
	ws    sheet.Sheet
	cache readCache
}

// NewEventRepo constructs an EventRepo over the given store.
func NewEventRepo(store sheet.Store, ttl time.Duration) *EventRepo {
	return &EventRepo{ws: store.Sheet(schema.SheetEvents), cache: newReadCache(ttl)}
}

// Load returns all registered gigs. The SongIds cell is split into the
// ordered id list; a blank FileLink cell loads as the "not uploaded"
// sentinel so callers never have to treat the two alike.
func (r *EventRepo) Load(ctx context.Context) ([]model.Event, error) {
	if v, ok := r.cache.get(); ok {
		return v.([]model.Event), nil
	}
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return nil, err
	}
	events := []model.Event{}
	if len(rows) > 0 {
		idx := headerIndex(rows[0])
		for _, row := range rows[1:] {
			ev := model.Event{
				ID:              model.NormalizeID(cell(row, idx, "Id")),
				Date:            cell(row, idx, "Date"),
				Time:            cell(row, idx, "Time"),
				Ensemble:        cell(row, idx, "Ensemble"),
				LocationName:    cell(row, idx, "LocationName"),
				Street:          cell(row, idx, "Street"),
				PostalCode:      cell(row, idx, "PostalCode"),
				City:            cell(row, idx, "City"),
				SetlistFilename: cell(row, idx, "SetlistFilename"),
				SongIDs:         model.SplitSongIDs(cell(row, idx, "SongIds")),
				FileLink:        cell(row, idx, "FileLink"),
			}
			if strings.TrimSpace(ev.FileLink) == "" {
				ev.FileLink = model.FileLinkNone
			}
			events = append(events, ev)
		}
	}
	r.cache.put(events)
	return events, nil
}

// GetByID returns the gig whose normalized id equals id.
func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	events, err := r.Load(ctx)
	if err != nil {
		return model.Event{}, err
	}
	for _, ev := range events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return model.Event{}, ErrEventNotFound
}

// Append registers a new gig with a freshly allocated id and returns it.
func (r *EventRepo) Append(ctx context.Context, ev model.Event) (model.Event, error) {
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return model.Event{}, err
	}
	ev.ID = nextID(rows, 0)
	if strings.TrimSpace(ev.FileLink) == "" {
		ev.FileLink = model.FileLinkNone
	}
	row := renderRow(headerOf(rows, schema.EventsHeader), eventValues(ev), nil)
	if err := r.ws.Append(ctx, row); err != nil {
		return model.Event{}, err
	}
	r.cache.invalidate()
	return ev, nil
}

// Update overwrites the field range of the row whose Id cell exactly equals
// id, keeping the Id column itself untouched. ErrEventNotFound when no row
// matches; transport failures stay distinguishable as *sheet.TransportError.
func (r *EventRepo) Update(ctx context.Context, id string, ev model.Event) error {
	row, err := r.ws.FindInColumn(ctx, 1, id)
	if err != nil {
		return err
	}
	if row <= 1 {
		return ErrEventNotFound
	}
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return err
	}
	var prev []string
	if row <= len(rows) {
		prev = rows[row-1]
	}
	rendered := renderRow(headerOf(rows, schema.EventsHeader), eventValues(ev), prev)
	if err := r.ws.UpdateRange(ctx, row, 2, rendered[1:]); err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// SetFileLink records the generated document's link on an already
// persisted event row.
func (r *EventRepo) SetFileLink(ctx context.Context, id, link string) error {
	ev, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ev.FileLink = link
	return r.Update(ctx, id, ev)
}

// InvalidateCache drops the cached table; the next Load reads the sheet.
func (r *EventRepo) InvalidateCache() { r.cache.invalidate() }

// eventValues keys a gig's cells by header name. Writes go through
// renderRow so they land under whatever column order the sheet actually
// has, which may differ from canonical after an additive migration.
func eventValues(ev model.Event) map[string]string {
	return map[string]string{
		"Id":              ev.ID,
		"Date":            ev.Date,
		"Time":            ev.Time,
		"Ensemble":        ev.Ensemble,
		"LocationName":    ev.LocationName,
		"Street":          ev.Street,
		"PostalCode":      ev.PostalCode,
		"City":            ev.City,
		"SetlistFilename": ev.SetlistFilename,
		"SongIds":         model.JoinSongIDs(ev.SongIDs),
		"FileLink":        ev.FileLink,
	}
}
