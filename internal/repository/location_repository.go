package repository

import (
	"context"
	"time"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/schema"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

// LocationRepo reads and appends the Locations sheet. Venues are
// create-only: past events carry a denormalized copy of the venue, so an
// edit path would silently diverge from history anyway.
type LocationRepo struct {
	ws    sheet.Sheet
	cache readCache
}

// NewLocationRepo constructs a LocationRepo over the given store.
func NewLocationRepo(store sheet.Store, ttl time.Duration) *LocationRepo {
	return &LocationRepo{ws: store.Sheet(schema.SheetLocations), cache: newReadCache(ttl)}
}

// Load returns all venues with normalized ids. Sparse rows load as empty
// strings rather than failing.
func (r *LocationRepo) Load(ctx context.Context) ([]model.Location, error) {
	if v, ok := r.cache.get(); ok {
		return v.([]model.Location), nil
	}
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return nil, err
	}
	locs := []model.Location{}
	if len(rows) > 0 {
		idx := headerIndex(rows[0])
		for _, row := range rows[1:] {
			locs = append(locs, model.Location{
				ID:         model.NormalizeID(cell(row, idx, "Id")),
				Name:       cell(row, idx, "Name"),
				Street:     cell(row, idx, "Street"),
				PostalCode: cell(row, idx, "PostalCode"),
				City:       cell(row, idx, "City"),
			})
		}
	}
	r.cache.put(locs)
	return locs, nil
}

// GetByName returns the first venue whose Name equals name exactly. Names
// are unique by convention only, so the first match wins.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (model.Location, error) {
	locs, err := r.Load(ctx)
	if err != nil {
		return model.Location{}, err
	}
	for _, l := range locs {
		if l.Name == name {
			return l, nil
		}
	}
	return model.Location{}, ErrLocationNotFound
}

// Append registers a new venue with a freshly allocated id.
func (r *LocationRepo) Append(ctx context.Context, l model.Location) (model.Location, error) {
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return model.Location{}, err
	}
	l.ID = nextID(rows, 0)
	row := renderRow(headerOf(rows, schema.LocationsHeader), map[string]string{
		"Id":         l.ID,
		"Name":       l.Name,
		"Street":     l.Street,
		"PostalCode": l.PostalCode,
		"City":       l.City,
	}, nil)
	if err := r.ws.Append(ctx, row); err != nil {
		return model.Location{}, err
	}
	r.cache.invalidate()
	return l, nil
}

// InvalidateCache drops the cached table; the next Load reads the sheet.
func (r *LocationRepo) InvalidateCache() { r.cache.invalidate() }
