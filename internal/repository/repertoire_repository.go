package repository

import (
	"context"
	"strings"
	"time"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/schema"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

// RepertoireRepo reads and writes the Repertoire sheet. Loads are served
// from a process-local TTL cache that every write invalidates.
type RepertoireRepo struct {
	ws    sheet.Sheet
	cache readCache
}

// NewRepertoireRepo constructs a RepertoireRepo over the given store. A
// non-positive ttl falls back to DefaultCacheTTL.
func NewRepertoireRepo(store sheet.Store, ttl time.Duration) *RepertoireRepo {
	return &RepertoireRepo{ws: store.Sheet(schema.SheetRepertoire), cache: newReadCache(ttl)}
}

// Load returns every repertoire item with normalized ids and derived labels.
// Sparse rows never fail a load; missing cells become "". The only error
// path is an unreachable store.
func (r *RepertoireRepo) Load(ctx context.Context) ([]model.RepertoireItem, error) {
	if v, ok := r.cache.get(); ok {
		return v.([]model.RepertoireItem), nil
	}
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return nil, err
	}
	items := r.itemsFromRows(rows)
	r.cache.put(items)
	return items, nil
}

func (r *RepertoireRepo) itemsFromRows(rows [][]string) []model.RepertoireItem {
	items := []model.RepertoireItem{}
	if len(rows) == 0 {
		return items
	}
	idx := headerIndex(rows[0])
	for _, row := range rows[1:] {
		it := model.RepertoireItem{
			ID:                model.NormalizeID(cell(row, idx, "Id")),
			Title:             cell(row, idx, "Title"),
			ComposerLastName:  cell(row, idx, "ComposerLastName"),
			ComposerFirstName: cell(row, idx, "ComposerFirstName"),
			ArrangerLastName:  cell(row, idx, "ArrangerLastName"),
			ArrangerFirstName: cell(row, idx, "ArrangerFirstName"),
			Duration:          cell(row, idx, "Duration"),
			Publisher:         cell(row, idx, "Publisher"),
			WorkType:          cell(row, idx, "WorkType"),
			ISWC:              cell(row, idx, "ISWC"),
		}
		it.Label = it.DeriveLabel()
		items = append(items, it)
	}
	return items
}

// GetByID returns the item whose normalized id equals id.
func (r *RepertoireRepo) GetByID(ctx context.Context, id string) (model.RepertoireItem, error) {
	items, err := r.Load(ctx)
	if err != nil {
		return model.RepertoireItem{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.RepertoireItem{}, ErrRepertoireNotFound
}

// Append registers a new piece: allocate the next id from a fresh sheet
// read, append the row, invalidate the cache. The returned item carries the
// assigned id and derived label. Allocation and append are not atomic; see
// nextID for the accepted race.
func (r *RepertoireRepo) Append(ctx context.Context, it model.RepertoireItem) (model.RepertoireItem, error) {
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return model.RepertoireItem{}, err
	}
	it.ID = nextID(rows, 0)
	if strings.TrimSpace(it.WorkType) == "" {
		it.WorkType = model.DefaultWorkType
	}
	row := renderRow(headerOf(rows, schema.RepertoireHeader), repertoireValues(it), nil)
	if err := r.ws.Append(ctx, row); err != nil {
		return model.RepertoireItem{}, err
	}
	r.cache.invalidate()
	it.Label = it.DeriveLabel()
	return it, nil
}

// Update locates the single row whose Id cell exactly equals id and
// overwrites its field range, leaving the Id column untouched. The scan is
// an exact cell match, so updating id "3" can never touch the row for "13".
// Returns ErrRepertoireNotFound when no row matches; transport failures
// propagate as *sheet.TransportError so callers can retry them.
func (r *RepertoireRepo) Update(ctx context.Context, id string, it model.RepertoireItem) error {
	row, err := r.ws.FindInColumn(ctx, 1, id)
	if err != nil {
		return err
	}
	if row <= 1 { // 0 = no match; 1 would be the header row
		return ErrRepertoireNotFound
	}
	rows, err := r.ws.Rows(ctx)
	if err != nil {
		return err
	}
	var prev []string
	if row <= len(rows) {
		prev = rows[row-1]
	}
	rendered := renderRow(headerOf(rows, schema.RepertoireHeader), repertoireValues(it), prev)
	if err := r.ws.UpdateRange(ctx, row, 2, rendered[1:]); err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// InvalidateCache drops the cached table; the next Load reads the sheet.
func (r *RepertoireRepo) InvalidateCache() { r.cache.invalidate() }

// repertoireValues keys an item's cells by header name for renderRow. The
// derived Label is intentionally absent: it is never persisted.
func repertoireValues(it model.RepertoireItem) map[string]string {
	return map[string]string{
		"Id":                it.ID,
		"Title":             it.Title,
		"ComposerLastName":  it.ComposerLastName,
		"ComposerFirstName": it.ComposerFirstName,
		"ArrangerLastName":  it.ArrangerLastName,
		"ArrangerFirstName": it.ArrangerFirstName,
		"Duration":          it.Duration,
		"Publisher":         it.Publisher,
		"WorkType":          it.WorkType,
		"ISWC":              it.ISWC,
	}
}
