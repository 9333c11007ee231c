// Package schema declares the canonical worksheets and guards their header
// rows. Ensure is run once at startup; it creates missing sheets, rewrites
// absent or foreign header rows, and migrates structural changes additively
// by appending new column names. Data rows are never cleared.
package schema

import (
	"context"
	"sync"

	"github.com/moritzgrimm/gigbook/internal/sheet"
)

// Worksheet names within the workbook.
const (
	SheetRepertoire = "Repertoire"
	SheetLocations  = "Locations"
	SheetEvents     = "Events"
)

// Canonical header rows. Column order is load-bearing: updates write field
// ranges positionally starting at column 2 (everything after Id).
var (
	RepertoireHeader = []string{
		"Id", "Title", "ComposerLastName", "ComposerFirstName",
		"ArrangerLastName", "ArrangerFirstName", "Duration", "Publisher",
		"WorkType", "ISWC",
	}
	LocationsHeader = []string{"Id", "Name", "Street", "PostalCode", "City"}
	EventsHeader    = []string{
		"Id", "Date", "Time", "Ensemble", "LocationName", "Street",
		"PostalCode", "City", "SetlistFilename", "SongIds", "FileLink",
	}
)

// Capacity hint passed to CreateSheet for stores that preallocate a grid.
const (
	defaultRows = 1000
	defaultCols = 26
)

// sheetSpec pairs a worksheet with its canonical header. A header is
// recognized as ours when its first column matches and the signature column
// appears somewhere in the row; anything else is treated as foreign and the
// header row (only) is rewritten.
type sheetSpec struct {
	name      string
	header    []string
	signature string
}

var specs = []sheetSpec{
	{SheetRepertoire, RepertoireHeader, "ComposerLastName"},
	{SheetLocations, LocationsHeader, "PostalCode"},
	{SheetEvents, EventsHeader, "SongIds"},
}

// Guard ensures the workbook schema at most once per process. Repeated
// Ensure calls return the first run's result without touching the store
// again, bounding remote calls per session.
type Guard struct {
	store sheet.Store
	once  sync.Once
	err   error
}

// NewGuard returns a Guard over the given store.
func NewGuard(store sheet.Store) *Guard {
	return &Guard{store: store}
}

// Ensure runs the schema check on the first call and memoizes the result.
func (g *Guard) Ensure(ctx context.Context) error {
	g.once.Do(func() { g.err = Ensure(ctx, g.store) })
	return g.err
}

// Ensure creates missing worksheets and brings every header row up to the
// canonical column list. Idempotent: a workbook that already matches
// produces zero write calls.
func Ensure(ctx context.Context, store sheet.Store) error {
	names, err := store.SheetNames(ctx)
	if err != nil {
		return err
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}

	for _, sp := range specs {
		if !have[sp.name] {
			if err := store.CreateSheet(ctx, sp.name, defaultRows, defaultCols); err != nil {
				return err
			}
		}
		if err := ensureHeader(ctx, store.Sheet(sp.name), sp); err != nil {
			return err
		}
	}
	return nil
}

func ensureHeader(ctx context.Context, ws sheet.Sheet, sp sheetSpec) error {
	rows, err := ws.Rows(ctx)
	if err != nil {
		return err
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	// Absent or foreign header: rewrite row 1 with the canonical list.
	// Only row 1 is touched, so data rows in a mismatched sheet survive.
	if len(header) == 0 || header[0] != sp.header[0] || !contains(header, sp.signature) {
		return ws.UpdateRange(ctx, 1, 1, sp.header)
	}

	// Recognized header: append any canonical columns it lacks. A historical
	// variant cleared the whole sheet here when a new column appeared; the
	// additive rewrite keeps existing data rows intact.
	var missing []string
	for _, col := range sp.header {
		if !contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	merged := append(append([]string(nil), header...), missing...)
	return ws.UpdateRange(ctx, 1, 1, merged)
}

func contains(row []string, v string) bool {
	for _, c := range row {
		if c == v {
			return true
		}
	}
	return false
}
