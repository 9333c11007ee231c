package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/schema"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

func eventStore(t *testing.T, rows [][]string) *sheet.MemoryStore {
	t.Helper()
	store := sheet.NewMemoryStore()
	store.Seed(schema.SheetEvents, append([][]string{schema.EventsHeader}, rows...))
	return store
}

func TestEventLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := eventStore(t, [][]string{
		{"1", "01.06.2025", "19:00", "Tutti", "Town Hall", "Main St 1", "12345",
			"Springfield", "Tutti01.06.2025SpringfieldSetlist.xlsx", "4,1,9", ""},
	})
	repo := NewEventRepo(store, time.Minute)

	events, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"4", "1", "9"}, events[0].SongIDs, "performance order preserved")
	assert.Equal(t, model.FileLinkNone, events[0].FileLink, "blank cell loads as sentinel")
}

func TestEventGetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := eventStore(t, [][]string{
		{"2.0", "01.06.2025", "19:00", "Duo", "Town Hall", "Main St 1", "12345", "Springfield", "f.xlsx", "1", "-"},
	})
	repo := NewEventRepo(store, time.Minute)

	ev, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Duo", ev.Ensemble)

	_, err = repo.GetByID(ctx, "9")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventUpdateAndFileLink(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := eventStore(t, [][]string{
		{"1", "01.06.2025", "19:00", "Tutti", "Town Hall", "Main St 1", "12345", "Springfield", "old.xlsx", "1,2", "-"},
	})
	repo := NewEventRepo(store, time.Minute)

	ev, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	ev.Time = "20:00"
	ev.SongIDs = []string{"2", "1"}
	require.NoError(t, repo.Update(ctx, "1", ev))

	rows := store.RawRows(schema.SheetEvents)
	assert.Equal(t, "1", rows[1][0], "id column untouched")
	assert.Equal(t, "20:00", rows[1][2])
	assert.Equal(t, "2,1", rows[1][9])

	require.NoError(t, repo.SetFileLink(ctx, "1", "setlists/new.xlsx"))
	rows = store.RawRows(schema.SheetEvents)
	assert.Equal(t, "setlists/new.xlsx", rows[1][10])
}

func TestEventWritesFollowMigratedHeader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// A workbook from before the Time column existed, with an extra
	// operator-added Notes column. The schema guard appends "Time" to the
	// end, so this sheet's column order differs from canonical.
	store := sheet.NewMemoryStore()
	store.Seed(schema.SheetEvents, [][]string{
		{"Id", "Date", "Ensemble", "LocationName", "Street", "PostalCode",
			"City", "SetlistFilename", "SongIds", "FileLink", "Notes"},
		{"7", "01.05.2024", "Duo", "Hall", "s", "p", "c", "f.xlsx", "1", "-", "keep me"},
	})
	require.NoError(t, schema.Ensure(ctx, store))
	repo := NewEventRepo(store, time.Minute)

	appended, err := repo.Append(ctx, model.Event{
		Date: "01.06.2025", Time: "19:00", Ensemble: "Tutti",
		LocationName: "Town Hall", Street: "Main St 1", PostalCode: "12345",
		City: "Springfield", SetlistFilename: "x.xlsx", SongIDs: []string{"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "8", appended.ID)

	// Raw cells land under the sheet's actual columns, not the canonical
	// positions: Ensemble is column 3 here and Time is the appended last one.
	rows := store.RawRows(schema.SheetEvents)
	require.Len(t, rows, 3)
	assert.Equal(t, "Tutti", rows[2][2])
	assert.Equal(t, "1", rows[2][8], "SongIds cell")
	assert.Equal(t, "19:00", rows[2][11], "Time under the migrated column")

	ev, err := repo.GetByID(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, "19:00", ev.Time)
	assert.Equal(t, []string{"1"}, ev.SongIDs)

	ev7, err := repo.GetByID(ctx, "7")
	require.NoError(t, err)
	ev7.Time = "20:00"
	ev7.SongIDs = []string{"2"}
	ev7.FileLink = "drive/a"
	require.NoError(t, repo.Update(ctx, "7", ev7))

	rows = store.RawRows(schema.SheetEvents)
	assert.Equal(t, "7", rows[1][0], "id column untouched")
	assert.Equal(t, "2", rows[1][8])
	assert.Equal(t, "drive/a", rows[1][9])
	assert.Equal(t, "keep me", rows[1][10], "unknown column survives the update")
	assert.Equal(t, "20:00", rows[1][11])
}

func TestLocationRepo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sheet.NewMemoryStore()
	store.Seed(schema.SheetLocations, [][]string{
		schema.LocationsHeader,
		{"1", "Town Hall", "Main St 1", "12345", "Springfield"},
	})
	repo := NewLocationRepo(store, time.Minute)

	t.Run("lookup by name", func(t *testing.T) {
		loc, err := repo.GetByName(ctx, "Town Hall")
		require.NoError(t, err)
		assert.Equal(t, "Springfield", loc.City)

		_, err = repo.GetByName(ctx, "Nowhere")
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})

	t.Run("append allocates next id", func(t *testing.T) {
		loc, err := repo.Append(ctx, model.Location{Name: "Club", Street: "Side St 2", PostalCode: "54321", City: "Shelbyville"})
		require.NoError(t, err)
		assert.Equal(t, "2", loc.ID)
	})
}
