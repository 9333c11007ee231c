package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moritzgrimm/gigbook/internal/model"
	"github.com/moritzgrimm/gigbook/internal/schema"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

func seededStore(t *testing.T, rows [][]string) *sheet.MemoryStore {
	t.Helper()
	store := sheet.NewMemoryStore()
	store.Seed(schema.SheetRepertoire, append([][]string{schema.RepertoireHeader}, rows...))
	return store
}

func TestRepertoireLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("normalizes ids and derives labels", func(t *testing.T) {
		store := seededStore(t, [][]string{
			{"7.0", "Ave Maria", "Bach", "Johann Sebastian", "Gounod", "Charles", "03:30", "Edition Peters", "classical", ""},
			{"7,0", "Dup Spelling", "Schulz", "", "", "", "", "", "", ""},
			{"A12", "Opaque", "Meier", "", "", "", "", "", "", ""},
		})
		repo := NewRepertoireRepo(store, time.Minute)

		items, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "7", items[0].ID)
		assert.Equal(t, "Ave Maria (Bach) / Arr: Gounod", items[0].Label)
		assert.Equal(t, "7", items[1].ID)
		assert.Equal(t, "A12", items[2].ID)
		assert.Equal(t, "Opaque (Meier)", items[2].Label)
	})

	t.Run("sparse rows load with empty strings", func(t *testing.T) {
		store := seededStore(t, [][]string{{"1", "Short Row", "Komponist"}})
		repo := NewRepertoireRepo(store, time.Minute)

		items, err := repo.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "", items[0].Duration)
		assert.Equal(t, "", items[0].ISWC)
	})

	t.Run("unreachable store is a transport error", func(t *testing.T) {
		store := seededStore(t, nil)
		store.FailWith = errors.New("connection refused")
		repo := NewRepertoireRepo(store, time.Minute)

		_, err := repo.Load(ctx)
		assert.True(t, sheet.IsTransport(err))
	})
}

func TestRepertoireAppendAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty sheet starts at 1", func(t *testing.T) {
		store := seededStore(t, nil)
		repo := NewRepertoireRepo(store, time.Minute)

		var seen []string
		for _, title := range []string{"First", "Second", "Third"} {
			it, err := repo.Append(ctx, model.RepertoireItem{Title: title, ComposerLastName: "X"})
			require.NoError(t, err)
			seen = append(seen, it.ID)
		}
		assert.Equal(t, []string{"1", "2", "3"}, seen)
	})

	t.Run("max scan skips malformed ids", func(t *testing.T) {
		store := seededStore(t, [][]string{
			{"7.0", "A", "X", "", "", "", "", "", "", ""},
			{"A12", "B", "X", "", "", "", "", "", "", ""},
			{"3", "C", "X", "", "", "", "", "", "", ""},
		})
		repo := NewRepertoireRepo(store, time.Minute)

		it, err := repo.Append(ctx, model.RepertoireItem{Title: "D", ComposerLastName: "X"})
		require.NoError(t, err)
		assert.Equal(t, "8", it.ID)
	})

	t.Run("defaults the work type", func(t *testing.T) {
		store := seededStore(t, nil)
		repo := NewRepertoireRepo(store, time.Minute)

		it, err := repo.Append(ctx, model.RepertoireItem{Title: "D", ComposerLastName: "X"})
		require.NoError(t, err)
		assert.Equal(t, model.DefaultWorkType, it.WorkType)

		rows := store.RawRows(schema.SheetRepertoire)
		assert.Equal(t, model.DefaultWorkType, rows[1][8])
	})
}

func TestRepertoireUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("exact id match only", func(t *testing.T) {
		store := seededStore(t, [][]string{
			{"3", "Old Three", "X", "", "", "", "", "", "", ""},
			{"13", "Thirteen", "Y", "", "", "", "", "", "", ""},
		})
		repo := NewRepertoireRepo(store, time.Minute)

		err := repo.Update(ctx, "3", model.RepertoireItem{Title: "New Three", ComposerLastName: "X"})
		require.NoError(t, err)

		rows := store.RawRows(schema.SheetRepertoire)
		assert.Equal(t, "3", rows[1][0], "id column untouched")
		assert.Equal(t, "New Three", rows[1][1])
		assert.Equal(t, "Thirteen", rows[2][1], "row 13 must not be touched")
	})

	t.Run("missing id is not found", func(t *testing.T) {
		store := seededStore(t, nil)
		repo := NewRepertoireRepo(store, time.Minute)

		err := repo.Update(ctx, "42", model.RepertoireItem{Title: "X", ComposerLastName: "Y"})
		assert.ErrorIs(t, err, ErrRepertoireNotFound)
	})

	t.Run("transport failure stays distinguishable", func(t *testing.T) {
		store := seededStore(t, nil)
		store.FailWith = errors.New("timeout")
		repo := NewRepertoireRepo(store, time.Minute)

		err := repo.Update(ctx, "42", model.RepertoireItem{Title: "X", ComposerLastName: "Y"})
		assert.True(t, sheet.IsTransport(err))
		assert.NotErrorIs(t, err, ErrRepertoireNotFound)
	})
}

func TestRepertoireCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := seededStore(t, [][]string{{"1", "A", "X", "", "", "", "", "", "", ""}})
	repo := NewRepertoireRepo(store, time.Minute)

	items, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// A change behind the repo's back is not visible before expiry.
	store.Seed(schema.SheetRepertoire, append(store.RawRows(schema.SheetRepertoire),
		[]string{"2", "B", "Y", "", "", "", "", "", "", ""}))
	items, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "cached table served before invalidation")

	// A write through the repo invalidates and the next load is fresh.
	_, err = repo.Append(ctx, model.RepertoireItem{Title: "C", ComposerLastName: "Z"})
	require.NoError(t, err)
	items, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
