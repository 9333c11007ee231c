package sheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWorkbookCreatesFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	store, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer store.Close()

	names, err := store.SheetNames(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, names, "a fresh workbook carries its default sheet")
}

func TestXLSXRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	store, err := OpenWorkbook(path)
	require.NoError(t, err)

	require.NoError(t, store.CreateSheet(ctx, "Repertoire", 100, 10))
	ws := store.Sheet("Repertoire")
	require.NoError(t, ws.Append(ctx, []string{"Id", "Title"}))
	require.NoError(t, ws.Append(ctx, []string{"1", "Ode to Joy"}))
	require.NoError(t, ws.Append(ctx, []string{"2", "Air"}))

	row, err := ws.FindInColumn(ctx, 1, "2")
	require.NoError(t, err)
	assert.Equal(t, 3, row)

	require.NoError(t, ws.UpdateRange(ctx, 3, 2, []string{"Air on the G String"}))
	require.NoError(t, store.Close())

	// Every mutation saves through, so a reopened store sees everything.
	reopened, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.Sheet("Repertoire").Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ode to Joy", rows[1][1])
	assert.Equal(t, "Air on the G String", rows[2][1])
}

func TestXLSXMissingSheet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	store, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Sheet("NoSuch").Rows(ctx)
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.ErrorIs(t, store.Sheet("NoSuch").Append(ctx, []string{"x"}), ErrSheetNotFound)
}

func TestXLSXCreateSheetIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	store, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.CreateSheet(ctx, "Events", 100, 10))
	require.NoError(t, store.Sheet("Events").Append(ctx, []string{"Id"}))
	require.NoError(t, store.CreateSheet(ctx, "Events", 100, 10))

	rows, err := store.Sheet("Events").Rows(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "re-creating an existing sheet must not reset it")
}
