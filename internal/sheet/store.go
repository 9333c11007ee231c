// Package sheet defines the contract against the remote tabular store: a
// named collection of worksheets, each an ordered list of rows whose first
// row is the header. The store offers no transactions and no row locking;
// every write is last-write-wins. Implementations: an xlsx workbook on disk
// (XLSXStore) and an in-memory store used by tests (MemoryStore).
package sheet

import (
	"context"
	"errors"
	"fmt"
)

// Row and column numbers are 1-based throughout, matching spreadsheet
// addressing. Row 1 is the header row.

// ErrSheetNotFound is returned when a worksheet with the requested name
// does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// TransportError wraps any failure to reach or mutate the underlying store.
// Callers use IsTransport to distinguish "store unreachable" from domain
// conditions such as a missing record.
type TransportError struct {
	Op  string // the store operation that failed, e.g. "append"
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("sheet: %s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Sheet is one worksheet within the store.
type Sheet interface {
	// Name returns the worksheet name.
	Name() string
	// Rows returns every row including the header. Cells are strings;
	// trailing empty cells may be omitted, so callers pad as needed.
	Rows(ctx context.Context) ([][]string, error)
	// Append adds a row after the last non-empty row.
	Append(ctx context.Context, row []string) error
	// FindInColumn scans the given 1-based column for an exact cell match
	// and returns the 1-based row number, or 0 when no cell matches.
	// The header row is included in the scan.
	FindInColumn(ctx context.Context, col int, value string) (int, error)
	// UpdateRange overwrites len(values) cells in the given row starting
	// at startCol. Cells outside the range are untouched.
	UpdateRange(ctx context.Context, row, startCol int, values []string) error
}

// Store is the workbook handle shared by all repositories.
type Store interface {
	// Sheet returns a handle for the named worksheet. The handle is valid
	// even if the worksheet does not exist yet; operations on it then fail
	// with ErrSheetNotFound.
	Sheet(name string) Sheet
	// CreateSheet adds an empty worksheet with the given capacity hint.
	// Creating an existing worksheet is a no-op.
	CreateSheet(ctx context.Context, name string, rows, cols int) error
	// SheetNames lists the existing worksheet names.
	SheetNames(ctx context.Context) ([]string, error)
}
