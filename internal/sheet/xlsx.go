package sheet

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// XLSXStore persists the workbook as an xlsx file on disk. Every mutation is
// written through immediately so that a crash between operations never loses
// an acknowledged write. A single mutex serializes access; the application
// has one logical writer per process (see the id allocation notes in the
// repository package for the cross-process story).
type XLSXStore struct {
	mu   sync.Mutex
	path string
	f    *excelize.File
}

// OpenWorkbook opens the workbook at path, creating a new empty workbook
// file when none exists yet.
func OpenWorkbook(path string) (*XLSXStore, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f := excelize.NewFile()
		if err := f.SaveAs(path); err != nil {
			return nil, &TransportError{Op: "create workbook", Err: err}
		}
		return &XLSXStore{path: path, f: f}, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &TransportError{Op: "open workbook", Err: err}
	}
	return &XLSXStore{path: path, f: f}, nil
}

// Close releases the underlying file handle.
func (s *XLSXStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

func (s *XLSXStore) Sheet(name string) Sheet {
	return &xlsxSheet{store: s, name: name}
}

func (s *XLSXStore) CreateSheet(ctx context.Context, name string, rows, cols int) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "create sheet", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, err := s.f.GetSheetIndex(name); err == nil && idx >= 0 {
		return nil // already present
	}
	if _, err := s.f.NewSheet(name); err != nil {
		return &TransportError{Op: "create sheet", Err: err}
	}
	// The capacity hint matters for remote stores that preallocate a grid;
	// an xlsx grid grows on demand, so rows/cols are not used here.
	return s.save("create sheet")
}

func (s *XLSXStore) SheetNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "list sheets", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.GetSheetList(), nil
}

// save writes the workbook back to its file. Callers must hold the mutex.
func (s *XLSXStore) save(op string) error {
	if err := s.f.SaveAs(s.path); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}

func (s *XLSXStore) exists(name string) bool {
	idx, err := s.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

type xlsxSheet struct {
	store *XLSXStore
	name  string
}

func (ws *xlsxSheet) Name() string { return ws.name }

func (ws *xlsxSheet) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "read rows", Err: err}
	}
	ws.store.mu.Lock()
	defer ws.store.mu.Unlock()
	if !ws.store.exists(ws.name) {
		return nil, ErrSheetNotFound
	}
	rows, err := ws.store.f.GetRows(ws.name)
	if err != nil {
		return nil, &TransportError{Op: "read rows", Err: err}
	}
	return rows, nil
}

func (ws *xlsxSheet) Append(ctx context.Context, row []string) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "append", Err: err}
	}
	ws.store.mu.Lock()
	defer ws.store.mu.Unlock()
	if !ws.store.exists(ws.name) {
		return ErrSheetNotFound
	}
	existing, err := ws.store.f.GetRows(ws.name)
	if err != nil {
		return &TransportError{Op: "append", Err: err}
	}
	cell, err := excelize.CoordinatesToCellName(1, len(existing)+1)
	if err != nil {
		return &TransportError{Op: "append", Err: err}
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	if err := ws.store.f.SetSheetRow(ws.name, cell, &values); err != nil {
		return &TransportError{Op: "append", Err: err}
	}
	return ws.store.save("append")
}

func (ws *xlsxSheet) FindInColumn(ctx context.Context, col int, value string) (int, error) {
	rows, err := ws.Rows(ctx)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) >= col && row[col-1] == value {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (ws *xlsxSheet) UpdateRange(ctx context.Context, row, startCol int, values []string) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "update range", Err: err}
	}
	ws.store.mu.Lock()
	defer ws.store.mu.Unlock()
	if !ws.store.exists(ws.name) {
		return ErrSheetNotFound
	}
	cell, err := excelize.CoordinatesToCellName(startCol, row)
	if err != nil {
		return &TransportError{Op: "update range", Err: err}
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := ws.store.f.SetSheetRow(ws.name, cell, &vals); err != nil {
		return &TransportError{Op: "update range", Err: err}
	}
	return ws.store.save("update range")
}
