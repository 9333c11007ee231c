package sheet

import (
	"context"
	"sync"
)

// MemoryStore is the in-memory Store used by tests. It mirrors the xlsx
// adapter's semantics (1-based rows, header in row 1, trailing cells kept as
// written). FailWith, when set, makes every operation return that error
// wrapped in a TransportError so tests can exercise unreachable-store paths.
type MemoryStore struct {
	mu       sync.Mutex
	sheets   map[string]*memSheet
	order    []string
	FailWith error
}

type memSheet struct {
	rows [][]string
}

// NewMemoryStore returns an empty in-memory workbook.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: map[string]*memSheet{}}
}

// Seed replaces the named sheet's contents wholesale. Test helper only.
func (s *MemoryStore) Seed(name string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[name]; !ok {
		s.order = append(s.order, name)
	}
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	s.sheets[name] = &memSheet{rows: cp}
}

// RawRows returns a copy of the named sheet's rows. Test helper only.
func (s *MemoryStore) RawRows(name string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.sheets[name]
	if !ok {
		return nil
	}
	cp := make([][]string, len(ws.rows))
	for i, r := range ws.rows {
		cp[i] = append([]string(nil), r...)
	}
	return cp
}

func (s *MemoryStore) Sheet(name string) Sheet {
	return &memSheetHandle{store: s, name: name}
}

func (s *MemoryStore) CreateSheet(ctx context.Context, name string, rows, cols int) error {
	if err := s.fail("create sheet"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[name]; ok {
		return nil
	}
	s.sheets[name] = &memSheet{}
	s.order = append(s.order, name)
	return nil
}

func (s *MemoryStore) SheetNames(ctx context.Context) ([]string, error) {
	if err := s.fail("list sheets"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}

func (s *MemoryStore) fail(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return &TransportError{Op: op, Err: s.FailWith}
	}
	return nil
}

type memSheetHandle struct {
	store *MemoryStore
	name  string
}

func (h *memSheetHandle) Name() string { return h.name }

func (h *memSheetHandle) get() (*memSheet, bool) {
	ws, ok := h.store.sheets[h.name]
	return ws, ok
}

func (h *memSheetHandle) Rows(ctx context.Context) ([][]string, error) {
	if err := h.store.fail("read rows"); err != nil {
		return nil, err
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	ws, ok := h.get()
	if !ok {
		return nil, ErrSheetNotFound
	}
	cp := make([][]string, len(ws.rows))
	for i, r := range ws.rows {
		cp[i] = append([]string(nil), r...)
	}
	return cp, nil
}

func (h *memSheetHandle) Append(ctx context.Context, row []string) error {
	if err := h.store.fail("append"); err != nil {
		return err
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	ws, ok := h.get()
	if !ok {
		return ErrSheetNotFound
	}
	ws.rows = append(ws.rows, append([]string(nil), row...))
	return nil
}

func (h *memSheetHandle) FindInColumn(ctx context.Context, col int, value string) (int, error) {
	if err := h.store.fail("find"); err != nil {
		return 0, err
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	ws, ok := h.get()
	if !ok {
		return 0, ErrSheetNotFound
	}
	for i, row := range ws.rows {
		if len(row) >= col && row[col-1] == value {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (h *memSheetHandle) UpdateRange(ctx context.Context, row, startCol int, values []string) error {
	if err := h.store.fail("update range"); err != nil {
		return err
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	ws, ok := h.get()
	if !ok {
		return ErrSheetNotFound
	}
	for len(ws.rows) < row {
		ws.rows = append(ws.rows, nil)
	}
	r := ws.rows[row-1]
	need := startCol - 1 + len(values)
	for len(r) < need {
		r = append(r, "")
	}
	copy(r[startCol-1:], values)
	ws.rows[row-1] = r
	return nil
}
