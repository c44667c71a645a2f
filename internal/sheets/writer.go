package sheets

import (
	"fmt"
	"log/slog"
)

// PendingWrite is one buffered cell write. Op groups writes by the
// logical operation that staged them; the grouping is only for
// observability, all pending writes flush together.
type PendingWrite struct {
	Sheet string
	Cell  string
	Value any
	Op    string
}

// Backend performs the actual spreadsheet I/O for a Manager.
type Backend interface {
	BatchUpdate(writes []PendingWrite) error
	SheetTitles() ([]string, error)
	CreateSheet(name string) error
	DeleteSheet(name string) error
}

// Manager accumulates pending writes and flushes them as one bulk
// operation. It is owned by a single report run and is not safe for
// concurrent use.
type Manager struct {
	backend Backend
	pending map[string][]PendingWrite
	ops     []string
}

func NewManager(backend Backend) *Manager {
	return &Manager{
		backend: backend,
		pending: make(map[string][]PendingWrite),
	}
}

// Stage buffers a single cell write; nothing reaches the backend until
// Flush. Values may be strings, ints, or floats.
func (m *Manager) Stage(sheet, cell string, value any, op string) {
	if _, ok := m.pending[op]; !ok {
		m.ops = append(m.ops, op)
	}
	m.pending[op] = append(m.pending[op], PendingWrite{
		Sheet: sheet,
		Cell:  cell,
		Value: value,
		Op:    op,
	})
}

// Pending reports the number of buffered writes.
func (m *Manager) Pending() int {
	n := 0
	for _, writes := range m.pending {
		n += len(writes)
	}
	return n
}

// Flush drains every pending write across all operations into one bulk
// backend call. The pending state is cleared unconditionally, even when
// the flush fails: delivery is at-most-once, and callers wanting a
// retry must re-stage. Flushing with nothing staged is a no-op.
func (m *Manager) Flush() error {
	var writes []PendingWrite
	for _, op := range m.ops {
		writes = append(writes, m.pending[op]...)
	}

	ops := m.ops
	m.pending = make(map[string][]PendingWrite)
	m.ops = nil

	if len(writes) == 0 {
		return nil
	}

	if err := m.backend.BatchUpdate(writes); err != nil {
		return fmt.Errorf("flushing %d writes (ops %v): %w", len(writes), ops, err)
	}

	slog.Debug("flushed batch", "writes", len(writes), "ops", ops)
	return nil
}

func (m *Manager) SheetExists(name string) (bool, error) {
	titles, err := m.backend.SheetTitles()
	if err != nil {
		return false, fmt.Errorf("listing sheets: %w", err)
	}
	for _, title := range titles {
		if title == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *Manager) CreateSheet(name string) error {
	if err := m.backend.CreateSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	return nil
}

func (m *Manager) DeleteSheet(name string) error {
	if err := m.backend.DeleteSheet(name); err != nil {
		return fmt.Errorf("deleting sheet %q: %w", name, err)
	}
	return nil
}

// DeleteOtherSheets removes every sheet except the named one.
func (m *Manager) DeleteOtherSheets(keep string) error {
	titles, err := m.backend.SheetTitles()
	if err != nil {
		return fmt.Errorf("listing sheets: %w", err)
	}
	for _, title := range titles {
		if title == keep {
			continue
		}
		if err := m.DeleteSheet(title); err != nil {
			return err
		}
	}
	return nil
}
