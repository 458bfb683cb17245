package storage

import (
	"fmt"
	"sync"

	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/pkg/errors"
)

// WriteCall records one Write invocation for assertions in tests.
type WriteCall struct {
	Schema string
	Table  string
	Mode   models.WriteMode
	Count  int
}

// MockStore implements Store with in-memory tables. A single MockStore
// stands in for the whole database: Connect hands out the same instance so
// concurrently running steps observe shared table state, guarded by a mutex.
type MockStore struct {
	mu     sync.Mutex
	tables map[string][]models.Record
	writes []WriteCall

	// ConnectErr, when set, makes Connect fail.
	ConnectErr error
	// WriteErrTable, when set, makes writes against that table return WriteErr.
	WriteErrTable string
	WriteErr      error
}

func NewMockStore() *MockStore {
	return &MockStore{tables: make(map[string][]models.Record)}
}

// Connect implements Factory; the mock is its own connection.
func (m *MockStore) Connect() (Store, error) {
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	return m, nil
}

func (m *MockStore) key(schema, table string) string {
	return fmt.Sprintf("%s.%s", schema, table)
}

func (m *MockStore) TableExists(schema, table string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tables[m.key(schema, table)]
	return ok, nil
}

func (m *MockStore) Read(schema, table, query string) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[m.key(schema, table)]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "table %s.%s", schema, table)
	}
	out := make([]models.Record, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *MockStore) Write(schema, table string, records []models.Record, mode models.WriteMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil && (m.WriteErrTable == "" || m.WriteErrTable == table) {
		return m.WriteErr
	}
	key := m.key(schema, table)
	if mode == models.TruncateWriteMode {
		m.tables[key] = nil
	}
	m.tables[key] = append(m.tables[key], records...)
	m.writes = append(m.writes, WriteCall{Schema: schema, Table: table, Mode: mode, Count: len(records)})
	return nil
}

func (m *MockStore) RowCount(schema, table string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tables[m.key(schema, table)])), nil
}

func (m *MockStore) Close() error {
	return nil
}

// Rows returns a copy of a table's contents.
func (m *MockStore) Rows(schema, table string) []models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[m.key(schema, table)]
	out := make([]models.Record, len(rows))
	copy(out, rows)
	return out
}

// Writes returns the log of Write calls in order.
func (m *MockStore) Writes() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]WriteCall, len(m.writes))
	copy(out, m.writes)
	return out
}

// Seed pre-populates a table, bypassing the write log.
func (m *MockStore) Seed(schema, table string, records []models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.key(schema, table)
	m.tables[key] = append(m.tables[key], records...)
}
