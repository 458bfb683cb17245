package storage

import (
	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for Earth against
// schema-qualified tables.
type Store interface {
	TableExists(schema, table string) (bool, error)
	Read(schema, table, query string) ([]models.Record, error)
	Write(schema, table string, records []models.Record, mode models.WriteMode) error
	RowCount(schema, table string) (int64, error)
	Close() error
}

// Factory opens store connections. Each workflow step opens its own
// connection through a Factory and owns it exclusively until the step ends,
// so connections are never shared across concurrent steps.
type Factory interface {
	Connect() (Store, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func() (Store, error)

func (f FactoryFunc) Connect() (Store, error) {
	return f()
}
