package storage

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
)

// identifierPattern is the shape of every schema, table, and column name we
// accept. Identifiers cannot be bound as query parameters, so anything
// interpolated into SQL must match it first.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresStore persists generated records through a single database
// connection pool. It satisfies pkg/storage.Store.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func validIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return errors.Errorf("invalid identifier '%s'", name)
	}
	return nil
}

func qualify(schema, table string) (string, error) {
	if err := validIdentifier(schema); err != nil {
		return "", err
	}
	if err := validIdentifier(table); err != nil {
		return "", err
	}
	return schema + "." + table, nil
}

// TableExists reports whether schema.table exists.
func (s *PostgresStore) TableExists(schema, table string) (bool, error) {
	var exists bool
	err := s.db.Get(&exists, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)`, schema, table)
	if err != nil {
		return false, errors.Wrapf(err, "checking table %s.%s", schema, table)
	}
	return exists, nil
}

// Read runs a free-form filter ("WHERE ...", "ORDER BY ... LIMIT n", or
// empty) against the table and returns the rows as generic records.
func (s *PostgresStore) Read(schema, table, query string) ([]models.Record, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Queryx(strings.TrimSpace(fmt.Sprintf("SELECT * FROM %s %s", target, query)))
	if err != nil {
		return nil, errors.Wrapf(err, "reading from %s", target)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record := make(models.Record)
		if err := rows.MapScan(record); err != nil {
			return nil, errors.Wrapf(err, "scanning row from %s", target)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Write persists a batch in one transaction. Truncate mode clears the table
// inside the same transaction, so a failed write never leaves it empty.
// Column order is taken from the first record; every record in the batch
// must carry the same fields.
func (s *PostgresStore) Write(schema, table string, records []models.Record, mode models.WriteMode) error {
	if len(records) == 0 {
		return errors.New("empty batch")
	}
	target, err := qualify(schema, table)
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(records[0]))
	for column := range records[0] {
		if err := validIdentifier(column); err != nil {
			return err
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if mode == models.TruncateWriteMode {
		if _, err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s", target)); err != nil {
			return errors.Wrapf(err, "truncating %s", target)
		}
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		target, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.Preparex(insert)
	if err != nil {
		return errors.Wrapf(err, "preparing insert into %s", target)
	}
	defer stmt.Close()

	args := make([]interface{}, len(columns))
	for _, record := range records {
		for i, column := range columns {
			args[i] = record[column]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return errors.Wrapf(err, "inserting into %s", target)
		}
	}

	return errors.Wrapf(tx.Commit(), "committing write to %s", target)
}

// RowCount returns the current row count of schema.table.
func (s *PostgresStore) RowCount(schema, table string) (int64, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", target)); err != nil {
		return 0, errors.Wrapf(err, "counting rows in %s", target)
	}
	return count, nil
}

var _ storage.Store = (*PostgresStore)(nil)
