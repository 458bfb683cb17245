package storage

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/storage"
)

func InitStore(dbConnStr string) (*PostgresStore, error) {
	store, err := NewPostgresStore(dbConnStr)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewFactory returns a factory that opens a fresh connection pool per
// Connect call. Every workflow step owns and closes its own store.
func NewFactory(dbConnStr string) storage.Factory {
	return storage.FactoryFunc(func() (storage.Store, error) {
		return NewPostgresStore(dbConnStr)
	})
}

// ConnStrFromEnv assembles a connection string from the DB_* environment
// variables when no explicit --db flag is given.
func ConnStrFromEnv() (string, error) {
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	if username == "" || password == "" || host == "" || port == "" || name == "" {
		return "", errors.New("--db flag or complete DB_* env vars (DB_USERNAME, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME) required")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		username, password, host, port, name), nil
}
