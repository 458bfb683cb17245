package generator

import (
	"context"

	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/pkg/errors"
)

// Config controls record synthesis. A nil Seed means a fresh random source
// per generator; a set Seed makes generation fully reproducible.
type Config struct {
	Locale    string
	Seed      *int64
	BatchSize int
}

func DefaultConfig() Config {
	return Config{Locale: "en_US", BatchSize: models.DefaultBatchSize}
}

// Generator produces semantically valid records for one entity type.
type Generator interface {
	EntityType() string
	RequiredFields() []string
	GenerateBatch(ctx context.Context, count int) ([]models.Record, error)
}

// New creates a generator for a known entity type.
func New(entityType string, cfg Config) (Generator, error) {
	switch entityType {
	case "person":
		return NewPersonGenerator(cfg), nil
	case "company":
		return NewCompanyGenerator(cfg), nil
	default:
		return nil, errors.Errorf("unknown entity type '%s', available: %v", entityType, ListEntities())
	}
}

// ListEntities returns the entity types New accepts.
func ListEntities() []string {
	return []string{"person", "company"}
}
