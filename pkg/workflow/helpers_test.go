package workflow_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/workflow"
)

// testLogger implements the workflow Logger interface for testing
type testLogger struct{}

func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Errorf(format string, args ...interface{}) {}

var _ workflow.Logger = testLogger{}

// stubGenerator produces minimal valid records with sequential identifiers.
// FailAfter, when positive, fails the batch that would push total generation
// past that many records.
type stubGenerator struct {
	mu         sync.Mutex
	entityType string
	generated  int
	FailAfter  int
	FailErr    error
}

func newStubGenerator(entityType string) *stubGenerator {
	return &stubGenerator{entityType: entityType}
}

func (g *stubGenerator) EntityType() string {
	return g.entityType
}

func (g *stubGenerator) RequiredFields() []string {
	switch g.entityType {
	case "person":
		return []string{"person_id", "first_name", "last_name", "email", "age", "job_title", "annual_income"}
	default:
		return []string{"company_id", "company_name", "industry", "employee_count", "annual_revenue"}
	}
}

func (g *stubGenerator) GenerateBatch(ctx context.Context, count int) ([]models.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailAfter > 0 && g.generated+count > g.FailAfter {
		if g.FailErr != nil {
			return nil, g.FailErr
		}
		return nil, fmt.Errorf("generation failed after %d records", g.generated)
	}

	records := make([]models.Record, 0, count)
	for i := 0; i < count; i++ {
		id := g.generated + i
		if g.entityType == "person" {
			records = append(records, models.Record{
				"person_id":     fmt.Sprintf("person-%d", id),
				"first_name":    "Test",
				"last_name":     "Person",
				"email":         fmt.Sprintf("test.person%d@example.com", id),
				"age":           30,
				"job_title":     "Engineer",
				"annual_income": 90000,
			})
		} else {
			records = append(records, models.Record{
				"company_id":     fmt.Sprintf("company-%d", id),
				"company_name":   fmt.Sprintf("Company %d", id),
				"industry":       "technology",
				"employee_count": 50,
				"annual_revenue": int64(5000000),
			})
		}
	}
	g.generated += count
	return records, nil
}

func entityFor(workflowName string) string {
	if workflowName == "people" {
		return "person"
	}
	return "company"
}
