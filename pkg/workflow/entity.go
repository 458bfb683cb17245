package workflow

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/models"
)

// entityKind bundles the entity-specific behavior of a workflow: where its
// records land, which fields every record must carry, and the business rules
// a record must satisfy. One concrete EntityWorkflow parameterized by an
// entityKind replaces a per-entity subclass hierarchy.
type entityKind struct {
	workflowName   string
	entityType     string
	description    string
	schema         string
	table          string
	defaultCount   int
	requiredFields []string
	validateRecord func(models.Record) error
}

var workflowKinds = map[string]entityKind{
	"people": {
		workflowName: "people",
		entityType:   "person",
		description:  "Generate individual person profiles with demographics and career data",
		schema:       "raw",
		table:        "persons",
		defaultCount: 1000,
		requiredFields: []string{
			"person_id", "first_name", "last_name", "email",
			"age", "job_title", "annual_income",
		},
		validateRecord: validatePersonRecord,
	},
	"companies": {
		workflowName: "companies",
		entityType:   "company",
		description:  "Generate company profiles with business and financial data",
		schema:       "raw",
		table:        "companies",
		defaultCount: 100,
		requiredFields: []string{
			"company_id", "company_name", "industry",
			"employee_count", "annual_revenue",
		},
		validateRecord: validateCompanyRecord,
	},
}

// FullDatasetWorkflow is the orchestrated composite workflow; it is not a
// leaf entity kind.
const FullDatasetWorkflow = "full_dataset"

func entityWorkflowNames() []string {
	return []string{"people", "companies"}
}

func isEntityWorkflow(name string) bool {
	_, ok := workflowKinds[name]
	return ok
}

// DefaultTargetRecords returns the target an entity workflow runs with when
// the caller gives no explicit count, or 0 for unknown names.
func DefaultTargetRecords(name string) int {
	return workflowKinds[name].defaultCount
}

func validatePersonRecord(r models.Record) error {
	if age, ok := numericField(r, "age"); ok && (age < 18 || age > 120) {
		return errors.Errorf("invalid age: %v", r["age"])
	}
	if income, ok := numericField(r, "annual_income"); ok && income < 0 {
		return errors.Errorf("negative income: %v", r["annual_income"])
	}
	if email, ok := r["email"].(string); ok && !strings.Contains(email, "@") {
		return errors.Errorf("invalid email format: %s", email)
	}
	return nil
}

func validateCompanyRecord(r models.Record) error {
	if employees, ok := numericField(r, "employee_count"); ok && employees <= 0 {
		return errors.Errorf("invalid employee count: %v", r["employee_count"])
	}
	if revenue, ok := numericField(r, "annual_revenue"); ok && revenue < 0 {
		return errors.Errorf("negative revenue: %v", r["annual_revenue"])
	}
	return nil
}

// numericField reads a record value as float64 regardless of the concrete
// integer or float type the generator produced.
func numericField(r models.Record, field string) (float64, bool) {
	switch v := r[field].(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// validateBatch is the precondition every generated batch must pass before
// persistence: non-empty, required fields present and non-nil, business
// rules satisfied, identical field schema across records, and a unique
// identifier per record when the entity carries one.
func (k entityKind) validateBatch(records []models.Record) error {
	if len(records) == 0 {
		return errors.New("empty batch")
	}

	for i, record := range records {
		for _, field := range k.requiredFields {
			v, ok := record[field]
			if !ok {
				return errors.Errorf("record %d: missing required field '%s'", i, field)
			}
			if v == nil {
				return errors.Errorf("record %d: required field '%s' is nil", i, field)
			}
		}
		if k.validateRecord != nil {
			if err := k.validateRecord(record); err != nil {
				return errors.Wrapf(err, "record %d", i)
			}
		}
	}

	// All records must share one field schema.
	expected := fieldSet(records[0])
	for i, record := range records[1:] {
		if !sameFields(expected, record) {
			return errors.Errorf("record %d: inconsistent field structure in batch", i+1)
		}
	}

	// Identifier uniqueness within the batch.
	idField := k.entityType + "_id"
	if _, ok := records[0][idField]; ok {
		seen := make(map[interface{}]struct{}, len(records))
		for _, record := range records {
			id := record[idField]
			if _, dup := seen[id]; dup {
				return errors.Errorf("duplicate %s '%v' in batch", idField, id)
			}
			seen[id] = struct{}{}
		}
	}

	return nil
}

func fieldSet(r models.Record) map[string]struct{} {
	fields := make(map[string]struct{}, len(r))
	for k := range r {
		fields[k] = struct{}{}
	}
	return fields
}

func sameFields(expected map[string]struct{}, r models.Record) bool {
	if len(r) != len(expected) {
		return false
	}
	for k := range r {
		if _, ok := expected[k]; !ok {
			return false
		}
	}
	return true
}
