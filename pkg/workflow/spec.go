package workflow

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Ratio bounds for the advisory people-to-companies sanity check.
const (
	minRatioPeopleToCompanies = 5.0
	maxRatioPeopleToCompanies = 50.0
)

// WorkflowCount pairs a workflow name with its target record count.
// DatasetSpec preserves the order in which counts were supplied: the first
// workflow of a spec is the one whose step truncates its table.
type WorkflowCount struct {
	Name  string
	Count int
}

// DatasetSpec is a declarative, validated specification of a dataset run:
// which workflows to execute, how many records each should produce, and the
// dependencies between them. Immutable after construction.
type DatasetSpec struct {
	names       []string
	counts      map[string]int
	deps        map[string][]string
	description string
}

type specBuilder struct {
	workflows     []WorkflowCount
	legacyPeople  *int
	legacyCompany *int
	deps          map[string][]string
	defaultDeps   map[string][]string
	description   string
}

// SpecOption configures DatasetSpec construction.
type SpecOption func(*specBuilder)

// WithWorkflows sets the workflow counts, in execution-significant order.
func WithWorkflows(workflows ...WorkflowCount) SpecOption {
	return func(b *specBuilder) { b.workflows = append(b.workflows, workflows...) }
}

// WithLegacyCounts is the two-field shorthand for the company/person case.
// Companies are inserted first so a full-dataset run truncates their table.
// Combining it with WithWorkflows is a construction error.
func WithLegacyCounts(peopleCount, companiesCount int) SpecOption {
	return func(b *specBuilder) {
		b.legacyPeople = &peopleCount
		b.legacyCompany = &companiesCount
	}
}

// WithDependencies sets explicit prerequisite workflows per workflow name.
func WithDependencies(deps map[string][]string) SpecOption {
	return func(b *specBuilder) { b.deps = deps }
}

// WithDefaultDependencies supplies a dependency table applied only when no
// explicit dependencies are given, restricted to workflow names actually
// present in the spec.
func WithDefaultDependencies(deps map[string][]string) SpecOption {
	return func(b *specBuilder) { b.defaultDeps = deps }
}

func WithDescription(description string) SpecOption {
	return func(b *specBuilder) { b.description = description }
}

// NewDatasetSpec builds and eagerly validates a DatasetSpec.
func NewDatasetSpec(opts ...SpecOption) (*DatasetSpec, error) {
	b := &specBuilder{description: "Custom dataset"}
	for _, opt := range opts {
		opt(b)
	}

	if (b.legacyPeople != nil || b.legacyCompany != nil) && len(b.workflows) > 0 {
		return nil, errors.Wrap(ErrConflictingSpec,
			"cannot combine legacy people/companies counts with an explicit workflow list")
	}
	if b.legacyPeople != nil || b.legacyCompany != nil {
		if b.legacyCompany != nil {
			b.workflows = append(b.workflows, WorkflowCount{Name: "companies", Count: *b.legacyCompany})
		}
		if b.legacyPeople != nil {
			b.workflows = append(b.workflows, WorkflowCount{Name: "people", Count: *b.legacyPeople})
		}
	}

	spec := &DatasetSpec{
		counts:      make(map[string]int, len(b.workflows)),
		deps:        make(map[string][]string),
		description: b.description,
	}
	for _, wc := range b.workflows {
		if _, dup := spec.counts[wc.Name]; dup {
			return nil, errors.Wrapf(ErrInvalidSpec, "workflow '%s' listed twice", wc.Name)
		}
		spec.names = append(spec.names, wc.Name)
		spec.counts[wc.Name] = wc.Count
	}

	switch {
	case b.deps != nil:
		for name, deps := range b.deps {
			spec.deps[name] = append([]string(nil), deps...)
		}
	case b.defaultDeps != nil:
		// Default dependencies apply only where both ends are present.
		for _, name := range spec.names {
			var kept []string
			for _, dep := range b.defaultDeps[name] {
				if _, ok := spec.counts[dep]; ok {
					kept = append(kept, dep)
				}
			}
			if len(kept) > 0 {
				spec.deps[name] = kept
			}
		}
	}

	if _, err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Names returns the workflow names in insertion order.
func (s *DatasetSpec) Names() []string {
	return append([]string(nil), s.names...)
}

// Workflows returns the name/count pairs in insertion order.
func (s *DatasetSpec) Workflows() []WorkflowCount {
	out := make([]WorkflowCount, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, WorkflowCount{Name: name, Count: s.counts[name]})
	}
	return out
}

// Count returns the target record count for a workflow name.
func (s *DatasetSpec) Count(name string) int {
	return s.counts[name]
}

// Dependencies returns the prerequisite workflows for a workflow name.
func (s *DatasetSpec) Dependencies(name string) []string {
	return append([]string(nil), s.deps[name]...)
}

func (s *DatasetSpec) Description() string {
	return s.description
}

// TotalRecords returns the number of records the spec will generate in total.
func (s *DatasetSpec) TotalRecords() int {
	total := 0
	for _, count := range s.counts {
		total += count
	}
	return total
}

// Validate checks the spec's hard invariants and returns advisory warnings.
// Warnings (currently only the people-to-companies ratio check) never block
// execution; a non-nil error always does.
func (s *DatasetSpec) Validate() ([]string, error) {
	if len(s.names) == 0 {
		return nil, errors.Wrap(ErrInvalidSpec, "must specify at least one workflow")
	}

	for _, name := range s.names {
		if !isEntityWorkflow(name) {
			return nil, errors.Wrapf(ErrInvalidSpec,
				"unknown workflow '%s', available workflows: %s",
				name, strings.Join(entityWorkflowNames(), ", "))
		}
		if s.counts[name] <= 0 {
			return nil, errors.Wrapf(ErrInvalidSpec,
				"record count must be positive for '%s', got %d", name, s.counts[name])
		}
	}

	for name, deps := range s.deps {
		if _, ok := s.counts[name]; !ok {
			return nil, errors.Wrapf(ErrInvalidSpec, "dependency target '%s' not in workflows", name)
		}
		for _, dep := range deps {
			if _, ok := s.counts[dep]; !ok {
				return nil, errors.Wrapf(ErrInvalidSpec,
					"dependency '%s' of '%s' not in workflows", dep, name)
			}
		}
	}

	var warnings []string
	people, hasPeople := s.counts["people"]
	companies, hasCompanies := s.counts["companies"]
	if hasPeople && hasCompanies && companies > 0 {
		ratio := float64(people) / float64(companies)
		if ratio < minRatioPeopleToCompanies || ratio > maxRatioPeopleToCompanies {
			warnings = append(warnings, fmt.Sprintf(
				"people-to-companies ratio %.1f is outside the realistic range [%.0f, %.0f]",
				ratio, minRatioPeopleToCompanies, maxRatioPeopleToCompanies))
		}
	}

	return warnings, nil
}

// ExecutionOrder resolves the dependency graph into waves: each wave is a
// set of mutually independent workflows, and every dependency of a wave
// member sits in a strictly earlier wave. Wave membership preserves the
// spec's insertion order. A non-empty remainder that cannot form a wave
// means a cycle.
func (s *DatasetSpec) ExecutionOrder() ([][]string, error) {
	remaining := make(map[string]struct{}, len(s.names))
	for _, name := range s.names {
		remaining[name] = struct{}{}
	}

	var groups [][]string
	for len(remaining) > 0 {
		var ready []string
		for _, name := range s.names {
			if _, pending := remaining[name]; !pending {
				continue
			}
			satisfied := true
			for _, dep := range s.deps[name] {
				if _, unmet := remaining[dep]; unmet {
					satisfied = false
					break
				}
			}
			if satisfied {
				ready = append(ready, name)
			}
		}

		if len(ready) == 0 {
			var stuck []string
			for _, name := range s.names {
				if _, pending := remaining[name]; pending {
					stuck = append(stuck, name)
				}
			}
			return nil, errors.Wrapf(ErrCircularDependency,
				"cannot order workflows: %s", strings.Join(stuck, ", "))
		}

		groups = append(groups, ready)
		for _, name := range ready {
			delete(remaining, name)
		}
	}

	return groups, nil
}

func (s *DatasetSpec) String() string {
	parts := make([]string, 0, len(s.names))
	for _, name := range s.names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, s.counts[name]))
	}
	return fmt.Sprintf("DatasetSpec(%s) - %s", s.description, strings.Join(parts, ", "))
}
