package workflow

import (
	"sort"

	"github.com/pkg/errors"
)

// Template is a named, preconfigured dataset shape.
type Template struct {
	Name        string
	Description string
	Workflows   []WorkflowCount
	Deps        map[string][]string
}

var datasetTemplates = map[string]Template{
	"small_demo": {
		Name:        "small_demo",
		Description: "Small dataset for demos and quick tests",
		Workflows: []WorkflowCount{
			{Name: "companies", Count: 10},
			{Name: "people", Count: 50},
		},
		Deps: map[string][]string{"people": {"companies"}},
	},
	"medium_dev": {
		Name:        "medium_dev",
		Description: "Medium dataset for development and integration testing",
		Workflows: []WorkflowCount{
			{Name: "companies", Count: 250},
			{Name: "people", Count: 5000},
		},
		Deps: map[string][]string{"people": {"companies"}},
	},
	"large_production": {
		Name:        "large_production",
		Description: "Large dataset for production-scale analytics",
		Workflows: []WorkflowCount{
			{Name: "companies", Count: 2000},
			{Name: "people", Count: 50000},
		},
		Deps: map[string][]string{"people": {"companies"}},
	},
}

// FromTemplate builds the DatasetSpec a named template describes.
func FromTemplate(name string) (*DatasetSpec, error) {
	tpl, ok := datasetTemplates[name]
	if !ok {
		names := make([]string, 0, len(datasetTemplates))
		for n := range datasetTemplates {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, errors.Wrapf(ErrUnknownTemplate, "'%s', available templates: %v", name, names)
	}
	return NewDatasetSpec(
		WithWorkflows(tpl.Workflows...),
		WithDependencies(tpl.Deps),
		WithDescription(tpl.Description),
	)
}

// ListTemplates returns the available templates sorted by name.
func ListTemplates() []Template {
	out := make([]Template, 0, len(datasetTemplates))
	for _, tpl := range datasetTemplates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultDependencies is the conventional dependency table for the built-in
// entity workflows: people reference their employers, so companies go first.
// It is only applied when a caller passes it explicitly.
func DefaultDependencies() map[string][]string {
	return map[string][]string{"people": {"companies"}}
}

// DefaultDatasetSpec is the spec used when a full-dataset run is requested
// without an explicit spec or template.
func DefaultDatasetSpec() (*DatasetSpec, error) {
	return NewDatasetSpec(
		WithWorkflows(
			WorkflowCount{Name: "companies", Count: workflowKinds["companies"].defaultCount},
			WorkflowCount{Name: "people", Count: workflowKinds["people"].defaultCount},
		),
		WithDependencies(DefaultDependencies()),
		WithDescription("Default dataset"),
	)
}
