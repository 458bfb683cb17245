package workflow

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/generator"
	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
)

// Runner is the surface shared by entity workflows and the full-dataset
// workflow: execute once, get a result with complete failure accounting.
type Runner interface {
	Name() string
	Description() string
	Execute(ctx context.Context, targetRecords int) models.WorkflowResult
}

// RunnerOption configures NewRunner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	spec   *DatasetSpec
	gens   GeneratorFactory
	logger Logger
}

// WithDatasetSpec supplies the spec a full-dataset runner executes. Ignored
// for entity workflows.
func WithDatasetSpec(spec *DatasetSpec) RunnerOption {
	return func(o *runnerOptions) { o.spec = spec }
}

// WithRunnerGeneratorFactory overrides generator construction for all
// workflows the runner executes.
func WithRunnerGeneratorFactory(gens GeneratorFactory) RunnerOption {
	return func(o *runnerOptions) { o.gens = gens }
}

func WithRunnerLogger(logger Logger) RunnerOption {
	return func(o *runnerOptions) { o.logger = logger }
}

// NewRunner builds the runner a workflow name denotes. The dispatch is
// closed: only registered entity workflows and the full-dataset composite
// are constructible, and an unknown name fails listing the valid ones.
func NewRunner(name string, config models.WorkflowConfig, stores storage.Factory, opts ...RunnerOption) (Runner, error) {
	var o runnerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = noopLogger{}
	}

	switch {
	case isEntityWorkflow(name):
		var gen generator.Generator
		if o.gens != nil {
			g, err := o.gens(name, config)
			if err != nil {
				return nil, err
			}
			gen = g
		}
		return NewEntityWorkflow(name, config, stores, gen, o.logger)

	case name == FullDatasetWorkflow:
		spec := o.spec
		if spec == nil {
			var err error
			spec, err = DefaultDatasetSpec()
			if err != nil {
				return nil, err
			}
		}
		orchOpts := []OrchestratorOption{WithLogger(o.logger)}
		if o.gens != nil {
			orchOpts = append(orchOpts, WithGeneratorFactory(o.gens))
		}
		return NewDatasetWorkflow(spec, config, stores, orchOpts...)

	default:
		return nil, errors.Wrapf(ErrUnknownWorkflow,
			"'%s', available workflows: %s", name, strings.Join(ListWorkflows(), ", "))
	}
}

// ListWorkflows returns every constructible workflow name.
func ListWorkflows() []string {
	return append(entityWorkflowNames(), FullDatasetWorkflow)
}

// WorkflowInfo describes one constructible workflow for listing surfaces.
type WorkflowInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultCount int    `json:"default_count,omitempty"`
}

// DescribeWorkflows returns listing metadata for every workflow name.
func DescribeWorkflows() []WorkflowInfo {
	infos := make([]WorkflowInfo, 0, len(workflowKinds)+1)
	for _, name := range entityWorkflowNames() {
		kind := workflowKinds[name]
		infos = append(infos, WorkflowInfo{
			Name:         kind.workflowName,
			Description:  kind.description,
			DefaultCount: kind.defaultCount,
		})
	}
	infos = append(infos, WorkflowInfo{
		Name:        FullDatasetWorkflow,
		Description: "Generate a complete relational dataset across all entity workflows",
	})
	return infos
}
