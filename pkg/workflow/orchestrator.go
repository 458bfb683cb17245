package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/generator"
	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
)

// DefaultMaxParallel bounds how many workflows of one dependency group run
// concurrently. Each running workflow holds its own store connection, so the
// bound also caps connection usage.
const DefaultMaxParallel = 3

// GeneratorFactory builds the generator a named workflow should use. Tests
// inject one to substitute deterministic or failing generators.
type GeneratorFactory func(workflowName string, cfg models.WorkflowConfig) (generator.Generator, error)

// DatasetOrchestrator executes a DatasetSpec as a sequence of dependency
// groups. Groups run strictly in order; within a group, workflows run
// concurrently up to the parallelism bound. A group always drains fully,
// even when some of its workflows fail, so sibling workflows are never
// cancelled by each other.
type DatasetOrchestrator struct {
	spec        *DatasetSpec
	baseConfig  models.WorkflowConfig
	stores      storage.Factory
	gens        GeneratorFactory
	maxParallel int
	logger      Logger

	mu         sync.Mutex
	steps      map[string]*models.WorkflowStep
	groups     [][]string
	status     models.WorkflowStatus
	startedAt  *time.Time
	finishedAt *time.Time
}

// OrchestratorOption configures a DatasetOrchestrator.
type OrchestratorOption func(*DatasetOrchestrator)

func WithMaxParallel(n int) OrchestratorOption {
	return func(o *DatasetOrchestrator) {
		if n > 0 {
			o.maxParallel = n
		}
	}
}

func WithLogger(logger Logger) OrchestratorOption {
	return func(o *DatasetOrchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithGeneratorFactory(gens GeneratorFactory) OrchestratorOption {
	return func(o *DatasetOrchestrator) { o.gens = gens }
}

// NewDatasetOrchestrator validates the spec, resolves its execution order,
// and builds one pending step per workflow. The spec's first workflow runs
// in truncate mode so a fresh dataset replaces the previous one; all other
// steps append.
func NewDatasetOrchestrator(spec *DatasetSpec, baseConfig models.WorkflowConfig, stores storage.Factory, opts ...OrchestratorOption) (*DatasetOrchestrator, error) {
	if spec == nil {
		return nil, errors.Wrap(ErrInvalidSpec, "nil spec")
	}
	if stores == nil {
		return nil, errors.New("nil store factory")
	}
	if err := baseConfig.Validate(); err != nil {
		return nil, err
	}

	warnings, err := spec.Validate()
	if err != nil {
		return nil, err
	}
	groups, err := spec.ExecutionOrder()
	if err != nil {
		return nil, err
	}

	o := &DatasetOrchestrator{
		spec:        spec,
		baseConfig:  baseConfig,
		stores:      stores,
		maxParallel: DefaultMaxParallel,
		logger:      noopLogger{},
		steps:       make(map[string]*models.WorkflowStep, len(spec.Names())),
		groups:      groups,
		status:      models.PendingWorkflowStatus,
	}
	for _, opt := range opts {
		opt(o)
	}
	for _, warning := range warnings {
		o.logger.Warnf("dataset spec: %s", warning)
	}

	names := spec.Names()
	for i, name := range names {
		cfg := baseConfig
		if i == 0 {
			cfg = cfg.WithWriteMode(models.TruncateWriteMode)
		} else {
			cfg = cfg.WithWriteMode(models.AppendWriteMode)
		}
		o.steps[name] = models.NewWorkflowStep(name, spec.Count(name), spec.Dependencies(name), cfg)
	}

	return o, nil
}

// ExecutionGroups returns the resolved dependency groups in execution order.
func (o *DatasetOrchestrator) ExecutionGroups() [][]string {
	out := make([][]string, len(o.groups))
	for i, group := range o.groups {
		out[i] = append([]string(nil), group...)
	}
	return out
}

// Step returns a snapshot of the tracked step for a workflow name, or nil.
// The snapshot is safe to read while the run is still executing.
func (o *DatasetOrchestrator) Step(name string) *models.WorkflowStep {
	o.mu.Lock()
	defer o.mu.Unlock()
	step, ok := o.steps[name]
	if !ok {
		return nil
	}
	snapshot := *step
	snapshot.DependsOn = append([]string(nil), step.DependsOn...)
	if step.Result != nil {
		result := *step.Result
		snapshot.Result = &result
	}
	return &snapshot
}

// Status returns the overall run status.
func (o *DatasetOrchestrator) Status() models.WorkflowStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Execute runs all dependency groups in order. When useParallel is false,
// workflows within a group run one at a time in spec order. On the first
// group with failures the run stops: the error names every failed workflow
// of that group, and all steps of later groups remain pending.
func (o *DatasetOrchestrator) Execute(ctx context.Context, useParallel bool) (ExecutionSummary, error) {
	started := time.Now()
	o.mu.Lock()
	o.status = models.RunningWorkflowStatus
	o.startedAt = &started
	o.mu.Unlock()

	mode := "sequential"
	if useParallel {
		mode = "parallel"
	}
	o.logger.Infof("dataset run started: %d workflows in %d groups (%s)",
		len(o.spec.Names()), len(o.groups), mode)

	var runErr error
	for i, group := range o.groups {
		o.logger.Infof("executing group %d/%d: %s", i+1, len(o.groups), strings.Join(group, ", "))
		failed := o.runGroup(ctx, group, useParallel)
		if len(failed) > 0 {
			runErr = errors.Errorf("workflows failed: %s", strings.Join(failed, ", "))
			break
		}
	}

	finished := time.Now()
	o.mu.Lock()
	o.finishedAt = &finished
	if runErr != nil {
		o.status = models.FailedWorkflowStatus
	} else {
		o.status = models.CompletedWorkflowStatus
	}
	o.mu.Unlock()

	summary := o.GetExecutionSummary()
	if runErr != nil {
		o.logger.Errorf("dataset run failed after %s: %v", finished.Sub(started), runErr)
	} else {
		o.logger.Infof("dataset run completed: %d records in %s (%.0f records/sec)",
			summary.TotalRecordsGenerated, summary.TotalDuration, summary.RecordsPerSecond)
	}
	return summary, runErr
}

// runGroup executes one dependency group and returns the names of the
// workflows that failed, in spec order. Every member runs to completion
// before runGroup returns; a failing member never interrupts its siblings.
func (o *DatasetOrchestrator) runGroup(ctx context.Context, group []string, useParallel bool) []string {
	if useParallel && len(group) > 1 {
		limit := o.maxParallel
		if len(group) < limit {
			limit = len(group)
		}
		sem := make(chan struct{}, limit)
		var wg sync.WaitGroup
		for _, name := range group {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				o.runStep(ctx, name)
			}(name)
		}
		wg.Wait()
	} else {
		for _, name := range group {
			o.runStep(ctx, name)
		}
	}

	var failed []string
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, name := range group {
		if o.steps[name].Status == models.FailedWorkflowStatus {
			failed = append(failed, name)
		}
	}
	return failed
}

func (o *DatasetOrchestrator) runStep(ctx context.Context, name string) {
	o.mu.Lock()
	step := o.steps[name]
	step.MarkRunning()
	cfg := step.Config
	target := step.TargetRecords
	o.mu.Unlock()

	result := o.executeWorkflow(ctx, name, cfg, target)

	o.mu.Lock()
	defer o.mu.Unlock()
	if result.Success() {
		step.MarkCompleted(result)
	} else {
		step.MarkFailed(result, result.ErrorMsg)
	}
}

func (o *DatasetOrchestrator) executeWorkflow(ctx context.Context, name string, cfg models.WorkflowConfig, target int) models.WorkflowResult {
	var gen generator.Generator
	if o.gens != nil {
		var err error
		gen, err = o.gens(name, cfg)
		if err != nil {
			return models.WorkflowResult{
				Status:   models.FailedWorkflowStatus,
				ErrorMsg: errors.Wrapf(err, "building generator for '%s'", name).Error(),
			}
		}
	}
	wf, err := NewEntityWorkflow(name, cfg, o.stores, gen, o.logger)
	if err != nil {
		return models.WorkflowResult{
			Status:   models.FailedWorkflowStatus,
			ErrorMsg: err.Error(),
		}
	}
	return wf.Execute(ctx, target)
}
