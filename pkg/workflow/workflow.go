package workflow

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/generator"
	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
)

// Logger is the narrow logging surface workflows need. logrus satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// EntityWorkflow generates records for one entity kind in batches and
// persists each batch before generating the next, keeping memory bounded at
// one batch regardless of the target size. Execute reports failures through
// the returned WorkflowResult, never through a Go error, so a caller always
// gets partial-progress accounting.
type EntityWorkflow struct {
	kind   entityKind
	config models.WorkflowConfig
	gen    generator.Generator
	stores storage.Factory
	logger Logger
}

// NewEntityWorkflow builds a workflow for a named entity kind. A nil gen
// selects the default generator for the kind, seeded from the config.
func NewEntityWorkflow(name string, config models.WorkflowConfig, stores storage.Factory, gen generator.Generator, logger Logger) (*EntityWorkflow, error) {
	kind, ok := workflowKinds[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownWorkflow, "'%s'", name)
	}
	if stores == nil {
		return nil, errors.New("nil store factory")
	}
	if logger == nil {
		logger = noopLogger{}
	}
	if gen == nil {
		var err error
		gen, err = generator.New(kind.entityType, generator.Config{
			Seed:      config.Seed,
			BatchSize: config.BatchSize,
		})
		if err != nil {
			return nil, err
		}
	}
	return &EntityWorkflow{
		kind:   kind,
		config: config,
		gen:    gen,
		stores: stores,
		logger: logger,
	}, nil
}

// Name returns the workflow's registered name.
func (w *EntityWorkflow) Name() string {
	return w.kind.workflowName
}

// Description returns a human-readable summary of what the workflow produces.
func (w *EntityWorkflow) Description() string {
	return w.kind.description
}

// Execute generates and persists targetRecords records. The first batch is
// written with the configured write mode; every later batch appends, so a
// truncate-mode run clears the table exactly once. RecordsStored in the
// result is the table row count read back after the final write.
func (w *EntityWorkflow) Execute(ctx context.Context, targetRecords int) models.WorkflowResult {
	started := time.Now()
	fail := func(generated int64, err error) models.WorkflowResult {
		w.logger.Errorf("workflow %s failed: %v", w.kind.workflowName, err)
		return models.WorkflowResult{
			Status:           models.FailedWorkflowStatus,
			RecordsGenerated: generated,
			ErrorMsg:         err.Error(),
			ExecutionTime:    time.Since(started),
		}
	}

	if err := w.config.Validate(); err != nil {
		return fail(0, err)
	}
	if targetRecords <= 0 {
		return fail(0, errors.Errorf("target records must be positive, got %d", targetRecords))
	}
	if targetRecords > w.config.MaxRecords {
		return fail(0, errors.Errorf("target records %d exceeds limit %d", targetRecords, w.config.MaxRecords))
	}

	store, err := w.stores.Connect()
	if err != nil {
		return fail(0, errors.Wrap(err, "connecting to store"))
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			w.logger.Warnf("workflow %s: closing store: %v", w.kind.workflowName, cerr)
		}
	}()

	w.logger.Infof("workflow %s: generating %d records in batches of %d",
		w.kind.workflowName, targetRecords, w.config.BatchSize)

	var generated int64
	firstBatch := true
	for generated < int64(targetRecords) {
		if err := ctx.Err(); err != nil {
			return fail(generated, errors.Wrap(err, "cancelled"))
		}

		batchSize := w.config.BatchSize
		if remaining := int(int64(targetRecords) - generated); remaining < batchSize {
			batchSize = remaining
		}

		records, err := w.gen.GenerateBatch(ctx, batchSize)
		if err != nil {
			return fail(generated, errors.Wrap(err, "generating batch"))
		}
		if err := w.kind.validateBatch(records); err != nil {
			return fail(generated, errors.Wrap(err, "validating batch"))
		}

		mode := models.AppendWriteMode
		if firstBatch {
			mode = w.config.WriteMode
		}
		if err := store.Write(w.kind.schema, w.kind.table, records, mode); err != nil {
			return fail(generated, errors.Wrapf(err, "writing to %s.%s", w.kind.schema, w.kind.table))
		}
		firstBatch = false
		generated += int64(len(records))
		w.logger.Debugf("workflow %s: %d/%d records", w.kind.workflowName, generated, targetRecords)
	}

	stored, err := store.RowCount(w.kind.schema, w.kind.table)
	if err != nil {
		return fail(generated, errors.Wrapf(err, "counting rows in %s.%s", w.kind.schema, w.kind.table))
	}

	elapsed := time.Since(started)
	w.logger.Infof("workflow %s completed: %d generated, %d stored in %s",
		w.kind.workflowName, generated, stored, elapsed)
	return models.WorkflowResult{
		Status:           models.CompletedWorkflowStatus,
		RecordsGenerated: generated,
		RecordsStored:    stored,
		ExecutionTime:    elapsed,
	}
}
