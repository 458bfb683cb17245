package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
)

const (
	metadataSchema = "raw"
	metadataTable  = "dataset_metadata"
)

// DatasetWorkflow presents a whole orchestrated dataset run behind the same
// Execute surface as a single entity workflow, so callers can treat
// "full_dataset" like any other workflow name. After the run it records a
// metadata row describing the dataset; metadata persistence is best effort
// and never changes the run's outcome.
type DatasetWorkflow struct {
	orchestrator *DatasetOrchestrator
	stores       storage.Factory
	logger       Logger
	parallel     bool
}

func NewDatasetWorkflow(spec *DatasetSpec, config models.WorkflowConfig, stores storage.Factory, opts ...OrchestratorOption) (*DatasetWorkflow, error) {
	orch, err := NewDatasetOrchestrator(spec, config, stores, opts...)
	if err != nil {
		return nil, err
	}
	return &DatasetWorkflow{
		orchestrator: orch,
		stores:       stores,
		logger:       orch.logger,
		parallel:     true,
	}, nil
}

// SetParallel toggles intra-group parallelism for the next Execute call.
func (w *DatasetWorkflow) SetParallel(parallel bool) {
	w.parallel = parallel
}

func (w *DatasetWorkflow) Name() string {
	return FullDatasetWorkflow
}

func (w *DatasetWorkflow) Description() string {
	return "Generate a complete relational dataset across all entity workflows"
}

// Execute runs the full dataset. The targetRecords argument is ignored; the
// spec already fixes each workflow's count. The result aggregates all steps
// and carries the orchestrator's overall status.
func (w *DatasetWorkflow) Execute(ctx context.Context, _ int) models.WorkflowResult {
	summary, runErr := w.orchestrator.Execute(ctx, w.parallel)

	if err := w.recordMetadata(summary); err != nil {
		w.logger.Warnf("recording dataset metadata: %v", err)
	}

	result := models.WorkflowResult{
		Status:           summary.Status,
		RecordsGenerated: summary.TotalRecordsGenerated,
		RecordsStored:    summary.TotalRecordsStored,
		ExecutionTime:    summary.TotalDuration,
	}
	if runErr != nil {
		result.ErrorMsg = runErr.Error()
	}
	return result
}

// GetExecutionSummary exposes the underlying orchestrator's summary.
func (w *DatasetWorkflow) GetExecutionSummary() ExecutionSummary {
	return w.orchestrator.GetExecutionSummary()
}

func (w *DatasetWorkflow) recordMetadata(summary ExecutionSummary) error {
	store, err := w.stores.Connect()
	if err != nil {
		return errors.Wrap(err, "connecting to store")
	}
	defer store.Close()

	spec := w.orchestrator.spec
	record := models.Record{
		"dataset_id":        uuid.NewString(),
		"description":       spec.Description(),
		"workflow_count":    len(spec.Names()),
		"target_records":    spec.TotalRecords(),
		"records_generated": summary.TotalRecordsGenerated,
		"records_stored":    summary.TotalRecordsStored,
		"status":            string(summary.Status),
		"duration_ms":       summary.TotalDuration.Milliseconds(),
		"created_at":        time.Now().UTC(),
		"created_by":        "earth_generator",
	}
	return store.Write(metadataSchema, metadataTable, []models.Record{record}, models.AppendWriteMode)
}
