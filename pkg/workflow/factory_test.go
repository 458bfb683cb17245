package workflow_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ChrisAdan/earth/pkg/models"
	"github.com/ChrisAdan/earth/pkg/storage"
	"github.com/ChrisAdan/earth/pkg/workflow"
)

func TestNewRunner(t *testing.T) {
	t.Run("EntityWorkflows", func(t *testing.T) {
		for _, name := range []string{"people", "companies"} {
			t.Run(name, func(t *testing.T) {
				runner, err := workflow.NewRunner(name, models.DefaultWorkflowConfig(), storage.NewMockStore())
				assert.NoError(t, err)
				assert.Equal(t, name, runner.Name())
				assert.NotEmpty(t, runner.Description())
			})
		}
	})

	t.Run("FullDataset", func(t *testing.T) {
		runner, err := workflow.NewRunner(workflow.FullDatasetWorkflow, models.DefaultWorkflowConfig(), storage.NewMockStore())
		assert.NoError(t, err)
		assert.Equal(t, workflow.FullDatasetWorkflow, runner.Name())
	})

	t.Run("UnknownWorkflowListsAvailable", func(t *testing.T) {
		_, err := workflow.NewRunner("galaxies", models.DefaultWorkflowConfig(), storage.NewMockStore())
		assert.True(t, errors.Is(err, workflow.ErrUnknownWorkflow))
		assert.Contains(t, err.Error(), "people")
		assert.Contains(t, err.Error(), "companies")
		assert.Contains(t, err.Error(), "full_dataset")
	})

	t.Run("ListWorkflows", func(t *testing.T) {
		assert.Equal(t, []string{"people", "companies", "full_dataset"}, workflow.ListWorkflows())
	})

	t.Run("DescribeWorkflows", func(t *testing.T) {
		infos := workflow.DescribeWorkflows()
		assert.Len(t, infos, 3)
		assert.Equal(t, 1000, infos[0].DefaultCount)
		assert.Equal(t, 100, infos[1].DefaultCount)
	})
}

func TestDatasetWorkflow(t *testing.T) {
	t.Run("ExecuteIgnoresTargetAndUsesSpec", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 5
		spec := dependentSpec(t, 25, 5)

		runner, err := workflow.NewRunner(workflow.FullDatasetWorkflow, cfg, store,
			workflow.WithDatasetSpec(spec),
			workflow.WithRunnerGeneratorFactory(stubFactory(nil)),
			workflow.WithRunnerLogger(testLogger{}))
		assert.NoError(t, err)

		result := runner.Execute(context.Background(), 999999)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)
		assert.Equal(t, int64(30), result.RecordsGenerated)
	})

	t.Run("RecordsMetadataBestEffort", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 5

		dataset, err := workflow.NewDatasetWorkflow(dependentSpec(t, 25, 5), cfg, store,
			workflow.WithGeneratorFactory(stubFactory(nil)),
			workflow.WithLogger(testLogger{}))
		assert.NoError(t, err)

		result := dataset.Execute(context.Background(), 0)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)

		metadata := store.Rows("raw", "dataset_metadata")
		assert.Len(t, metadata, 1)
		assert.Equal(t, "COMPLETED", metadata[0]["status"])
		assert.Equal(t, int64(30), metadata[0]["records_generated"])
		assert.NotEmpty(t, metadata[0]["dataset_id"])
	})

	t.Run("MetadataFailureDoesNotChangeOutcome", func(t *testing.T) {
		store := storage.NewMockStore()
		store.WriteErrTable = "dataset_metadata"
		store.WriteErr = errors.New("metadata table missing")
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 5

		dataset, err := workflow.NewDatasetWorkflow(dependentSpec(t, 25, 5), cfg, store,
			workflow.WithGeneratorFactory(stubFactory(nil)),
			workflow.WithLogger(testLogger{}))
		assert.NoError(t, err)

		result := dataset.Execute(context.Background(), 0)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)
		assert.Empty(t, store.Rows("raw", "dataset_metadata"))
	})

	t.Run("FailedRunStillRecordsMetadata", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 5

		dataset, err := workflow.NewDatasetWorkflow(dependentSpec(t, 25, 5), cfg, store,
			workflow.WithGeneratorFactory(stubFactory(map[string]int{"people": 10})),
			workflow.WithLogger(testLogger{}))
		assert.NoError(t, err)

		result := dataset.Execute(context.Background(), 0)
		assert.Equal(t, models.FailedWorkflowStatus, result.Status)
		assert.NotEmpty(t, result.ErrorMsg)

		metadata := store.Rows("raw", "dataset_metadata")
		assert.Len(t, metadata, 1)
		assert.Equal(t, "FAILED", metadata[0]["status"])
	})

	t.Run("SequentialExecution", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 5

		dataset, err := workflow.NewDatasetWorkflow(dependentSpec(t, 25, 5), cfg, store,
			workflow.WithGeneratorFactory(stubFactory(nil)),
			workflow.WithLogger(testLogger{}))
		assert.NoError(t, err)
		dataset.SetParallel(false)

		result := dataset.Execute(context.Background(), 0)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)

		summary := dataset.GetExecutionSummary()
		assert.Equal(t, 2, summary.CompletedWorkflows)
	})
}
