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

func newTestWorkflow(t *testing.T, name string, cfg models.WorkflowConfig, store *storage.MockStore) *workflow.EntityWorkflow {
	t.Helper()
	wf, err := workflow.NewEntityWorkflow(name, cfg, store, newStubGenerator(entityFor(name)), testLogger{})
	assert.NoError(t, err)
	return wf
}

func TestNewEntityWorkflow(t *testing.T) {
	t.Run("UnknownWorkflow", func(t *testing.T) {
		_, err := workflow.NewEntityWorkflow("planets", models.DefaultWorkflowConfig(), storage.NewMockStore(), nil, testLogger{})
		assert.True(t, errors.Is(err, workflow.ErrUnknownWorkflow))
	})

	t.Run("NilGeneratorUsesDefault", func(t *testing.T) {
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 10
		wf, err := workflow.NewEntityWorkflow("people", cfg, storage.NewMockStore(), nil, testLogger{})
		assert.NoError(t, err)
		assert.Equal(t, "people", wf.Name())
	})
}

func TestEntityWorkflowExecute(t *testing.T) {
	t.Run("GeneratesInBatches", func(t *testing.T) {
		tests := []struct {
			name      string
			batchSize int
			target    int
			batches   int
		}{
			{"EvenBatches", 10, 100, 10},
			{"UnevenFinalBatch", 37, 100, 3},
			{"SingleBatch", 1000, 100, 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := storage.NewMockStore()
				cfg := models.DefaultWorkflowConfig()
				cfg.BatchSize = tt.batchSize
				wf := newTestWorkflow(t, "people", cfg, store)

				result := wf.Execute(context.Background(), tt.target)
				assert.Equal(t, models.CompletedWorkflowStatus, result.Status)
				assert.Equal(t, int64(tt.target), result.RecordsGenerated)
				assert.Equal(t, int64(tt.target), result.RecordsStored)
				assert.Len(t, store.Writes(), tt.batches)
				assert.Len(t, store.Rows("raw", "persons"), tt.target)
			})
		}
	})

	t.Run("TruncateAppliesToFirstBatchOnly", func(t *testing.T) {
		store := storage.NewMockStore()
		store.Seed("raw", "persons", []models.Record{{"person_id": "old"}})

		cfg := models.DefaultWorkflowConfig().WithWriteMode(models.TruncateWriteMode)
		cfg.BatchSize = 10
		wf := newTestWorkflow(t, "people", cfg, store)

		result := wf.Execute(context.Background(), 30)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)

		writes := store.Writes()
		assert.Len(t, writes, 3)
		assert.Equal(t, models.TruncateWriteMode, writes[0].Mode)
		assert.Equal(t, models.AppendWriteMode, writes[1].Mode)
		assert.Equal(t, models.AppendWriteMode, writes[2].Mode)
		// Pre-existing row was truncated away.
		assert.Equal(t, int64(30), result.RecordsStored)
	})

	t.Run("AppendModeKeepsExistingRows", func(t *testing.T) {
		store := storage.NewMockStore()
		store.Seed("raw", "persons", []models.Record{{"person_id": "old"}})

		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 10
		wf := newTestWorkflow(t, "people", cfg, store)

		result := wf.Execute(context.Background(), 20)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)
		assert.Equal(t, int64(20), result.RecordsGenerated)
		// Row count is authoritative and includes the pre-existing row.
		assert.Equal(t, int64(21), result.RecordsStored)
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		tests := []struct {
			name   string
			target int
		}{
			{"Zero", 0},
			{"Negative", -5},
			{"ExceedsMaxRecords", models.DefaultMaxRecords + 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := storage.NewMockStore()
				wf := newTestWorkflow(t, "people", models.DefaultWorkflowConfig(), store)
				result := wf.Execute(context.Background(), tt.target)
				assert.Equal(t, models.FailedWorkflowStatus, result.Status)
				assert.Zero(t, result.RecordsGenerated)
				assert.NotEmpty(t, result.ErrorMsg)
				assert.Empty(t, store.Writes())
			})
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = -1
		wf := newTestWorkflow(t, "people", cfg, store)
		result := wf.Execute(context.Background(), 10)
		assert.Equal(t, models.FailedWorkflowStatus, result.Status)
		assert.Contains(t, result.ErrorMsg, "batch size")
	})

	t.Run("ConnectFailure", func(t *testing.T) {
		store := storage.NewMockStore()
		store.ConnectErr = errors.New("connection refused")
		wf := newTestWorkflow(t, "people", models.DefaultWorkflowConfig(), store)
		result := wf.Execute(context.Background(), 10)
		assert.Equal(t, models.FailedWorkflowStatus, result.Status)
		assert.Contains(t, result.ErrorMsg, "connection refused")
	})

	t.Run("GenerationFailureKeepsPartialProgress", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 10
		gen := newStubGenerator("person")
		gen.FailAfter = 25
		wf, err := workflow.NewEntityWorkflow("people", cfg, store, gen, testLogger{})
		assert.NoError(t, err)

		result := wf.Execute(context.Background(), 50)
		assert.Equal(t, models.FailedWorkflowStatus, result.Status)
		assert.Equal(t, int64(20), result.RecordsGenerated)
		assert.NotEmpty(t, result.ErrorMsg)
		// The two successful batches stay persisted.
		assert.Len(t, store.Rows("raw", "persons"), 20)
	})

	t.Run("WriteFailure", func(t *testing.T) {
		store := storage.NewMockStore()
		store.WriteErrTable = "persons"
		store.WriteErr = errors.New("disk full")
		wf := newTestWorkflow(t, "people", models.DefaultWorkflowConfig(), store)
		result := wf.Execute(context.Background(), 10)
		assert.Equal(t, models.FailedWorkflowStatus, result.Status)
		assert.Contains(t, result.ErrorMsg, "disk full")
	})

	t.Run("CancelledContext", func(t *testing.T) {
		store := storage.NewMockStore()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		wf := newTestWorkflow(t, "people", models.DefaultWorkflowConfig(), store)
		result := wf.Execute(ctx, 10)
		assert.Equal(t, models.FailedWorkflowStatus, result.Status)
		assert.Contains(t, result.ErrorMsg, "cancel")
	})

	t.Run("ExecutionTimeRecorded", func(t *testing.T) {
		store := storage.NewMockStore()
		cfg := models.DefaultWorkflowConfig()
		cfg.BatchSize = 10
		wf := newTestWorkflow(t, "companies", cfg, store)
		result := wf.Execute(context.Background(), 30)
		assert.Equal(t, models.CompletedWorkflowStatus, result.Status)
		assert.Greater(t, result.ExecutionTime.Nanoseconds(), int64(0))
	})
}
