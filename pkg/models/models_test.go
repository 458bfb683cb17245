package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ChrisAdan/earth/pkg/models"
)

func TestWorkflowConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.WorkflowConfig)
		wantErr string
	}{
		{"Defaults", func(c *models.WorkflowConfig) {}, ""},
		{"ZeroBatchSize", func(c *models.WorkflowConfig) { c.BatchSize = 0 }, "batch size"},
		{"NegativeMaxRecords", func(c *models.WorkflowConfig) { c.MaxRecords = -1 }, "max records"},
		{"BogusWriteMode", func(c *models.WorkflowConfig) { c.WriteMode = "upsert" }, "write mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.DefaultWorkflowConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestWorkflowConfigWithWriteMode(t *testing.T) {
	base := models.DefaultWorkflowConfig()
	derived := base.WithWriteMode(models.TruncateWriteMode)
	assert.Equal(t, models.TruncateWriteMode, derived.WriteMode)
	assert.Equal(t, models.AppendWriteMode, base.WriteMode)
}

func TestWorkflowStepLifecycle(t *testing.T) {
	step := models.NewWorkflowStep("people", 100, []string{"companies"}, models.DefaultWorkflowConfig())
	assert.Equal(t, models.PendingWorkflowStatus, step.Status)
	assert.Zero(t, step.Duration())

	step.MarkRunning()
	assert.Equal(t, models.RunningWorkflowStatus, step.Status)
	assert.NotNil(t, step.StartedAt)
	assert.Zero(t, step.Duration())

	time.Sleep(time.Millisecond)
	step.MarkCompleted(models.WorkflowResult{Status: models.CompletedWorkflowStatus, RecordsGenerated: 100})
	assert.Equal(t, models.CompletedWorkflowStatus, step.Status)
	assert.Greater(t, step.Duration(), time.Duration(0))
	assert.True(t, step.Result.Success())
}

func TestWorkflowStepMarkFailed(t *testing.T) {
	step := models.NewWorkflowStep("companies", 10, nil, models.DefaultWorkflowConfig())
	step.MarkRunning()
	step.MarkFailed(models.WorkflowResult{Status: models.FailedWorkflowStatus, RecordsGenerated: 4}, "boom")
	assert.Equal(t, models.FailedWorkflowStatus, step.Status)
	assert.Equal(t, "boom", step.ErrorMsg)
	assert.False(t, step.Result.Success())
	assert.Equal(t, int64(4), step.Result.RecordsGenerated)
}
