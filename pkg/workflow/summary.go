package workflow

import (
	"time"

	"github.com/ChrisAdan/earth/pkg/models"
)

// StepSummary is the per-workflow slice of an ExecutionSummary.
type StepSummary struct {
	WorkflowName     string                `json:"workflow_name"`
	Status           models.WorkflowStatus `json:"status"`
	TargetRecords    int                   `json:"target_records"`
	RecordsGenerated int64                 `json:"records_generated"`
	RecordsStored    int64                 `json:"records_stored"`
	Duration         time.Duration         `json:"duration"`
	ErrorMsg         string                `json:"error_msg,omitempty"`
}

// ExecutionSummary aggregates one orchestrated run. TotalWorkflowTime is the
// sum of per-step durations; TimeSavedParallel is how much shorter the wall
// clock was than that sum, floored at zero for sequential runs.
type ExecutionSummary struct {
	Status                models.WorkflowStatus `json:"status"`
	Groups                [][]string            `json:"groups"`
	Steps                 []StepSummary         `json:"steps"`
	CompletedWorkflows    int                   `json:"completed_workflows"`
	FailedWorkflows       int                   `json:"failed_workflows"`
	TotalRecordsGenerated int64                 `json:"total_records_generated"`
	TotalRecordsStored    int64                 `json:"total_records_stored"`
	TotalDuration         time.Duration         `json:"total_duration"`
	TotalWorkflowTime     time.Duration         `json:"total_workflow_time"`
	TimeSavedParallel     time.Duration         `json:"time_saved_parallel"`
	RecordsPerSecond      float64               `json:"records_per_second"`
}

// GetExecutionSummary snapshots the run's current state. It is safe to call
// mid-run; steps not yet executed show as pending with zero counts.
func (o *DatasetOrchestrator) GetExecutionSummary() ExecutionSummary {
	o.mu.Lock()
	defer o.mu.Unlock()

	summary := ExecutionSummary{
		Status: o.status,
		Groups: make([][]string, len(o.groups)),
	}
	for i, group := range o.groups {
		summary.Groups[i] = append([]string(nil), group...)
	}

	var workflowTime time.Duration
	for _, name := range o.spec.Names() {
		step := o.steps[name]
		ss := StepSummary{
			WorkflowName:  step.WorkflowName,
			Status:        step.Status,
			TargetRecords: step.TargetRecords,
			Duration:      step.Duration(),
			ErrorMsg:      step.ErrorMsg,
		}
		if step.Result != nil {
			ss.RecordsGenerated = step.Result.RecordsGenerated
			ss.RecordsStored = step.Result.RecordsStored
		}
		summary.Steps = append(summary.Steps, ss)

		workflowTime += step.Duration()
		switch step.Status {
		case models.CompletedWorkflowStatus:
			// Totals count completed steps only; failed steps keep their
			// partial progress visible in Steps.
			summary.TotalRecordsGenerated += ss.RecordsGenerated
			summary.TotalRecordsStored += ss.RecordsStored
			summary.CompletedWorkflows++
		case models.FailedWorkflowStatus:
			summary.FailedWorkflows++
		}
	}
	summary.TotalWorkflowTime = workflowTime

	if o.startedAt != nil {
		end := time.Now()
		if o.finishedAt != nil {
			end = *o.finishedAt
		}
		summary.TotalDuration = end.Sub(*o.startedAt)
	}
	if saved := workflowTime - summary.TotalDuration; saved > 0 {
		summary.TimeSavedParallel = saved
	}
	if secs := summary.TotalDuration.Seconds(); secs > 0 {
		summary.RecordsPerSecond = float64(summary.TotalRecordsGenerated) / secs
	}

	return summary
}
