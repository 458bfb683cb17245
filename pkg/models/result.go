package models

import "time"

type WorkflowStatus string

const (
	PendingWorkflowStatus   WorkflowStatus = "PENDING"
	RunningWorkflowStatus   WorkflowStatus = "RUNNING"
	CompletedWorkflowStatus WorkflowStatus = "COMPLETED"
	FailedWorkflowStatus    WorkflowStatus = "FAILED"
)

// WorkflowResult is produced once per workflow execution. RecordsStored is
// the store's authoritative post-write row count; it may legitimately differ
// from RecordsGenerated when the target table already held rows.
type WorkflowResult struct {
	Status           WorkflowStatus
	RecordsGenerated int64
	RecordsStored    int64
	ErrorMsg         string
	ExecutionTime    time.Duration
}

func (r WorkflowResult) Success() bool {
	return r.Status == CompletedWorkflowStatus
}
