package models

import "time"

// WorkflowStep tracks one workflow's progress through a single orchestrated
// run. A step is owned by the orchestrator that created it and mutated by
// exactly one worker at a time, so it carries no locking of its own.
type WorkflowStep struct {
	WorkflowName  string
	TargetRecords int
	DependsOn     []string
	Config        WorkflowConfig

	Status     WorkflowStatus
	StartedAt  *time.Time
	FinishedAt *time.Time
	Result     *WorkflowResult
	ErrorMsg   string
}

func NewWorkflowStep(name string, targetRecords int, dependsOn []string, cfg WorkflowConfig) *WorkflowStep {
	return &WorkflowStep{
		WorkflowName:  name,
		TargetRecords: targetRecords,
		DependsOn:     dependsOn,
		Config:        cfg,
		Status:        PendingWorkflowStatus,
	}
}

// Duration returns the elapsed execution time, or 0 until the step has both
// started and finished.
func (s *WorkflowStep) Duration() time.Duration {
	if s.StartedAt == nil || s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(*s.StartedAt)
}

func (s *WorkflowStep) MarkRunning() {
	now := time.Now()
	s.Status = RunningWorkflowStatus
	s.StartedAt = &now
}

func (s *WorkflowStep) MarkCompleted(result WorkflowResult) {
	now := time.Now()
	s.Status = CompletedWorkflowStatus
	s.Result = &result
	s.FinishedAt = &now
}

func (s *WorkflowStep) MarkFailed(result WorkflowResult, errorMsg string) {
	now := time.Now()
	s.Status = FailedWorkflowStatus
	s.Result = &result
	s.ErrorMsg = errorMsg
	s.FinishedAt = &now
}
