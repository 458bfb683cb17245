package models

import "github.com/pkg/errors"

// WriteMode controls how a batch is persisted: truncate destroys existing
// rows before writing, append adds to them.
type WriteMode string

const (
	AppendWriteMode   WriteMode = "append"
	TruncateWriteMode WriteMode = "truncate"
)

const (
	DefaultBatchSize  = 1000
	DefaultMaxRecords = 100000
)

// WorkflowConfig is the execution configuration shared by all steps of a run.
// It is a value type: callers derive per-step variants by copying and
// adjusting the copy, the shared base is never mutated.
type WorkflowConfig struct {
	BatchSize  int
	MaxRecords int
	Seed       *int64
	WriteMode  WriteMode
}

func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		BatchSize:  DefaultBatchSize,
		MaxRecords: DefaultMaxRecords,
		WriteMode:  AppendWriteMode,
	}
}

func (c WorkflowConfig) Validate() error {
	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	if c.MaxRecords <= 0 {
		return errors.New("max records must be positive")
	}
	if c.WriteMode != AppendWriteMode && c.WriteMode != TruncateWriteMode {
		return errors.Errorf("write mode must be '%s' or '%s'", AppendWriteMode, TruncateWriteMode)
	}
	return nil
}

// WithWriteMode returns a copy of the config with the write mode replaced.
func (c WorkflowConfig) WithWriteMode(mode WriteMode) WorkflowConfig {
	c.WriteMode = mode
	return c
}
