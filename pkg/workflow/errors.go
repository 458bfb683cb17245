package workflow

import "github.com/pkg/errors"

// Specification errors are raised at construction/validation time, before
// any execution begins, and are never retried. Match with errors.Is.
var (
	ErrInvalidSpec        = errors.New("invalid dataset spec")
	ErrCircularDependency = errors.New("circular dependency")
	ErrUnknownTemplate    = errors.New("unknown template")
	ErrConflictingSpec    = errors.New("conflicting specification")
	ErrUnknownWorkflow    = errors.New("unknown workflow")
)
