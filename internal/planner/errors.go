package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingPlanName is returned when generation is requested without a
	// plan name.
	ErrMissingPlanName = errors.New("meal plan name is required")

	// ErrEmptyAdjustment is returned when an adjustment is submitted with no
	// request text.
	ErrEmptyAdjustment = errors.New("adjustment request is empty")

	// ErrInvalidTransition is returned when an operation is called in a stage
	// that does not allow it.
	ErrInvalidTransition = errors.New("invalid workflow transition")
)

// GenerationFailedError wraps a model-service failure. The workflow stage is
// left unchanged so the failed operation can be retried.
type GenerationFailedError struct {
	Op  string
	Err error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Op, e.Err)
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Err
}
