package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Upload errors
	ErrInvalidFile = fmt.Errorf("invalid file")
	ErrParse       = fmt.Errorf("malformed dataset")

	// Training errors
	ErrTraining          = fmt.Errorf("training failed")
	ErrTrainingCancelled = fmt.Errorf("training cancelled")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNoModel            = fmt.Errorf("no trained model available")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
