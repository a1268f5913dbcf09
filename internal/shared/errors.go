package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingToken  = fmt.Errorf("missing API token")

	// Remote gateway errors
	ErrRemote             = fmt.Errorf("remote request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Collection errors
	ErrNotFound  = fmt.Errorf("entry not found")
	ErrDuplicate = fmt.Errorf("game already in collection")

	// Input validation errors
	ErrValidation      = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
