package dynamo

import "errors"

// Domain errors shared by the generators and transforms.
var (
	// ErrInvalidArgument indicates a non-positive length, delay, step count or window.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrUnstable indicates the integration became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrInsufficientData indicates a series too short for the requested operation.
	ErrInsufficientData = errors.New("dynamo: not enough points in series")

	// ErrUnknownMethod indicates an unsupported smoothing or fill method.
	ErrUnknownMethod = errors.New("dynamo: unknown method")
)

// SimulationError wraps an error with the sample index and state at which it occurred.
type SimulationError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
