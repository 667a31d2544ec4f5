package service

import "errors"

// Sentinel errors for engine operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrJobNotFound indicates no job matches the given reference.
	ErrJobNotFound = errors.New("job not found")

	// ErrAmbiguousRef indicates an id prefix matches more than one job.
	ErrAmbiguousRef = errors.New("job reference is ambiguous")

	// ErrMissingFields indicates a job without client name or event name.
	// Creation is refused and the state is left unchanged.
	ErrMissingFields = errors.New("client name and event name are required")

	// ErrJobFinalized indicates a change that finalized jobs do not accept.
	ErrJobFinalized = errors.New("job is finalized")

	// ErrTaskNotFound indicates the job's template has no task with that id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrFieldNotAllowed indicates a date or choice on a task whose template
	// entry does not carry that field.
	ErrFieldNotAllowed = errors.New("field not available on this task")

	// ErrInvalidChoice indicates a choice value outside ONLINE/IN_PERSON.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidDate indicates a non-blank date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidDeliveryMode indicates an unknown delivery mode.
	ErrInvalidDeliveryMode = errors.New("invalid delivery mode")
)
