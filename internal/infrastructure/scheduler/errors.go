package scheduler

import "errors"

var (
	// ErrJobNotFound is returned when no job is registered under a name
	ErrJobNotFound = errors.New("scheduler: job not found")

	// ErrJobExists is returned when a job name is registered twice
	ErrJobExists = errors.New("scheduler: job already registered")

	// ErrJobPanicked wraps a panic recovered from a job run
	ErrJobPanicked = errors.New("scheduler: job panicked")

	// ErrInvalidJob is returned for jobs without a name, schedule or body
	ErrInvalidJob = errors.New("scheduler: invalid job")
)
