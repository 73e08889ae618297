package orchestrator

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned when the requested tag is not registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm tag")

// ErrEmptySnapshot is returned when the data source yields nothing to
// schedule.
var ErrEmptySnapshot = errors.New("snapshot has no projects")

// FallbackFailureError means both the requested strategy and the
// comprehensive fallback degenerated. The run record is marked failed.
type FallbackFailureError struct {
	Tag      string
	Original string
	Fallback string
}

func (e *FallbackFailureError) Error() string {
	return fmt.Sprintf("algorithm %s failed (%s) and fallback failed (%s)", e.Tag, e.Original, e.Fallback)
}

// PersistenceError wraps a run-store or schedule-store write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
