package worker

import "errors"

var (
	// ErrUnexpectedStep is returned when a stage receives a step kind that an
	// earlier stage should have eliminated.
	ErrUnexpectedStep = errors.New("unexpected step")
	// ErrBuildPanicked is returned when a collaborator panics during a build.
	ErrBuildPanicked = errors.New("build panicked")
)
