package worker

import "fmt"

// State is the lifecycle position of a build.
type State int32

const (
	// Idle means no build has started on the worker yet.
	Idle State = iota
	// Sequencing indicates roles are being expanded.
	Sequencing
	// Assembling indicates components are being built.
	Assembling
	// Compiling indicates resource declarations are being resolved.
	Compiling
	// Applying indicates procedures are being executed.
	Applying
	// Done indicates the build completed successfully.
	Done
	// Failed indicates the build stopped at its first error.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sequencing:
		return "sequencing"
	case Assembling:
		return "assembling"
	case Compiling:
		return "compiling"
	case Applying:
		return "applying"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Terminal reports whether s ends a build.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// canTransition reports whether a build may move from one state to another.
func canTransition(from, to State) bool {
	switch to {
	case Sequencing:
		return from == Idle || from.Terminal()
	case Assembling:
		return from == Sequencing
	case Compiling:
		return from == Assembling
	case Applying:
		return from == Compiling
	case Done:
		return from == Applying
	case Failed:
		return from >= Sequencing && from <= Applying
	default:
		return false
	}
}
