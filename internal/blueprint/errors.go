package blueprint

import "errors"

var (
	// ErrMissingRole is returned when a role name is not defined.
	ErrMissingRole = errors.New("role not defined")

	// ErrComponentNotFound is returned when a component name is not defined.
	ErrComponentNotFound = errors.New("component not found")

	// ErrDuplicate is returned when a role or component name is defined twice.
	ErrDuplicate = errors.New("duplicate definition")

	// ErrInvalidName is returned for a component name that references could
	// never resolve.
	ErrInvalidName = errors.New("invalid component name")

	// ErrNestedRole is returned for a role that contains Role or Resource steps.
	ErrNestedRole = errors.New("role may only contain component and procedure steps")
)
