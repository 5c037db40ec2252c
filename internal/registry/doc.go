// Package registry provides the central "glue" for the module system.
//
// The Registry stores the Go implementations that modules contribute: procedure
// constructors keyed by resource type, components keyed by name, and roles. It
// acts as the Procedure Factory for the build pipeline and hands out a fresh
// Blueprint for every build.
//
// During application startup, the registry is populated and then validated so
// that every role only references components that actually exist.
package registry
