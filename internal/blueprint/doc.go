// Package blueprint holds the read-only lookup table a build resolves names
// against: Roles, which group Component and Procedure steps under a name, and
// Components, which turn one declarative reference into resource declarations.
//
// A Blueprint is assembled before a build (usually by registry.Registry) and is
// not modified while the build runs.
package blueprint
