// Package worker runs the build pipeline for one managed system.
//
// A build turns the system's ordered steps into executed procedures in four
// stages, each consuming the previous stage's output:
//
//	Sequence  Role steps are replaced in place by the role's steps.
//	Assemble  Component steps are built into Resource steps.
//	Compile   Resource steps are resolved into Procedure steps.
//	Apply     Procedure steps are executed against the connection.
//
// Stages run strictly in order and the first error ends the build. Nothing is
// rolled back; procedures are expected to be idempotent.
package worker
