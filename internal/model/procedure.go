// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Procedure and Connection contracts, the boundary between
// the pipeline and the code that actually touches a managed system.
package model

import (
	"context"
	"fmt"
)

// Procedure is an executable convergence action. Execute drives the current
// state of sys toward the desired one through conn and reports failure as an
// error. Timeouts and retries belong to the implementation.
type Procedure interface {
	Execute(ctx context.Context, sys *System, conn Connection) error
}

// ProcedureFunc adapts a plain function to the Procedure interface.
type ProcedureFunc func(ctx context.Context, sys *System, conn Connection) error

// Execute calls f(ctx, sys, conn).
func (f ProcedureFunc) Execute(ctx context.Context, sys *System, conn Connection) error {
	return f(ctx, sys, conn)
}

// Named attaches a display name to a procedure for logging.
func Named(name string, p Procedure) Procedure {
	return namedProcedure{name: name, Procedure: p}
}

type namedProcedure struct {
	name string
	Procedure
}

func (n namedProcedure) Name() string {
	return n.name
}

// Unwrap returns the wrapped procedure.
func (n namedProcedure) Unwrap() Procedure {
	return n.Procedure
}

// ProcedureName returns the display name of p, falling back to its Go type.
func ProcedureName(p Procedure) string {
	if p == nil {
		return "<nil>"
	}
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

// Connection is the session handle to a managed system. One build uses one
// connection for all of its procedures.
type Connection interface {
	// Run executes a command on the target and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// Close releases the session.
	Close() error
}
