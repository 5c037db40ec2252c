// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the System, the target of a convergence build together
// with its ordered step list.
package model

import "slices"

// System is a managed target and the steps declared for it. Steps are appended
// while the system is being described and read by builds afterwards.
type System struct {
	Name       string
	Attributes map[string]any
	steps      []Step
}

// NewSystem creates a system with no steps.
func NewSystem(name string, attrs map[string]any) *System {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	return &System{Name: name, Attributes: attrs}
}

// Role appends a role reference.
func (s *System) Role(name string) *System {
	s.steps = append(s.steps, Role(name))
	return s
}

// Component appends a component reference.
func (s *System) Component(name string, options map[string]any) *System {
	s.steps = append(s.steps, Component(name, options))
	return s
}

// Procedure appends a procedure.
func (s *System) Procedure(p Procedure) *System {
	s.steps = append(s.steps, Proc(p))
	return s
}

// Resource appends a resource declaration.
func (s *System) Resource(rd ResourceDeclaration) *System {
	s.steps = append(s.steps, Resource(rd))
	return s
}

// Append adds already constructed steps.
func (s *System) Append(steps ...Step) *System {
	s.steps = append(s.steps, steps...)
	return s
}

// Steps returns a copy of the declared steps in order.
func (s *System) Steps() []Step {
	return slices.Clone(s.steps)
}

// Attribute returns the string value of a system attribute, or "".
func (s *System) Attribute(key string) string {
	if v, ok := s.Attributes[key].(string); ok {
		return v
	}
	return ""
}
