// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Step variant, the unit every build stage consumes and
// produces.
//
// A Step carries exactly one payload and the payload decides its Kind. Stages
// switch on Kind and read the payload through the typed accessors, so there is
// no free-form parameter bag to interpret at each stage boundary.
package model

import "fmt"

// Kind identifies which payload a Step carries.
type Kind int

const (
	// KindRole references a named Role in the blueprint.
	KindRole Kind = iota + 1
	// KindComponent references a Component and the options to build it with.
	KindComponent
	// KindProcedure carries an executable Procedure.
	KindProcedure
	// KindResource carries a ResourceDeclaration awaiting compilation.
	KindResource
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRole:
		return "role"
	case KindComponent:
		return "component"
	case KindProcedure:
		return "procedure"
	case KindResource:
		return "resource"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RoleStep is the payload of a KindRole step.
type RoleStep struct {
	Name string
}

// ComponentStep is the payload of a KindComponent step. Name has the form
// "component" or "component/descriptor".
type ComponentStep struct {
	Name    string
	Options map[string]any
}

// ProcedureStep is the payload of a KindProcedure step.
type ProcedureStep struct {
	Procedure Procedure
}

// ResourceStep is the payload of a KindResource step.
type ResourceStep struct {
	Declaration ResourceDeclaration
}

// Step is one ordered declaration. The zero value is invalid; use the
// constructors below.
type Step struct {
	kind      Kind
	role      RoleStep
	component ComponentStep
	procedure ProcedureStep
	resource  ResourceStep
}

// Role creates a step that expands into the steps of the named role.
func Role(name string) Step {
	return Step{kind: KindRole, role: RoleStep{Name: name}}
}

// Component creates a step that is built into resource declarations by the
// component named in the first segment of name.
func Component(name string, options map[string]any) Step {
	return Step{kind: KindComponent, component: ComponentStep{Name: name, Options: options}}
}

// Proc creates a step that executes p directly.
func Proc(p Procedure) Step {
	return Step{kind: KindProcedure, procedure: ProcedureStep{Procedure: p}}
}

// Resource creates a step that declares the desired state of one resource.
func Resource(rd ResourceDeclaration) Step {
	return Step{kind: KindResource, resource: ResourceStep{Declaration: rd}}
}

// Kind returns the step's kind.
func (s Step) Kind() Kind {
	return s.kind
}

// Role returns the role payload and whether the step is a KindRole step.
func (s Step) Role() (RoleStep, bool) {
	return s.role, s.kind == KindRole
}

// Component returns the component payload and whether the step is a
// KindComponent step.
func (s Step) Component() (ComponentStep, bool) {
	return s.component, s.kind == KindComponent
}

// Procedure returns the procedure payload and whether the step is a
// KindProcedure step.
func (s Step) Procedure() (ProcedureStep, bool) {
	return s.procedure, s.kind == KindProcedure
}

// Resource returns the resource payload and whether the step is a KindResource
// step.
func (s Step) Resource() (ResourceStep, bool) {
	return s.resource, s.kind == KindResource
}

// String renders the step for logs.
func (s Step) String() string {
	switch s.kind {
	case KindRole:
		return "role(" + s.role.Name + ")"
	case KindComponent:
		return "component(" + s.component.Name + ")"
	case KindProcedure:
		return "procedure(" + ProcedureName(s.procedure.Procedure) + ")"
	case KindResource:
		return "resource(" + s.resource.Declaration.Type + ")"
	default:
		return s.kind.String()
	}
}
