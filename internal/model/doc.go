// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of everything a convergence
// build operates on.
//
// # Core Concepts
//
//   - System: the managed target. It owns an ordered list of Steps that is
//     declared once, before any build starts, and is only read afterwards.
//
//   - Step: a closed variant with one payload per Kind. A build rewrites steps
//     into more concrete kinds stage by stage: Role steps become Component and
//     Procedure steps, Component steps become Resource steps, Resource steps
//     become Procedure steps.
//
//   - ResourceDeclaration: the desired end state of one manageable unit,
//     described by a type and a bag of attributes.
//
//   - Procedure: an executable convergence action. It receives the System and
//     the Connection to it.
//
//   - Connection: the session handle to the managed target. The pipeline never
//     calls it, it only hands it to procedures.
//
// The pipeline itself lives in package worker; this package has no knowledge of
// how steps are expanded.
package model
