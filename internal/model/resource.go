// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the ResourceDeclaration, the output of a component build
// and the input of procedure resolution.
package model

import "maps"

// ResourceDeclaration describes the desired end state of one manageable unit.
type ResourceDeclaration struct {
	Type       string
	Attributes map[string]any
}

// Clone returns a deep copy of the declaration. Nested maps and slices are
// copied so the clone can be handed to code that may modify it.
func (rd ResourceDeclaration) Clone() ResourceDeclaration {
	return ResourceDeclaration{
		Type:       rd.Type,
		Attributes: CloneAttributes(rd.Attributes),
	}
}

// CloneAttributes deep copies an attribute map. A nil map stays nil.
func CloneAttributes(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneAttributes(t)
	case map[string]string:
		return maps.Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
