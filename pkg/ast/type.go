// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"slices"
	"strings"
)

// Type represents the (inferred or declared) type of an expression.  Only
// those queries required by semantic checks are supported.
type Type interface {
	// IsNumeric determines whether this is an integer or floating point type.
	IsNumeric() bool
	// IsUnsafePtr determines whether this is a raw (i.e. unsafe) pointer type.
	IsUnsafePtr() bool
	// Equals determines whether this type is identical to another.
	Equals(Type) bool
	// String produces a string representation of this type.
	String() string
}

// INTEGER_TYPES identifies the names of all primitive integer types.
var INTEGER_TYPES = []string{"i8", "i16", "i32", "i64", "int", "u8", "u16", "u32", "u64", "uint"}

// FLOAT_TYPES identifies the names of all primitive floating point types.
var FLOAT_TYPES = []string{"f32", "f64", "float"}

// OTHER_PRIMITIVE_TYPES identifies the names of all non-numeric primitive types.
var OTHER_PRIMITIVE_TYPES = []string{"bool", "char", "str", "()"}

// ============================================================================
// Primitive
// ============================================================================

// PrimitiveType represents a builtin type, such as "u8" or "bool".
type PrimitiveType struct {
	Name string
}

// IsPrimitiveType checks whether a given name corresponds to a builtin type.
func IsPrimitiveType(name string) bool {
	return slices.Contains(INTEGER_TYPES, name) || slices.Contains(FLOAT_TYPES, name) ||
		slices.Contains(OTHER_PRIMITIVE_TYPES, name)
}

// IsNumeric implementation for Type interface.
func (p *PrimitiveType) IsNumeric() bool {
	return slices.Contains(INTEGER_TYPES, p.Name) || slices.Contains(FLOAT_TYPES, p.Name)
}

// IsUnsafePtr implementation for Type interface.
func (p *PrimitiveType) IsUnsafePtr() bool { return false }

// Equals implementation for Type interface.
func (p *PrimitiveType) Equals(other Type) bool {
	if o, ok := other.(*PrimitiveType); ok {
		return p.Name == o.Name
	}
	//
	return false
}

func (p *PrimitiveType) String() string { return p.Name }

// ============================================================================
// Pointers & References
// ============================================================================

// PointerType represents a raw pointer, written "*T".
type PointerType struct {
	Element Type
}

// IsNumeric implementation for Type interface.
func (p *PointerType) IsNumeric() bool { return false }

// IsUnsafePtr implementation for Type interface.
func (p *PointerType) IsUnsafePtr() bool { return true }

// Equals implementation for Type interface.
func (p *PointerType) Equals(other Type) bool {
	if o, ok := other.(*PointerType); ok {
		return p.Element.Equals(o.Element)
	}
	//
	return false
}

func (p *PointerType) String() string { return "*" + p.Element.String() }

// RefType represents a borrowed pointer, written "&T".
type RefType struct {
	Element Type
}

// IsNumeric implementation for Type interface.
func (p *RefType) IsNumeric() bool { return false }

// IsUnsafePtr implementation for Type interface.
func (p *RefType) IsUnsafePtr() bool { return false }

// Equals implementation for Type interface.
func (p *RefType) Equals(other Type) bool {
	if o, ok := other.(*RefType); ok {
		return p.Element.Equals(o.Element)
	}
	//
	return false
}

func (p *RefType) String() string { return "&" + p.Element.String() }

// ============================================================================
// Named & Tuple
// ============================================================================

// NamedType represents a user-defined type (i.e. a struct or enum), as
// identified by its name.
type NamedType struct {
	Name string
}

// IsNumeric implementation for Type interface.
func (p *NamedType) IsNumeric() bool { return false }

// IsUnsafePtr implementation for Type interface.
func (p *NamedType) IsUnsafePtr() bool { return false }

// Equals implementation for Type interface.
func (p *NamedType) Equals(other Type) bool {
	if o, ok := other.(*NamedType); ok {
		return p.Name == o.Name
	}
	//
	return false
}

func (p *NamedType) String() string { return p.Name }

// TupleType represents a tuple of zero or more types.
type TupleType struct {
	Elements []Type
}

// IsNumeric implementation for Type interface.
func (p *TupleType) IsNumeric() bool { return false }

// IsUnsafePtr implementation for Type interface.
func (p *TupleType) IsUnsafePtr() bool { return false }

// Equals implementation for Type interface.
func (p *TupleType) Equals(other Type) bool {
	if o, ok := other.(*TupleType); ok && len(o.Elements) == len(p.Elements) {
		for i := range p.Elements {
			if !p.Elements[i].Equals(o.Elements[i]) {
				return false
			}
		}
		//
		return true
	}
	//
	return false
}

func (p *TupleType) String() string {
	var names = make([]string, len(p.Elements))
	//
	for i, t := range p.Elements {
		names[i] = t.String()
	}
	//
	return "(" + strings.Join(names, ",") + ")"
}

// ============================================================================
// Unknown
// ============================================================================

// UnknownType is used when no type could be inferred for an expression.
type UnknownType struct{}

// IsNumeric implementation for Type interface.
func (p *UnknownType) IsNumeric() bool { return false }

// IsUnsafePtr implementation for Type interface.
func (p *UnknownType) IsUnsafePtr() bool { return false }

// Equals implementation for Type interface.
func (p *UnknownType) Equals(other Type) bool {
	_, ok := other.(*UnknownType)
	return ok
}

func (p *UnknownType) String() string { return "?" }

// ParseType parses a type written in its compact textual form.  For example,
// "u8", "*u8", "&Point", "(u8,bool)".  Any unrecognised name is assumed to
// identify a user-defined type.
func ParseType(text string) Type {
	switch {
	case strings.HasPrefix(text, "*"):
		return &PointerType{ParseType(text[1:])}
	case strings.HasPrefix(text, "&"):
		return &RefType{ParseType(text[1:])}
	case text == "()":
		return &PrimitiveType{text}
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"):
		var elements []Type
		//
		for _, t := range splitTopLevel(text[1 : len(text)-1]) {
			elements = append(elements, ParseType(t))
		}
		//
		return &TupleType{elements}
	case IsPrimitiveType(text):
		return &PrimitiveType{text}
	default:
		return &NamedType{text}
	}
}

// Split a comma-separated list, ignoring commas nested within brackets.  Each
// item is trimmed of surrounding whitespace.
func splitTopLevel(text string) []string {
	var (
		items []string
		depth = 0
		start = 0
	)
	//
	for i, c := range text {
		switch c {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	//
	if start < len(text) {
		items = append(items, strings.TrimSpace(text[start:]))
	}
	//
	return items
}
