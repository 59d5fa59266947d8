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

// Pattern represents a pattern used in a match arm, let binding or parameter.
type Pattern interface {
	Node
	// marker
	pattern()
}

// Wildcard represents the pattern "_" which matches anything.
type Wildcard struct {
	Meta
}

// Binding represents a pattern which binds the matched value to a name.
type Binding struct {
	Meta
	Name string
}

// LitPattern represents a pattern matching exactly one (constant) value.
type LitPattern struct {
	Meta
	Value Expr
}

// RangePattern represents a pattern matching an inclusive range of (constant)
// values, such as "a".."z".
type RangePattern struct {
	Meta
	Lo, Hi Expr
}

// TuplePattern represents the destructuring of a tuple.
type TuplePattern struct {
	Meta
	Elements []Pattern
}

// VariantPattern represents the destructuring of an enum variant (or struct).
type VariantPattern struct {
	Meta
	Path Path
	Args []Pattern
}

func (*Wildcard) pattern()       {}
func (*Binding) pattern()        {}
func (*LitPattern) pattern()     {}
func (*RangePattern) pattern()   {}
func (*TuplePattern) pattern()   {}
func (*VariantPattern) pattern() {}
