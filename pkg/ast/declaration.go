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

// Declaration represents a named definition in a source file (e.g. defconst,
// defenum, defn, etc).  Declarations may appear at the top-level, within
// modules, or nested inside blocks.
type Declaration interface {
	Node
	// Label returns a human readable name for this declaration.
	Label() string
	// marker
	declaration()
}

// ============================================================================
// defconst
// ============================================================================

// ConstDecl represents a constant binding, whose initialiser must be
// evaluable at compile time.
type ConstDecl struct {
	Meta
	Name string
	Type Type
	Init Expr
}

// Label implementation for Declaration interface.
func (p *ConstDecl) Label() string { return p.Name }

func (p *ConstDecl) declaration() {}

// ============================================================================
// defenum
// ============================================================================

// EnumDecl represents an enumerated type with an ordered sequence of variants.
type EnumDecl struct {
	Meta
	Name     string
	Variants []*Variant
}

// Label implementation for Declaration interface.
func (p *EnumDecl) Label() string { return p.Name }

func (p *EnumDecl) declaration() {}

// Variant represents a single variant of an enumerated type, which may carry
// an explicit discriminant expression.
type Variant struct {
	Meta
	Name string
	// Discriminant expression (or nil if none given).
	Discriminant Expr
}

// ============================================================================
// defstruct
// ============================================================================

// StructDecl represents a record type with zero or more named fields.
type StructDecl struct {
	Meta
	Name   string
	Fields []string
}

// Label implementation for Declaration interface.
func (p *StructDecl) Label() string { return p.Name }

func (p *StructDecl) declaration() {}

// ============================================================================
// defn
// ============================================================================

// FnDecl represents a free function.
type FnDecl struct {
	Meta
	Name   string
	Params []Pattern
	// Declared return type (or nil if none given).
	Result Type
	Body   Expr
}

// Label implementation for Declaration interface.
func (p *FnDecl) Label() string { return p.Name }

func (p *FnDecl) declaration() {}

// ============================================================================
// defmod
// ============================================================================

// ModuleDecl represents a named module which contains zero or more nested
// declarations.
type ModuleDecl struct {
	Meta
	Name  string
	Decls []Declaration
}

// Label implementation for Declaration interface.
func (p *ModuleDecl) Label() string { return p.Name }

func (p *ModuleDecl) declaration() {}

// ============================================================================
// defimpl
// ============================================================================

// ImplDecl represents a user-defined implementation of an operator for a
// given (self) type, along with any supporting declarations.
type ImplDecl struct {
	Meta
	Operator string
	Self     Type
	Decls    []Declaration
}

// Label implementation for Declaration interface.
func (p *ImplDecl) Label() string { return p.Operator + " for " + p.Self.String() }

func (p *ImplDecl) declaration() {}
