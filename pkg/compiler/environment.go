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
package compiler

import (
	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/checker"
)

// Environment captures the results of name resolution and typing for a given
// program.  This is populated by the resolver and typer, and subsequently
// queried by the checker.
type Environment struct {
	// Definitions to which paths (and struct literals) resolve.
	defs map[ast.NodeId]ast.Def
	// Every declaration in the program, indexed by identifier.
	decls map[ast.NodeId]ast.Declaration
	// Inferred types of expressions.
	types map[ast.NodeId]ast.Type
	// Operator applications resolved to a user-defined implementation.
	overloaded map[ast.NodeId]bool
	// Declared types of external constants.
	externTypes map[string]ast.Type
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ checker.Environment = (*Environment)(nil)

// NewEnvironment constructs an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		defs:        make(map[ast.NodeId]ast.Def),
		decls:       make(map[ast.NodeId]ast.Declaration),
		types:       make(map[ast.NodeId]ast.Type),
		overloaded:  make(map[ast.NodeId]bool),
		externTypes: make(map[string]ast.Type),
	}
}

// Resolve implementation for the checker.Environment interface.
func (p *Environment) Resolve(id ast.NodeId) (ast.Def, bool) {
	def, ok := p.defs[id]
	return def, ok
}

// Overloaded implementation for the checker.Environment interface.
func (p *Environment) Overloaded(id ast.NodeId) bool {
	return p.overloaded[id]
}

// TypeOf implementation for the checker.Environment interface.  Expressions
// whose type could not be inferred have the unknown type.
func (p *Environment) TypeOf(id ast.NodeId) ast.Type {
	if t, ok := p.types[id]; ok {
		return t
	}
	//
	return &ast.UnknownType{}
}

// Declaration implementation for the checker.Environment interface.
func (p *Environment) Declaration(id ast.NodeId) (ast.Declaration, bool) {
	decl, ok := p.decls[id]
	return decl, ok
}
