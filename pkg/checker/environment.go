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
package checker

import "github.com/consensys/go-constcheck/pkg/ast"

// Environment provides read-only access to the results of earlier phases
// (i.e. name resolution and typing).  The checker never modifies the program
// tree, and consults the environment only through these queries.
type Environment interface {
	// Resolve returns the definition which a given path (or struct literal)
	// resolves to, or false if it was not resolved.
	Resolve(ast.NodeId) (ast.Def, bool)
	// Overloaded determines whether a given operator application was resolved
	// to a user-defined operator implementation.
	Overloaded(ast.NodeId) bool
	// TypeOf returns the type inferred for a given expression.
	TypeOf(ast.NodeId) ast.Type
	// Declaration returns the declaration with a given identifier, or false if
	// no such declaration exists.
	Declaration(ast.NodeId) (ast.Declaration, bool)
}
