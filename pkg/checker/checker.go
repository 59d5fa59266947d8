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

import (
	"fmt"
	"reflect"

	"github.com/consensys/go-constcheck/pkg/ast"
)

// Check a given program to ensure that every constant context (i.e. the
// initialiser of a constant, the discriminant of an enum variant, or the bounds
// of a literal or range pattern) contains only those expressions which can be
// evaluated at compile time.  Furthermore, every constant is checked to ensure
// it does not (transitively) depend upon itself.  Recoverable errors are
// reported to the session, and an *AbortError is returned if there were any
// once the whole program has been checked.  Upon encountering a recursive
// constant, a *FatalError is returned immediately and no further declarations
// are checked.
func Check(program ast.Program, env Environment, session *Session) error {
	checker := constChecker{env, session}
	//
	for _, decl := range program.Declarations {
		if err := checker.checkNode(decl, false); err != nil {
			return err
		}
	}
	//
	return session.AbortIfErrors()
}

// constChecker walks the program tree looking for constant contexts.
type constChecker struct {
	env     Environment
	session *Session
}

// Check a given node, where the inConst flag indicates whether or not this node
// falls within a constant context.  A non-nil error is returned only for an
// unrecoverable error.
func (p *constChecker) checkNode(node ast.Node, inConst bool) error {
	switch n := node.(type) {
	case *ast.ConstDecl:
		return p.checkConst(n)
	case *ast.EnumDecl:
		return p.checkEnum(n)
	case ast.Declaration:
		return p.checkChildren(n, false)
	case ast.Expr:
		return p.checkExpr(n, inConst)
	case ast.Pattern:
		return p.checkPattern(n)
	case *ast.Let:
		return p.checkChildren(n, inConst)
	default:
		panic(fmt.Sprintf("internal error: unknown node encountered (%s)", reflect.TypeOf(node)))
	}
}

// Check the initialiser of a constant, and that it is not recursive.
func (p *constChecker) checkConst(decl *ast.ConstDecl) error {
	if err := p.checkNode(decl.Init, true); err != nil {
		return err
	}
	//
	return checkRecursion(decl, p.env, p.session)
}

// Check each discriminant of an enum.  Observe that discriminants are not
// checked for recursion.
func (p *constChecker) checkEnum(decl *ast.EnumDecl) error {
	for _, variant := range decl.Variants {
		if variant.Discriminant == nil {
			continue
		} else if err := p.checkNode(variant.Discriminant, true); err != nil {
			return err
		}
	}
	//
	return nil
}

// Literal and range patterns are constant contexts, except that plain string
// literals are permitted without further checks.
func (p *constChecker) checkPattern(pattern ast.Pattern) error {
	switch n := pattern.(type) {
	case *ast.LitPattern:
		return p.checkBounds(n.Value)
	case *ast.RangePattern:
		return p.checkBounds(n.Lo, n.Hi)
	default:
		return p.checkChildren(pattern, false)
	}
}

func (p *constChecker) checkBounds(bounds ...ast.Expr) error {
	for _, bound := range bounds {
		if ast.IsStringLiteral(bound) {
			continue
		} else if err := p.checkNode(bound, true); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *constChecker) checkChildren(node ast.Node, inConst bool) error {
	for _, child := range ast.Children(node) {
		if err := p.checkNode(child, inConst); err != nil {
			return err
		}
	}
	//
	return nil
}
