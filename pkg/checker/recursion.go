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
	"github.com/consensys/go-constcheck/pkg/util/collection/stack"
	log "github.com/sirupsen/logrus"
)

// Check whether a given constant depends upon itself, either directly or
// transitively through other constants.  This is a depth-first traversal from
// the constant, following every path which refers to a constant declared
// within the program.  Paths referring to external constants cannot form
// cycles, and are ignored.
func checkRecursion(root *ast.ConstDecl, env Environment, session *Session) error {
	checker := recursionChecker{root, env, session, stack.NewStack[ast.NodeId]()}
	//
	return checker.visitDeclaration(root)
}

type recursionChecker struct {
	root    *ast.ConstDecl
	env     Environment
	session *Session
	// Declarations currently being visited.
	stack *stack.Stack[ast.NodeId]
}

func (p *recursionChecker) visitDeclaration(decl ast.Declaration) error {
	if p.stack.Contains(decl.Id()) {
		log.Debugf("(checking recursion) cycle found at depth %d", p.stack.Len())
		//
		return p.session.SpanFatal(p.root, "recursive constant")
	}
	//
	p.stack.Push(decl.Id())
	defer p.stack.Pop()
	//
	return p.visitChildren(decl)
}

func (p *recursionChecker) visitNode(node ast.Node) error {
	switch n := node.(type) {
	case ast.Declaration:
		return p.visitDeclaration(n)
	case *ast.PathExpr:
		return p.visitPath(n)
	default:
		return p.visitChildren(n)
	}
}

func (p *recursionChecker) visitChildren(node ast.Node) error {
	for _, child := range ast.Children(node) {
		if err := p.visitNode(child); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *recursionChecker) visitPath(e *ast.PathExpr) error {
	def, ok := p.env.Resolve(e.Id())
	//
	if !ok || def.Kind != ast.DefStatic || !def.IsLocal() {
		return nil
	}
	//
	decl, ok := p.env.Declaration(def.Decl)
	//
	if !ok {
		panic(fmt.Sprintf("internal error: declaration of %s not found", def.String()))
	} else if constant, ok := decl.(*ast.ConstDecl); ok {
		return p.visitDeclaration(constant)
	}
	//
	panic(fmt.Sprintf("internal error: expected constant, found %s", reflect.TypeOf(decl)))
}
