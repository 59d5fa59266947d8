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

	"github.com/consensys/go-constcheck/pkg/ast"
	log "github.com/sirupsen/logrus"
)

// Check an expression which may (or may not) be in a constant context.  Outside
// of a constant context, this simply looks for nested constant contexts (e.g. a
// constant declared within a function body).  Within a constant context, only
// those expression forms which can be evaluated at compile time are permitted.
//
//nolint:gocyclo
func (p *constChecker) checkExpr(e ast.Expr, inConst bool) error {
	if !inConst {
		return p.checkChildren(e, false)
	}
	//
	switch e := e.(type) {
	case *ast.Unary:
		switch e.Op {
		case ast.DEREF:
		case ast.BOX, ast.UNIQ:
			p.session.SpanError(e, "cannot do allocations in constant expressions")
			return nil
		default:
			p.checkOperator(e)
		}
	case *ast.Literal:
	case *ast.Binary:
		p.checkOperator(e)
	case *ast.Cast:
		if datatype := p.env.TypeOf(e.Id()); !datatype.IsNumeric() && !datatype.IsUnsafePtr() {
			msg := fmt.Sprintf("can not cast to `%s` in a constant expression", datatype.String())
			p.session.SpanError(e, msg)
		}
	case *ast.PathExpr:
		p.checkPath(e)
	case *ast.Call:
		if e.Sugar != ast.NO_SUGAR {
			return p.unimplemented(e)
		}
		//
		p.checkCallee(e)
	case *ast.Paren:
	case *ast.VecStore:
		if e.Kind != ast.STORE_SLICE {
			p.session.SpanError(e, "cannot allocate vectors in constant expressions")
		}
	case *ast.Vec:
		if e.Mutable {
			return p.unimplemented(e)
		}
	case *ast.AddrOf:
		if e.Mutable {
			p.session.SpanError(e, "borrowed pointers in constants may only refer to immutable values")
		}
	case *ast.Field, *ast.Index, *ast.Tuple, *ast.Repeat, *ast.StructLit:
	default:
		return p.unimplemented(e)
	}
	//
	return p.checkChildren(e, true)
}

// Operators are permitted only when they are not user-defined.
func (p *constChecker) checkOperator(e ast.Expr) {
	if p.env.Overloaded(e.Id()) {
		p.session.SpanError(e, "user-defined operators are not allowed in constant expressions")
	}
}

// Paths are permitted only when they have no type arguments, and refer to
// either constants, functions or constructors.
func (p *constChecker) checkPath(e *ast.PathExpr) {
	if e.Path.HasTypeArguments() {
		p.session.SpanError(e, "paths in constants may only refer to items without type parameters")
		return
	}
	//
	def, ok := p.env.Resolve(e.Id())
	//
	if !ok {
		panic(fmt.Sprintf("internal error: unresolved path \"%s\" in constant", e.Path.String()))
	}
	//
	switch def.Kind {
	case ast.DefStatic, ast.DefFn, ast.DefVariant, ast.DefStruct:
	default:
		log.Debugf("(checking const) found bad def: %s", def.String())
		p.session.SpanError(e, "paths in constants may only refer to constants or functions")
	}
}

// Calls are permitted only to construct structs or enum variants.
func (p *constChecker) checkCallee(e *ast.Call) {
	if def, ok := p.env.Resolve(e.Callee.Id()); ok {
		switch def.Kind {
		case ast.DefStruct, ast.DefVariant:
			return
		}
	}
	//
	p.session.SpanError(e, "function calls in constants are limited to struct and enum constructors")
}

// Report an expression which cannot be used in a constant context.  Its
// children are not checked.
func (p *constChecker) unimplemented(e ast.Expr) error {
	p.session.SpanError(e, "constant contains unimplemented expression type")
	return nil
}
