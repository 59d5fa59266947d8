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
	"slices"
	"strings"

	"github.com/consensys/go-constcheck/pkg/ast"
)

// COMPARISON_OPERATORS identifies those binary operators which produce a
// boolean result, regardless of their operand types.
var COMPARISON_OPERATORS = []string{"==", "!=", "<", "<=", ">", ">=", "&&", "||"}

// Infer types for the expressions of a given (resolved) program, and determine
// which operator applications resolve to user-defined implementations.  Only
// a simple bottom-up inference is performed, and expressions whose type cannot
// be determined are left untyped.  An operator application is considered
// user-defined when its (first) operand has a named type for which an
// implementation of that operator is declared.
func Infer(program ast.Program, env *Environment) {
	typer := typer{env, nil, make(map[ast.NodeId]ast.Type)}
	// Operator implementations are visible throughout the program
	for _, decl := range program.Declarations {
		typer.collectImpls(decl)
	}
	//
	for _, decl := range program.Declarations {
		typer.visit(decl)
	}
}

type typer struct {
	env   *Environment
	impls []*ast.ImplDecl
	// Types of let-bound variables
	locals map[ast.NodeId]ast.Type
}

func (p *typer) collectImpls(node ast.Node) {
	if impl, ok := node.(*ast.ImplDecl); ok {
		p.impls = append(p.impls, impl)
	}
	//
	for _, child := range ast.Children(node) {
		p.collectImpls(child)
	}
}

// Visit a node in post-order, such that the types of any subexpressions are
// known before those of the enclosing expression.
func (p *typer) visit(node ast.Node) {
	for _, child := range ast.Children(node) {
		p.visit(child)
	}
	//
	switch n := node.(type) {
	case *ast.Let:
		if binding, ok := n.Pattern.(*ast.Binding); ok && n.Init != nil {
			if datatype := p.typeOf(n.Init); datatype != nil {
				p.locals[binding.Id()] = datatype
			}
		}
	case ast.Expr:
		if datatype := p.infer(n); datatype != nil {
			p.env.types[n.Id()] = datatype
		}
		//
		if p.isOverloaded(n) {
			p.env.overloaded[n.Id()] = true
		}
	}
}

// Get the type previously inferred for a given expression, or nil if none.
func (p *typer) typeOf(e ast.Expr) ast.Type {
	return p.env.types[e.Id()]
}

//nolint:gocyclo
func (p *typer) infer(expr ast.Expr) ast.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return inferLiteral(e)
	case *ast.PathExpr:
		if def, ok := p.env.defs[e.Id()]; ok {
			return p.typeOfDef(def, false)
		}
	case *ast.Call:
		if def, ok := p.env.defs[e.Callee.Id()]; ok {
			return p.typeOfDef(def, true)
		}
	case *ast.StructLit:
		return &ast.NamedType{Name: lastName(e.Name.Names())}
	case *ast.Cast:
		return e.Target
	case *ast.Unary:
		return p.inferUnary(e)
	case *ast.Binary:
		if slices.Contains(COMPARISON_OPERATORS, e.Op) {
			return &ast.PrimitiveType{Name: "bool"}
		}
		//
		return p.typeOf(e.Lhs)
	case *ast.AddrOf:
		return &ast.RefType{Element: orUnknown(p.typeOf(e.Arg))}
	case *ast.Paren:
		return p.typeOf(e.Arg)
	case *ast.Tuple:
		if len(e.Elements) == 0 {
			return &ast.PrimitiveType{Name: "()"}
		}
		//
		elements := make([]ast.Type, len(e.Elements))
		//
		for i, element := range e.Elements {
			elements[i] = orUnknown(p.typeOf(element))
		}
		//
		return &ast.TupleType{Elements: elements}
	case *ast.If:
		return p.typeOf(e.Then)
	case *ast.Block:
		if n := len(e.Stmts); n > 0 {
			if last, ok := e.Stmts[n-1].(ast.Expr); ok {
				return p.typeOf(last)
			}
		}
	}
	//
	return nil
}

func inferLiteral(e *ast.Literal) ast.Type {
	switch e.Kind {
	case ast.LIT_INT:
		return &ast.PrimitiveType{Name: "int"}
	case ast.LIT_FLOAT:
		return &ast.PrimitiveType{Name: "float"}
	case ast.LIT_BOOL:
		return &ast.PrimitiveType{Name: "bool"}
	case ast.LIT_CHAR:
		return &ast.PrimitiveType{Name: "char"}
	default:
		return &ast.PrimitiveType{Name: "str"}
	}
}

func (p *typer) inferUnary(e *ast.Unary) ast.Type {
	arg := p.typeOf(e.Arg)
	//
	switch e.Op {
	case ast.DEREF:
		switch t := arg.(type) {
		case *ast.RefType:
			return t.Element
		case *ast.PointerType:
			return t.Element
		}
		//
		return nil
	case ast.NEG, ast.NOT:
		return arg
	default:
		return nil
	}
}

// Determine the type of a reference to a given definition.  When called is
// true, this is instead the type returned from calling it.
func (p *typer) typeOfDef(def ast.Def, called bool) ast.Type {
	names := strings.Split(def.Name, "::")
	//
	switch {
	case def.Kind == ast.DefStruct:
		return &ast.NamedType{Name: lastName(names)}
	case def.Kind == ast.DefVariant && len(names) > 1:
		return &ast.NamedType{Name: names[len(names)-2]}
	case def.Kind == ast.DefStatic && !called && def.IsLocal():
		if decl, ok := p.env.decls[def.Decl].(*ast.ConstDecl); ok {
			return decl.Type
		}
	case def.Kind == ast.DefStatic && !called:
		return p.env.externTypes[def.Name]
	case def.Kind == ast.DefFn && called && def.IsLocal():
		if decl, ok := p.env.decls[def.Decl].(*ast.FnDecl); ok {
			return decl.Result
		}
	case def.Kind == ast.DefLocal && !called:
		return p.locals[def.Decl]
	}
	//
	return nil
}

// Check whether a given expression is an operator application for which a
// user-defined implementation exists.
func (p *typer) isOverloaded(expr ast.Expr) bool {
	var (
		operator string
		operand  ast.Expr
	)
	//
	switch e := expr.(type) {
	case *ast.Binary:
		operator, operand = e.Op, e.Lhs
	case *ast.Unary:
		if e.Op != ast.NEG && e.Op != ast.NOT {
			return false
		}
		//
		operator, operand = e.Op.String(), e.Arg
	default:
		return false
	}
	//
	if datatype, ok := p.typeOf(operand).(*ast.NamedType); ok {
		for _, impl := range p.impls {
			if impl.Operator == operator && impl.Self.Equals(datatype) {
				return true
			}
		}
	}
	//
	return false
}

func lastName(names []string) string {
	return names[len(names)-1]
}

func orUnknown(datatype ast.Type) ast.Type {
	if datatype == nil {
		return &ast.UnknownType{}
	}
	//
	return datatype
}
