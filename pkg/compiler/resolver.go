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
	"fmt"
	"reflect"
	"strings"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/util/source"
)

// Resolve every path (and struct literal) in a given program to the definition
// it refers to.  Names are resolved lexically, such that every declaration in a
// module (or block) is visible throughout it, whilst local variables are
// visible only after their binding.  Externally declared items are visible
// everywhere, but may be shadowed by those declared in the program.
func Resolve(program ast.Program, externs *Externs, srcmaps *source.Maps[ast.Node]) (*Environment,
	[]source.SyntaxError) {
	//
	var (
		env      = NewEnvironment()
		resolver = resolver{env, srcmaps, nil, make(map[ast.NodeId]*scope)}
		// Externs are visible within the root scope
		root = newScope(resolver.declareExterns(externs))
	)
	//
	resolver.declareAll(root, program.Declarations)
	resolver.resolveAll(root, program.Declarations)
	//
	return env, resolver.errors
}

type resolver struct {
	env     *Environment
	srcmaps *source.Maps[ast.Node]
	errors  []source.SyntaxError
	// Scopes of declared modules
	modules map[ast.NodeId]*scope
}

// ============================================================================
// Externs
// ============================================================================

func (p *resolver) declareExterns(externs *Externs) *scope {
	var s = newScope(nil)
	//
	if externs == nil {
		return s
	}
	//
	for name, datatype := range externs.Consts {
		p.env.externTypes[name] = ast.ParseType(datatype)
		s.declareExtern(name, ast.DefStatic)
	}
	//
	for _, name := range externs.Fns {
		s.declareExtern(name, ast.DefFn)
	}
	//
	for _, name := range externs.Structs {
		s.declareExtern(name, ast.DefStruct)
	}
	//
	for name, variants := range externs.Enums {
		enum := s.declareExtern(name, ast.DefTy)
		//
		for _, v := range variants {
			enum.declareExtern(v, ast.DefVariant)
		}
	}
	//
	return s
}

// ============================================================================
// Declarations
// ============================================================================

// Declare the names of a given set of declarations within a given scope.
func (p *resolver) declareAll(s *scope, decls []ast.Declaration) {
	for _, decl := range decls {
		p.env.decls[decl.Id()] = decl
		//
		switch d := decl.(type) {
		case *ast.ConstDecl:
			p.declare(s, d, d.Name, ast.DefStatic)
		case *ast.FnDecl:
			p.declare(s, d, d.Name, ast.DefFn)
		case *ast.StructDecl:
			p.declare(s, d, d.Name, ast.DefStruct)
		case *ast.EnumDecl:
			if p.declare(s, d, d.Name, ast.DefTy) {
				enum := s.child(d.Name)
				//
				for _, v := range d.Variants {
					p.declare(enum, v, v.Name, ast.DefVariant)
				}
			}
		case *ast.ModuleDecl:
			if p.declare(s, d, d.Name, ast.DefMod) {
				p.modules[d.Id()] = s.child(d.Name)
				p.declareAll(p.modules[d.Id()], d.Decls)
			}
		case *ast.ImplDecl:
			// Nested declarations are not visible outside the implementation.
		default:
			panic(fmt.Sprintf("unknown declaration encountered (%s)", reflect.TypeOf(decl)))
		}
	}
}

// Declare a given name within a given scope, reporting an error if it is
// already declared there.
func (p *resolver) declare(s *scope, node ast.Node, name string, kind ast.DefKind) bool {
	if _, ok := s.names[name]; ok {
		p.errors = append(p.errors, *p.srcmaps.SyntaxError(node, "duplicate declaration"))
		return false
	}
	//
	s.names[name] = ast.Def{Kind: kind, Name: s.qualify(name), Decl: node.Id(), Local: true}
	//
	return true
}

func (p *resolver) resolveAll(s *scope, decls []ast.Declaration) {
	for _, decl := range decls {
		p.resolveDeclaration(s, decl)
	}
}

func (p *resolver) resolveDeclaration(s *scope, decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.ConstDecl:
		p.resolveExpr(s, d.Init)
	case *ast.EnumDecl:
		for _, v := range d.Variants {
			if v.Discriminant != nil {
				p.resolveExpr(s, v.Discriminant)
			}
		}
	case *ast.StructDecl:
		// nothing to do
	case *ast.FnDecl:
		body := newScope(s)
		//
		for _, param := range d.Params {
			p.resolvePattern(body, param)
		}
		//
		p.resolveExpr(body, d.Body)
	case *ast.ModuleDecl:
		// Duplicate modules are not resolved
		if module, ok := p.modules[d.Id()]; ok {
			p.resolveAll(module, d.Decls)
		}
	case *ast.ImplDecl:
		impl := newScope(s)
		//
		p.declareAll(impl, d.Decls)
		p.resolveAll(impl, d.Decls)
	}
}

// ============================================================================
// Expressions
// ============================================================================

func (p *resolver) resolveExpr(s *scope, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.PathExpr:
		p.resolvePath(s, e, e.Path)
	case *ast.StructLit:
		if def, ok := p.resolvePath(s, e, e.Name); ok && def.Kind != ast.DefStruct {
			p.errors = append(p.errors, *p.srcmaps.SyntaxError(e, "not a struct"))
		}
		//
		for _, field := range e.Fields {
			p.resolveExpr(s, field.Value)
		}
	case *ast.Block:
		p.resolveBlock(s, e)
	case *ast.Match:
		p.resolveExpr(s, e.Arg)
		//
		for _, arm := range e.Arms {
			inner := newScope(s)
			p.resolvePattern(inner, arm.Pattern)
			p.resolveExpr(inner, arm.Body)
		}
	case *ast.Lambda:
		inner := newScope(s)
		//
		for _, param := range e.Params {
			p.resolvePattern(inner, param)
		}
		//
		p.resolveExpr(inner, e.Body)
	default:
		for _, child := range ast.Children(e) {
			p.resolveExpr(s, child.(ast.Expr))
		}
	}
}

func (p *resolver) resolveBlock(s *scope, block *ast.Block) {
	var (
		inner = newScope(s)
		decls []ast.Declaration
	)
	// Nested declarations are visible throughout the block
	for _, stmt := range block.Stmts {
		if decl, ok := stmt.(ast.Declaration); ok {
			decls = append(decls, decl)
		}
	}
	//
	p.declareAll(inner, decls)
	//
	for _, stmt := range block.Stmts {
		switch stmt := stmt.(type) {
		case *ast.Let:
			if stmt.Init != nil {
				p.resolveExpr(inner, stmt.Init)
			}
			// Bindings are visible only after the let
			inner = newScope(inner)
			p.resolvePattern(inner, stmt.Pattern)
		case ast.Declaration:
			p.resolveDeclaration(inner, stmt)
		case ast.Expr:
			p.resolveExpr(inner, stmt)
		}
	}
}

// Resolve a path, recording the definition it refers to (if found) and
// otherwise reporting an error.
func (p *resolver) resolvePath(s *scope, node ast.Node, path ast.Path) (ast.Def, bool) {
	def, ok := s.lookup(path.Names())
	//
	if ok {
		p.env.defs[node.Id()] = def
	} else {
		p.errors = append(p.errors, *p.srcmaps.SyntaxError(node, "unknown symbol"))
	}
	//
	return def, ok
}

// ============================================================================
// Patterns
// ============================================================================

// Resolve any paths within a pattern, and declare any variables it binds within
// the given scope.
func (p *resolver) resolvePattern(s *scope, pattern ast.Pattern) {
	switch e := pattern.(type) {
	case *ast.Wildcard:
		// nothing to do
	case *ast.Binding:
		s.names[e.Name] = ast.Def{Kind: ast.DefLocal, Name: e.Name, Decl: e.Id(), Local: true}
	case *ast.LitPattern:
		p.resolveExpr(s, e.Value)
	case *ast.RangePattern:
		p.resolveExpr(s, e.Lo)
		p.resolveExpr(s, e.Hi)
	case *ast.TuplePattern:
		for _, element := range e.Elements {
			p.resolvePattern(s, element)
		}
	case *ast.VariantPattern:
		if def, ok := p.resolvePath(s, e, e.Path); ok && def.Kind != ast.DefVariant && def.Kind != ast.DefStruct {
			p.errors = append(p.errors, *p.srcmaps.SyntaxError(e, "not a variant"))
		}
		//
		for _, arg := range e.Args {
			p.resolvePattern(s, arg)
		}
	}
}

// ============================================================================
// Scopes
// ============================================================================

// scope represents a lexical scope, which maps names to their definitions.
// Modules and enums additionally introduce named child scopes, through which
// qualified paths are resolved.
type scope struct {
	parent *scope
	// Qualified name of the enclosing module (or enum)
	prefix   string
	names    map[string]ast.Def
	children map[string]*scope
}

func newScope(parent *scope) *scope {
	var prefix string
	//
	if parent != nil {
		prefix = parent.prefix
	}
	//
	return &scope{parent, prefix, make(map[string]ast.Def), make(map[string]*scope)}
}

// Get (or create) the named child scope.
func (s *scope) child(name string) *scope {
	if child, ok := s.children[name]; ok {
		return child
	}
	//
	child := newScope(s)
	child.prefix = s.qualify(name)
	s.children[name] = child
	//
	return child
}

func (s *scope) qualify(name string) string {
	if s.prefix == "" {
		return name
	}
	//
	return s.prefix + "::" + name
}

// Declare an external item with a (possibly qualified) name, implicitly
// declaring any enclosing modules.  This returns the child scope of the item.
func (s *scope) declareExtern(name string, kind ast.DefKind) *scope {
	var (
		names = strings.Split(name, "::")
		n     = len(names) - 1
	)
	//
	for _, m := range names[:n] {
		if _, ok := s.names[m]; !ok {
			s.names[m] = ast.Def{Kind: ast.DefMod, Name: s.qualify(m)}
		}
		//
		s = s.child(m)
	}
	//
	s.names[names[n]] = ast.Def{Kind: kind, Name: s.qualify(names[n])}
	//
	return s.child(names[n])
}

// Lookup a (possibly qualified) name in this scope or any enclosing scope.  The
// first component of a qualified name identifies a module (or enum) visible
// from this scope, whilst the remainder are resolved strictly within it.
func (s *scope) lookup(names []string) (ast.Def, bool) {
	for ; s != nil; s = s.parent {
		if len(names) == 1 {
			if def, ok := s.names[names[0]]; ok {
				return def, true
			}
		} else if child, ok := s.children[names[0]]; ok {
			return child.lookupWithin(names[1:])
		}
	}
	//
	return ast.Def{}, false
}

func (s *scope) lookupWithin(names []string) (ast.Def, bool) {
	for _, name := range names[:len(names)-1] {
		child, ok := s.children[name]
		//
		if !ok {
			return ast.Def{}, false
		}
		//
		s = child
	}
	//
	def, ok := s.names[names[len(names)-1]]
	//
	return def, ok
}
