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
	"strings"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/util/source"
)

// fakeEnv is a hand-populated environment, used to test the checker
// independently of parsing, resolution and typing.
type fakeEnv struct {
	defs       map[ast.NodeId]ast.Def
	decls      map[ast.NodeId]ast.Declaration
	types      map[ast.NodeId]ast.Type
	overloaded map[ast.NodeId]bool
	// Identifiers passed to Declaration
	lookups []ast.NodeId
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		defs:       make(map[ast.NodeId]ast.Def),
		decls:      make(map[ast.NodeId]ast.Declaration),
		types:      make(map[ast.NodeId]ast.Type),
		overloaded: make(map[ast.NodeId]bool),
	}
}

func (p *fakeEnv) Resolve(id ast.NodeId) (ast.Def, bool) {
	def, ok := p.defs[id]
	return def, ok
}

func (p *fakeEnv) Overloaded(id ast.NodeId) bool {
	return p.overloaded[id]
}

func (p *fakeEnv) TypeOf(id ast.NodeId) ast.Type {
	if t, ok := p.types[id]; ok {
		return t
	}
	//
	return &ast.UnknownType{}
}

func (p *fakeEnv) Declaration(id ast.NodeId) (ast.Declaration, bool) {
	p.lookups = append(p.lookups, id)
	decl, ok := p.decls[id]
	//
	return decl, ok
}

// builder constructs program trees with fresh identifiers.
type builder struct {
	next ast.NodeId
	env  *fakeEnv
}

func newBuilder() *builder {
	return &builder{0, newFakeEnv()}
}

func (b *builder) meta() ast.Meta {
	b.next++
	return ast.Meta{ID: b.next}
}

// Declare a local constant, registering it with the environment.
func (b *builder) constant(name string, init ast.Expr) *ast.ConstDecl {
	decl := &ast.ConstDecl{Meta: b.meta(), Name: name, Type: &ast.PrimitiveType{Name: "int"}, Init: init}
	b.env.decls[decl.Id()] = decl
	//
	return decl
}

func (b *builder) lit(value string) *ast.Literal {
	return &ast.Literal{Meta: b.meta(), Kind: ast.LIT_INT, Value: value}
}

func (b *builder) str(value string) *ast.Literal {
	return &ast.Literal{Meta: b.meta(), Kind: ast.LIT_STR, Value: value}
}

func (b *builder) unary(op ast.UnaryOp, arg ast.Expr) *ast.Unary {
	return &ast.Unary{Meta: b.meta(), Op: op, Arg: arg}
}

func (b *builder) tuple(elements ...ast.Expr) *ast.Tuple {
	return &ast.Tuple{Meta: b.meta(), Elements: elements}
}

// Construct a path which resolves to a given definition (or is unresolved if
// none is given).
func (b *builder) path(name string, defs ...ast.Def) *ast.PathExpr {
	path := &ast.PathExpr{Meta: b.meta(), Path: ast.NewPath(strings.Split(name, "::")...)}
	//
	for _, def := range defs {
		b.env.defs[path.Id()] = def
	}
	//
	return path
}

// Construct a path which resolves to a given local constant.
func (b *builder) ref(decl *ast.ConstDecl) *ast.PathExpr {
	return b.path(decl.Name, ast.Def{Kind: ast.DefStatic, Name: decl.Name, Decl: decl.Id(), Local: true})
}

// Construct source maps for a given program, where every node spans a single
// character at the offset given by its identifier.
func (b *builder) sourceMaps(program ast.Program) *source.Maps[ast.Node] {
	var (
		srcfile = source.NewSourceFile("test.lisp", []byte(strings.Repeat(" ", int(b.next)+1)))
		srcmap  = source.NewSourceMap[ast.Node](srcfile)
		srcmaps = source.NewSourceMaps[ast.Node]()
	)
	//
	for _, decl := range program.Declarations {
		register(srcmap, decl)
	}
	//
	srcmaps.Join(srcmap)
	//
	return srcmaps
}

func register(srcmap *source.Map[ast.Node], node ast.Node) {
	if !srcmap.Has(node) {
		srcmap.Put(node, source.NewSpan(int(node.Id()), int(node.Id())+1))
	}
	//
	for _, child := range ast.Children(node) {
		register(srcmap, child)
	}
}

// diagnostic is a comparable summary of a syntax error.
type diagnostic struct {
	Msg  string
	Node ast.NodeId
}

func diagnostics(errs []source.SyntaxError) []diagnostic {
	var result []diagnostic
	//
	for _, err := range errs {
		span := err.Span()
		result = append(result, diagnostic{err.Message(), ast.NodeId(span.Start())})
	}
	//
	return result
}

func program(decls ...ast.Declaration) ast.Program {
	return ast.Program{Declarations: decls}
}
