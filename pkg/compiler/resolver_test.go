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
	"testing"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/compiler/parser"
	"github.com/consensys/go-constcheck/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_Hoisting(t *testing.T) {
	env, refs := resolveOk(t, nil, "(defconst A int B) (defconst B int 1)")
	//
	def := lookup(t, env, refs, "B")
	assert.Equal(t, ast.DefStatic, def.Kind)
	assert.Equal(t, "B", def.Name)
	assert.True(t, def.IsLocal())
	//
	decl, ok := env.Declaration(def.Decl)
	require.True(t, ok)
	assert.Equal(t, "B", decl.Label())
}

func Test_Resolve_Modules(t *testing.T) {
	env, refs := resolveOk(t, nil, `
(defmod m
  (defconst X int 1)
  (defmod n (defconst Y int X)))
(defconst Z int m::n::Y)`)
	//
	assert.Equal(t, "m::X", lookup(t, env, refs, "X").Name)
	assert.Equal(t, "m::n::Y", lookup(t, env, refs, "m::n::Y").Name)
}

func Test_Resolve_Variants(t *testing.T) {
	env, refs := resolveOk(t, nil, "(defenum E X (Y 2)) (defconst C E E::Y)")
	//
	def := lookup(t, env, refs, "E::Y")
	assert.Equal(t, ast.DefVariant, def.Kind)
	assert.Equal(t, "E::Y", def.Name)
}

func Test_Resolve_Externs(t *testing.T) {
	externs := &Externs{
		Consts:  map[string]string{"std::u8::MAX": "u8", "A": "u8"},
		Fns:     []string{"std::mem::size_of"},
		Structs: []string{"Point"},
		Enums:   map[string][]string{"Ordering": {"Less"}},
	}
	//
	env, refs := resolveOk(t, externs, `
(defconst A int 1)
(defconst B int (tuple A std::u8::MAX std::mem::size_of Point Ordering::Less))`)
	// Declarations in the program shadow externs
	assert.True(t, lookup(t, env, refs, "A").IsLocal())
	//
	max := lookup(t, env, refs, "std::u8::MAX")
	assert.Equal(t, ast.DefStatic, max.Kind)
	assert.False(t, max.IsLocal())
	//
	assert.Equal(t, ast.DefFn, lookup(t, env, refs, "std::mem::size_of").Kind)
	assert.Equal(t, ast.DefStruct, lookup(t, env, refs, "Point").Kind)
	assert.Equal(t, "Ordering::Less", lookup(t, env, refs, "Ordering::Less").Name)
}

func Test_Resolve_Locals(t *testing.T) {
	env, refs := resolveOk(t, nil, "(defn f (x) (block (let y x) (match y ((tuple-pat a _) a) (_ x))))")
	//
	for _, name := range []string{"x", "y", "a"} {
		assert.Equal(t, ast.DefLocal, lookup(t, env, refs, name).Kind, name)
	}
}

func Test_Resolve_BlockDeclarations(t *testing.T) {
	env, refs := resolveOk(t, nil, "(defn f () (block (defconst C int D) (defconst D int 1) C))")
	//
	assert.Equal(t, ast.DefStatic, lookup(t, env, refs, "C").Kind)
	assert.Equal(t, ast.DefStatic, lookup(t, env, refs, "D").Kind)
}

func Test_Resolve_Errors(t *testing.T) {
	tests := []struct {
		text string
		msgs []string
	}{
		{"(defconst A int B)", []string{"unknown symbol"}},
		{"(defconst A int 1) (defconst A int 2)", []string{"duplicate declaration"}},
		{"(defconst A int 1) (defconst B int (struct A))", []string{"not a struct"}},
		{"(defconst A int 1) (defn f (x) (match x ((variant A) 1)))", []string{"not a variant"}},
		{"(defn f () (block (let y z) (let z 1) y))", []string{"unknown symbol"}},
		{"(defmod m (defconst X int 1)) (defconst Y int X)", []string{"unknown symbol"}},
		{"(defn f () (block (defconst C int 1) 1)) (defconst D int C)", []string{"unknown symbol"}},
		{"(defconst A int (tuple B C))", []string{"unknown symbol", "unknown symbol"}},
	}
	//
	for _, test := range tests {
		program, srcmaps := parseProgram(t, test.text)
		_, errs := Resolve(program, nil, srcmaps)
		//
		assert.Equal(t, test.msgs, messages(errs), test.text)
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Paths occurring in a program, indexed by their text.
type references map[string]*ast.PathExpr

func parseProgram(t *testing.T, text string) (ast.Program, *source.Maps[ast.Node]) {
	t.Helper()
	//
	program, srcmaps, errs := parser.ParseSourceFiles(source.NewSourceFile("test.lisp", []byte(text)))
	require.Empty(t, messages(errs))
	//
	return program, srcmaps
}

func resolveOk(t *testing.T, externs *Externs, text string) (*Environment, references) {
	t.Helper()
	//
	var (
		program, srcmaps = parseProgram(t, text)
		refs             = make(references)
	)
	//
	env, errs := Resolve(program, externs, srcmaps)
	require.Empty(t, messages(errs))
	//
	for _, decl := range program.Declarations {
		collectReferences(decl, refs)
	}
	//
	return env, refs
}

func collectReferences(node ast.Node, refs references) {
	if e, ok := node.(*ast.PathExpr); ok {
		refs[e.Path.String()] = e
	}
	//
	for _, child := range ast.Children(node) {
		collectReferences(child, refs)
	}
}

func lookup(t *testing.T, env *Environment, refs references, name string) ast.Def {
	t.Helper()
	//
	ref, ok := refs[name]
	require.True(t, ok, "no reference to %s", name)
	//
	def, ok := env.Resolve(ref.Id())
	require.True(t, ok, "%s not resolved", name)
	//
	return def
}

func messages(errs []source.SyntaxError) []string {
	var msgs []string
	//
	for _, err := range errs {
		msgs = append(msgs, err.Message())
	}
	//
	return msgs
}
