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
package parser

import (
	"testing"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) (ast.Program, *source.Map[ast.Node]) {
	t.Helper()
	//
	program, srcmap, errs := ParseSourceFile(source.NewSourceFile("test.lisp", []byte(text)))
	require.Empty(t, errs)
	//
	return program, srcmap
}

func parseErrors(text string) []string {
	var msgs []string
	//
	_, _, errs := ParseSourceFile(source.NewSourceFile("test.lisp", []byte(text)))
	//
	for _, err := range errs {
		msgs = append(msgs, err.Message())
	}
	//
	return msgs
}

func Test_Parser_Const(t *testing.T) {
	program, srcmap := parse(t, "(defconst A u8 (+ 1 B))")
	//
	require.Len(t, program.Declarations, 1)
	decl, ok := program.Declarations[0].(*ast.ConstDecl)
	require.True(t, ok)
	assert.Equal(t, "A", decl.Name)
	assert.Equal(t, "u8", decl.Type.String())
	//
	binary, ok := decl.Init.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", binary.Op)
	assert.Equal(t, &ast.Literal{Meta: binary.Lhs.(*ast.Literal).Meta, Kind: ast.LIT_INT, Value: "1"}, binary.Lhs)
	// Spans cover the original text
	span := srcmap.Get(binary)
	assert.Equal(t, 15, span.Start())
	assert.Equal(t, 22, span.End())
}

func Test_Parser_UniqueIds(t *testing.T) {
	program, _ := parse(t, "(defenum E (A) (B 1)) (defn f (x) (block (let y x) (defconst C int 1) y))")
	//
	var (
		seen = make(map[ast.NodeId]bool)
		walk func(ast.Node)
	)
	//
	walk = func(node ast.Node) {
		assert.NotZero(t, node.Id())
		assert.False(t, seen[node.Id()], "duplicate identifier %d", node.Id())
		seen[node.Id()] = true
		//
		for _, child := range ast.Children(node) {
			walk(child)
		}
	}
	//
	for _, decl := range program.Declarations {
		walk(decl)
	}
	//
	assert.Len(t, seen, 13)
}

func Test_Parser_UniqueIdsAcrossFiles(t *testing.T) {
	files := []*source.File{
		source.NewSourceFile("a.lisp", []byte("(defconst A int 1)")),
		source.NewSourceFile("b.lisp", []byte("(defconst B int A)")),
	}
	//
	program, srcmaps, errs := ParseSourceFiles(files...)
	//
	require.Empty(t, errs)
	require.Len(t, program.Declarations, 2)
	assert.NotEqual(t, program.Declarations[0].Id(), program.Declarations[1].Id())
	// Errors are reported against the right file
	err := srcmaps.SyntaxError(program.Declarations[1], "oops")
	assert.Equal(t, "b.lisp", err.SourceFile().Filename())
}

func Test_Parser_Literals(t *testing.T) {
	program, _ := parse(t, `(defconst A int (tuple 1 -2 0xff 1.5 true 'c' "a\"b"))`)
	//
	tuple := program.Declarations[0].(*ast.ConstDecl).Init.(*ast.Tuple)
	kinds := []ast.LitKind{ast.LIT_INT, ast.LIT_INT, ast.LIT_INT, ast.LIT_FLOAT, ast.LIT_BOOL, ast.LIT_CHAR, ast.LIT_STR}
	//
	require.Len(t, tuple.Elements, len(kinds))
	//
	for i, kind := range kinds {
		assert.Equal(t, kind, tuple.Elements[i].(*ast.Literal).Kind, "element %d", i)
	}
	//
	assert.Equal(t, `a"b`, tuple.Elements[6].(*ast.Literal).Value)
}

func Test_Parser_Paths(t *testing.T) {
	program, _ := parse(t, "(defconst A int (tuple m::X size_of::<u8,u16>))")
	//
	tuple := program.Declarations[0].(*ast.ConstDecl).Init.(*ast.Tuple)
	qualified := tuple.Elements[0].(*ast.PathExpr)
	generic := tuple.Elements[1].(*ast.PathExpr)
	//
	assert.Equal(t, []string{"m", "X"}, qualified.Path.Names())
	assert.False(t, qualified.Path.HasTypeArguments())
	assert.True(t, generic.Path.HasTypeArguments())
	assert.Equal(t, "size_of::<u8,u16>", generic.Path.String())
}

func Test_Parser_TupleTypeArguments(t *testing.T) {
	program, _ := parse(t, "(defconst A int size_of::<(u8,u16), bool>)")
	//
	require.Len(t, program.Declarations, 1)
	generic := program.Declarations[0].(*ast.ConstDecl).Init.(*ast.PathExpr)
	//
	assert.Equal(t, []string{"size_of"}, generic.Path.Names())
	require.Len(t, generic.Path.Segments[0].Types, 2)
	assert.Equal(t, "(u8,u16)", generic.Path.Segments[0].Types[0].String())
	assert.Equal(t, "bool", generic.Path.Segments[0].Types[1].String())
}

func Test_Parser_CallSugar(t *testing.T) {
	program, _ := parse(t, "(defconst A int (tuple (call f 1) (do f 2) (for f 3)))")
	//
	tuple := program.Declarations[0].(*ast.ConstDecl).Init.(*ast.Tuple)
	//
	for i, sugar := range []ast.CallSugar{ast.NO_SUGAR, ast.DO_SUGAR, ast.FOR_SUGAR} {
		call := tuple.Elements[i].(*ast.Call)
		assert.Equal(t, sugar, call.Sugar)
		assert.Len(t, call.Args, 1)
	}
}

func Test_Parser_Patterns(t *testing.T) {
	program, _ := parse(t, `
(defn f (x)
  (match x
    ((range "a" "z") 1)
    ((lit 2) 2)
    (3 3)
    ((tuple-pat _ y) y)
    ((variant E::A z) z)))`)
	//
	match := program.Declarations[0].(*ast.FnDecl).Body.(*ast.Match)
	require.Len(t, match.Arms, 5)
	//
	assert.IsType(t, &ast.RangePattern{}, match.Arms[0].Pattern)
	assert.IsType(t, &ast.LitPattern{}, match.Arms[1].Pattern)
	assert.IsType(t, &ast.LitPattern{}, match.Arms[2].Pattern)
	assert.IsType(t, &ast.TuplePattern{}, match.Arms[3].Pattern)
	assert.IsType(t, &ast.VariantPattern{}, match.Arms[4].Pattern)
	assert.True(t, ast.IsStringLiteral(match.Arms[0].Pattern.(*ast.RangePattern).Lo))
}

func Test_Parser_Declarations(t *testing.T) {
	program, _ := parse(t, `
(defstruct Point x y)
(defenum Color Red (Green) (Blue 3))
(defn f (a b) -> int a)
(defmod m (defconst X int 1))
(defimpl + Point (defn add (a b) a))`)
	//
	require.Len(t, program.Declarations, 5)
	assert.Equal(t, []string{"x", "y"}, program.Declarations[0].(*ast.StructDecl).Fields)
	//
	enum := program.Declarations[1].(*ast.EnumDecl)
	require.Len(t, enum.Variants, 3)
	assert.Nil(t, enum.Variants[1].Discriminant)
	assert.NotNil(t, enum.Variants[2].Discriminant)
	//
	fn := program.Declarations[2].(*ast.FnDecl)
	assert.Len(t, fn.Params, 2)
	assert.Equal(t, "int", fn.Result.String())
	//
	assert.Len(t, program.Declarations[3].(*ast.ModuleDecl).Decls, 1)
	//
	impl := program.Declarations[4].(*ast.ImplDecl)
	assert.Equal(t, "+ for Point", impl.Label())
}

func Test_Parser_Errors(t *testing.T) {
	assert.Equal(t, []string{"malformed declaration"}, parseErrors("(defconst A int)"))
	assert.Equal(t, []string{"unknown expression"}, parseErrors("(defconst A int (frob 1))"))
	assert.Equal(t, []string{"invalid constant name"}, parseErrors("(defconst 1 int 1)"))
	assert.Equal(t, []string{"duplicate field"}, parseErrors("(defstruct S x x)"))
	assert.Equal(t, []string{"unknown operator"}, parseErrors("(defimpl ?? S)"))
	assert.Equal(t, []string{"expected ->"}, parseErrors("(defn f () => int 1)"))
	assert.Equal(t, []string{"unexpected end-of-file"}, parseErrors("(defconst A int (tuple 1)"))
	// Errors in separate declarations are all reported
	assert.Len(t, parseErrors("(defconst A int) (defconst B) (defconst C int 1)"), 2)
}
