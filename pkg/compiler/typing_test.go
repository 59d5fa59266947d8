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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Infer_Literals(t *testing.T) {
	env, program := infer(t, nil, `(defconst A int (tuple 1 1.5 true 'c' "s" ()))`)
	//
	tuple := initialiser(program, "A").(*ast.Tuple)
	//
	assert.Equal(t, "(int,float,bool,char,str,())", env.TypeOf(tuple.Id()).String())
}

func Test_Infer_Constants(t *testing.T) {
	env, program := infer(t, nil, "(defconst A u8 1) (defconst B int (+ A 2)) (defconst C int (< A 2))")
	//
	assert.Equal(t, "u8", env.TypeOf(initialiser(program, "B").Id()).String())
	assert.Equal(t, "bool", env.TypeOf(initialiser(program, "C").Id()).String())
}

func Test_Infer_Externs(t *testing.T) {
	externs := &Externs{Consts: map[string]string{"std::MAX": "*u16"}}
	env, program := infer(t, externs, "(defconst A int (deref std::MAX))")
	//
	deref := initialiser(program, "A").(*ast.Unary)
	//
	assert.Equal(t, "*u16", env.TypeOf(deref.Arg.Id()).String())
	assert.Equal(t, "u16", env.TypeOf(deref.Id()).String())
}

func Test_Infer_Casts(t *testing.T) {
	env, program := infer(t, nil, "(defconst A int (as 1 u8)) (defconst B int (as 1 Point))")
	//
	assert.True(t, env.TypeOf(initialiser(program, "A").Id()).IsNumeric())
	assert.Equal(t, &ast.NamedType{Name: "Point"}, env.TypeOf(initialiser(program, "B").Id()))
}

func Test_Infer_Constructors(t *testing.T) {
	env, program := infer(t, nil, `
(defstruct P x)
(defenum E X (Y 1))
(defconst A P (struct P (x 1)))
(defconst B E E::X)
(defconst C P (call P 1))
(defconst D int (addr B))`)
	//
	assert.Equal(t, "P", env.TypeOf(initialiser(program, "A").Id()).String())
	assert.Equal(t, "E", env.TypeOf(initialiser(program, "B").Id()).String())
	assert.Equal(t, "P", env.TypeOf(initialiser(program, "C").Id()).String())
	assert.Equal(t, "&E", env.TypeOf(initialiser(program, "D").Id()).String())
}

func Test_Infer_Locals(t *testing.T) {
	env, program := infer(t, nil, "(defn f () -> u8 1) (defn g () (block (let x (call f)) x))")
	//
	block := program.Declarations[1].(*ast.FnDecl).Body.(*ast.Block)
	//
	assert.Equal(t, "u8", env.TypeOf(block.Id()).String())
}

func Test_Infer_Unknown(t *testing.T) {
	env, program := infer(t, nil, "(defn f () 1) (defconst A int (tuple (call f) (index 1 2)))")
	//
	tuple := initialiser(program, "A").(*ast.Tuple)
	//
	assert.Equal(t, &ast.UnknownType{}, env.TypeOf(tuple.Elements[0].Id()))
	assert.Equal(t, &ast.UnknownType{}, env.TypeOf(tuple.Elements[1].Id()))
	assert.Equal(t, "(?,?)", env.TypeOf(tuple.Id()).String())
}

func Test_Infer_Overloaded(t *testing.T) {
	env, program := infer(t, nil, `
(defstruct P x)
(defstruct Q x)
(defimpl + P (defn add (a b) a))
(defimpl neg Q)
(defconst A P (struct P (x 1)))
(defconst B Q (struct Q (x 1)))
(defconst C P (+ A A))
(defconst D P (- A A))
(defconst E Q (neg B))
(defconst F Q (not B))
(defconst G Q (+ B B))
(defconst H int (+ 1 2))`)
	//
	expected := map[string]bool{"C": true, "D": false, "E": true, "F": false, "G": false, "H": false}
	//
	for name, overloaded := range expected {
		assert.Equal(t, overloaded, env.Overloaded(initialiser(program, name).Id()), name)
	}
}

func Test_Infer_NestedImpl(t *testing.T) {
	env, program := infer(t, nil, `
(defstruct P x)
(defmod m (defimpl * P))
(defconst A P (struct P (x 1)))
(defconst B P (* A A))`)
	//
	assert.True(t, env.Overloaded(initialiser(program, "B").Id()))
}

// ============================================================================
// Helpers
// ============================================================================

func infer(t *testing.T, externs *Externs, text string) (*Environment, ast.Program) {
	t.Helper()
	//
	program, srcmaps := parseProgram(t, text)
	env, errs := Resolve(program, externs, srcmaps)
	require.Empty(t, messages(errs))
	//
	Infer(program, env)
	//
	return env, program
}

// Get the initialiser of a top-level constant.
func initialiser(program ast.Program, name string) ast.Expr {
	for _, decl := range program.Declarations {
		if c, ok := decl.(*ast.ConstDecl); ok && c.Name == name {
			return c.Init
		}
	}
	//
	panic("unknown constant " + name)
}
