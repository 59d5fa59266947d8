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
package ast

// Expr represents an arbitrary expression.  The set of expression kinds is
// closed, and consists of exactly those types defined in this file.
type Expr interface {
	Node
	// marker
	expression()
}

// LitKind identifies the kind of a literal.
type LitKind uint8

const (
	// LIT_INT is an integer literal (e.g. 1, 0xff)
	LIT_INT LitKind = iota
	// LIT_FLOAT is a floating point literal (e.g. 1.5)
	LIT_FLOAT
	// LIT_BOOL is a boolean literal (true or false)
	LIT_BOOL
	// LIT_CHAR is a character literal (e.g. 'a')
	LIT_CHAR
	// LIT_STR is a string literal (e.g. "hello")
	LIT_STR
)

// Literal represents a literal value.  The value is retained in its textual
// form since constants are not evaluated here.
type Literal struct {
	Meta
	Kind  LitKind
	Value string
}

// UnaryOp identifies the kind of a unary operator.
type UnaryOp uint8

const (
	// DEREF dereferences a pointer (i.e. *x).
	DEREF UnaryOp = iota
	// NEG negates a value (i.e. -x).
	NEG
	// NOT is logical or bitwise complement (i.e. !x).
	NOT
	// BOX allocates a managed box on the heap.
	BOX
	// UNIQ allocates a uniquely owned box on the heap.
	UNIQ
)

func (op UnaryOp) String() string {
	switch op {
	case DEREF:
		return "deref"
	case NEG:
		return "neg"
	case NOT:
		return "not"
	case BOX:
		return "box"
	case UNIQ:
		return "uniq"
	default:
		return "???"
	}
}

// Unary represents a unary operator application.
type Unary struct {
	Meta
	Op  UnaryOp
	Arg Expr
}

// Binary represents a binary operator application, such as "x + y".
type Binary struct {
	Meta
	Op       string
	Lhs, Rhs Expr
}

// Cast represents a type conversion, such as "x as u8".
type Cast struct {
	Meta
	Arg    Expr
	Target Type
}

// PathExpr represents a reference to a named item, such as a constant,
// function or variable.
type PathExpr struct {
	Meta
	Path Path
}

// CallSugar identifies the syntactic form in which a call was written.
type CallSugar uint8

const (
	// NO_SUGAR indicates a plain call "f(x)".
	NO_SUGAR CallSugar = iota
	// DO_SUGAR indicates a call whose last argument is a block, as in "do f { ... }".
	DO_SUGAR
	// FOR_SUGAR indicates a loop-style call, as in "for f { ... }".
	FOR_SUGAR
)

// Call represents a function (or constructor) call.
type Call struct {
	Meta
	Callee Expr
	Args   []Expr
	Sugar  CallSugar
}

// MethodCall represents a method invocation on a receiver, such as "x.f(y)".
type MethodCall struct {
	Meta
	Receiver Expr
	Method   string
	Args     []Expr
}

// Paren represents an explicitly parenthesised expression.
type Paren struct {
	Meta
	Arg Expr
}

// StoreKind identifies how the contents of a vector (or string) are stored.
type StoreKind uint8

const (
	// STORE_SLICE is a borrowed slice view (e.g. &[1,2]).
	STORE_SLICE StoreKind = iota
	// STORE_UNIQ is a uniquely owned heap allocation (e.g. ~[1,2]).
	STORE_UNIQ
	// STORE_BOX is a managed heap allocation (e.g. @[1,2]).
	STORE_BOX
)

// VecStore represents a vector (or string) with an explicit storage mode.
type VecStore struct {
	Meta
	Kind StoreKind
	Arg  Expr
}

// Vec represents a vector literal (e.g. [1,2,3]).
type Vec struct {
	Meta
	Mutable  bool
	Elements []Expr
}

// AddrOf represents taking the address of a place (e.g. &x or &mut x).
type AddrOf struct {
	Meta
	Mutable bool
	Arg     Expr
}

// Field represents a field access (e.g. x.f).
type Field struct {
	Meta
	Arg  Expr
	Name string
}

// Index represents an indexing operation (e.g. x[i]).
type Index struct {
	Meta
	Arg   Expr
	Index Expr
}

// Tuple represents a tuple construction (e.g. (x,y)).
type Tuple struct {
	Meta
	Elements []Expr
}

// Repeat represents a repeat expression (e.g. [x, ..n]).
type Repeat struct {
	Meta
	Element Expr
	Count   Expr
}

// FieldInit represents the initialiser for a single field of a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit represents a struct literal (e.g. Point { x: 1, y: 2 }).
type StructLit struct {
	Meta
	Name   Path
	Fields []FieldInit
}

// If represents a conditional expression.  The else branch is optional.
type If struct {
	Meta
	Cond, Then, Else Expr
}

// Arm represents a single arm of a match expression.
type Arm struct {
	Pattern Pattern
	Body    Expr
}

// Match represents a pattern match over a given expression.
type Match struct {
	Meta
	Arg  Expr
	Arms []Arm
}

// Block represents a sequence of statements, where each statement is either
// a let binding (*Let), an expression (Expr) or a nested declaration
// (Declaration).
type Block struct {
	Meta
	Stmts []Node
}

// Let represents a let binding within a block.  The initialiser is optional.
type Let struct {
	Meta
	Pattern Pattern
	Init    Expr
}

// Lambda represents an anonymous function.
type Lambda struct {
	Meta
	Params []Pattern
	Body   Expr
}

// Assign represents an assignment (e.g. x = y).
type Assign struct {
	Meta
	Target, Value Expr
}

// Loop represents an unconditional loop.
type Loop struct {
	Meta
	Body Expr
}

func (*Literal) expression()    {}
func (*Unary) expression()      {}
func (*Binary) expression()     {}
func (*Cast) expression()       {}
func (*PathExpr) expression()   {}
func (*Call) expression()       {}
func (*MethodCall) expression() {}
func (*Paren) expression()      {}
func (*VecStore) expression()   {}
func (*Vec) expression()        {}
func (*AddrOf) expression()     {}
func (*Field) expression()      {}
func (*Index) expression()      {}
func (*Tuple) expression()      {}
func (*Repeat) expression()     {}
func (*StructLit) expression()  {}
func (*If) expression()         {}
func (*Match) expression()      {}
func (*Block) expression()      {}
func (*Lambda) expression()     {}
func (*Assign) expression()     {}
func (*Loop) expression()       {}

// IsStringLiteral determines whether a given expression is a plain string
// literal, either written directly or as a uniquely owned string.
func IsStringLiteral(e Expr) bool {
	switch e := e.(type) {
	case *Literal:
		return e.Kind == LIT_STR
	case *VecStore:
		if lit, ok := e.Arg.(*Literal); ok && e.Kind == STORE_UNIQ {
			return lit.Kind == LIT_STR
		}
	}
	//
	return false
}
