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

import (
	"fmt"
	"reflect"
)

// NodeId uniquely identifies a node within a program tree.  Identifiers are
// allocated densely from 1 by the parser, such that 0 is never a valid
// identifier.
type NodeId uint

// Node provides common functionality across all elements of the Abstract Syntax
// Tree.  Every node carries a unique identifier, which is the key used by
// upstream phases (e.g. name resolution, typing) to record information about
// it.  Observe that spans are not held in nodes, but in a separate source map.
type Node interface {
	// Id returns the unique identifier of this node.
	Id() NodeId
}

// Meta holds the information common to every node in the tree.
type Meta struct {
	ID NodeId
}

// Id implementation for the Node interface.
func (p *Meta) Id() NodeId {
	return p.ID
}

// Program represents the root of the Abstract Syntax Tree.  That is, the
// complete set of top-level declarations drawn from all source files being
// compiled together.
type Program struct {
	Declarations []Declaration
}

// Children returns the direct children of a given node, in the order in which
// they appear in the source.  Types and paths are not nodes in their own right,
// hence are not included.  This is the single structural recursion primitive
// over the tree, and it is expected that every node kind is handled here.
//
//nolint:gocyclo
func Children(node Node) []Node {
	var children []Node
	//
	switch n := node.(type) {
	// Declarations
	case *ConstDecl:
		return nodes(n.Init)
	case *EnumDecl:
		for _, v := range n.Variants {
			children = append(children, v)
		}
		//
		return children
	case *Variant:
		return nodes(n.Discriminant)
	case *StructDecl:
		return nil
	case *FnDecl:
		for _, p := range n.Params {
			children = append(children, p)
		}
		//
		return append(children, nodes(n.Body)...)
	case *ModuleDecl:
		return declarations(n.Decls)
	case *ImplDecl:
		return declarations(n.Decls)
	// Expressions
	case *Literal, *PathExpr:
		return nil
	case *Unary:
		return nodes(n.Arg)
	case *Binary:
		return nodes(n.Lhs, n.Rhs)
	case *Cast:
		return nodes(n.Arg)
	case *Call:
		return append(nodes(n.Callee), expressions(n.Args)...)
	case *MethodCall:
		return append(nodes(n.Receiver), expressions(n.Args)...)
	case *Paren:
		return nodes(n.Arg)
	case *VecStore:
		return nodes(n.Arg)
	case *Vec:
		return expressions(n.Elements)
	case *AddrOf:
		return nodes(n.Arg)
	case *Field:
		return nodes(n.Arg)
	case *Index:
		return nodes(n.Arg, n.Index)
	case *Tuple:
		return expressions(n.Elements)
	case *Repeat:
		return nodes(n.Element, n.Count)
	case *StructLit:
		for _, f := range n.Fields {
			children = append(children, f.Value)
		}
		//
		return children
	case *If:
		return nodes(n.Cond, n.Then, n.Else)
	case *Match:
		children = nodes(n.Arg)
		//
		for _, arm := range n.Arms {
			children = append(children, arm.Pattern, arm.Body)
		}
		//
		return children
	case *Block:
		return n.Stmts
	case *Let:
		return append([]Node{n.Pattern}, nodes(n.Init)...)
	case *Lambda:
		for _, p := range n.Params {
			children = append(children, p)
		}
		//
		return append(children, nodes(n.Body)...)
	case *Assign:
		return nodes(n.Target, n.Value)
	case *Loop:
		return nodes(n.Body)
	// Patterns
	case *Wildcard, *Binding:
		return nil
	case *LitPattern:
		return nodes(n.Value)
	case *RangePattern:
		return nodes(n.Lo, n.Hi)
	case *TuplePattern:
		for _, p := range n.Elements {
			children = append(children, p)
		}
		//
		return children
	case *VariantPattern:
		for _, p := range n.Args {
			children = append(children, p)
		}
		//
		return children
	}
	//
	panic(fmt.Sprintf("unknown node encountered (%s)", reflect.TypeOf(node)))
}

// Collect zero or more (optional) expressions as nodes.  Any nil expressions
// are simply dropped.
func nodes(exprs ...Expr) []Node {
	var children []Node
	//
	for _, e := range exprs {
		if e != nil {
			children = append(children, e)
		}
	}
	//
	return children
}

func expressions(exprs []Expr) []Node {
	return nodes(exprs...)
}

func declarations(decls []Declaration) []Node {
	children := make([]Node, len(decls))
	//
	for i, d := range decls {
		children[i] = d
	}
	//
	return children
}
