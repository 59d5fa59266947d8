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
	"slices"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/util/source"
	"github.com/consensys/go-constcheck/pkg/util/source/sexp"
)

// ===================================================================
// Public
// ===================================================================

// ParseSourceFiles parses zero or more source files into a single program.
// Node identifiers are allocated uniquely across all files, and a combined
// source map is returned which covers every node constructed.  Errors in one
// file do not prevent subsequent files from being parsed.
func ParseSourceFiles(files ...*source.File) (ast.Program, *source.Maps[ast.Node], []source.SyntaxError) {
	var (
		program ast.Program
		errors  []source.SyntaxError
		srcmaps = source.NewSourceMaps[ast.Node]()
		// Identifiers are shared across files to ensure uniqueness
		ids ast.NodeId
	)
	//
	for _, file := range files {
		decls, srcmap, errs := parseSourceFile(file, &ids)
		// Combine source maps
		if srcmap != nil {
			srcmaps.Join(srcmap)
		}
		//
		program.Declarations = append(program.Declarations, decls...)
		errors = append(errors, errs...)
	}
	//
	return program, srcmaps, errors
}

// ParseSourceFile parses the contents of a single lisp file into zero or more
// declarations.
func ParseSourceFile(srcfile *source.File) (ast.Program, *source.Map[ast.Node], []source.SyntaxError) {
	var ids ast.NodeId
	//
	decls, srcmap, errs := parseSourceFile(srcfile, &ids)
	//
	return ast.Program{Declarations: decls}, srcmap, errs
}

func parseSourceFile(srcfile *source.File, ids *ast.NodeId) ([]ast.Declaration, *source.Map[ast.Node],
	[]source.SyntaxError) {
	//
	var (
		decls  []ast.Declaration
		errors []source.SyntaxError
	)
	// Parse bytes into an S-Expression
	terms, srcmap, err := sexp.ParseAll(srcfile)
	// Check file parsed ok
	if err != nil {
		return nil, nil, []source.SyntaxError{*err}
	}
	//
	p := NewParser(srcmap, ids)
	//
	for _, term := range terms {
		if decl, errs := p.parseDeclaration(term); len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			decls = append(decls, decl)
		}
	}
	//
	return decls, p.nodemap, errors
}

// BINARY_OPERATORS identifies the set of binary operators recognised.
var BINARY_OPERATORS = []string{
	"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "&&", "||", "&", "|", "^", "<<", ">>",
}

// Parser implements a simple parser for programs written in lisp form.  The
// parser simply packages up the relevant lisp constructs into their
// corresponding AST forms, allocating a unique identifier for each node and
// recording its span.  This can fail in various ways, such as e.g. a
// "defconst" not having exactly three arguments, etc.  However, the parser does
// not attempt to perform more complex forms of validation (e.g. resolving
// names) --- that is left up to later phases.
type Parser struct {
	// Mapping from S-Expressions to their spans in the original text.
	srcmap *source.Map[sexp.SExp]
	// Mapping from constructed nodes to their spans in the original text.
	nodemap *source.Map[ast.Node]
	// Last identifier allocated
	ids *ast.NodeId
}

// NewParser constructs a new parser using a given mapping from S-Expressions to
// spans in the underlying source file.
func NewParser(srcmap *source.Map[sexp.SExp], ids *ast.NodeId) *Parser {
	nodemap := source.NewSourceMap[ast.Node](srcmap.Source())
	//
	return &Parser{srcmap, nodemap, ids}
}

// Allocate meta-data for a fresh node.
func (p *Parser) meta() ast.Meta {
	*p.ids = *p.ids + 1
	//
	return ast.Meta{ID: *p.ids}
}

// Register a source mapping from a given S-Expression to a given target node.
func (p *Parser) mapSourceNode(from sexp.SExp, to ast.Node) {
	p.nodemap.Put(to, p.srcmap.Get(from))
}

func (p *Parser) syntaxErrors(s sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(s, msg)}
}

// ===================================================================
// Declarations
// ===================================================================

func isDeclaration(s sexp.SExp) bool {
	if l := s.AsList(); l != nil {
		switch l.Head() {
		case "defconst", "defenum", "defstruct", "defn", "defmod", "defimpl":
			return true
		}
	}
	//
	return false
}

func (p *Parser) parseDeclaration(s sexp.SExp) (ast.Declaration, []source.SyntaxError) {
	var (
		decl   ast.Declaration
		errors []source.SyntaxError
		l      = s.AsList()
	)
	//
	if l == nil {
		return nil, p.syntaxErrors(s, "unexpected or malformed declaration")
	}
	//
	switch {
	case l.Len() == 4 && l.MatchSymbols(3, "defconst"):
		decl, errors = p.parseDefConst(l)
	case l.Len() >= 2 && l.MatchSymbols(2, "defenum"):
		decl, errors = p.parseDefEnum(l)
	case l.Len() >= 2 && l.MatchSymbols(2, "defstruct"):
		decl, errors = p.parseDefStruct(l)
	case (l.Len() == 4 || l.Len() == 6) && l.MatchSymbols(2, "defn"):
		decl, errors = p.parseDefFn(l)
	case l.Len() >= 2 && l.MatchSymbols(2, "defmod"):
		decl, errors = p.parseDefMod(l)
	case l.Len() >= 3 && l.MatchSymbols(3, "defimpl"):
		decl, errors = p.parseDefImpl(l)
	default:
		return nil, p.syntaxErrors(l, "malformed declaration")
	}
	// Register node if appropriate
	if len(errors) == 0 {
		p.mapSourceNode(s, decl)
	}
	//
	return decl, errors
}

// Parse a constant declaration of the form "(defconst NAME TYPE EXPR)".
func (p *Parser) parseDefConst(l *sexp.List) (ast.Declaration, []source.SyntaxError) {
	var meta = p.meta()
	//
	name, errs := p.parseIdentifier(l.Get(1), "invalid constant name")
	if len(errs) > 0 {
		return nil, errs
	}
	//
	datatype, errs := p.parseType(l.Get(2))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	init, errs := p.parseExpr(l.Get(3))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.ConstDecl{Meta: meta, Name: name, Type: datatype, Init: init}, nil
}

// Parse an enum declaration of the form "(defenum NAME VARIANT ...)" where each
// variant is either a name, or "(NAME)" or "(NAME EXPR)".
func (p *Parser) parseDefEnum(l *sexp.List) (ast.Declaration, []source.SyntaxError) {
	var (
		meta     = p.meta()
		variants []*ast.Variant
		errors   []source.SyntaxError
	)
	//
	name, errs := p.parseIdentifier(l.Get(1), "invalid enum name")
	if len(errs) > 0 {
		return nil, errs
	}
	//
	for _, e := range l.Elements[2:] {
		variant, errs := p.parseVariant(e)
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			variants = append(variants, variant)
		}
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return &ast.EnumDecl{Meta: meta, Name: name, Variants: variants}, nil
}

func (p *Parser) parseVariant(s sexp.SExp) (*ast.Variant, []source.SyntaxError) {
	var (
		variant = &ast.Variant{Meta: p.meta()}
		errs    []source.SyntaxError
	)
	//
	if l := s.AsList(); l == nil {
		variant.Name, errs = p.parseIdentifier(s, "invalid variant name")
	} else if l.Len() == 0 || l.Len() > 2 {
		return nil, p.syntaxErrors(s, "malformed variant")
	} else if variant.Name, errs = p.parseIdentifier(l.Get(0), "invalid variant name"); len(errs) == 0 && l.Len() == 2 {
		variant.Discriminant, errs = p.parseExpr(l.Get(1))
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	p.mapSourceNode(s, variant)
	//
	return variant, nil
}

// Parse a struct declaration of the form "(defstruct NAME FIELD ...)".
func (p *Parser) parseDefStruct(l *sexp.List) (ast.Declaration, []source.SyntaxError) {
	var (
		meta   = p.meta()
		fields []string
	)
	//
	name, errs := p.parseIdentifier(l.Get(1), "invalid struct name")
	if len(errs) > 0 {
		return nil, errs
	}
	//
	for _, e := range l.Elements[2:] {
		field, errs := p.parseIdentifier(e, "invalid field name")
		//
		if len(errs) > 0 {
			return nil, errs
		} else if slices.Contains(fields, field) {
			return nil, p.syntaxErrors(e, "duplicate field")
		}
		//
		fields = append(fields, field)
	}
	//
	return &ast.StructDecl{Meta: meta, Name: name, Fields: fields}, nil
}

// Parse a function declaration of the form "(defn NAME (PARAM ...) BODY)" or
// "(defn NAME (PARAM ...) -> TYPE BODY)".
func (p *Parser) parseDefFn(l *sexp.List) (ast.Declaration, []source.SyntaxError) {
	var (
		fn   = &ast.FnDecl{Meta: p.meta()}
		errs []source.SyntaxError
		body = l.Get(3)
	)
	//
	if fn.Name, errs = p.parseIdentifier(l.Get(1), "invalid function name"); len(errs) > 0 {
		return nil, errs
	} else if fn.Params, errs = p.parsePatterns(l.Get(2)); len(errs) > 0 {
		return nil, errs
	}
	// Parse return type (if applicable)
	if l.Len() == 6 {
		if arrow := l.Get(3).AsSymbol(); arrow == nil || arrow.Value != "->" {
			return nil, p.syntaxErrors(l.Get(3), "expected ->")
		} else if fn.Result, errs = p.parseType(l.Get(4)); len(errs) > 0 {
			return nil, errs
		}
		//
		body = l.Get(5)
	}
	//
	if fn.Body, errs = p.parseExpr(body); len(errs) > 0 {
		return nil, errs
	}
	//
	return fn, nil
}

// Parse a module declaration of the form "(defmod NAME DECL ...)".
func (p *Parser) parseDefMod(l *sexp.List) (ast.Declaration, []source.SyntaxError) {
	var meta = p.meta()
	//
	name, errs := p.parseIdentifier(l.Get(1), "invalid module name")
	if len(errs) > 0 {
		return nil, errs
	}
	//
	decls, errs := p.parseDeclarations(l.Elements[2:])
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.ModuleDecl{Meta: meta, Name: name, Decls: decls}, nil
}

// Parse an operator implementation of the form "(defimpl OP TYPE DECL ...)".
func (p *Parser) parseDefImpl(l *sexp.List) (ast.Declaration, []source.SyntaxError) {
	var meta = p.meta()
	//
	sym := l.Get(1).AsSymbol()
	//
	if sym == nil || (!slices.Contains(BINARY_OPERATORS, sym.Value) && sym.Value != "neg" && sym.Value != "not") {
		return nil, p.syntaxErrors(l.Get(1), "unknown operator")
	}
	//
	op := sym.Value
	//
	datatype, errs := p.parseType(l.Get(2))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	decls, errs := p.parseDeclarations(l.Elements[3:])
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.ImplDecl{Meta: meta, Operator: op, Self: datatype, Decls: decls}, nil
}

func (p *Parser) parseDeclarations(terms []sexp.SExp) ([]ast.Declaration, []source.SyntaxError) {
	var (
		decls  []ast.Declaration
		errors []source.SyntaxError
	)
	//
	for _, term := range terms {
		if decl, errs := p.parseDeclaration(term); len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			decls = append(decls, decl)
		}
	}
	//
	return decls, errors
}

// ===================================================================
// Helpers
// ===================================================================

func (p *Parser) parseIdentifier(s sexp.SExp, msg string) (string, []source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil && isIdentifier(sym.Value) {
		return sym.Value, nil
	}
	//
	return "", p.syntaxErrors(s, msg)
}

func (p *Parser) parseType(s sexp.SExp) (ast.Type, []source.SyntaxError) {
	if sym := s.AsSymbol(); sym != nil && !sym.IsQuoted() {
		return ast.ParseType(sym.Value), nil
	} else if l := s.AsList(); l != nil && l.Len() == 0 {
		return ast.ParseType("()"), nil
	}
	//
	return nil, p.syntaxErrors(s, "invalid type")
}

// Check whether a given string is a valid identifier.  That is, it starts with
// a letter or underscore and contains only letters, digits or underscores.
func isIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	//
	for i, c := range s {
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		} else if i != 0 && c >= '0' && c <= '9' {
			continue
		}
		//
		return false
	}
	//
	return true
}
