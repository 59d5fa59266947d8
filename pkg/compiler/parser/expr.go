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
	"strconv"
	"strings"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/util/source"
	"github.com/consensys/go-constcheck/pkg/util/source/sexp"
)

var unaryOperators = map[string]ast.UnaryOp{
	"deref": ast.DEREF,
	"neg":   ast.NEG,
	"not":   ast.NOT,
	"box":   ast.BOX,
	"uniq":  ast.UNIQ,
}

var storeKinds = map[string]ast.StoreKind{
	"slice":   ast.STORE_SLICE,
	"owned":   ast.STORE_UNIQ,
	"managed": ast.STORE_BOX,
}

var callSugars = map[string]ast.CallSugar{
	"call": ast.NO_SUGAR,
	"do":   ast.DO_SUGAR,
	"for":  ast.FOR_SUGAR,
}

func (p *Parser) parseExpr(s sexp.SExp) (ast.Expr, []source.SyntaxError) {
	var (
		expr ast.Expr
		errs []source.SyntaxError
	)
	//
	if sym := s.AsSymbol(); sym != nil {
		expr, errs = p.parseSymbolExpr(sym)
	} else {
		expr, errs = p.parseListExpr(s.AsList())
	}
	// Register node if appropriate
	if len(errs) == 0 {
		p.mapSourceNode(s, expr)
	}
	//
	return expr, errs
}

func (p *Parser) parseExprs(terms []sexp.SExp) ([]ast.Expr, []source.SyntaxError) {
	var (
		exprs  = make([]ast.Expr, len(terms))
		errors []source.SyntaxError
	)
	//
	for i, term := range terms {
		var errs []source.SyntaxError
		//
		exprs[i], errs = p.parseExpr(term)
		errors = append(errors, errs...)
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return exprs, nil
}

func (p *Parser) parseSymbolExpr(sym *sexp.Symbol) (ast.Expr, []source.SyntaxError) {
	if lit := p.parseLiteral(sym); lit != nil {
		return lit, nil
	}
	//
	path, err := ast.ParsePath(sym.Value)
	//
	if err != nil {
		return nil, p.syntaxErrors(sym, err.Error())
	}
	//
	for _, name := range path.Names() {
		if !isIdentifier(name) {
			return nil, p.syntaxErrors(sym, "unknown symbol")
		}
	}
	//
	return &ast.PathExpr{Meta: p.meta(), Path: path}, nil
}

// Parse a symbol as a literal, returning nil if it is not one.
func (p *Parser) parseLiteral(sym *sexp.Symbol) *ast.Literal {
	var (
		value = sym.Value
		kind  ast.LitKind
	)
	//
	switch {
	case sym.IsQuoted():
		kind, value = ast.LIT_STR, sym.Unquote()
	case value == "true" || value == "false":
		kind = ast.LIT_BOOL
	case len(value) >= 3 && value[0] == '\'' && value[len(value)-1] == '\'':
		kind = ast.LIT_CHAR
	case isInteger(value):
		kind = ast.LIT_INT
	case isFloat(value):
		kind = ast.LIT_FLOAT
	default:
		return nil
	}
	//
	return &ast.Literal{Meta: p.meta(), Kind: kind, Value: value}
}

func isInteger(text string) bool {
	_, err := strconv.ParseInt(text, 0, 64)
	//
	if err != nil {
		// Permit unsigned values outside the signed range
		_, err = strconv.ParseUint(text, 0, 64)
	}
	//
	return err == nil
}

func isFloat(text string) bool {
	_, err := strconv.ParseFloat(text, 64)
	// Exclude names such as "inf" or "NaN", which are identifiers here.
	return err == nil && strings.ContainsAny(text, "0123456789")
}

func (p *Parser) parseListExpr(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	var head = l.Head()
	// Unit
	if l.Len() == 0 {
		return &ast.Tuple{Meta: p.meta()}, nil
	}
	//
	if op, ok := unaryOperators[head]; ok && l.Len() == 2 {
		return p.parseUnary(op, l)
	} else if kind, ok := storeKinds[head]; ok && l.Len() == 2 {
		return p.parseVecStore(kind, l)
	} else if sugar, ok := callSugars[head]; ok && l.Len() >= 2 {
		return p.parseCall(sugar, l)
	} else if slices.Contains(BINARY_OPERATORS, head) && l.Len() == 3 {
		return p.parseBinary(head, l)
	}
	//
	switch {
	case head == "as" && l.Len() == 3:
		return p.parseCast(l)
	case head == "method" && l.Len() >= 3:
		return p.parseMethodCall(l)
	case head == "paren" && l.Len() == 2:
		arg, errs := p.parseExpr(l.Get(1))
		return &ast.Paren{Meta: p.meta(), Arg: arg}, errs
	case head == "vec" || head == "vec-mut":
		elements, errs := p.parseExprs(l.Elements[1:])
		return &ast.Vec{Meta: p.meta(), Mutable: head == "vec-mut", Elements: elements}, errs
	case (head == "addr" || head == "addr-mut") && l.Len() == 2:
		arg, errs := p.parseExpr(l.Get(1))
		return &ast.AddrOf{Meta: p.meta(), Mutable: head == "addr-mut", Arg: arg}, errs
	case head == "field" && l.Len() == 3:
		return p.parseField(l)
	case head == "index" && l.Len() == 3:
		return p.parseIndex(l)
	case head == "tuple":
		elements, errs := p.parseExprs(l.Elements[1:])
		return &ast.Tuple{Meta: p.meta(), Elements: elements}, errs
	case head == "repeat" && l.Len() == 3:
		return p.parseRepeat(l)
	case head == "struct" && l.Len() >= 2:
		return p.parseStructLit(l)
	case head == "if" && (l.Len() == 3 || l.Len() == 4):
		return p.parseIf(l)
	case head == "match" && l.Len() >= 2:
		return p.parseMatch(l)
	case head == "block":
		return p.parseBlock(l)
	case head == "fn" && l.Len() == 3:
		return p.parseLambda(l)
	case head == "assign" && l.Len() == 3:
		return p.parseAssign(l)
	case head == "loop" && l.Len() == 2:
		body, errs := p.parseExpr(l.Get(1))
		return &ast.Loop{Meta: p.meta(), Body: body}, errs
	}
	//
	return nil, p.syntaxErrors(l, "unknown expression")
}

func (p *Parser) parseUnary(op ast.UnaryOp, l *sexp.List) (ast.Expr, []source.SyntaxError) {
	arg, errs := p.parseExpr(l.Get(1))
	//
	return &ast.Unary{Meta: p.meta(), Op: op, Arg: arg}, errs
}

func (p *Parser) parseVecStore(kind ast.StoreKind, l *sexp.List) (ast.Expr, []source.SyntaxError) {
	arg, errs := p.parseExpr(l.Get(1))
	//
	return &ast.VecStore{Meta: p.meta(), Kind: kind, Arg: arg}, errs
}

func (p *Parser) parseBinary(op string, l *sexp.List) (ast.Expr, []source.SyntaxError) {
	args, errs := p.parseExprs(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Binary{Meta: p.meta(), Op: op, Lhs: args[0], Rhs: args[1]}, nil
}

func (p *Parser) parseCast(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	arg, errs := p.parseExpr(l.Get(1))
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	target, errs := p.parseType(l.Get(2))
	//
	return &ast.Cast{Meta: p.meta(), Arg: arg, Target: target}, errs
}

func (p *Parser) parseCall(sugar ast.CallSugar, l *sexp.List) (ast.Expr, []source.SyntaxError) {
	exprs, errs := p.parseExprs(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Call{Meta: p.meta(), Callee: exprs[0], Args: exprs[1:], Sugar: sugar}, nil
}

func (p *Parser) parseMethodCall(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	receiver, errs := p.parseExpr(l.Get(1))
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	method, errs := p.parseIdentifier(l.Get(2), "invalid method name")
	if len(errs) > 0 {
		return nil, errs
	}
	//
	args, errs := p.parseExprs(l.Elements[3:])
	//
	return &ast.MethodCall{Meta: p.meta(), Receiver: receiver, Method: method, Args: args}, errs
}

func (p *Parser) parseField(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	arg, errs := p.parseExpr(l.Get(1))
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	name, errs := p.parseIdentifier(l.Get(2), "invalid field name")
	//
	return &ast.Field{Meta: p.meta(), Arg: arg, Name: name}, errs
}

func (p *Parser) parseIndex(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	args, errs := p.parseExprs(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Index{Meta: p.meta(), Arg: args[0], Index: args[1]}, nil
}

func (p *Parser) parseRepeat(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	args, errs := p.parseExprs(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Repeat{Meta: p.meta(), Element: args[0], Count: args[1]}, nil
}

// Parse a struct literal of the form "(struct NAME (FIELD EXPR) ...)".
func (p *Parser) parseStructLit(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	var (
		fields []ast.FieldInit
		errors []source.SyntaxError
	)
	//
	name := l.Get(1).AsSymbol()
	if name == nil || name.IsQuoted() {
		return nil, p.syntaxErrors(l.Get(1), "invalid struct name")
	}
	//
	path, err := ast.ParsePath(name.Value)
	if err != nil {
		return nil, p.syntaxErrors(l.Get(1), err.Error())
	}
	//
	for _, e := range l.Elements[2:] {
		init := e.AsList()
		//
		if init == nil || init.Len() != 2 {
			errors = append(errors, p.syntaxErrors(e, "malformed field initialiser")...)
			continue
		}
		//
		field, errs := p.parseIdentifier(init.Get(0), "invalid field name")
		if len(errs) == 0 {
			var value ast.Expr
			//
			if value, errs = p.parseExpr(init.Get(1)); len(errs) == 0 {
				fields = append(fields, ast.FieldInit{Name: field, Value: value})
			}
		}
		//
		errors = append(errors, errs...)
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return &ast.StructLit{Meta: p.meta(), Name: path, Fields: fields}, nil
}

func (p *Parser) parseIf(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	args, errs := p.parseExprs(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	expr := &ast.If{Meta: p.meta(), Cond: args[0], Then: args[1]}
	//
	if len(args) == 3 {
		expr.Else = args[2]
	}
	//
	return expr, nil
}

// Parse a match of the form "(match EXPR (PATTERN EXPR) ...)".
func (p *Parser) parseMatch(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	var arms []ast.Arm
	//
	arg, errors := p.parseExpr(l.Get(1))
	//
	for _, e := range l.Elements[2:] {
		arm := e.AsList()
		//
		if arm == nil || arm.Len() != 2 {
			errors = append(errors, p.syntaxErrors(e, "malformed match arm")...)
			continue
		}
		//
		pattern, errs := p.parsePattern(arm.Get(0))
		if len(errs) == 0 {
			var body ast.Expr
			//
			if body, errs = p.parseExpr(arm.Get(1)); len(errs) == 0 {
				arms = append(arms, ast.Arm{Pattern: pattern, Body: body})
			}
		}
		//
		errors = append(errors, errs...)
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return &ast.Match{Meta: p.meta(), Arg: arg, Arms: arms}, nil
}

// Parse a block of the form "(block STMT ...)" where each statement is either a
// let binding "(let PATTERN [EXPR])", a declaration or an expression.
func (p *Parser) parseBlock(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	var (
		meta   = p.meta()
		stmts  []ast.Node
		errors []source.SyntaxError
	)
	//
	for _, e := range l.Elements[1:] {
		var (
			stmt ast.Node
			errs []source.SyntaxError
		)
		//
		if isDeclaration(e) {
			stmt, errs = p.parseDeclaration(e)
		} else if ll := e.AsList(); ll != nil && ll.Head() == "let" {
			stmt, errs = p.parseLet(ll)
		} else {
			stmt, errs = p.parseExpr(e)
		}
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			stmts = append(stmts, stmt)
		}
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	return &ast.Block{Meta: meta, Stmts: stmts}, nil
}

func (p *Parser) parseLet(l *sexp.List) (*ast.Let, []source.SyntaxError) {
	var let = &ast.Let{Meta: p.meta()}
	//
	if l.Len() != 2 && l.Len() != 3 {
		return nil, p.syntaxErrors(l, "malformed let")
	}
	//
	pattern, errs := p.parsePattern(l.Get(1))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	let.Pattern = pattern
	//
	if l.Len() == 3 {
		if let.Init, errs = p.parseExpr(l.Get(2)); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	p.mapSourceNode(l, let)
	//
	return let, nil
}

// Parse a lambda of the form "(fn (PARAM ...) BODY)".
func (p *Parser) parseLambda(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	params, errs := p.parsePatterns(l.Get(1))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	body, errs := p.parseExpr(l.Get(2))
	//
	return &ast.Lambda{Meta: p.meta(), Params: params, Body: body}, errs
}

func (p *Parser) parseAssign(l *sexp.List) (ast.Expr, []source.SyntaxError) {
	args, errs := p.parseExprs(l.Elements[1:])
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Assign{Meta: p.meta(), Target: args[0], Value: args[1]}, nil
}

// ===================================================================
// Patterns
// ===================================================================

// Parse a list of patterns, such as the parameters of a function.
func (p *Parser) parsePatterns(s sexp.SExp) ([]ast.Pattern, []source.SyntaxError) {
	var (
		l        = s.AsList()
		patterns []ast.Pattern
		errors   []source.SyntaxError
	)
	//
	if l == nil {
		return nil, p.syntaxErrors(s, "expected parameter list")
	}
	//
	for _, e := range l.Elements {
		if pattern, errs := p.parsePattern(e); len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			patterns = append(patterns, pattern)
		}
	}
	//
	return patterns, errors
}

func (p *Parser) parsePattern(s sexp.SExp) (ast.Pattern, []source.SyntaxError) {
	var (
		pattern ast.Pattern
		errs    []source.SyntaxError
	)
	//
	if sym := s.AsSymbol(); sym != nil {
		pattern, errs = p.parseSymbolPattern(sym)
	} else {
		pattern, errs = p.parseListPattern(s.AsList())
	}
	//
	if len(errs) == 0 {
		p.mapSourceNode(s, pattern)
	}
	//
	return pattern, errs
}

func (p *Parser) parseSymbolPattern(sym *sexp.Symbol) (ast.Pattern, []source.SyntaxError) {
	switch {
	case sym.Value == "_":
		return &ast.Wildcard{Meta: p.meta()}, nil
	case isIdentifier(sym.Value) && sym.Value != "true" && sym.Value != "false":
		return &ast.Binding{Meta: p.meta(), Name: sym.Value}, nil
	}
	// Literals may be written directly in pattern position
	meta := p.meta()
	//
	if lit := p.parseLiteral(sym); lit != nil {
		p.mapSourceNode(sym, lit)
		//
		return &ast.LitPattern{Meta: meta, Value: lit}, nil
	}
	//
	return nil, p.syntaxErrors(sym, "invalid pattern")
}

func (p *Parser) parseListPattern(l *sexp.List) (ast.Pattern, []source.SyntaxError) {
	var head = l.Head()
	//
	switch {
	case head == "lit" && l.Len() == 2:
		meta := p.meta()
		value, errs := p.parseExpr(l.Get(1))
		//
		return &ast.LitPattern{Meta: meta, Value: value}, errs
	case head == "range" && l.Len() == 3:
		meta := p.meta()
		bounds, errs := p.parseExprs(l.Elements[1:])
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.RangePattern{Meta: meta, Lo: bounds[0], Hi: bounds[1]}, nil
	case head == "tuple-pat":
		meta := p.meta()
		elements, errs := p.parsePatterns(sexp.NewList(l.Elements[1:]))
		//
		return &ast.TuplePattern{Meta: meta, Elements: elements}, errs
	case head == "variant" && l.Len() >= 2:
		return p.parseVariantPattern(l)
	}
	//
	return nil, p.syntaxErrors(l, "invalid pattern")
}

// Parse a variant pattern of the form "(variant PATH PATTERN ...)".
func (p *Parser) parseVariantPattern(l *sexp.List) (ast.Pattern, []source.SyntaxError) {
	var meta = p.meta()
	//
	sym := l.Get(1).AsSymbol()
	if sym == nil || sym.IsQuoted() {
		return nil, p.syntaxErrors(l.Get(1), "invalid variant name")
	}
	//
	path, err := ast.ParsePath(sym.Value)
	if err != nil {
		return nil, p.syntaxErrors(l.Get(1), err.Error())
	}
	//
	args, errs := p.parsePatterns(sexp.NewList(l.Elements[2:]))
	//
	return &ast.VariantPattern{Meta: meta, Path: path, Args: args}, errs
}
