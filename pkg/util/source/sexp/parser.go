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
package sexp

import (
	"unicode"

	"github.com/consensys/go-constcheck/pkg/util/source"
)

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if the file is malformed.  A source map is also returned
// which identifies the span of every S-expression constructed.
func ParseAll(s *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	//
	terms := make([]SExp, 0)
	// Parse the input
	for {
		term, err := p.Parse()
		// Sanity check everything was parsed
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			// EOF reached
			return terms, p.srcmap, nil
		}

		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given string into one
// or more S-expressions.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Determine current position within text
	index int
	// Mapping from constructed S-Expressions to their spans in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// SourceMap returns the internal source map constructing during parsing.  Using
// this one can determine, for each SExp, where in the original text it
// originated.  This is helpful, for example, when reporting syntax errors.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression, or produce an error.  If the end of the input
// is reached then nil is returned.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var term SExp
	// Skip over any whitespace.  This is import to get the correct starting
	// point for this term.
	p.SkipWhiteSpace()
	// Record start of this term
	start := p.index
	// Extract next token from the stream
	token, err := p.Next()
	//
	if err != nil {
		return nil, err
	} else if token == nil {
		return nil, nil
	} else if len(token) == 1 && token[0] == ')' {
		p.index-- // backup
		return nil, p.error("unexpected end-of-list")
	} else if len(token) == 1 && token[0] == '(' {
		elements, err := p.parseSequence(')')
		// Check for error
		if err != nil {
			return nil, err
		}
		// Done
		term = &List{elements}
	} else {
		// Must be a symbol (or quoted string)
		term = &Symbol{string(token)}
	}
	// Register item in source map
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	// Done
	return term, nil
}

// Next extracts the next token from a given string.
func (p *Parser) Next() ([]rune, *source.SyntaxError) {
	// Skip any whitespace and/or comments.
	p.SkipWhiteSpace()
	// Catch end-of-file
	if p.index == len(p.text) {
		return nil, nil
	}
	// Check what we have
	switch p.text[p.index] {
	case '(', ')':
		p.index = p.index + 1
		return p.text[p.index-1 : p.index], nil
	case '"':
		return p.parseQuoted()
	}
	// Symbol
	return p.parseSymbol(), nil
}

// SkipWhiteSpace skips over any whitespace, including comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) && (unicode.IsSpace(p.text[p.index]) || p.text[p.index] == ';') {
		// Skip comment
		if p.text[p.index] == ';' {
			i := len(p.text)
			//
			for j := p.index; j < i; j++ {
				if p.text[j] == '\n' {
					i = j + 1
					break
				}
			}
			// Skip comment
			p.index = i
		} else {
			// skip space
			p.index++
		}
	}
}

// Parse a symbol.  Type arguments following "::<" may contain brackets and
// whitespace, which do not terminate the symbol until the closing ">".
func (p *Parser) parseSymbol() []rune {
	var (
		i     = len(p.text)
		depth = 0
	)
	//
	for j := p.index; j < i; j++ {
		c := p.text[j]
		//
		switch {
		case c == '<' && (depth > 0 || (j-p.index >= 2 && p.text[j-1] == ':' && p.text[j-2] == ':')):
			depth++
			continue
		case c == '>' && depth > 0:
			depth--
			continue
		case depth > 0 && c != ';' && c != '\n':
			continue
		}
		//
		if c == '(' || c == ')' || c == ';' || unicode.IsSpace(c) {
			i = j
			break
		}
	}
	// Reached end of token
	token := p.text[p.index:i]
	p.index = i

	return token
}

// Parse a quoted string, which may contain whitespace and brackets.  Escape
// sequences are retained as written, and the enclosing quotes are included in
// the returned token.
func (p *Parser) parseQuoted() ([]rune, *source.SyntaxError) {
	start := p.index
	//
	for j := p.index + 1; j < len(p.text); j++ {
		switch p.text[j] {
		case '\\':
			j++
		case '"':
			p.index = j + 1
			return p.text[start:p.index], nil
		case '\n':
			p.index = start
			return nil, p.error("unterminated string")
		}
	}
	//
	p.index = start
	//
	return nil, p.error("unterminated string")
}

func (p *Parser) parseSequence(terminator rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		// Skip whitespace (and comments) before checking for the terminator.
		p.SkipWhiteSpace()
		//
		if p.index < len(p.text) && p.text[p.index] == terminator {
			break
		}
		// Parse next element
		element, err := p.Parse()
		if err != nil {
			return nil, err
		} else if element == nil {
			return nil, p.error("unexpected end-of-file")
		}
		// Continue around!
		elements = append(elements, element)
	}
	// Consume terminator
	p.index++
	//
	return elements, nil
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	span := source.NewSpan(p.index, min(p.index+1, len(p.text)))
	return p.srcfile.SyntaxError(span, msg)
}
