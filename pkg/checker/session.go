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
	"fmt"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/util/source"
)

// Session records the diagnostics reported during a compilation run.  Errors
// reported here are recoverable, in the sense that checking continues after
// them, and the decision to abort is taken only once checking is complete.
type Session struct {
	srcmaps *source.Maps[ast.Node]
	errors  []source.SyntaxError
}

// NewSession constructs an empty session which reports errors against the
// given source maps.
func NewSession(srcmaps *source.Maps[ast.Node]) *Session {
	return &Session{srcmaps, nil}
}

// SpanError records a recoverable error at the location of a given node.
func (p *Session) SpanError(node ast.Node, msg string) {
	p.errors = append(p.errors, *p.srcmaps.SyntaxError(node, msg))
}

// SpanFatal constructs an unrecoverable error at the location of a given node.
// This is not recorded against the session, and should be returned directly
// to the caller.
func (p *Session) SpanFatal(node ast.Node, msg string) *FatalError {
	return &FatalError{*p.srcmaps.SyntaxError(node, msg)}
}

// ErrorCount returns the number of recoverable errors reported so far.
func (p *Session) ErrorCount() uint {
	return uint(len(p.errors))
}

// Errors returns the recoverable errors reported so far, in the order they
// were reported.
func (p *Session) Errors() []source.SyntaxError {
	return p.errors
}

// AbortIfErrors returns an error if one or more recoverable errors have been
// reported, otherwise nil.
func (p *Session) AbortIfErrors() error {
	if len(p.errors) > 0 {
		return &AbortError{p.ErrorCount()}
	}
	//
	return nil
}

// FatalError is an error which halts compilation immediately.
type FatalError struct {
	source.SyntaxError
}

// Cause returns the underlying syntax error.
func (p *FatalError) Cause() *source.SyntaxError {
	return &p.SyntaxError
}

// AbortError indicates that compilation was aborted after checking completed,
// because one or more recoverable errors were reported.
type AbortError struct {
	Count uint
}

func (p *AbortError) Error() string {
	if p.Count == 1 {
		return "aborting due to previous error"
	}
	//
	return fmt.Sprintf("aborting due to %d previous errors", p.Count)
}
