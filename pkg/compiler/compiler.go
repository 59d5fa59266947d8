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
	"fmt"

	"github.com/consensys/go-constcheck/pkg/ast"
	"github.com/consensys/go-constcheck/pkg/checker"
	"github.com/consensys/go-constcheck/pkg/compiler/parser"
	"github.com/consensys/go-constcheck/pkg/util"
	"github.com/consensys/go-constcheck/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Compile a given set of source files into a single program, and then check
// that every constant context is valid and that no constant is recursive.  The
// given externs (which may be nil) declare items defined outside the program.
// Compilation stops after the first phase (i.e. parsing, resolution or
// checking) which reports errors.  All recoverable errors are returned, along
// with a *checker.AbortError when there were any.  An unrecoverable error is
// instead returned as a *checker.FatalError, along with any recoverable errors
// reported before it.
func Compile(externs *Externs, srcfiles ...*source.File) (ast.Program, []source.SyntaxError, error) {
	// Parse source files
	stats := util.NewPerfStats()
	program, srcmaps, errs := parser.ParseSourceFiles(srcfiles...)
	//
	if len(errs) > 0 {
		return program, errs, &checker.AbortError{Count: uint(len(errs))}
	}
	//
	stats.Log(fmt.Sprintf("parsing %d declarations from %d file(s)", len(program.Declarations), len(srcfiles)))
	// Resolve names
	stats = util.NewPerfStats()
	env, errs := Resolve(program, externs, srcmaps)
	//
	if len(errs) > 0 {
		return program, errs, &checker.AbortError{Count: uint(len(errs))}
	}
	//
	stats.Log("resolving names")
	// Infer types
	stats = util.NewPerfStats()
	Infer(program, env)
	stats.Log("inferring types")
	// Check constants
	stats = util.NewPerfStats()
	session := checker.NewSession(srcmaps)
	err := checker.Check(program, env, session)
	//
	stats.Log("checking constants")
	log.Debugf("reported %d error(s)", session.ErrorCount())
	//
	return program, session.Errors(), err
}
