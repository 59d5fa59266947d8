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
package test

import (
	"errors"

	"github.com/consensys/go-constcheck/pkg/checker"
	"github.com/consensys/go-constcheck/pkg/compiler"
	"github.com/consensys/go-constcheck/pkg/util/source"
)

// Compile a given source file, returning every error reported.  An
// unrecoverable error is reported last.
func compileLisp(externs *compiler.Externs, srcfile *source.File) []source.SyntaxError {
	var fatal *checker.FatalError
	//
	_, errs, err := compiler.Compile(externs, srcfile)
	//
	if errors.As(err, &fatal) {
		errs = append(errs, *fatal.Cause())
	}
	//
	return errs
}
