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
package util

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-constcheck/pkg/compiler"
	"github.com/consensys/go-constcheck/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the test files (lisp) and any extern manifests (yaml) are found.
const TestDir = "../../testdata"

// ErrorCompiler compiles a source file (along with any externs it requires)
// and produces zero or more errors.
type ErrorCompiler func(*compiler.Externs, *source.File) []source.SyntaxError

// CheckInvalid checks that a given source file fails to compile, producing
// exactly those errors described by the attributes at the start of the file.
// nolint
func CheckInvalid(t *testing.T, test string, compiler ErrorCompiler) {
	var filename = fmt.Sprintf("%s/%s.lisp", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	externs := readExterns(t, test)
	// Compile source file to produce errors
	actual := compiler(externs, srcfile)
	// Extract expected errors for comparison
	expected, errs := ExtractAttributes(srcfile, extractSyntaxError)
	//
	if len(errs) > 0 {
		// Report any errors encountered parsing the attributes themselves.
		t.Fatal(errors.Join(errs...))
	} else if len(actual) == 0 {
		t.Fatalf("Error %s should not have compiled\n", srcfile.Filename())
	}
	//
	checkExpectedErrors(t, srcfile, actual, expected)
}

func checkExpectedErrors(t *testing.T, srcfile *source.File, actual, expected []source.SyntaxError) {
	var (
		failed bool
		msg    = fmt.Sprintf("Error %s\n", srcfile.Filename())
	)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) {
			if expected[i].Message() == actual[i].Message() && expected[i].Span() == actual[i].Span() {
				continue
			}
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected error %s\n", msg, errorToString(actual[i]))
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %s\n", msg, errorToString(expected[i]))
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

func readSourceFile(t *testing.T, filename string) *source.File {
	srcfile, err := source.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return srcfile
}

// Read the extern manifest accompanying a given test, if one exists.
func readExterns(t *testing.T, test string) *compiler.Externs {
	var filename = fmt.Sprintf("%s/%s.yaml", TestDir, test)
	//
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	//
	externs, err := compiler.LoadExterns(filename)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return externs
}

// Convert an error into a human readable string.
func errorToString(err source.SyntaxError) string {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	//
	return fmt.Sprintf("%s:%d:%d-%d %s", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
}
