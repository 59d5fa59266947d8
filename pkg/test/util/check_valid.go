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
	"fmt"
	"strings"
	"testing"
)

// CheckValid checks that a given source file compiles without errors.
func CheckValid(t *testing.T, test string, compiler ErrorCompiler) {
	var filename = fmt.Sprintf("%s/%s.lisp", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	errs := compiler(readExterns(t, test), srcfile)
	//
	if len(errs) > 0 {
		var builder strings.Builder
		//
		for _, err := range errs {
			builder.WriteString(errorToString(err))
			builder.WriteString("\n")
		}
		//
		t.Fatalf("Error %s should have compiled\n%s", srcfile.Filename(), builder.String())
	}
}
