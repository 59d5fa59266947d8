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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-constcheck/pkg/checker"
	"github.com/consensys/go-constcheck/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ErrorPrinter_Print(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(defconst A int 1)\n(defconst B int (box 2))\n"))
		printer = NewErrorPrinter(&buf, true)
	)
	//
	printer.Print(srcfile.SyntaxError(source.NewSpan(35, 42), "cannot do allocations in constant expressions"))
	//
	assert.Equal(t, "test.lisp:2:17-24 cannot do allocations in constant expressions\n"+
		"\n"+
		"(defconst B int (box 2))\n"+
		"                ^^^^^^^\n", buf.String())
}

func Test_ErrorPrinter_Clip(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(defconst B int (box 2))"))
		printer = &ErrorPrinter{out: &buf, width: 20}
	)
	//
	printer.Print(srcfile.SyntaxError(source.NewSpan(16, 23), "oops"))
	//
	assert.Equal(t, "test.lisp:1:17-24 oops\n"+
		"\n"+
		"(defconst B int (box\n"+
		"                ^^^^\n", buf.String())
}

func Test_ErrorPrinter_ClipUnicode(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(defconst É int (box 2))"))
		printer = &ErrorPrinter{out: &buf, width: 20}
	)
	//
	printer.Print(srcfile.SyntaxError(source.NewSpan(16, 23), "oops"))
	//
	assert.Equal(t, "test.lisp:1:17-24 oops\n"+
		"\n"+
		"(defconst É int (box\n"+
		"                ^^^^\n", buf.String())
}

func Test_ErrorPrinter_PrintColour(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.lisp", []byte("(box 2)"))
		printer = &ErrorPrinter{out: &buf, colour: true}
	)
	//
	printer.Print(srcfile.SyntaxError(source.NewSpan(0, 7), "oops"))
	//
	assert.Equal(t, "\033[36mtest.lisp:1:1-8\033[0m \033[1moops\033[0m\n"+
		"\n"+
		"(box 2)\n"+
		"\033[31m^^^^^^^\033[0m\n", buf.String())
}

func Test_ErrorPrinter_Colour(t *testing.T) {
	var (
		buf     bytes.Buffer
		printer = &ErrorPrinter{out: &buf, colour: true}
	)
	//
	printer.Abort(&checker.AbortError{Count: 2})
	//
	assert.Equal(t, "\033[1;31merror\033[0m: aborting due to 2 previous errors\n", buf.String())
}

func Test_ReadSourceFiles(t *testing.T) {
	var (
		dir       = t.TempDir()
		filenames []string
	)
	//
	for _, name := range []string{"c.lisp", "a.lisp", "b.lisp"} {
		filename := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(filename, []byte(name), 0o600))
		filenames = append(filenames, filename)
	}
	//
	srcfiles, err := ReadSourceFiles(filenames)
	require.NoError(t, err)
	// Order is preserved
	for i, srcfile := range srcfiles {
		assert.Equal(t, filenames[i], srcfile.Filename())
		assert.Equal(t, filepath.Base(filenames[i]), string(srcfile.Contents()))
	}
	// Missing files are reported
	_, err = ReadSourceFiles(append(filenames, filepath.Join(dir, "missing.lisp")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
