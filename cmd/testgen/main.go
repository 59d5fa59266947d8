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
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-constcheck/pkg/checker"
	util "github.com/consensys/go-constcheck/pkg/cmd"
	"github.com/consensys/go-constcheck/pkg/compiler"
	"github.com/consensys/go-constcheck/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("write", "w", false, "rewrite test files in place")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// ERROR_PREFIX identifies the attribute lines describing expected errors.
const ERROR_PREFIX = ";;error:"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen [flags] test1.lisp test2.lisp ...",
	Short: "Test generation utility for constcheck.",
	Long: `Regenerate the expected error attributes at the start of each test file,
by checking the file and recording the errors reported.  An externs manifest
(e.g. test.yaml for test.lisp) is used when present.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if util.GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		write := util.GetFlag(cmd, "write")
		//
		for _, filename := range args {
			contents := generateTestFile(filename)
			//
			if !write {
				fmt.Print(contents)
			} else if err := os.WriteFile(filename, []byte(contents), 0644); err != nil {
				fmt.Println(err)
				os.Exit(3)
			} else {
				log.Infof("Wrote %s", filename)
			}
		}
	},
}

// Generate the contents of a given test file, where any existing error
// attributes are replaced by those actually reported.
func generateTestFile(filename string) string {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	// Strip existing attributes
	body := stripAttributes(string(bytes))
	srcfile := source.NewSourceFile(filename, []byte(body))
	externs := util.ReadExternsFile(externsFile(filename))
	// Check the test body
	errs := checkTestFile(externs, srcfile)
	//
	var builder strings.Builder
	//
	for _, err := range errs {
		builder.WriteString(errorToAttribute(err, len(errs)))
		builder.WriteString("\n")
	}
	//
	log.Debugf("%s reports %d error(s)", filename, len(errs))
	//
	return builder.String() + body
}

// Check a given source file, returning every error reported.  An unrecoverable
// error is reported last.
func checkTestFile(externs *compiler.Externs, srcfile *source.File) []source.SyntaxError {
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

// Convert an error into an attribute, given the number of attribute lines which
// will precede the body.  Errors spanning multiple lines are clipped to the
// end of their first line.
func errorToAttribute(err source.SyntaxError, offset int) string {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	length := min(line.Length()-lineOffset, span.Length())
	//
	if length != span.Length() {
		log.Warnf("clipped multi-line error \"%s\" at line %d", err.Message(), line.Number())
	}
	//
	return fmt.Sprintf("%s%d:%d-%d:%s", ERROR_PREFIX, offset+line.Number(), 1+lineOffset, 1+lineOffset+length,
		err.Message())
}

// Remove any leading error attributes from a test file.
func stripAttributes(text string) string {
	for strings.HasPrefix(text, ERROR_PREFIX) {
		_, rest, _ := strings.Cut(text, "\n")
		text = rest
	}
	//
	return text
}

// Determine the externs manifest accompanying a given test file, or "" if it
// has none.
func externsFile(filename string) string {
	manifest := strings.TrimSuffix(filename, ".lisp") + ".yaml"
	//
	if _, err := os.Stat(manifest); err != nil {
		return ""
	}
	//
	return manifest
}
