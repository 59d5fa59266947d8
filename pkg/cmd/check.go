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
	"errors"
	"fmt"
	"os"

	"github.com/consensys/go-constcheck/pkg/checker"
	"github.com/consensys/go-constcheck/pkg/compiler"
	"github.com/consensys/go-constcheck/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file1.lisp file2.lisp ...",
	Short: "check the constants declared in one or more source files.",
	Long: `Check that every constant context in the given source file(s) contains
only expressions which can be evaluated at compile time, and that no constant
is recursive.  Items declared outside of these files can be described in an
externs manifest (yaml).`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			externs   = ReadExternsFile(GetString(cmd, "externs"))
			maxErrors = GetUint(cmd, "max-errors")
			printer   = NewErrorPrinter(os.Stdout, !GetFlag(cmd, "no-color"))
		)
		// Read source files
		srcfiles, err := ReadSourceFiles(args)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		// Compile and check
		_, errs, err := compiler.Compile(externs, srcfiles...)
		//
		reportErrors(printer, errs, maxErrors, err)
	},
}

// Report any errors arising from checking, and exit with the appropriate
// status.  Recoverable errors are printed first, followed by any unrecoverable
// error.
func reportErrors(printer *ErrorPrinter, errs []source.SyntaxError, maxErrors uint, err error) {
	var (
		fatal *checker.FatalError
		abort *checker.AbortError
	)
	//
	for i := range errs {
		if maxErrors != 0 && uint(i) >= maxErrors {
			log.Debugf("suppressed %d further error(s)", uint(len(errs))-maxErrors)
			break
		}
		//
		printer.Print(&errs[i])
	}
	//
	switch {
	case err == nil:
		return
	case errors.As(err, &fatal):
		printer.Print(fatal.Cause())
		os.Exit(5)
	case errors.As(err, &abort):
		printer.Abort(abort)
		os.Exit(4)
	default:
		fmt.Println(err)
		os.Exit(5)
	}
}

func init() {
	checkCmd.Flags().String("externs", "", "yaml manifest describing externally declared items")
	checkCmd.Flags().Uint("max-errors", 0, "maximum number of errors to report (0 = unlimited)")
	rootCmd.AddCommand(checkCmd)
}
