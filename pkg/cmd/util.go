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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-constcheck/pkg/checker"
	"github.com/consensys/go-constcheck/pkg/compiler"
	"github.com/consensys/go-constcheck/pkg/util/source"
	"github.com/consensys/go-constcheck/pkg/util/termio"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// ReadSourceFiles reads a given set of source files concurrently.  The files
// are returned in the order given, and the first error encountered (if any) is
// returned.
func ReadSourceFiles(filenames []string) ([]*source.File, error) {
	var (
		group    errgroup.Group
		srcfiles = make([]*source.File, len(filenames))
	)
	//
	for i, n := range filenames {
		group.Go(func() error {
			log.Debugf("including source file %s", n)
			//
			srcfile, err := source.ReadFile(n)
			srcfiles[i] = srcfile
			//
			return err
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	return srcfiles, nil
}

// ReadExternsFile reads an externs manifest, or exits if an error arises.  An
// empty filename indicates there are no externs.
func ReadExternsFile(filename string) *compiler.Externs {
	if filename == "" {
		return nil
	}
	//
	externs, err := compiler.LoadExterns(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	log.Debugf("read externs from %s", filename)
	//
	return externs
}

// ErrorPrinter prints syntax errors with appropriate highlighting.  Colour is
// used only when writing to a terminal, and source lines wider than the
// terminal are clipped.
type ErrorPrinter struct {
	out    io.Writer
	colour bool
	// Maximum width of a source line (or 0 if unlimited)
	width int
}

// NewErrorPrinter constructs a printer for a given output.  Colour (when
// permitted) and clipping are enabled only when the output is a terminal.
func NewErrorPrinter(out io.Writer, colour bool) *ErrorPrinter {
	var printer = &ErrorPrinter{out: out}
	//
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		printer.colour = colour && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
		//
		if width, _, err := term.GetSize(int(fd)); err == nil && width > 0 {
			printer.width = width
		}
	}
	//
	return printer
}

// Print a syntax error with appropriate highlighting.
func (p *ErrorPrinter) Print(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	text := line.String()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	location := fmt.Sprintf("%s:%d:%d-%d", err.SourceFile().Filename(), line.Number(), 1+lineOffset,
		1+lineOffset+length)
	// Print error + line number
	fmt.Fprintf(p.out, "%s %s\n", p.paint(termio.NewAnsiEscape().FgColour(termio.TERM_CYAN), location),
		p.paint(termio.NewAnsiEscape().Bold(), err.Message()))
	// Clip line to fit terminal (offsets are measured in runes)
	if runes := []rune(text); p.width > 0 && len(runes) > p.width {
		text = string(runes[:p.width])
		lineOffset = min(lineOffset, p.width)
		length = min(length, p.width-lineOffset)
	}
	// Print separator line
	fmt.Fprintln(p.out)
	// Print line
	fmt.Fprintln(p.out, text)
	// Print indent (todo: account for tabs)
	fmt.Fprint(p.out, strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Fprintln(p.out, p.paint(termio.NewAnsiEscape().FgColour(termio.TERM_RED), strings.Repeat("^", length)))
}

// Abort prints the final message when checking was aborted.
func (p *ErrorPrinter) Abort(err *checker.AbortError) {
	var escape = termio.NewAnsiEscape().Bold().FgColour(termio.TERM_RED)
	//
	fmt.Fprintf(p.out, "%s: %s\n", p.paint(escape, "error"), err.Error())
}

func (p *ErrorPrinter) paint(escape termio.AnsiEscape, text string) string {
	if !p.colour {
		return text
	}
	//
	return escape.Paint(text)
}
