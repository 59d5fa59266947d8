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
	"reflect"
	"testing"

	"github.com/consensys/go-constcheck/pkg/util/source"
)

func TestSexp_1(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, "()", &e1)
}

func TestSexp_2(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, "(())", &e2)
}

func TestSexp_3(t *testing.T) {
	e1 := Symbol{"symbol"}
	CheckOk(t, "symbol", &e1)
}

func TestSexp_4(t *testing.T) {
	e1 := Symbol{"-12345"}
	CheckOk(t, "-12345", &e1)
}

func TestSexp_5(t *testing.T) {
	e1 := Symbol{"m::size_of::<u8,(u16,bool)>"}
	CheckOk(t, "m::size_of::<u8,(u16,bool)>", &e1)
}

func TestSexp_6(t *testing.T) {
	e1 := Symbol{"defconst"}
	e2 := Symbol{"A"}
	e3 := Symbol{"1"}
	e4 := List{[]SExp{&e1, &e2, &e3}}
	CheckOk(t, "(defconst A 1)", &e4)
}

func TestSexp_7(t *testing.T) {
	e1 := Symbol{"\"a (b) ;c\""}
	CheckOk(t, "\"a (b) ;c\"", &e1)
}

func TestSexp_8(t *testing.T) {
	e1 := Symbol{"x"}
	e2 := Symbol{"y"}
	CheckOk(t, "x ; comment\n y", &e1, &e2)
}

func TestSexp_9(t *testing.T) {
	CheckOk(t, "  ; nothing here\n")
}

func TestSexp_10(t *testing.T) {
	e1 := Symbol{"\"a\\\"b\""}
	CheckOk(t, "\"a\\\"b\"", &e1)
	//
	if e1.Unquote() != "a\"b" {
		t.Errorf("unexpected unquoting %s", e1.Unquote())
	}
}

func TestSexp_11(t *testing.T) {
	e1 := Symbol{"f::<Vec<(u8, bool)>>"}
	e2 := Symbol{"x"}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, "(f::<Vec<(u8, bool)>> x)", &e3)
}

func TestSexp_12(t *testing.T) {
	e1 := Symbol{"<"}
	e2 := Symbol{"a"}
	e3 := Symbol{"b"}
	e4 := List{[]SExp{&e1, &e2, &e3}}
	e5 := Symbol{"<="}
	e6 := List{[]SExp{&e5, &e2, &e3}}
	CheckOk(t, "(< a b) (<= a b)", &e4, &e6)
}

func TestSexp_13(t *testing.T) {
	e1 := Symbol{"a::<u8"}
	e2 := Symbol{"b"}
	CheckOk(t, "a::<u8\nb", &e1, &e2)
}

func TestSexp_Err1(t *testing.T) {
	CheckErr(t, "(", "unexpected end-of-file")
}

func TestSexp_Err2(t *testing.T) {
	CheckErr(t, ")", "unexpected end-of-list")
}

func TestSexp_Err3(t *testing.T) {
	CheckErr(t, "(x))", "unexpected end-of-list")
}

func TestSexp_Err4(t *testing.T) {
	CheckErr(t, "(\"abc", "unterminated string")
}

func TestSexp_Err5(t *testing.T) {
	CheckErr(t, "\"abc\ndef\"", "unterminated string")
}

func TestSexp_Span1(t *testing.T) {
	CheckSpans(t, "(a (bc))", source.NewSpan(0, 8), source.NewSpan(1, 2), source.NewSpan(3, 7), source.NewSpan(4, 6))
}

func TestSexp_Span2(t *testing.T) {
	CheckSpans(t, " \"x y\" ", source.NewSpan(1, 6))
}

func TestSexp_Span3(t *testing.T) {
	CheckSpans(t, "(size_of::<(u8,u16)>)", source.NewSpan(0, 21), source.NewSpan(1, 20))
}

func TestSexp_Match1(t *testing.T) {
	terms := parse(t, "(defconst A u8 1)")
	list := terms[0].AsList()
	//
	if !list.MatchSymbols(3, "defconst") {
		t.Errorf("expected match")
	} else if list.MatchSymbols(3, "defenum") {
		t.Errorf("unexpected match")
	} else if list.Head() != "defconst" {
		t.Errorf("unexpected head %s", list.Head())
	}
}

// ============================================================================
// Helpers
// ============================================================================

func parse(t *testing.T, input string) []SExp {
	terms, _, err := ParseAll(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return terms
}

func CheckOk(t *testing.T, input string, expected ...SExp) {
	terms := parse(t, input)
	//
	if len(terms) == 0 && len(expected) == 0 {
		return
	} else if !reflect.DeepEqual(terms, expected) {
		t.Errorf("%s != %s", expected, terms)
	}
}

func CheckErr(t *testing.T, input string, msg string) {
	_, _, err := ParseAll(source.NewSourceFile("test", []byte(input)))
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	} else if err.Message() != msg {
		t.Errorf("unexpected error \"%s\" (expected \"%s\")", err.Message(), msg)
	}
}

// Check the spans recorded for every term, visited in pre-order.
func CheckSpans(t *testing.T, input string, spans ...source.Span) {
	terms, srcmap, err := ParseAll(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	var (
		actual []source.Span
		visit  func(SExp)
	)
	//
	visit = func(s SExp) {
		actual = append(actual, srcmap.Get(s))
		//
		if l := s.AsList(); l != nil {
			for _, e := range l.Elements {
				visit(e)
			}
		}
	}
	//
	for _, term := range terms {
		visit(term)
	}
	//
	if !reflect.DeepEqual(actual, spans) {
		t.Errorf("unexpected spans %v (expected %v)", actual, spans)
	}
}
