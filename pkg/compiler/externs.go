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
	"os"
	"slices"
	"strings"

	"github.com/consensys/go-constcheck/pkg/ast"
	"gopkg.in/yaml.v3"
)

// Externs describes items which are declared outside of the program being
// compiled (e.g. in some library), but which may be referred to by it.  Names
// may be qualified (e.g. "std::u8::MAX"), in which case the enclosing modules
// are declared implicitly.  For example:
//
//	consts:
//	  std::u8::MAX: u8
//	fns: [std::mem::size_of]
//	structs: [Point]
//	enums:
//	  Ordering: [Less, Equal, Greater]
type Externs struct {
	// Constants along with their declared types.
	Consts map[string]string `yaml:"consts,omitempty"`
	// Free functions.
	Fns []string `yaml:"fns,omitempty"`
	// Struct types (which can be constructed).
	Structs []string `yaml:"structs,omitempty"`
	// Enum types along with their variants.
	Enums map[string][]string `yaml:"enums,omitempty"`
}

// LoadExterns reads an externs manifest from a given file.
func LoadExterns(path string) (*Externs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading externs %s: %w", path, err)
	}
	//
	return ParseExterns(data, path)
}

// ParseExterns parses an externs manifest from bytes.  The path is used only
// for error messages.
func ParseExterns(data []byte, path string) (*Externs, error) {
	var externs Externs
	//
	if err := yaml.Unmarshal(data, &externs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	} else if err := externs.validate(path); err != nil {
		return nil, err
	}
	//
	return &externs, nil
}

func (p *Externs) validate(path string) error {
	var names []string
	//
	for name := range p.Consts {
		names = append(names, name)
	}
	//
	names = append(names, p.Fns...)
	names = append(names, p.Structs...)
	//
	for name, variants := range p.Enums {
		names = append(names, name)
		//
		for _, v := range variants {
			if strings.Contains(v, "::") {
				return fmt.Errorf("%s: invalid variant \"%s\" of enum %s", path, v, name)
			}
		}
	}
	//
	for i, name := range names {
		if _, err := ast.ParsePath(name); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		} else if slices.Contains(names[:i], name) {
			return fmt.Errorf("%s: duplicate extern %s", path, name)
		}
	}
	//
	return nil
}
