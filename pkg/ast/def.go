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
package ast

import "fmt"

// DefKind identifies the kind of item to which a name resolves.
type DefKind uint8

const (
	// DefStatic indicates a constant binding.
	DefStatic DefKind = iota
	// DefFn indicates a free function.
	DefFn
	// DefVariant indicates an enum variant (constructor).
	DefVariant
	// DefStruct indicates a struct (constructor).
	DefStruct
	// DefLocal indicates a local variable (e.g. a parameter or let binding).
	DefLocal
	// DefTy indicates a type (e.g. an enum), rather than a value.
	DefTy
	// DefMod indicates a module.
	DefMod
)

func (k DefKind) String() string {
	switch k {
	case DefStatic:
		return "constant"
	case DefFn:
		return "function"
	case DefVariant:
		return "variant"
	case DefStruct:
		return "struct"
	case DefLocal:
		return "local"
	case DefTy:
		return "type"
	case DefMod:
		return "module"
	default:
		return "unknown"
	}
}

// Def captures the result of resolving a name.  Local definitions are those
// declared within the program being compiled, and these identify their
// declaring node.  Definitions from external sources are not local and have no
// declaring node.
type Def struct {
	Kind DefKind
	// Qualified name of the item being referred to.
	Name string
	// Declaring node (only meaningful for local definitions).
	Decl NodeId
	// Indicates whether declared within the program being compiled.
	Local bool
}

// IsLocal checks whether this definition is declared within the program being
// compiled.
func (d Def) IsLocal() bool {
	return d.Local
}

func (d Def) String() string {
	if d.Local {
		return fmt.Sprintf("%s %s (#%d)", d.Kind, d.Name, d.Decl)
	}
	//
	return fmt.Sprintf("extern %s %s", d.Kind, d.Name)
}
