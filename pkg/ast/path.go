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

import (
	"fmt"
	"strings"
)

// PathSegment represents one component of a (possibly qualified) path, along
// with any explicit type arguments given for it (e.g. "size_of::<u8>").
type PathSegment struct {
	Name  string
	Types []Type
}

// Path represents a qualified name such as "m::Color::Red".
type Path struct {
	Segments []PathSegment
}

// NewPath constructs a path from a sequence of names, none of which carry type
// arguments.
func NewPath(names ...string) Path {
	segments := make([]PathSegment, len(names))
	//
	for i, n := range names {
		segments[i] = PathSegment{n, nil}
	}
	//
	return Path{segments}
}

// ParsePath parses a path written as, for example, "a::b::<u8,u16>::c".  A
// segment beginning with "<" supplies the type arguments of the preceding
// segment.  An error is returned for a malformed path.
func ParsePath(text string) (Path, error) {
	var segments []PathSegment
	//
	for _, s := range strings.Split(text, "::") {
		switch {
		case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
			n := len(segments)
			//
			if n == 0 || segments[n-1].Types != nil {
				return Path{}, fmt.Errorf("misplaced type arguments in \"%s\"", text)
			}
			//
			for _, t := range splitTopLevel(s[1 : len(s)-1]) {
				segments[n-1].Types = append(segments[n-1].Types, ParseType(t))
			}
			//
			if segments[n-1].Types == nil {
				segments[n-1].Types = []Type{}
			}
		case s == "" || strings.ContainsAny(s, "<>"):
			return Path{}, fmt.Errorf("malformed path \"%s\"", text)
		default:
			segments = append(segments, PathSegment{s, nil})
		}
	}
	//
	return Path{segments}, nil
}

// HasTypeArguments determines whether any segment of this path carries
// explicit type arguments.
func (p *Path) HasTypeArguments() bool {
	for _, s := range p.Segments {
		if len(s.Types) != 0 {
			return true
		}
	}
	//
	return false
}

// Names returns the names of each segment in this path (i.e. ignoring any type
// arguments).
func (p *Path) Names() []string {
	names := make([]string, len(p.Segments))
	//
	for i, s := range p.Segments {
		names[i] = s.Name
	}
	//
	return names
}

func (p *Path) String() string {
	var builder strings.Builder
	//
	for i, s := range p.Segments {
		if i != 0 {
			builder.WriteString("::")
		}
		//
		builder.WriteString(s.Name)
		//
		if s.Types != nil {
			builder.WriteString("::<")
			//
			for j, t := range s.Types {
				if j != 0 {
					builder.WriteString(",")
				}
				//
				builder.WriteString(t.String())
			}
			//
			builder.WriteString(">")
		}
	}
	//
	return builder.String()
}
