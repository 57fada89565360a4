// Copyright Veridata Software Inc.
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
package schema

import (
	"github.com/veridata/framecheck/pkg/frame"
	"github.com/veridata/framecheck/pkg/schema/check"
)

// Kind distinguishes fields describing columns from fields describing index
// levels.
type Kind uint8

const (
	// Column marks a field matching a data column.
	Column Kind = iota
	// Index marks a field matching an index level.
	Index
)

// Field is the canonical declaration of one schema attribute: which name(s)
// it matches, what type the matched values must have, and which value checks
// apply.  Fields are immutable once built.
type Field struct {
	// Declared attribute name, used for matching when no alias is given.
	Name string
	// Declared element type.
	Type frame.DType
	// Whether this field describes a column or an index level.
	Kind Kind
	// An optional field which matches nothing in the frame is simply
	// skipped, rather than raising a missing-name error.
	Optional bool
	// Whether a dtype mismatch on this field is resolved by casting, even
	// when the schema-level coerce toggle is off.
	Coerce bool
	// Alternate name (or pattern, when Regex is set) matched instead of the
	// attribute name.
	Alias string
	// Whether Alias is a regular expression, matching every column it
	// applies to.
	Regex bool
	// Index fields only: when false, a lone index level matches this field
	// regardless of its name.
	CheckIndexName bool
	// Value checks applied to every matched series, in order.
	Checks []check.Check
}

// FieldOption configures a field at construction time.
type FieldOption func(*Field)

// NewColumn declares a column field of the given attribute name and type.
func NewColumn(name string, typ frame.DType, opts ...FieldOption) Field {
	return newField(name, typ, Column, opts)
}

// NewIndex declares an index-level field of the given attribute name and
// type.
func NewIndex(name string, typ frame.DType, opts ...FieldOption) Field {
	return newField(name, typ, Index, opts)
}

func newField(name string, typ frame.DType, kind Kind, opts []FieldOption) Field {
	field := Field{
		Name:           name,
		Type:           typ,
		Kind:           kind,
		CheckIndexName: true,
	}
	//
	for _, opt := range opts {
		opt(&field)
	}
	//
	return field
}

// Optional marks a field as optional.
func Optional() FieldOption {
	return func(f *Field) { f.Optional = true }
}

// Coerce marks a field as coercing dtype mismatches, regardless of the
// schema-level coerce toggle.
func Coerce() FieldOption {
	return func(f *Field) { f.Coerce = true }
}

// Alias matches a field against a literal name instead of its attribute
// name.
func Alias(alias string) FieldOption {
	return func(f *Field) { f.Alias = alias }
}

// Regex matches a field against every name matching a pattern, instead of
// its attribute name.
func Regex(pattern string) FieldOption {
	return func(f *Field) { f.Alias = pattern; f.Regex = true }
}

// NoIndexNameCheck allows an index field to match a lone index level
// regardless of the level's name.
func NoIndexNameCheck() FieldOption {
	return func(f *Field) { f.CheckIndexName = false }
}

// Checks attaches value checks to a field.
func Checks(checks ...check.Check) FieldOption {
	return func(f *Field) { f.Checks = append(f.Checks, checks...) }
}

// supportedType determines whether a dtype is in the supported set for
// schema fields.
func supportedType(t frame.DType) bool {
	switch t {
	case frame.Int, frame.Float, frame.Bool, frame.String, frame.Category, frame.Timestamp:
		return true
	default:
		return false
	}
}

// dtypeRepr maps a dtype to its checked representation.  String and category
// share a representation, hence a string field accepts a categorical column
// (and vice versa) without coercion.
func dtypeRepr(t frame.DType) frame.DType {
	if t == frame.Category {
		return frame.String
	}
	//
	return t
}
