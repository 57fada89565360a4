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

// Package schema implements runtime schema validation for data frames and
// series.  A schema declares an ordered set of typed, named fields (columns
// and index levels) with optional value checks; validating a frame against a
// schema yields either a validated (possibly coerced, filtered and/or
// reordered) copy of the frame, or an error identifying exactly which
// column, index level or value failed and why.
package schema

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/veridata/framecheck/pkg/frame"
)

// Schema is the canonical, immutable representation of a frame schema: an
// ordered collection of field declarations, a configuration override and a
// list of custom checks.  Schemas are stateless; every validation call
// resolves its own configuration and schema map.
type Schema struct {
	// Name of this schema, used in CLI reporting.
	name string
	// Field declarations, in order.
	fields []Field
	// Partial configuration overlaid onto the defaults per validation call.
	override ConfigOverride
	// User-supplied checks, run after all field validation.
	checks []customCheck
}

// customCheck is a user-supplied predicate attached to a schema, bound
// either to the whole frame or to one or more (possibly regex) column names.
type customCheck struct {
	// Name identifying the check in error messages.
	name string
	// Whole-frame predicate (exclusive with columnFn).
	frameFn func(*frame.DataFrame) bool
	// Per-column predicate (exclusive with frameFn).
	columnFn func(*frame.Series) bool
	// Declared attribute names (or patterns) the column predicate binds to.
	columns []string
	// Whether columns are regular expressions over the frame's live column
	// names.
	regex bool
}

// SchemaOption configures a schema at construction time.
type SchemaOption func(*Schema)

// New constructs a schema from an ordered list of field declarations,
// checking the declarations themselves for sanity.  Malformed declarations
// (duplicate attributes, regex matching without a pattern, unsupported
// types, ambiguous index-name matching) are rejected here, before any frame
// is ever seen.
func New(name string, fields []Field, opts ...SchemaOption) (*Schema, error) {
	schema := &Schema{name: name, fields: fields}
	//
	for _, opt := range opts {
		opt(schema)
	}
	//
	if err := schema.sanityCheck(); err != nil {
		return nil, err
	}
	//
	return schema, nil
}

// WithConfig attaches a configuration override to a schema.
func WithConfig(override ConfigOverride) SchemaOption {
	return func(s *Schema) { s.override = override }
}

// WithFrameCheck attaches a user-supplied predicate run against the whole
// frame.
func WithFrameCheck(name string, fn func(*frame.DataFrame) bool) SchemaOption {
	return func(s *Schema) {
		s.checks = append(s.checks, customCheck{name: name, frameFn: fn})
	}
}

// WithColumnCheck attaches a user-supplied predicate run against each of the
// given columns, which must be declared attribute names of the schema.
func WithColumnCheck(name string, fn func(*frame.Series) bool, columns ...string) SchemaOption {
	return func(s *Schema) {
		s.checks = append(s.checks, customCheck{name: name, columnFn: fn, columns: columns})
	}
}

// WithRegexColumnCheck attaches a user-supplied predicate run against every
// frame column matching any of the given patterns.
func WithRegexColumnCheck(name string, fn func(*frame.Series) bool, patterns ...string) SchemaOption {
	return func(s *Schema) {
		s.checks = append(s.checks, customCheck{name: name, columnFn: fn, columns: patterns, regex: true})
	}
}

// Name returns the name of this schema.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns the field declarations of this schema, in order.
func (s *Schema) Fields() []Field {
	return s.fields
}

// WithOverride returns a copy of this schema whose configuration override is
// extended by the given override, with the new settings dominating.
func (s *Schema) WithOverride(override ConfigOverride) (*Schema, error) {
	merged := ConfigOverride{}
	//
	if err := mergo.Merge(&merged, s.override); err != nil {
		return nil, err
	}
	//
	if err := mergo.Merge(&merged, override, mergo.WithOverride); err != nil {
		return nil, err
	}
	//
	copied := *s
	copied.override = merged
	//
	return &copied, nil
}

// sanityCheck validates the schema declaration itself.
func (s *Schema) sanityCheck() error {
	var (
		seen = make(map[string]bool, len(s.fields))
		// Number of index fields
		indexed int
		// Number of index fields with name checking disabled
		unnamed int
	)
	//
	for _, field := range s.fields {
		if seen[field.Name] {
			return &SchemaDefinitionError{fmt.Sprintf("duplicate field %q", field.Name)}
		}
		//
		seen[field.Name] = true
		//
		if !supportedType(field.Type) {
			return &UnsupportedTypeError{field.Name, field.Type}
		}
		//
		if field.Regex && field.Alias == "" {
			return &SchemaDefinitionError{
				fmt.Sprintf("field %q enables regex matching without an alias pattern", field.Name)}
		}
		//
		if field.Kind == Index {
			indexed++
			//
			if !field.CheckIndexName {
				unnamed++
			}
		} else if !field.CheckIndexName {
			return &SchemaDefinitionError{
				fmt.Sprintf("field %q disables index-name checking but is not an index field", field.Name)}
		}
	}
	// Mixing named and unnamed index fields makes level matching ambiguous:
	// permit at most one unnamed field, unless every index field is unnamed.
	if unnamed > 1 && unnamed < indexed {
		return &SchemaDefinitionError{"cannot mix index fields with and without index-name checking"}
	}
	// Reject malformed overrides at declaration time too, even though the
	// effective configuration is resolved fresh per validation call.
	if _, err := resolveConfig(s.override); err != nil {
		return err
	}
	//
	return nil
}

// ============================================================================
// Schema map
// ============================================================================

// mapEntry is one resolved schema-map entry: a field declaration together
// with the concrete frame names it matched.
type mapEntry struct {
	// Attribute name keying this entry.  Normally the field's declared name;
	// rename-on-match retargets it to the actual level name.
	attr string
	// The declaration itself.
	field Field
	// Concrete column or level names matched, filled by the name resolver.
	// Empty for an optional field which matched nothing.
	matched []string
}

// schemaMap is the canonical ordered mapping from attribute names to field
// descriptors, built once per validation call.
type schemaMap struct {
	entries []*mapEntry
}

// newSchemaMap builds a fresh schema map for one validation call.
func (s *Schema) newSchemaMap() *schemaMap {
	entries := make([]*mapEntry, len(s.fields))
	//
	for i, field := range s.fields {
		entries[i] = &mapEntry{attr: field.Name, field: field}
	}
	//
	return &schemaMap{entries}
}

// kindEntries returns the entries of a given kind, in declaration order.
func (m *schemaMap) kindEntries(kind Kind) []*mapEntry {
	var entries []*mapEntry
	//
	for _, entry := range m.entries {
		if entry.field.Kind == kind {
			entries = append(entries, entry)
		}
	}
	//
	return entries
}

// find returns the entry declared under a given attribute name.
func (m *schemaMap) find(attr string) (*mapEntry, bool) {
	for _, entry := range m.entries {
		if entry.attr == attr || entry.field.Name == attr {
			return entry, true
		}
	}
	//
	return nil, false
}

// matchedNames flattens the matched names of all entries of a given kind, in
// declaration order (regex expansions retain the frame's own order).
func (m *schemaMap) matchedNames(kind Kind) []string {
	var names []string
	//
	for _, entry := range m.kindEntries(kind) {
		names = append(names, entry.matched...)
	}
	//
	return names
}
