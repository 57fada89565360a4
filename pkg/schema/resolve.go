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
	"fmt"
	"regexp"
	"slices"
)

// resolve matches every schema-map entry of a given kind against the actual
// name set of a frame (column names, or index level names), recording the
// concrete matches on each entry.  Matching is first-declared-wins: once a
// name is claimed by one field, a later field also claiming it is an error.
// Regex-aliased entries expand to every matching name, in the frame's own
// order.
func (m *schemaMap) resolve(actual []string, kind Kind) error {
	// Maps each claimed name to the attribute which claimed it.
	claimed := make(map[string]string)
	//
	for _, entry := range m.kindEntries(kind) {
		var err error
		//
		switch {
		case entry.field.Regex:
			err = resolveRegex(entry, actual, claimed, kind)
		case kind == Index && !entry.field.CheckIndexName:
			err = resolveUnnamed(entry, actual, claimed)
		default:
			err = resolveLiteral(entry, actual, claimed, kind)
		}
		//
		if err != nil {
			return err
		}
	}
	//
	return nil
}

// resolveRegex expands a regex-aliased entry against every actual name
// matching its pattern.  Zero matches is only acceptable when the field is
// optional.
func resolveRegex(entry *mapEntry, actual []string, claimed map[string]string, kind Kind) error {
	regex, err := regexp.Compile(entry.field.Alias)
	if err != nil {
		return &SchemaDefinitionError{fmt.Sprintf("field %q has invalid pattern: %v", entry.attr, err)}
	}
	//
	var matches []string
	//
	for _, name := range actual {
		if regex.MatchString(name) {
			matches = append(matches, name)
		}
	}
	//
	if len(matches) == 0 {
		if entry.field.Optional {
			return nil
		}
		//
		return missingError(kind, fmt.Sprintf("no %s match pattern %q (field %q)",
			kindNoun(kind, true), entry.field.Alias, entry.attr))
	}
	//
	for _, name := range matches {
		if owner, ok := claimed[name]; ok {
			return overlapError(kind, name, owner, entry.attr)
		}
		//
		claimed[name] = entry.attr
	}
	//
	entry.matched = matches
	//
	return nil
}

// resolveLiteral matches an entry against a single literal name, either its
// alias or its bare attribute name.
func resolveLiteral(entry *mapEntry, actual []string, claimed map[string]string, kind Kind) error {
	target := entry.attr
	if entry.field.Alias != "" {
		target = entry.field.Alias
	}
	//
	if !slices.Contains(actual, target) {
		if entry.field.Optional {
			return nil
		}
		//
		return missingError(kind, fmt.Sprintf("%s %q missing in frame", kindNoun(kind, false), target))
	}
	//
	if owner, ok := claimed[target]; ok {
		return overlapError(kind, target, owner, entry.attr)
	}
	//
	claimed[target] = entry.attr
	entry.matched = []string{target}
	//
	return nil
}

// resolveUnnamed handles an index field with name checking disabled: when
// exactly one actual index level exists, the entry is retargeted onto that
// level (rename-on-match), whatever it is called.  Anything other than
// exactly one candidate level is ambiguous.
func resolveUnnamed(entry *mapEntry, actual []string, claimed map[string]string) error {
	unclaimed := make([]string, 0, len(actual))
	//
	for _, name := range actual {
		if _, ok := claimed[name]; !ok {
			unclaimed = append(unclaimed, name)
		}
	}
	//
	if len(unclaimed) == 0 {
		if entry.field.Optional {
			return nil
		}
		//
		return missingError(Index, fmt.Sprintf("index level %q missing in frame", entry.attr))
	} else if len(unclaimed) > 1 {
		return &SchemaDefinitionError{fmt.Sprintf(
			"field %q disables index-name checking, but %d candidate levels exist", entry.attr, len(unclaimed))}
	}
	// Rename-on-match: the schema-map entry now goes by the actual level
	// name.
	target := unclaimed[0]
	//
	claimed[target] = entry.attr
	entry.attr = target
	entry.matched = []string{target}
	//
	return nil
}

func overlapError(kind Kind, name, owner, claimant string) error {
	return &SchemaDefinitionError{fmt.Sprintf("%s %q is matched by fields %q and %q",
		kindNoun(kind, false), name, owner, claimant)}
}

func missingError(kind Kind, message string) error {
	if kind == Index {
		return &MissingIndexError{message}
	}
	//
	return &MissingColumnsError{message}
}

func kindNoun(kind Kind, plural bool) string {
	switch {
	case kind == Index && plural:
		return "index levels"
	case kind == Index:
		return "index level"
	case plural:
		return "columns"
	default:
		return "column"
	}
}
