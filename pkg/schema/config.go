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
	"sort"
)

// Config is the effective frame-level validation configuration.
type Config struct {
	// Reject columns not declared by the schema.
	Strict bool
	// Keep only declared columns, silently dropping the rest.  Filtering
	// always dominates Strict and applies before Ordered.
	Filter bool
	// Require the frame's column order to equal the schema's declaration
	// order.
	Ordered bool
	// Cast mismatched dtypes rather than rejecting them.
	Coerce bool
	// Reject index levels not declared by the schema.
	MultiIndexStrict bool
	// Require the frame's index level order to equal the schema's
	// declaration order.
	MultiIndexOrdered bool
	// Require the index to be monotonically increasing or decreasing.
	MultiIndexSorted bool
	// Require index row tuples to be pairwise distinct.
	MultiIndexUnique bool
}

// DefaultConfig returns the immutable default configuration.
func DefaultConfig() Config {
	return Config{Strict: true}
}

// ConfigOverride is a partial configuration, overlaid onto the defaults when
// a schema is validated.  Keys use the snake_case names of the declaration
// surface (e.g. "multiindex_sorted").
type ConfigOverride map[string]any

// resolveConfig merges an override onto the default configuration.  Every
// override key must name a recognised toggle and carry a boolean value;
// unknown keys and mistyped values are rejected rather than silently
// ignored.  Resolution happens fresh on every validation call.
func resolveConfig(override ConfigOverride) (Config, error) {
	config := DefaultConfig()
	//
	if len(override) == 0 {
		return config, nil
	}
	// Sort keys so rejection is deterministic.
	keys := make([]string, 0, len(override))
	for key := range override {
		keys = append(keys, key)
	}
	//
	sort.Strings(keys)
	//
	for _, key := range keys {
		target, ok := configFields(&config)[key]
		if !ok {
			return config, &SchemaDefinitionError{fmt.Sprintf("unknown config field %q", key)}
		}
		//
		value, ok := override[key].(bool)
		if !ok {
			return config, &SchemaDefinitionError{
				fmt.Sprintf("config field %q must be a bool, got %v", key, override[key])}
		}
		//
		*target = value
	}
	//
	return config, nil
}

// configFields maps recognised override keys onto the toggles of a
// configuration.
func configFields(config *Config) map[string]*bool {
	return map[string]*bool{
		"strict":             &config.Strict,
		"filter":             &config.Filter,
		"ordered":            &config.Ordered,
		"coerce":             &config.Coerce,
		"multiindex_strict":  &config.MultiIndexStrict,
		"multiindex_ordered": &config.MultiIndexOrdered,
		"multiindex_sorted":  &config.MultiIndexSorted,
		"multiindex_unique":  &config.MultiIndexUnique,
	}
}
