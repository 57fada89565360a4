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

// Package loader reads schema declarations from YAML documents.  A schema
// file names its fields in order, each with a dtype, optional name-matching
// settings and a mapping of value checks; a document-level defaults block
// supplies configuration settings which the schema's own config block may
// override.  Custom (predicate) checks cannot be expressed in a file; they
// are attached via the schema API.
package loader

import (
	"bytes"
	"fmt"
	"sort"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/veridata/framecheck/pkg/frame"
	"github.com/veridata/framecheck/pkg/schema"
	"github.com/veridata/framecheck/pkg/schema/check"
	"github.com/veridata/framecheck/pkg/util"
)

// schemaFile is the on-disk shape of a schema document.
type schemaFile struct {
	Name     string         `yaml:"name"`
	Defaults map[string]any `yaml:"defaults,omitempty"`
	Config   map[string]any `yaml:"config,omitempty"`
	Fields   []fieldFile    `yaml:"fields"`
}

// fieldFile is the on-disk shape of one field declaration.
type fieldFile struct {
	Name           string            `yaml:"name"`
	Type           string            `yaml:"type"`
	Index          bool              `yaml:"index,omitempty"`
	Optional       bool              `yaml:"optional,omitempty"`
	Coerce         bool              `yaml:"coerce,omitempty"`
	Alias          string            `yaml:"alias,omitempty"`
	Regex          bool              `yaml:"regex,omitempty"`
	CheckIndexName util.Option[bool] `yaml:"check_index_name,omitempty"`
	Checks         map[string]any    `yaml:"checks,omitempty"`
}

// FromBytes parses a schema expressed as a YAML document.  Unknown keys are
// rejected rather than silently ignored.
func FromBytes(data []byte) (*schema.Schema, error) {
	var file schemaFile
	//
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("malformed schema file: %w", err)
	}
	//
	fields := make([]schema.Field, len(file.Fields))
	//
	for i, ff := range file.Fields {
		field, err := buildField(ff)
		if err != nil {
			return nil, err
		}
		//
		fields[i] = field
	}
	//
	override, err := buildConfig(file.Defaults, file.Config)
	if err != nil {
		return nil, err
	}
	//
	return schema.New(file.Name, fields, schema.WithConfig(override))
}

func buildField(ff fieldFile) (schema.Field, error) {
	dtype, err := frame.ParseDType(ff.Type)
	if err != nil {
		return schema.Field{}, fmt.Errorf("field %q: %w", ff.Name, err)
	}
	//
	var opts []schema.FieldOption
	//
	if ff.Optional {
		opts = append(opts, schema.Optional())
	}
	//
	if ff.Coerce {
		opts = append(opts, schema.Coerce())
	}
	//
	switch {
	case ff.Regex:
		opts = append(opts, schema.Regex(ff.Alias))
	case ff.Alias != "":
		opts = append(opts, schema.Alias(ff.Alias))
	}
	//
	if !ff.CheckIndexName.UnwrapOr(true) {
		opts = append(opts, schema.NoIndexNameCheck())
	}
	//
	if checks, err := buildChecks(ff.Checks); err != nil {
		return schema.Field{}, fmt.Errorf("field %q: %w", ff.Name, err)
	} else if len(checks) > 0 {
		opts = append(opts, schema.Checks(checks...))
	}
	//
	if ff.Index {
		return schema.NewIndex(ff.Name, dtype, opts...), nil
	}
	//
	return schema.NewColumn(ff.Name, dtype, opts...), nil
}

// buildChecks converts a checks mapping into check values, in name order
// (YAML mappings do not preserve declaration order through a map).
func buildChecks(raw map[string]any) ([]check.Check, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	var checks []check.Check
	//
	for _, name := range names {
		// The declarative surface spells the null constraint "nullable":
		// false forbids nulls, while true (or no value) permits them and
		// hence imposes nothing.
		if name == "nullable" {
			if permitted, ok := raw[name].(bool); ok && !permitted {
				checks = append(checks, check.NotNull())
			}
			//
			continue
		}
		//
		if _, ok := check.Lookup(name); !ok {
			return nil, fmt.Errorf("unknown check %q", name)
		}
		//
		checks = append(checks, check.New(name, raw[name]))
	}
	//
	return checks, nil
}

// buildConfig folds the schema's config block over the document defaults.
func buildConfig(defaults, config map[string]any) (schema.ConfigOverride, error) {
	merged := schema.ConfigOverride{}
	//
	if err := mergo.Merge(&merged, schema.ConfigOverride(defaults)); err != nil {
		return nil, err
	}
	//
	if err := mergo.Merge(&merged, schema.ConfigOverride(config), mergo.WithOverride); err != nil {
		return nil, err
	}
	//
	return merged, nil
}
