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

	log "github.com/sirupsen/logrus"

	"github.com/veridata/framecheck/pkg/frame"
	"github.com/veridata/framecheck/pkg/schema/check"
)

// valContext carries the state of a single validation call: the effective
// configuration and the schema map being resolved.  Threading this
// explicitly keeps Schema itself stateless, so concurrent validation calls
// against one schema cannot interfere.
type valContext struct {
	schema *Schema
	cfg    Config
	smap   *schemaMap
	// Whether the frame being validated is already a private copy.
	copied bool
}

// Validate checks a frame against this schema, returning a validated
// (possibly coerced, filtered and/or reordered) copy.  The input frame is
// never mutated; when neither coercion nor filtering applies, the input is
// returned as-is.  Validation is one-shot: the first failing stage aborts
// with its specific error.
func (s *Schema) Validate(df *frame.DataFrame) (*frame.DataFrame, error) {
	cfg, err := resolveConfig(s.override)
	if err != nil {
		return nil, err
	}
	//
	ctx := &valContext{schema: s, cfg: cfg, smap: s.newSchemaMap()}
	//
	log.Debugf("validating frame (%d x %d) against schema %q", df.Height(), df.Width(), s.name)
	// Resolve index levels, then columns, against the frame's actual names.
	if err := ctx.smap.resolve(df.Index().Names(), Index); err != nil {
		return nil, err
	}
	//
	if err := ctx.smap.resolve(df.ColumnNames(), Column); err != nil {
		return nil, err
	}
	// Apply frame-level policies (filtering first, since later stages see
	// the filtered frame).
	df, err = ctx.applyIndexPolicy(df)
	if err != nil {
		return nil, err
	}
	//
	df, copied, err := ctx.applyColumnPolicy(df)
	if err != nil {
		return nil, err
	}
	//
	ctx.copied = copied
	// Check every matched column and index level.
	df, err = ctx.validateFields(df)
	if err != nil {
		return nil, err
	}
	// Finally, run user-supplied checks.
	if err := ctx.runCustomChecks(df); err != nil {
		return nil, err
	}
	//
	return df, nil
}

// validateFields type-checks and value-checks every matched column and index
// level, writing coerced values back into a private copy of the frame.
func (ctx *valContext) validateFields(df *frame.DataFrame) (*frame.DataFrame, error) {
	for _, entry := range ctx.smap.entries {
		coerce := entry.field.Coerce || ctx.cfg.Coerce
		//
		for _, name := range entry.matched {
			series, err := ctx.fetch(df, entry.field.Kind, name)
			if err != nil {
				return nil, err
			}
			//
			validated, err := validateSeries(series, entry.field, coerce)
			if err != nil {
				return nil, err
			}
			// Write back when coercion produced new values.
			if validated != series {
				df = ctx.ensureCopy(df)
				//
				if err := ctx.writeBack(df, entry.field.Kind, validated); err != nil {
					return nil, err
				}
			}
		}
	}
	//
	return df, nil
}

func (ctx *valContext) fetch(df *frame.DataFrame, kind Kind, name string) (*frame.Series, error) {
	if kind == Index {
		return df.Index().Level(name)
	}
	//
	return df.Column(name)
}

func (ctx *valContext) writeBack(df *frame.DataFrame, kind Kind, series *frame.Series) error {
	if kind == Index {
		return df.Index().SetLevel(series)
	}
	//
	return df.SetColumn(series)
}

// ensureCopy guarantees the frame under validation is a private copy before
// any mutation, preserving the caller's original.
func (ctx *valContext) ensureCopy(df *frame.DataFrame) *frame.DataFrame {
	if !ctx.copied {
		df = df.Copy()
		ctx.copied = true
	}
	//
	return df
}

// validateSeries checks a single series against a field declaration: first
// its dtype (coercing if permitted), then every attached value check, in
// order, stopping at the first failure.
func validateSeries(series *frame.Series, field Field, coerce bool) (*frame.Series, error) {
	if dtypeRepr(series.DType()) != dtypeRepr(field.Type) {
		if !coerce {
			return nil, &SchemaValidationError{typeMismatch(series, field)}
		}
		//
		coerced, err := series.Cast(field.Type)
		if err != nil {
			return nil, &CoercionError{series.Name(), field.Type, err}
		}
		//
		log.Debugf("coerced %q from %s to %s", series.Name(), series.DType(), field.Type)
		//
		series = coerced
	}
	//
	for _, c := range field.Checks {
		mask, err := check.Evaluate(c, series)
		if err != nil {
			return nil, &SchemaDefinitionError{err.Error()}
		}
		//
		if int(mask.Count()) != series.Height() {
			return nil, &check.CheckError{Check: c, Series: series, Mask: mask, IsIndex: field.Kind == Index}
		}
	}
	//
	return series, nil
}

func typeMismatch(series *frame.Series, field Field) string {
	noun := "column"
	if field.Kind == Index {
		noun = "index level"
	}
	//
	return fmt.Sprintf("expected %s %q to have dtype %s but found %s",
		noun, series.Name(), field.Type, series.DType())
}
