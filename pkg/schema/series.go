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
)

// SeriesSchema validates a standalone series against a single field
// declaration.  There are no columns or index levels to resolve, hence no
// name-resolution or frame-policy stages; the error taxonomy is otherwise
// identical to frame validation.
type SeriesSchema struct {
	field    Field
	override ConfigOverride
}

// NewSeries constructs a schema for a standalone series.
func NewSeries(field Field, opts ...SeriesOption) (*SeriesSchema, error) {
	schema := &SeriesSchema{field: field}
	//
	for _, opt := range opts {
		opt(schema)
	}
	//
	if !supportedType(field.Type) {
		return nil, &UnsupportedTypeError{field.Name, field.Type}
	}
	//
	if _, err := resolveConfig(schema.override); err != nil {
		return nil, err
	}
	//
	return schema, nil
}

// SeriesOption configures a series schema at construction time.
type SeriesOption func(*SeriesSchema)

// WithSeriesConfig attaches a configuration override to a series schema
// (only the coerce toggle is meaningful here).
func WithSeriesConfig(override ConfigOverride) SeriesOption {
	return func(s *SeriesSchema) { s.override = override }
}

// Validate checks a series against this schema, returning the (possibly
// coerced) series.  The input series is never mutated.
func (s *SeriesSchema) Validate(series *frame.Series) (*frame.Series, error) {
	cfg, err := resolveConfig(s.override)
	if err != nil {
		return nil, err
	}
	//
	return validateSeries(series, s.field, s.field.Coerce || cfg.Coerce)
}
