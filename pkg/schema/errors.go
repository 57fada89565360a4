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
	"strings"

	"github.com/veridata/framecheck/pkg/frame"
)

// SchemaDefinitionError indicates the schema itself is malformed (ambiguous
// matches, regex without alias, a check applied to an incompatible type, and
// so on).  It always signals a programming error in the schema author's code,
// never a problem with the data.
type SchemaDefinitionError struct {
	Message string
}

func (e *SchemaDefinitionError) Error() string {
	return e.Message
}

// UnsupportedTypeError indicates a schema field declares a type outside the
// supported set.
type UnsupportedTypeError struct {
	// Attribute whose declared type is unsupported.
	Attr string
	// The offending type.
	Type frame.DType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("field %q has unsupported type %s", e.Attr, e.Type)
}

// MissingColumnsError indicates one or more required columns are absent from
// the frame.
type MissingColumnsError struct {
	Message string
}

func (e *MissingColumnsError) Error() string {
	return typoHint(e.Message, "columns")
}

// MissingIndexError indicates one or more required index levels are absent
// from the frame.
type MissingIndexError struct {
	Message string
}

func (e *MissingIndexError) Error() string {
	return typoHint(e.Message, "index levels")
}

// SchemaValidationError indicates the frame's data or shape does not conform
// to the schema (dtype mismatch without coercion, policy violations, etc).
type SchemaValidationError struct {
	Message string
}

func (e *SchemaValidationError) Error() string {
	return e.Message
}

// CoercionError indicates a column or index level could not be cast to its
// declared type, i.e. the data cannot be made schema-conformant at all.
type CoercionError struct {
	// Name of the offending column or index level.
	Name string
	// Declared target type.
	Type frame.DType
	// Underlying cast failure.
	Err error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %q to %s: %v", e.Name, e.Type, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// CustomCheckError indicates a user-supplied check failed or was
// misconfigured.
type CustomCheckError struct {
	// Name of the failing check.
	Check string
	// Column the check was bound to, or empty for a whole-frame check.
	Column string
	// Optional detail when the check was misconfigured rather than failed.
	Detail string
}

func (e *CustomCheckError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("custom check %q: %s", e.Check, e.Detail)
	case e.Column != "":
		return fmt.Sprintf("column %q did not pass custom check %q", e.Column, e.Check)
	default:
		return fmt.Sprintf("frame did not pass custom check %q", e.Check)
	}
}

// typoHint appends the standard suggestion to a missing-name message.
func typoHint(message, kind string) string {
	message = strings.TrimRight(message, ". ")
	return fmt.Sprintf("%s. Is there a typo in the schema definition? If not, the frame is missing %s.", message, kind)
}
