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
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/veridata/framecheck/pkg/schema"
	"github.com/veridata/framecheck/pkg/schema/check"
)

// fallbackWidth applies when stdout is not a terminal.
const fallbackWidth = 80

// reportFileWidth applies to reports written to a file, where no terminal
// constrains the line length.
const reportFileWidth = 256

// reportFailure renders a validation failure to stdout, classifying it and
// clipping long lines to the terminal width.
func reportFailure(sch *schema.Schema, err error) {
	fmt.Print(failureReport(sch, err, terminalWidth()))
}

// failureReport renders a validation failure as a multi-line report.
func failureReport(sch *schema.Schema, err error, width int) string {
	var (
		builder  strings.Builder
		checkErr *check.CheckError
	)
	//
	fmt.Fprintf(&builder, "frame does not match schema %q:\n", sch.Name())
	//
	if errors.As(err, &checkErr) {
		// Value-check failures carry per-row diagnostics; each line is
		// clipped rather than wrapped, since sample values can be arbitrarily
		// long.
		for _, line := range strings.Split(checkErr.Message(), "\n") {
			fmt.Fprintln(&builder, clip(line, width))
		}
	} else {
		fmt.Fprintf(&builder, "%s [%s]\n", err, classify(err))
	}
	//
	return builder.String()
}

// classify names the taxonomy class of a validation error, so failures are
// attributable at a glance.
func classify(err error) string {
	var (
		definition  *schema.SchemaDefinitionError
		unsupported *schema.UnsupportedTypeError
		columns     *schema.MissingColumnsError
		index       *schema.MissingIndexError
		coercion    *schema.CoercionError
		custom      *schema.CustomCheckError
	)
	//
	switch {
	case errors.As(err, &definition), errors.As(err, &unsupported):
		return "schema definition"
	case errors.As(err, &columns), errors.As(err, &index):
		return "missing names"
	case errors.As(err, &coercion):
		return "coercion"
	case errors.As(err, &custom):
		return "custom check"
	default:
		return "validation"
	}
}

// terminalWidth determines the width to render reports at.
func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	//
	return fallbackWidth
}

// clip truncates a line to a given width, counting runes rather than bytes
// so truncation never splits a multi-byte character.
func clip(line string, width int) string {
	runes := []rune(line)
	//
	if len(runes) <= width {
		return line
	}
	//
	if width <= 3 {
		return string(runes[:max(width, 0)])
	}
	//
	return string(runes[:width-3]) + "..."
}
