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

	"github.com/veridata/framecheck/pkg/frame"
)

// runCustomChecks dispatches every user-supplied check attached to the
// schema, in declaration order.  Whole-frame checks receive the full frame;
// column-bound checks run once per resolved column.
func (ctx *valContext) runCustomChecks(df *frame.DataFrame) error {
	for _, cc := range ctx.schema.checks {
		if cc.frameFn != nil {
			if !cc.frameFn(df) {
				return &CustomCheckError{Check: cc.name}
			}
			//
			continue
		}
		//
		if err := ctx.runColumnCheck(df, cc); err != nil {
			return err
		}
	}
	//
	return nil
}

// runColumnCheck resolves the column spec of a bound check and applies its
// predicate to every resolved column.  Literal specs name declared schema
// attributes; regex specs expand against the frame's live column names, and
// matching nothing is an error (unlike optional-field matching).
func (ctx *valContext) runColumnCheck(df *frame.DataFrame, cc customCheck) error {
	for _, spec := range cc.columns {
		var names []string
		//
		if cc.regex {
			regex, err := regexp.Compile(spec)
			if err != nil {
				return &CustomCheckError{Check: cc.name, Detail: fmt.Sprintf("invalid pattern %q: %v", spec, err)}
			}
			//
			for _, name := range df.ColumnNames() {
				if regex.MatchString(name) {
					names = append(names, name)
				}
			}
			//
			if len(names) == 0 {
				return &CustomCheckError{Check: cc.name, Detail: fmt.Sprintf("no columns match pattern %q", spec)}
			}
		} else {
			// Literal specs resolve against declared attribute names, not
			// the live frame.
			entry, ok := ctx.smap.find(spec)
			if !ok || entry.field.Kind != Column {
				return &SchemaDefinitionError{
					fmt.Sprintf("custom check %q references undeclared column %q", cc.name, spec)}
			}
			//
			names = entry.matched
		}
		//
		for _, name := range names {
			column, err := df.Column(name)
			if err != nil {
				return &CustomCheckError{Check: cc.name, Detail: err.Error()}
			}
			//
			if !cc.columnFn(column) {
				return &CustomCheckError{Check: cc.name, Column: name}
			}
		}
	}
	//
	return nil
}
