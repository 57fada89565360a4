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
	"slices"

	"github.com/veridata/framecheck/pkg/frame"
)

// applyColumnPolicy enforces the schema-level column policies over a frame
// whose columns have already been resolved.  Filtering always dominates
// strictness; ordering applies to the post-filter column set.  The returned
// flag indicates whether the result is a fresh copy of the input frame.
func (ctx *valContext) applyColumnPolicy(df *frame.DataFrame) (*frame.DataFrame, bool, error) {
	var (
		matched = ctx.smap.matchedNames(Column)
		copied  = false
	)
	//
	if ctx.cfg.Filter {
		// Keep only matched columns, in the frame's existing relative order.
		var kept []string
		//
		for _, name := range df.ColumnNames() {
			if slices.Contains(matched, name) {
				kept = append(kept, name)
			}
		}
		//
		filtered, err := df.Select(kept)
		if err != nil {
			return nil, false, err
		}
		//
		df, copied = filtered, true
	} else if ctx.cfg.Strict {
		for _, name := range df.ColumnNames() {
			if !slices.Contains(matched, name) {
				return nil, false, &SchemaValidationError{
					fmt.Sprintf("column %q is not declared by schema %q", name, ctx.schema.name)}
			}
		}
	}
	//
	if ctx.cfg.Ordered && !slices.Equal(matched, df.ColumnNames()) {
		return nil, false, &SchemaValidationError{
			fmt.Sprintf("frame columns %v are not in schema order %v", df.ColumnNames(), matched)}
	}
	//
	return df, copied, nil
}

// applyIndexPolicy enforces the schema-level index policies over a frame
// whose index levels have already been resolved.  A frame whose index was
// filtered shares its columns with the input; it only becomes a private copy
// once the column policy (or a coercion write-back) copies it.
func (ctx *valContext) applyIndexPolicy(df *frame.DataFrame) (*frame.DataFrame, error) {
	var (
		matched = ctx.smap.matchedNames(Index)
		index   = df.Index()
	)
	//
	if ctx.cfg.Filter {
		var unmatched []string
		//
		for _, name := range index.Names() {
			if !slices.Contains(matched, name) {
				unmatched = append(unmatched, name)
			}
		}
		// Dropping every level collapses to the default index.
		if len(unmatched) > 0 {
			filtered, err := df.WithIndex(index.Drop(unmatched))
			if err != nil {
				return nil, err
			}
			//
			df, index = filtered, filtered.Index()
		}
	}
	// A schema with no index fields accepts only frames carrying the default
	// index.
	if len(ctx.smap.kindEntries(Index)) == 0 && !index.IsDefault() {
		return nil, &SchemaValidationError{
			fmt.Sprintf("frame defines index levels %v but schema %q declares none", index.Names(), ctx.schema.name)}
	}
	//
	if ctx.cfg.MultiIndexStrict {
		for _, name := range index.Names() {
			if !slices.Contains(matched, name) {
				return nil, &SchemaValidationError{
					fmt.Sprintf("index level %q is not declared by schema %q", name, ctx.schema.name)}
			}
		}
	}
	//
	if ctx.cfg.MultiIndexOrdered && !slices.Equal(matched, index.Names()) {
		return nil, &SchemaValidationError{
			fmt.Sprintf("frame index levels %v are not in schema order %v", index.Names(), matched)}
	}
	//
	if ctx.cfg.MultiIndexSorted && !index.IsMonotonic() {
		return nil, &SchemaValidationError{"frame index is not sorted"}
	}
	//
	if ctx.cfg.MultiIndexUnique && !index.IsUnique() {
		return nil, &SchemaValidationError{"frame index is not unique"}
	}
	//
	return df, nil
}
