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

// Package check provides the registry of value checks which schema fields can
// attach to a column or index level.  A check evaluates the whole series at
// once and reports, per element, whether that element passes.
package check

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/veridata/framecheck/pkg/frame"
)

// Func evaluates a check over every element of a series, returning a mask
// aligned to the series in which set bits mark passing elements.  Returning
// an error indicates the check itself cannot apply to the series (e.g. a
// string check over an int column), as opposed to elements failing it.
type Func func(series *frame.Series, param any) (*bitset.BitSet, error)

// Check pairs the symbolic name of a registered check with its parameter, as
// declared on a schema field.
type Check struct {
	// Symbolic name under which the check function is registered.
	Name string
	// Check parameter (e.g. the bound of a "ge" check).
	Param any
}

func (c Check) String() string {
	return fmt.Sprintf("%s(%v)", c.Name, c.Param)
}

// Ge constructs a check that every element is greater than or equal to a
// given bound.  Bounds are numeric for numeric series and lexicographic for
// string series.
func Ge(bound any) Check { return Check{"ge", bound} }

// Gt constructs a check that every element is strictly greater than a given
// bound.
func Gt(bound any) Check { return Check{"gt", bound} }

// Le constructs a check that every element is less than or equal to a given
// bound.
func Le(bound any) Check { return Check{"le", bound} }

// Lt constructs a check that every element is strictly less than a given
// bound.
func Lt(bound any) Check { return Check{"lt", bound} }

// IsIn constructs a check that every element is a member of a given set of
// values.
func IsIn(values ...any) Check { return Check{"isin", values} }

// NotIn constructs a check that no element is a member of a given set of
// values.
func NotIn(values ...any) Check { return Check{"notin", values} }

// StrContains constructs a check that every element contains a given
// substring.
func StrContains(substr string) Check { return Check{"str_contains", substr} }

// StrStartsWith constructs a check that every element starts with a given
// prefix.
func StrStartsWith(prefix string) Check { return Check{"str_startswith", prefix} }

// StrEndsWith constructs a check that every element ends with a given
// suffix.
func StrEndsWith(suffix string) Check { return Check{"str_endswith", suffix} }

// NotNull constructs a check that no element is null.
func NotNull() Check { return Check{"not_null", true} }

// Unique constructs a check that no value occurs more than once.
func Unique() Check { return Check{"unique", true} }

// New constructs a check from its symbolic name and parameter, e.g. as read
// from a schema file.  The name is not required to be registered until the
// check is evaluated.
func New(name string, param any) Check {
	return Check{name, param}
}

// registry maps symbolic check names to their evaluation functions.
var registry = map[string]Func{
	"ge":             boundCheck(func(c int) bool { return c >= 0 }),
	"gt":             boundCheck(func(c int) bool { return c > 0 }),
	"le":             boundCheck(func(c int) bool { return c <= 0 }),
	"lt":             boundCheck(func(c int) bool { return c < 0 }),
	"isin":           isinCheck(false),
	"notin":          isinCheck(true),
	"str_contains":   stringCheck(containsFn),
	"str_startswith": stringCheck(startsWithFn),
	"str_endswith":   stringCheck(endsWithFn),
	"not_null":       notNullCheck,
	"unique":         uniqueCheck,
}

// Register adds a check function under a given symbolic name, replacing any
// existing registration.
func Register(name string, fn Func) {
	registry[name] = fn
}

// Lookup returns the check function registered under a given name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Evaluate runs a check over a series, returning its pass mask.  A check
// declared without a parameter imposes no constraint, so every element
// passes.
func Evaluate(c Check, series *frame.Series) (*bitset.BitSet, error) {
	fn, ok := Lookup(c.Name)
	if !ok {
		return nil, fmt.Errorf("unknown check %q", c.Name)
	}
	//
	if c.Param == nil {
		height := uint(series.Height())
		mask := bitset.New(height)
		mask.FlipRange(0, height)
		//
		return mask, nil
	}
	//
	return fn(series, c.Param)
}
