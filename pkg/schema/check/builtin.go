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
package check

import (
	"fmt"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/veridata/framecheck/pkg/frame"
)

// boundCheck builds a check comparing every element against a bound, where
// accept decides over the three-way comparison result.  Null elements fail.
func boundCheck(accept func(int) bool) Func {
	return func(series *frame.Series, param any) (*bitset.BitSet, error) {
		return elementCheck(series, func(val any) (bool, error) {
			if val == nil {
				return false, nil
			}
			//
			c, err := compareElement(val, param)
			if err != nil {
				return false, err
			}
			//
			return accept(c), nil
		})
	}
}

// isinCheck builds the membership checks.  Null elements fail "isin" but pass
// "notin", matching the usual semantics of null membership tests.
func isinCheck(negate bool) Func {
	return func(series *frame.Series, param any) (*bitset.BitSet, error) {
		values, ok := param.([]any)
		if !ok {
			return nil, fmt.Errorf("membership check requires a list parameter, got %v", param)
		}
		//
		return elementCheck(series, func(val any) (bool, error) {
			if val == nil {
				return negate, nil
			}
			//
			for _, candidate := range values {
				if looseEqual(val, candidate) {
					return !negate, nil
				}
			}
			//
			return negate, nil
		})
	}
}

// stringCheck builds a check over string-valued elements.  Null elements
// fail; non-string series are rejected outright.
func stringCheck(test func(string, string) bool) Func {
	return func(series *frame.Series, param any) (*bitset.BitSet, error) {
		arg, ok := param.(string)
		if !ok {
			return nil, fmt.Errorf("string check requires a string parameter, got %v", param)
		}
		//
		if _, err := series.Strings(); err != nil {
			return nil, err
		}
		//
		return elementCheck(series, func(val any) (bool, error) {
			if val == nil {
				return false, nil
			}
			//
			return test(val.(string), arg), nil
		})
	}
}

func containsFn(val, substr string) bool   { return strings.Contains(val, substr) }
func startsWithFn(val, prefix string) bool { return strings.HasPrefix(val, prefix) }
func endsWithFn(val, suffix string) bool   { return strings.HasSuffix(val, suffix) }

// notNullCheck passes exactly the non-null elements.
func notNullCheck(series *frame.Series, _ any) (*bitset.BitSet, error) {
	height := uint(series.Height())
	mask := bitset.New(height)
	//
	mask.FlipRange(0, height)
	//
	if nulls := series.Nulls(); nulls != nil {
		mask.InPlaceDifference(nulls)
	}
	//
	return mask, nil
}

// uniqueCheck passes the first occurrence of every value, failing all
// repeats.
func uniqueCheck(series *frame.Series, _ any) (*bitset.BitSet, error) {
	var (
		height = series.Height()
		mask   = bitset.New(uint(height))
		seen   = make(map[string]bool, height)
	)
	//
	for i := 0; i < height; i++ {
		val, err := series.Get(i)
		if err != nil {
			return nil, err
		}
		//
		key := fmt.Sprintf("%v", val)
		if !seen[key] {
			mask.Set(uint(i))
			seen[key] = true
		}
	}
	//
	return mask, nil
}

// elementCheck evaluates a per-element predicate over the whole series,
// collecting the pass mask.
func elementCheck(series *frame.Series, test func(any) (bool, error)) (*bitset.BitSet, error) {
	mask := bitset.New(uint(series.Height()))
	//
	for i := 0; i < series.Height(); i++ {
		val, err := series.Get(i)
		if err != nil {
			return nil, err
		}
		//
		pass, err := test(val)
		if err != nil {
			return nil, err
		}
		//
		if pass {
			mask.Set(uint(i))
		}
	}
	//
	return mask, nil
}

// compareElement compares a non-null series element against a check
// parameter, returning the usual three-way result.  Numeric elements compare
// numerically, strings lexicographically and timestamps chronologically.
func compareElement(val, param any) (int, error) {
	switch v := val.(type) {
	case int64:
		return compareNumeric(float64(v), param)
	case float64:
		return compareNumeric(v, param)
	case string:
		p, ok := param.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare string element against %v", param)
		}
		//
		return strings.Compare(v, p), nil
	case time.Time:
		p, err := paramTime(param)
		if err != nil {
			return 0, err
		}
		//
		return v.Compare(p), nil
	default:
		return 0, fmt.Errorf("cannot compare element %v", val)
	}
}

func compareNumeric(val float64, param any) (int, error) {
	bound, ok := paramFloat(param)
	if !ok {
		return 0, fmt.Errorf("cannot compare numeric element against %v", param)
	}
	//
	switch {
	case val < bound:
		return -1, nil
	case val > bound:
		return 1, nil
	default:
		return 0, nil
	}
}

// paramFloat widens any numeric check parameter to a float.
func paramFloat(param any) (float64, bool) {
	switch p := param.(type) {
	case int:
		return float64(p), true
	case int64:
		return float64(p), true
	case float64:
		return p, true
	case uint:
		return float64(p), true
	}
	//
	return 0, false
}

// paramTime accepts a timestamp parameter either directly or as an RFC3339
// string.
func paramTime(param any) (time.Time, error) {
	switch p := param.(type) {
	case time.Time:
		return p, nil
	case string:
		return time.Parse(time.RFC3339, p)
	}
	//
	return time.Time{}, fmt.Errorf("cannot compare timestamp element against %v", param)
}

// looseEqual compares an element against a membership candidate, widening
// numeric values so that (say) an int64 element matches an untyped int
// candidate.
func looseEqual(val, candidate any) bool {
	if lhs, ok := paramFloat(val); ok {
		rhs, ok := paramFloat(candidate)
		return ok && lhs == rhs
	}
	//
	return val == candidate
}
