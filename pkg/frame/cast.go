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
package frame

import (
	"fmt"
	"strconv"
	"time"
)

// Timestamp layouts accepted when casting strings, tried in order.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Cast converts this series to a given dtype, returning a new series backed
// by freshly converted values.  Null elements remain null.  An element which
// cannot be represented in the target dtype (e.g. a non-numeric string cast
// to int) yields an error identifying the offending row and value.
func (s *Series) Cast(to DType) (*Series, error) {
	if s.dtype == to {
		return s, nil
	}
	// String and category share a backing representation, so casting between
	// them never inspects values.
	if isStringBacked(s.dtype) && isStringBacked(to) {
		return &Series{s.name, to, s.data, s.nulls}, nil
	}
	//
	height := s.Height()
	result := &Series{name: s.name, dtype: to, nulls: s.nulls}
	//
	switch to {
	case Int:
		data := make([]int64, height)
		if err := castInto(s, to, data, castInt); err != nil {
			return nil, err
		}

		result.data = data
	case Float:
		data := make([]float64, height)
		if err := castInto(s, to, data, castFloat); err != nil {
			return nil, err
		}

		result.data = data
	case Bool:
		data := make([]bool, height)
		if err := castInto(s, to, data, castBool); err != nil {
			return nil, err
		}

		result.data = data
	case String, Category:
		data := make([]string, height)
		if err := castInto(s, to, data, castString); err != nil {
			return nil, err
		}

		result.data = data
	case Timestamp:
		data := make([]time.Time, height)
		if err := castInto(s, to, data, castTime); err != nil {
			return nil, err
		}

		result.data = data
	default:
		return nil, fmt.Errorf("cannot cast series %q to %s", s.name, to)
	}
	//
	return result, nil
}

// castInto converts every non-null element of a series into the given
// backing array, reporting the first element which does not convert.
func castInto[T any](s *Series, to DType, data []T, conv func(any) (T, bool)) error {
	for i := 0; i < s.Height(); i++ {
		if s.IsNull(i) {
			continue
		}
		//
		val, _ := s.Get(i)
		//
		converted, ok := conv(val)
		if !ok {
			return fmt.Errorf("cannot cast series %q to %s: value %v (row %d)", s.name, to, val, i)
		}
		//
		data[i] = converted
	}
	//
	return nil
}

func castInt(val any) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case bool:
		if v {
			return 1, true
		}

		return 0, true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	case time.Time:
		return v.Unix(), true
	}
	//
	return 0, false
}

func castFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}

		return 0, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	//
	return 0, false
}

func castBool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
	//
	return false, false
}

func castString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case time.Time:
		return v.Format(time.RFC3339), true
	}
	//
	return "", false
}

func castTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case int64:
		return time.Unix(v, 0).UTC(), true
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	//
	return time.Time{}, false
}

func isStringBacked(t DType) bool {
	return t == String || t == Category
}
