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
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Series describes a named, one-dimensional sequence of values which all share
// a given dtype.  A series either stands alone, forms a column of a data
// frame, or forms one level of a frame's index.  Elements of a series may be
// null, as determined by an (optional) null mask.
type Series struct {
	name  string
	dtype DType
	// Backing array, whose concrete type is determined by the dtype (e.g.
	// []int64 for Int, []string for String and Category, etc).
	data any
	// Identifies null elements of this series, with set bits marking nulls.
	// A nil mask means no element is null.
	nulls *bitset.BitSet
}

// NewIntSeries constructs a series of integer values.
func NewIntSeries(name string, data []int64) *Series {
	return &Series{name, Int, data, nil}
}

// NewFloatSeries constructs a series of floating point values.
func NewFloatSeries(name string, data []float64) *Series {
	return &Series{name, Float, data, nil}
}

// NewBoolSeries constructs a series of boolean values.
func NewBoolSeries(name string, data []bool) *Series {
	return &Series{name, Bool, data, nil}
}

// NewStringSeries constructs a series of string values.
func NewStringSeries(name string, data []string) *Series {
	return &Series{name, String, data, nil}
}

// NewCategorySeries constructs a series of categorical values.
func NewCategorySeries(name string, data []string) *Series {
	return &Series{name, Category, data, nil}
}

// NewTimeSeries constructs a series of timestamp values.
func NewTimeSeries(name string, data []time.Time) *Series {
	return &Series{name, Timestamp, data, nil}
}

// Name returns the name of this series.
func (s *Series) Name() string {
	return s.name
}

// DType returns the element type of this series.
func (s *Series) DType() DType {
	return s.dtype
}

// Height returns the number of elements in this series (including nulls).
func (s *Series) Height() int {
	switch data := s.data.(type) {
	case []int64:
		return len(data)
	case []float64:
		return len(data)
	case []bool:
		return len(data)
	case []string:
		return len(data)
	case []time.Time:
		return len(data)
	default:
		return 0
	}
}

// Get returns the value at a given row of this series, or an error if the row
// is out-of-bounds.  Null elements are returned as nil.
func (s *Series) Get(row int) (any, error) {
	if row < 0 || row >= s.Height() {
		return nil, fmt.Errorf("series %q access out-of-bounds (row %d)", s.name, row)
	} else if s.IsNull(row) {
		return nil, nil
	}
	//
	switch data := s.data.(type) {
	case []int64:
		return data[row], nil
	case []float64:
		return data[row], nil
	case []bool:
		return data[row], nil
	case []string:
		return data[row], nil
	case []time.Time:
		return data[row], nil
	}
	//
	return nil, errors.New("malformed series")
}

// Ints returns the backing array of an integer series.
func (s *Series) Ints() ([]int64, error) {
	if data, ok := s.data.([]int64); ok {
		return data, nil
	}
	//
	return nil, fmt.Errorf("series %q has dtype %s, not int", s.name, s.dtype)
}

// Floats returns the backing array of a floating point series.
func (s *Series) Floats() ([]float64, error) {
	if data, ok := s.data.([]float64); ok {
		return data, nil
	}
	//
	return nil, fmt.Errorf("series %q has dtype %s, not float", s.name, s.dtype)
}

// Bools returns the backing array of a boolean series.
func (s *Series) Bools() ([]bool, error) {
	if data, ok := s.data.([]bool); ok {
		return data, nil
	}
	//
	return nil, fmt.Errorf("series %q has dtype %s, not bool", s.name, s.dtype)
}

// Strings returns the backing array of a string (or categorical) series.
func (s *Series) Strings() ([]string, error) {
	if data, ok := s.data.([]string); ok {
		return data, nil
	}
	//
	return nil, fmt.Errorf("series %q has dtype %s, not str", s.name, s.dtype)
}

// Times returns the backing array of a timestamp series.
func (s *Series) Times() ([]time.Time, error) {
	if data, ok := s.data.([]time.Time); ok {
		return data, nil
	}
	//
	return nil, fmt.Errorf("series %q has dtype %s, not timestamp", s.name, s.dtype)
}

// IsNull determines whether the element at a given row is null.
func (s *Series) IsNull(row int) bool {
	return s.nulls != nil && s.nulls.Test(uint(row))
}

// HasNulls determines whether any element of this series is null.
func (s *Series) HasNulls() bool {
	return s.nulls != nil && s.nulls.Any()
}

// Nulls returns the null mask of this series, which may be nil when no
// element is null.
func (s *Series) Nulls() *bitset.BitSet {
	return s.nulls
}

// WithNulls returns a copy of this series whose null mask is replaced by the
// given mask (set bits mark null elements).
func (s *Series) WithNulls(nulls *bitset.BitSet) *Series {
	return &Series{s.name, s.dtype, s.data, nulls}
}

// Rename returns a copy of this series under a new name, sharing the same
// backing array.
func (s *Series) Rename(name string) *Series {
	return &Series{name, s.dtype, s.data, s.nulls}
}

// Copy returns a deep copy of this series.
func (s *Series) Copy() *Series {
	var (
		data  any
		nulls *bitset.BitSet
	)
	//
	switch d := s.data.(type) {
	case []int64:
		data = slices.Clone(d)
	case []float64:
		data = slices.Clone(d)
	case []bool:
		data = slices.Clone(d)
	case []string:
		data = slices.Clone(d)
	case []time.Time:
		data = slices.Clone(d)
	}
	//
	if s.nulls != nil {
		nulls = s.nulls.Clone()
	}
	//
	return &Series{s.name, s.dtype, data, nulls}
}

// Equal determines whether two series have the same name, dtype, height,
// nulls and values.
func (s *Series) Equal(o *Series) bool {
	if o == nil || s.name != o.name || s.dtype != o.dtype || s.Height() != o.Height() {
		return false
	}
	//
	for i := 0; i < s.Height(); i++ {
		if s.IsNull(i) != o.IsNull(i) {
			return false
		} else if s.IsNull(i) {
			continue
		}
		//
		lhs, _ := s.Get(i)
		rhs, _ := o.Get(i)
		//
		if lhs != rhs {
			return false
		}
	}
	//
	return true
}

// CompareAt compares the element at row i of this series against the element
// at row j of another series of the same dtype, returning a negative value,
// zero or a positive value in the usual manner.  Null elements order before
// all non-null elements.
func (s *Series) CompareAt(i int, o *Series, j int) int {
	lnull, rnull := s.IsNull(i), o.IsNull(j)
	//
	switch {
	case lnull && rnull:
		return 0
	case lnull:
		return -1
	case rnull:
		return 1
	}
	//
	lhs, _ := s.Get(i)
	rhs, _ := o.Get(j)
	//
	return compareValues(lhs, rhs)
}

// compareValues compares two non-null series elements of the same dtype.
func compareValues(lhs, rhs any) int {
	switch l := lhs.(type) {
	case int64:
		return cmpOrdered(l, rhs.(int64))
	case float64:
		return cmpOrdered(l, rhs.(float64))
	case string:
		return cmpOrdered(l, rhs.(string))
	case bool:
		return cmpBool(l, rhs.(bool))
	case time.Time:
		return l.Compare(rhs.(time.Time))
	}
	//
	panic(fmt.Sprintf("incomparable series element %v", lhs))
}

func cmpOrdered[T int64 | float64 | string](lhs, rhs T) int {
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

func cmpBool(lhs, rhs bool) int {
	switch {
	case lhs == rhs:
		return 0
	case rhs:
		return -1
	default:
		return 1
	}
}
