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
	"testing"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veridata/framecheck/pkg/frame"
)

// evaluate runs a check and returns the rows which failed it.
func evaluate(t *testing.T, c Check, series *frame.Series) []int {
	t.Helper()
	//
	mask, err := Evaluate(c, series)
	require.NoError(t, err)
	//
	failure := CheckError{c, series, mask, false}
	//
	return failure.FailedRows(-1)
}

func TestBoundChecks(t *testing.T) {
	ints := frame.NewIntSeries("a", []int64{-1, 0, 1, 2})
	//
	tests := []struct {
		check  Check
		failed []int
	}{
		{Ge(0), []int{0}},
		{Gt(0), []int{0, 1}},
		{Le(0), []int{2, 3}},
		{Lt(0), []int{1, 2, 3}},
		{Ge(5), []int{0, 1, 2, 3}},
		{Lt(5), nil},
	}
	//
	for _, tt := range tests {
		t.Run(tt.check.String(), func(t *testing.T) {
			assert.Equal(t, tt.failed, evaluate(t, tt.check, ints))
		})
	}
}

func TestBoundChecksString(t *testing.T) {
	strs := frame.NewStringSeries("s", []string{"apple", "banana", "cherry"})
	//
	assert.Equal(t, []int{0}, evaluate(t, Ge("b"), strs))
	assert.Equal(t, []int{2}, evaluate(t, Lt("cherry"), strs))
}

func TestBoundChecksTimestamp(t *testing.T) {
	times := frame.NewTimeSeries("ts", []time.Time{
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	//
	assert.Equal(t, []int{0}, evaluate(t, Ge("2024-01-01T00:00:00Z"), times))
}

func TestBoundChecksNullsFail(t *testing.T) {
	nulls := bitset.New(3)
	nulls.Set(1)
	//
	series := frame.NewIntSeries("a", []int64{1, 0, 3}).WithNulls(nulls)
	//
	assert.Equal(t, []int{1}, evaluate(t, Ge(0), series))
}

func TestMembershipChecks(t *testing.T) {
	nulls := bitset.New(4)
	nulls.Set(3)
	//
	series := frame.NewStringSeries("s", []string{"a", "b", "c", ""}).WithNulls(nulls)
	// Null elements fail isin but pass notin.
	assert.Equal(t, []int{2, 3}, evaluate(t, IsIn("a", "b"), series))
	assert.Equal(t, []int{0, 1}, evaluate(t, NotIn("a", "b"), series))
}

func TestMembershipWidensNumerics(t *testing.T) {
	series := frame.NewIntSeries("a", []int64{1, 2})
	// Untyped int candidates match int64 elements.
	assert.Empty(t, evaluate(t, IsIn(1, 2), series))
	//
	floats := frame.NewFloatSeries("f", []float64{1.0, 2.5})
	assert.Equal(t, []int{1}, evaluate(t, IsIn(1), floats))
}

func TestStringChecks(t *testing.T) {
	series := frame.NewStringSeries("s", []string{"foobar", "barfoo", "baz"})
	//
	tests := []struct {
		check  Check
		failed []int
	}{
		{StrContains("foo"), []int{2}},
		{StrStartsWith("foo"), []int{1, 2}},
		{StrEndsWith("foo"), []int{0, 2}},
	}
	//
	for _, tt := range tests {
		t.Run(tt.check.String(), func(t *testing.T) {
			assert.Equal(t, tt.failed, evaluate(t, tt.check, series))
		})
	}
}

func TestStringCheckRejectsNonStringSeries(t *testing.T) {
	_, err := Evaluate(StrContains("x"), frame.NewIntSeries("a", []int64{1}))
	assert.Error(t, err)
}

func TestNotNull(t *testing.T) {
	nulls := bitset.New(3)
	nulls.Set(0)
	nulls.Set(2)
	//
	series := frame.NewFloatSeries("f", []float64{0, 1, 0}).WithNulls(nulls)
	//
	assert.Equal(t, []int{0, 2}, evaluate(t, NotNull(), series))
	assert.Empty(t, evaluate(t, NotNull(), frame.NewIntSeries("a", []int64{1})))
}

func TestUnique(t *testing.T) {
	series := frame.NewStringSeries("s", []string{"x", "y", "x", "x"})
	// Repeats fail, first occurrences pass.
	assert.Equal(t, []int{2, 3}, evaluate(t, Unique(), series))
}

func TestNilParameterImposesNoConstraint(t *testing.T) {
	series := frame.NewIntSeries("a", []int64{-5, 3})
	//
	assert.Empty(t, evaluate(t, New("ge", nil), series))
	assert.Empty(t, evaluate(t, New("isin", nil), series))
}

func TestUnknownCheck(t *testing.T) {
	_, err := Evaluate(New("no_such_check", nil), frame.NewIntSeries("a", []int64{1}))
	assert.ErrorContains(t, err, "no_such_check")
}

func TestRegister(t *testing.T) {
	Register("always_fail", func(series *frame.Series, _ any) (*bitset.BitSet, error) {
		return bitset.New(uint(series.Height())), nil
	})
	//
	series := frame.NewIntSeries("a", []int64{1, 2})
	assert.Equal(t, []int{0, 1}, evaluate(t, New("always_fail", nil), series))
}

func TestCheckErrorMessage(t *testing.T) {
	series := frame.NewIntSeries("a", []int64{5, -1, 7})
	//
	mask, err := Evaluate(Ge(0), series)
	require.NoError(t, err)
	//
	failure := CheckError{Ge(0), series, mask, false}
	//
	assert.Equal(t, 1, failure.Failed())
	assert.Equal(t, 3, failure.Total())
	//
	msg := failure.Message()
	assert.Contains(t, msg, `column "a" failed check ge(0): 1 of 3 rows (33.3%)`)
	assert.Contains(t, msg, "row 1: -1")
}

func TestCheckErrorTruncatesRows(t *testing.T) {
	data := make([]int64, 25)
	for i := range data {
		data[i] = -1
	}
	//
	series := frame.NewIntSeries("a", data)
	//
	mask, err := Evaluate(Ge(0), series)
	require.NoError(t, err)
	//
	failure := CheckError{Ge(0), series, mask, false}
	assert.Contains(t, failure.Message(), "... and 15 more")
}
