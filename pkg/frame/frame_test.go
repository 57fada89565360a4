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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataFrame(t *testing.T) {
	df, err := NewDataFrame(
		NewIntSeries("a", []int64{1, 2}),
		NewStringSeries("b", []string{"x", "y"}),
	)
	require.NoError(t, err)
	//
	assert.Equal(t, 2, df.Height())
	assert.Equal(t, 2, df.Width())
	assert.Equal(t, []string{"a", "b"}, df.ColumnNames())
	assert.True(t, df.Index().IsDefault())
}

func TestNewDataFrameErrors(t *testing.T) {
	_, err := NewDataFrame(
		NewIntSeries("a", []int64{1}),
		NewIntSeries("a", []int64{2}),
	)
	assert.Error(t, err, "duplicate column names")
	//
	_, err = NewDataFrame(
		NewIntSeries("a", []int64{1}),
		NewIntSeries("b", []int64{1, 2}),
	)
	assert.Error(t, err, "mismatched heights")
}

func TestDataFrameWithIndex(t *testing.T) {
	df, err := NewDataFrame(NewIntSeries("a", []int64{1, 2}))
	require.NoError(t, err)
	//
	index, err := NewIndex(NewStringSeries("idx", []string{"u", "v"}))
	require.NoError(t, err)
	//
	indexed, err := df.WithIndex(index)
	require.NoError(t, err)
	assert.Equal(t, []string{"idx"}, indexed.Index().Names())
	//
	short, err := NewIndex(NewStringSeries("idx", []string{"u"}))
	require.NoError(t, err)
	//
	_, err = df.WithIndex(short)
	assert.Error(t, err, "index height must match frame height")
}

func TestDataFrameSelect(t *testing.T) {
	df, err := NewDataFrame(
		NewIntSeries("a", []int64{1}),
		NewIntSeries("b", []int64{2}),
		NewIntSeries("c", []int64{3}),
	)
	require.NoError(t, err)
	//
	selected, err := df.Select([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, selected.ColumnNames())
	//
	_, err = df.Select([]string{"missing"})
	assert.Error(t, err)
}

func TestDataFrameSetColumn(t *testing.T) {
	df, err := NewDataFrame(NewIntSeries("a", []int64{1, 2}))
	require.NoError(t, err)
	//
	require.NoError(t, df.SetColumn(NewFloatSeries("a", []float64{1, 2})))
	//
	col, err := df.Column("a")
	require.NoError(t, err)
	assert.Equal(t, Float, col.DType())
	//
	assert.Error(t, df.SetColumn(NewIntSeries("zz", []int64{1, 2})))
}

func TestDataFrameEqual(t *testing.T) {
	mkFrame := func() *DataFrame {
		df, err := NewDataFrame(NewIntSeries("a", []int64{1, 2}))
		require.NoError(t, err)
		//
		return df
	}
	//
	assert.True(t, mkFrame().Equal(mkFrame()))
	//
	other, err := NewDataFrame(NewIntSeries("a", []int64{1, 3}))
	require.NoError(t, err)
	assert.False(t, mkFrame().Equal(other))
}

func TestIndexMonotonic(t *testing.T) {
	tests := []struct {
		name     string
		data     []int64
		expected bool
	}{
		{"increasing", []int64{1, 2, 3}, true},
		{"decreasing", []int64{3, 2, 1}, true},
		{"constant", []int64{2, 2, 2}, true},
		{"unsorted", []int64{1, 3, 2}, false},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := NewIndex(NewIntSeries("i", tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, index.IsMonotonic())
		})
	}
}

func TestIndexUnique(t *testing.T) {
	unique, err := NewIndex(
		NewIntSeries("a", []int64{1, 1, 2}),
		NewStringSeries("b", []string{"x", "y", "x"}),
	)
	require.NoError(t, err)
	assert.True(t, unique.IsUnique())
	//
	dupes, err := NewIndex(
		NewIntSeries("a", []int64{1, 1}),
		NewStringSeries("b", []string{"x", "x"}),
	)
	require.NoError(t, err)
	assert.False(t, dupes.IsUnique())
}

func TestIndexUniqueSeparatorValues(t *testing.T) {
	// Distinct tuples whose values contain separator characters must not
	// collide when keyed.
	index, err := NewIndex(
		NewStringSeries("a", []string{"a|b", "a"}),
		NewStringSeries("b", []string{"c", "b|c"}),
	)
	require.NoError(t, err)
	assert.True(t, index.IsUnique())
}

func TestIndexDrop(t *testing.T) {
	index, err := NewIndex(
		NewIntSeries("a", []int64{1}),
		NewIntSeries("b", []int64{2}),
	)
	require.NoError(t, err)
	//
	dropped := index.Drop([]string{"a"})
	assert.Equal(t, []string{"b"}, dropped.Names())
	//
	assert.True(t, index.Drop([]string{"a", "b"}).IsDefault())
}

func TestIndexRenameLevel(t *testing.T) {
	index, err := NewIndex(NewIntSeries("a", []int64{1}))
	require.NoError(t, err)
	//
	require.NoError(t, index.RenameLevel("a", "b"))
	assert.Equal(t, []string{"b"}, index.Names())
	//
	assert.Error(t, index.RenameLevel("missing", "c"))
}
