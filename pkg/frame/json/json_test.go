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
package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veridata/framecheck/pkg/frame"
)

func TestFromBytes(t *testing.T) {
	df, err := FromBytes([]byte(`{
		"columns": {
			"a": [1, 2, 3],
			"b": ["x", "y", "z"],
			"c": [1.5, 2, 3],
			"d": [true, false, true]
		},
		"order": ["a", "b", "c", "d"]
	}`))
	require.NoError(t, err)
	//
	assert.Equal(t, []string{"a", "b", "c", "d"}, df.ColumnNames())
	assert.Equal(t, 3, df.Height())
	//
	for name, dtype := range map[string]frame.DType{
		"a": frame.Int, "b": frame.String, "c": frame.Float, "d": frame.Bool,
	} {
		col, err := df.Column(name)
		require.NoError(t, err)
		assert.Equal(t, dtype, col.DType(), "column %q", name)
	}
}

func TestFromBytesIndex(t *testing.T) {
	df, err := FromBytes([]byte(`{
		"columns": {"a": [1, 2]},
		"index": {"i": ["u", "v"]}
	}`))
	require.NoError(t, err)
	//
	assert.Equal(t, []string{"i"}, df.Index().Names())
	//
	level, err := df.Index().Level("i")
	require.NoError(t, err)
	assert.Equal(t, frame.String, level.DType())
}

func TestFromBytesLegacy(t *testing.T) {
	df, err := FromBytes([]byte(`{"b": [1], "a": [2]}`))
	require.NoError(t, err)
	// Legacy documents order columns by name.
	assert.Equal(t, []string{"a", "b"}, df.ColumnNames())
}

func TestFromBytesNulls(t *testing.T) {
	df, err := FromBytes([]byte(`{"columns": {"a": [1, null, 3]}}`))
	require.NoError(t, err)
	//
	col, err := df.Column("a")
	require.NoError(t, err)
	//
	assert.Equal(t, frame.Int, col.DType())
	assert.True(t, col.IsNull(1))
	assert.False(t, col.IsNull(2))
}

func TestFromBytesAllNulls(t *testing.T) {
	df, err := FromBytes([]byte(`{"columns": {"a": [null, null]}}`))
	require.NoError(t, err)
	//
	col, err := df.Column("a")
	require.NoError(t, err)
	assert.Equal(t, frame.Float, col.DType())
}

func TestFromBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mixed dtypes", `{"columns": {"a": [1, "x"]}}`},
		{"not an array", `{"columns": {"a": 1}}`},
		{"order names missing column", `{"columns": {"a": [1]}, "order": ["a", "b"]}`},
		{"ragged heights", `{"columns": {"a": [1], "b": [1, 2]}}`},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	df, err := FromBytes([]byte(`{
		"columns": {"a": [1, null, 3], "b": ["x", "y", "z"]},
		"order": ["a", "b"],
		"index": {"i": [10, 20, 30]}
	}`))
	require.NoError(t, err)
	//
	data, err := ToBytes(df)
	require.NoError(t, err)
	//
	back, err := FromBytes(data)
	require.NoError(t, err)
	assert.True(t, df.Equal(back))
}
