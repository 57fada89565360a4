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
package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veridata/framecheck/pkg/frame"
	"github.com/veridata/framecheck/pkg/schema"
	"github.com/veridata/framecheck/pkg/schema/check"
)

func TestFromBytes(t *testing.T) {
	sch, err := FromBytes([]byte(`
name: orders
fields:
  - name: id
    type: int
    index: true
    checks:
      unique: true
  - name: amount
    type: float
    checks:
      ge: 0
  - name: state
    type: str
    checks:
      isin: ["open", "closed"]
`))
	require.NoError(t, err)
	//
	assert.Equal(t, "orders", sch.Name())
	require.Len(t, sch.Fields(), 3)
	//
	id := sch.Fields()[0]
	assert.Equal(t, schema.Index, id.Kind)
	assert.Equal(t, frame.Int, id.Type)
	require.Len(t, id.Checks, 1)
	assert.Equal(t, "unique", id.Checks[0].Name)
}

func TestFromBytesValidatesEndToEnd(t *testing.T) {
	sch, err := FromBytes([]byte(`
name: readings
fields:
  - name: sensor
    type: str
    checks:
      str_startswith: "s_"
  - name: value
    type: float
    checks:
      ge: 0
      le: 100
`))
	require.NoError(t, err)
	//
	df, err := frame.NewDataFrame(
		frame.NewStringSeries("sensor", []string{"s_1", "s_2"}),
		frame.NewFloatSeries("value", []float64{10, 99.5}),
	)
	require.NoError(t, err)
	//
	_, err = sch.Validate(df)
	assert.NoError(t, err)
	//
	bad, err := frame.NewDataFrame(
		frame.NewStringSeries("sensor", []string{"s_1", "x_2"}),
		frame.NewFloatSeries("value", []float64{10, 20}),
	)
	require.NoError(t, err)
	//
	_, err = sch.Validate(bad)
	//
	var checkErr *check.CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, "str_startswith", checkErr.Check.Name)
}

func TestFromBytesValuelessCheck(t *testing.T) {
	// A check key with no value imposes no constraint.
	sch, err := FromBytes([]byte(`
name: test
fields:
  - name: a
    type: int
    checks:
      ge:
`))
	require.NoError(t, err)
	//
	df, err := frame.NewDataFrame(frame.NewIntSeries("a", []int64{-1, 2}))
	require.NoError(t, err)
	//
	_, err = sch.Validate(df)
	assert.NoError(t, err)
}

func TestFromBytesNullable(t *testing.T) {
	sch, err := FromBytes([]byte(`
name: test
fields:
  - name: a
    type: int
    checks:
      nullable: false
  - name: b
    type: int
    checks:
      nullable: true
`))
	require.NoError(t, err)
	// nullable false spells the not_null check; nullable true imposes
	// nothing.
	a, b := sch.Fields()[0], sch.Fields()[1]
	//
	require.Len(t, a.Checks, 1)
	assert.Equal(t, "not_null", a.Checks[0].Name)
	assert.Empty(t, b.Checks)
}

func TestFromBytesFieldSettings(t *testing.T) {
	sch, err := FromBytes([]byte(`
name: test
fields:
  - name: ix
    type: int
    index: true
    check_index_name: false
  - name: metric
    type: float
    alias: "^m_"
    regex: true
    optional: true
    coerce: true
`))
	require.NoError(t, err)
	//
	ix, metric := sch.Fields()[0], sch.Fields()[1]
	//
	assert.False(t, ix.CheckIndexName)
	assert.True(t, metric.Regex)
	assert.Equal(t, "^m_", metric.Alias)
	assert.True(t, metric.Optional)
	assert.True(t, metric.Coerce)
}

func TestFromBytesConfigDominatesDefaults(t *testing.T) {
	sch, err := FromBytes([]byte(`
name: test
defaults:
  strict: true
  ordered: true
config:
  strict: false
fields:
  - name: a
    type: int
`))
	require.NoError(t, err)
	//
	df, err := frame.NewDataFrame(
		frame.NewIntSeries("a", []int64{1}),
		frame.NewIntSeries("extra", []int64{2}),
	)
	require.NoError(t, err)
	// Strictness was overridden off, so the extra column is tolerated; the
	// defaulted ordering setting survives (and passes here).
	_, err = sch.Validate(df)
	assert.Error(t, err, "ordering still applies")
	//
	reordered, err := frame.NewDataFrame(frame.NewIntSeries("a", []int64{1}))
	require.NoError(t, err)
	//
	_, err = sch.Validate(reordered)
	assert.NoError(t, err)
}

func TestFromBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown top-level key", "name: t\nbogus: 1\nfields: []"},
		{"unknown field key", "name: t\nfields:\n  - name: a\n    type: int\n    wat: 1"},
		{"unknown dtype", "name: t\nfields:\n  - name: a\n    type: complex"},
		{"unknown check", "name: t\nfields:\n  - name: a\n    type: int\n    checks:\n      gte: 1"},
		{"unknown config key", "name: t\nconfig:\n  stric: true\nfields:\n  - name: a\n    type: int"},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
