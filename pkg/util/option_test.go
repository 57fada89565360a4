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
package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOption(t *testing.T) {
	some := Some(10)
	none := None[int]()
	//
	assert.True(t, some.HasValue())
	assert.False(t, none.HasValue())
	assert.True(t, none.IsEmpty())
	//
	assert.Equal(t, 10, some.Unwrap())
	assert.Equal(t, 10, some.UnwrapOr(99))
	assert.Equal(t, 99, none.UnwrapOr(99))
	//
	assert.Panics(t, func() { none.Unwrap() })
}

func TestOptionUnmarshalYAML(t *testing.T) {
	var doc struct {
		Flag Option[bool] `yaml:"flag"`
	}
	// Explicit false is distinguishable from an omitted key.
	require.NoError(t, yaml.Unmarshal([]byte("flag: false"), &doc))
	assert.True(t, doc.Flag.HasValue())
	assert.False(t, doc.Flag.Unwrap())
	//
	doc.Flag = None[bool]()
	require.NoError(t, yaml.Unmarshal([]byte("{}"), &doc))
	assert.True(t, doc.Flag.IsEmpty())
}
