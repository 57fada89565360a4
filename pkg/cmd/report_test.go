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
package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/veridata/framecheck/pkg/schema"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		width    int
		expected string
	}{
		{"short line untouched", "abc", 80, "abc"},
		{"exact width untouched", "abcde", 5, "abcde"},
		{"long line clipped", "abcdefghij", 8, "abcde..."},
		{"tiny width", "abcdefghij", 2, "ab"},
		{"zero width", "abcdefghij", 0, ""},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clip(tt.line, tt.width))
		})
	}
}

func TestClipMultiByteRunes(t *testing.T) {
	// Clipping counts runes, so a multi-byte character is never split.
	clipped := clip("naïve café čaj žurnál", 10)
	//
	assert.True(t, utf8.ValidString(clipped))
	assert.Equal(t, "naïve c...", clipped)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"definition", &schema.SchemaDefinitionError{Message: "x"}, "schema definition"},
		{"missing columns", &schema.MissingColumnsError{Message: "x"}, "missing names"},
		{"missing index", &schema.MissingIndexError{Message: "x"}, "missing names"},
		{"coercion", &schema.CoercionError{Name: "a"}, "coercion"},
		{"custom", &schema.CustomCheckError{Check: "c"}, "custom check"},
		{"validation", &schema.SchemaValidationError{Message: "x"}, "validation"},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.err))
		})
	}
}
