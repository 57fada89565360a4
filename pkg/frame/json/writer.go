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
	"encoding/json"
	"time"

	"github.com/veridata/framecheck/pkg/frame"
)

// ToBytes renders a frame in JSON notation, such that FromBytes recovers an
// equivalent frame.  Timestamp columns are rendered as RFC3339 strings.
func ToBytes(df *frame.DataFrame) ([]byte, error) {
	doc := document{
		Columns: make(map[string]json.RawMessage, df.Width()),
		Order:   df.ColumnNames(),
	}
	//
	for _, col := range df.Columns() {
		data, err := marshalSeries(col)
		if err != nil {
			return nil, err
		}
		//
		doc.Columns[col.Name()] = data
	}
	//
	if !df.Index().IsDefault() {
		doc.Index = make(map[string]json.RawMessage, df.Index().Depth())
		doc.IndexOrder = df.Index().Names()
		//
		for _, level := range df.Index().Levels() {
			data, err := marshalSeries(level)
			if err != nil {
				return nil, err
			}
			//
			doc.Index[level.Name()] = data
		}
	}
	//
	return json.MarshalIndent(doc, "", "  ")
}

func marshalSeries(s *frame.Series) (json.RawMessage, error) {
	elements := make([]any, s.Height())
	//
	for i := 0; i < s.Height(); i++ {
		val, err := s.Get(i)
		if err != nil {
			return nil, err
		}
		// Null elements render as JSON nulls.
		if t, ok := val.(time.Time); ok {
			elements[i] = t.Format(time.RFC3339)
		} else {
			elements[i] = val
		}
	}
	//
	return json.Marshal(elements)
}
