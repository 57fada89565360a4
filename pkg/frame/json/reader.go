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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/veridata/framecheck/pkg/frame"
)

// document is the on-disk shape of a frame.  For example, {"columns": {"X":
// [0], "Y": [1]}} is a frame containing one row of data each for two columns
// "X" and "Y".  The optional order keys pin column and index level order,
// which JSON objects cannot themselves express.
type document struct {
	Columns    map[string]json.RawMessage `json:"columns"`
	Order      []string                   `json:"order,omitempty"`
	Index      map[string]json.RawMessage `json:"index,omitempty"`
	IndexOrder []string                   `json:"index_order,omitempty"`
}

// FromBytes parses a frame expressed in JSON notation.  Column dtypes are
// inferred per column: arrays of whole numbers become int columns, other
// numeric arrays become float columns, and so on.  A JSON null marks a null
// element.
func FromBytes(data []byte) (*frame.DataFrame, error) {
	var doc document
	//
	if err := json.Unmarshal(data, &doc); err != nil || doc.Columns == nil {
		// Fall back on the legacy format, which is a bare mapping from column
		// names to data arrays.
		return fromBytesLegacy(data)
	}
	//
	columns, err := parseSeriesMap(doc.Columns, doc.Order)
	if err != nil {
		return nil, err
	}
	//
	df, err := frame.NewDataFrame(columns...)
	if err != nil {
		return nil, err
	}
	// Index is optional
	if len(doc.Index) == 0 {
		return df, nil
	}
	//
	levels, err := parseSeriesMap(doc.Index, doc.IndexOrder)
	if err != nil {
		return nil, err
	}
	//
	index, err := frame.NewIndex(levels...)
	if err != nil {
		return nil, err
	}
	//
	return df.WithIndex(index)
}

// fromBytesLegacy parses a frame expressed as a bare mapping from column
// names to data arrays, with columns in name order.
func fromBytesLegacy(data []byte) (*frame.DataFrame, error) {
	var rawData map[string]json.RawMessage
	//
	if err := json.Unmarshal(data, &rawData); err != nil {
		return nil, err
	}
	//
	columns, err := parseSeriesMap(rawData, nil)
	if err != nil {
		return nil, err
	}
	//
	return frame.NewDataFrame(columns...)
}

func parseSeriesMap(raw map[string]json.RawMessage, order []string) ([]*frame.Series, error) {
	if order == nil {
		for name := range raw {
			order = append(order, name)
		}
		//
		sort.Strings(order)
	}
	//
	series := make([]*frame.Series, len(order))
	//
	for i, name := range order {
		data, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("column %q named in order key but not present", name)
		}
		//
		s, err := parseSeries(name, data)
		if err != nil {
			return nil, err
		}
		//
		series[i] = s
	}
	//
	return series, nil
}

// parseSeries parses a single data array, inferring its dtype from the
// elements present.
func parseSeries(name string, data json.RawMessage) (*frame.Series, error) {
	var elements []any
	//
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	//
	if err := decoder.Decode(&elements); err != nil {
		return nil, fmt.Errorf("column %q is not a data array: %w", name, err)
	}
	//
	nulls := bitset.New(uint(len(elements)))
	dtype := frame.Unknown
	//
	for i, element := range elements {
		if element == nil {
			nulls.Set(uint(i))
			continue
		}
		//
		inferred, err := inferDType(element)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w (row %d)", name, err, i)
		}
		//
		dtype, err = unifyDTypes(dtype, inferred)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w (row %d)", name, err, i)
		}
	}
	// Columns of only nulls default to float, as dtype cannot be inferred.
	if dtype == frame.Unknown {
		dtype = frame.Float
	}
	//
	series, err := buildSeries(name, dtype, elements)
	if err != nil {
		return nil, err
	}
	//
	if nulls.Any() {
		series = series.WithNulls(nulls)
	}
	//
	return series, nil
}

func inferDType(element any) (frame.DType, error) {
	switch v := element.(type) {
	case json.Number:
		if isWholeNumber(v) {
			return frame.Int, nil
		}

		return frame.Float, nil
	case string:
		return frame.String, nil
	case bool:
		return frame.Bool, nil
	default:
		return frame.Unknown, fmt.Errorf("unsupported element %v", element)
	}
}

// unifyDTypes merges the dtype inferred so far with that of the next element.
// Whole numbers widen to float in mixed numeric columns; any other mix is an
// error.
func unifyDTypes(sofar, next frame.DType) (frame.DType, error) {
	switch {
	case sofar == frame.Unknown || sofar == next:
		return next, nil
	case sofar == frame.Int && next == frame.Float:
		return frame.Float, nil
	case sofar == frame.Float && next == frame.Int:
		return frame.Float, nil
	default:
		return frame.Unknown, fmt.Errorf("mixed dtypes %s and %s", sofar, next)
	}
}

func buildSeries(name string, dtype frame.DType, elements []any) (*frame.Series, error) {
	switch dtype {
	case frame.Int:
		data := make([]int64, len(elements))
		//
		for i, element := range elements {
			if element == nil {
				continue
			}
			//
			val, err := element.(json.Number).Int64()
			if err != nil {
				return nil, fmt.Errorf("column %q: %w (row %d)", name, err, i)
			}
			//
			data[i] = val
		}
		//
		return frame.NewIntSeries(name, data), nil
	case frame.Float:
		data := make([]float64, len(elements))
		//
		for i, element := range elements {
			if element == nil {
				continue
			}
			//
			val, err := element.(json.Number).Float64()
			if err != nil {
				return nil, fmt.Errorf("column %q: %w (row %d)", name, err, i)
			}
			//
			data[i] = val
		}
		//
		return frame.NewFloatSeries(name, data), nil
	case frame.Bool:
		data := make([]bool, len(elements))
		//
		for i, element := range elements {
			if element != nil {
				data[i] = element.(bool)
			}
		}
		//
		return frame.NewBoolSeries(name, data), nil
	default:
		data := make([]string, len(elements))
		//
		for i, element := range elements {
			if element != nil {
				data[i] = element.(string)
			}
		}
		//
		return frame.NewStringSeries(name, data), nil
	}
}

// isWholeNumber determines whether a JSON number is a whole number (and hence
// can back an int column).
func isWholeNumber(v json.Number) bool {
	_, err := v.Int64()
	return err == nil
}
