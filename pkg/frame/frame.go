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
)

// DataFrame describes a table of named data columns which all share a common
// height, together with an index labelling its rows.
type DataFrame struct {
	// Columns of this frame, in order.
	columns []*Series
	// Row labels, never nil (the default index stands for plain positional
	// labelling).
	index *Index
}

// NewDataFrame constructs a data frame from the given columns, which must
// have unique names and a common height.  The frame is given the default
// index.
func NewDataFrame(columns ...*Series) (*DataFrame, error) {
	seen := make(map[string]bool, len(columns))
	//
	for i, col := range columns {
		if seen[col.Name()] {
			return nil, fmt.Errorf("duplicate column %q", col.Name())
		} else if col.Height() != columns[0].Height() {
			return nil, fmt.Errorf("column %q has height %d, expected %d",
				col.Name(), columns[i].Height(), columns[0].Height())
		}
		//
		seen[col.Name()] = true
	}
	//
	return &DataFrame{columns, &Index{}}, nil
}

// WithIndex returns a copy of this frame labelled by the given index, whose
// height must match that of the frame.
func (df *DataFrame) WithIndex(index *Index) (*DataFrame, error) {
	if !index.IsDefault() && index.Height() != df.Height() {
		return nil, fmt.Errorf("index height %d does not match frame height %d", index.Height(), df.Height())
	}
	//
	return &DataFrame{df.columns, index}, nil
}

// Height returns the number of rows in this frame.
func (df *DataFrame) Height() int {
	if len(df.columns) == 0 {
		return 0
	}
	//
	return df.columns[0].Height()
}

// Width returns the number of columns in this frame.
func (df *DataFrame) Width() int {
	return len(df.columns)
}

// ColumnNames returns the names of all columns, in order.
func (df *DataFrame) ColumnNames() []string {
	names := make([]string, len(df.columns))
	for i, col := range df.columns {
		names[i] = col.Name()
	}
	//
	return names
}

// HasColumn determines whether this frame contains a column with the given
// name.
func (df *DataFrame) HasColumn(name string) bool {
	_, err := df.Column(name)
	return err == nil
}

// Column returns the column with a given name, or an error if no such column
// exists.
func (df *DataFrame) Column(name string) (*Series, error) {
	for _, col := range df.columns {
		if col.Name() == name {
			return col, nil
		}
	}
	//
	return nil, fmt.Errorf("column %q was not found", name)
}

// Columns returns the columns of this frame in order.
func (df *DataFrame) Columns() []*Series {
	return df.columns
}

// Index returns the index of this frame (never nil).
func (df *DataFrame) Index() *Index {
	return df.index
}

// SetColumn replaces the column matching the given series' name.
func (df *DataFrame) SetColumn(col *Series) error {
	for i, c := range df.columns {
		if c.Name() == col.Name() {
			df.columns[i] = col
			return nil
		}
	}
	//
	return fmt.Errorf("column %q was not found", col.Name())
}

// Select returns a new frame containing exactly the given columns, in the
// given order, sharing this frame's index.  Columns are copied, hence the
// selection is independent of the original frame.
func (df *DataFrame) Select(names []string) (*DataFrame, error) {
	columns := make([]*Series, len(names))
	//
	for i, name := range names {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		//
		columns[i] = col.Copy()
	}
	//
	return &DataFrame{columns, df.index.Copy()}, nil
}

// Copy returns a deep copy of this frame.
func (df *DataFrame) Copy() *DataFrame {
	columns := make([]*Series, len(df.columns))
	for i, col := range df.columns {
		columns[i] = col.Copy()
	}
	//
	return &DataFrame{columns, df.index.Copy()}
}

// Equal determines whether two frames have identical columns (in the same
// order) and identical indices.
func (df *DataFrame) Equal(other *DataFrame) bool {
	if len(df.columns) != len(other.columns) {
		return false
	}
	//
	for i, col := range df.columns {
		if !col.Equal(other.columns[i]) {
			return false
		}
	}
	//
	return df.index.Equal(other.index)
}
