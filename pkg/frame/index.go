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
	"slices"
	"strings"
)

// Index describes the row labels of a data frame as zero or more named
// levels, where each level is itself a series.  An index with no levels is
// the default index, which labels rows by position alone.
type Index struct {
	levels []*Series
}

// NewIndex constructs an index from the given levels, which must all have the
// same height.
func NewIndex(levels ...*Series) (*Index, error) {
	for i := 1; i < len(levels); i++ {
		if levels[i].Height() != levels[0].Height() {
			return nil, fmt.Errorf("index level %q has height %d, expected %d",
				levels[i].Name(), levels[i].Height(), levels[0].Height())
		}
	}
	//
	return &Index{levels}, nil
}

// IsDefault determines whether this is the default (positional) index.
func (ix *Index) IsDefault() bool {
	return len(ix.levels) == 0
}

// Depth returns the number of levels in this index.
func (ix *Index) Depth() int {
	return len(ix.levels)
}

// Height returns the number of rows labelled by this index (zero for the
// default index, whose height is determined by the enclosing frame).
func (ix *Index) Height() int {
	if ix.IsDefault() {
		return 0
	}
	//
	return ix.levels[0].Height()
}

// Names returns the level names in order.
func (ix *Index) Names() []string {
	names := make([]string, len(ix.levels))
	for i, level := range ix.levels {
		names[i] = level.Name()
	}
	//
	return names
}

// Level returns the level with a given name, or an error if no such level
// exists.
func (ix *Index) Level(name string) (*Series, error) {
	for _, level := range ix.levels {
		if level.Name() == name {
			return level, nil
		}
	}
	//
	return nil, fmt.Errorf("index level %q was not found", name)
}

// Levels returns the levels of this index in order.
func (ix *Index) Levels() []*Series {
	return ix.levels
}

// SetLevel replaces the level matching the given series' name.
func (ix *Index) SetLevel(level *Series) error {
	for i, l := range ix.levels {
		if l.Name() == level.Name() {
			ix.levels[i] = level
			return nil
		}
	}
	//
	return fmt.Errorf("index level %q was not found", level.Name())
}

// RenameLevel renames an existing level of this index.
func (ix *Index) RenameLevel(from, to string) error {
	for i, l := range ix.levels {
		if l.Name() == from {
			ix.levels[i] = l.Rename(to)
			return nil
		}
	}
	//
	return fmt.Errorf("index level %q was not found", from)
}

// Drop returns a copy of this index with the given levels removed.  Dropping
// every level collapses to the default index.
func (ix *Index) Drop(names []string) *Index {
	var kept []*Series
	//
	for _, level := range ix.levels {
		if !slices.Contains(names, level.Name()) {
			kept = append(kept, level)
		}
	}
	//
	return &Index{kept}
}

// IsMonotonic determines whether the rows of this index, viewed as tuples
// across all levels, are sorted in either increasing or decreasing order.
// The default index is trivially monotonic.
func (ix *Index) IsMonotonic() bool {
	var increasing, decreasing = true, true
	//
	for row := 1; row < ix.Height(); row++ {
		c := ix.compareRows(row-1, row)
		//
		increasing = increasing && c <= 0
		decreasing = decreasing && c >= 0
	}
	//
	return increasing || decreasing
}

// IsUnique determines whether the rows of this index, viewed as tuples across
// all levels, are pairwise distinct.  The default index is trivially unique.
func (ix *Index) IsUnique() bool {
	height := ix.Height()
	//
	seen := make(map[string]bool, height)
	//
	for row := 0; row < height; row++ {
		key := ix.rowKey(row)
		if seen[key] {
			return false
		}
		//
		seen[key] = true
	}
	//
	return true
}

// Copy returns a deep copy of this index.
func (ix *Index) Copy() *Index {
	levels := make([]*Series, len(ix.levels))
	for i, level := range ix.levels {
		levels[i] = level.Copy()
	}
	//
	return &Index{levels}
}

// Equal determines whether two indices have identical levels.
func (ix *Index) Equal(other *Index) bool {
	if len(ix.levels) != len(other.levels) {
		return false
	}
	//
	for i, level := range ix.levels {
		if !level.Equal(other.levels[i]) {
			return false
		}
	}
	//
	return true
}

// compareRows compares two rows of this index lexicographically across its
// levels.
func (ix *Index) compareRows(i, j int) int {
	for _, level := range ix.levels {
		if c := level.CompareAt(i, level, j); c != 0 {
			return c
		}
	}
	//
	return 0
}

// rowKey renders a row tuple as a collision-safe string key.  Every rendered
// value is length-prefixed, so a separator occurring inside a value cannot
// make distinct tuples collide.
func (ix *Index) rowKey(row int) string {
	var builder strings.Builder
	//
	for _, level := range ix.levels {
		val, _ := level.Get(row)
		rendered := fmt.Sprintf("%v", val)
		//
		fmt.Fprintf(&builder, "%d:%s", len(rendered), rendered)
	}
	//
	return builder.String()
}
