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
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/veridata/framecheck/pkg/frame"
)

// maxFailureRows bounds how many offending rows a failure message renders.
const maxFailureRows = 10

// CheckError provides structural information about a series failing a value
// check: which check failed, over which series, and exactly which elements
// were at fault.
type CheckError struct {
	// The failing check (name + parameter).
	Check Check
	// The offending series or index level, by reference.
	Series *frame.Series
	// Pass mask aligned to the series, with set bits marking passing
	// elements.
	Mask *bitset.BitSet
	// Whether the series is an index level (rather than a column).
	IsIndex bool
}

// Total returns the number of elements checked.
func (e *CheckError) Total() int {
	return e.Series.Height()
}

// Failed returns the number of elements which failed the check.
func (e *CheckError) Failed() int {
	return e.Total() - int(e.Mask.Count())
}

// FailedRows returns the rows of the failing elements, up to a given limit (a
// negative limit returns all of them).
func (e *CheckError) FailedRows(limit int) []int {
	var rows []int
	//
	for i := 0; i < e.Total(); i++ {
		if limit >= 0 && len(rows) == limit {
			break
		}
		//
		if !e.Mask.Test(uint(i)) {
			rows = append(rows, i)
		}
	}
	//
	return rows
}

// Message provides a suitable error message identifying the failing check,
// the failure rate and the first few offending rows.
func (e *CheckError) Message() string {
	var (
		builder strings.Builder
		kind    = "column"
		total   = e.Total()
		failed  = e.Failed()
		percent = 100 * float64(failed) / float64(max(total, 1))
	)
	//
	if e.IsIndex {
		kind = "index"
	}
	//
	fmt.Fprintf(&builder, "%s %q failed check %s: %d of %d rows (%.1f%%)",
		kind, e.Series.Name(), e.Check, failed, total, percent)
	//
	for _, row := range e.FailedRows(maxFailureRows) {
		val, _ := e.Series.Get(row)
		fmt.Fprintf(&builder, "\n  row %d: %v", row, val)
	}
	//
	if failed > maxFailureRows {
		fmt.Fprintf(&builder, "\n  ... and %d more", failed-maxFailureRows)
	}
	//
	return builder.String()
}

func (e *CheckError) Error() string {
	return e.Message()
}

func (e *CheckError) String() string {
	return e.Message()
}
