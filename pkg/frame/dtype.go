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

import "fmt"

// DType identifies the element type of a series.  Every series carries
// exactly one dtype, and all non-null elements of the series are values of
// that type.
type DType uint8

const (
	// Unknown is the zero dtype and never describes a valid series.
	Unknown DType = iota
	// Int describes a series of signed 64bit integers.
	Int
	// Float describes a series of 64bit floating point numbers.
	Float
	// Bool describes a series of booleans.
	Bool
	// String describes a series of (arbitrary length) strings.
	String
	// Category describes a series of strings drawn from a (typically small)
	// set of values.  Categories are backed by strings and, for the purposes
	// of comparison and checking, behave exactly like them.
	Category
	// Timestamp describes a series of instants in time.
	Timestamp
)

func (t DType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "str"
	case Category:
		return "category"
	case Timestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(t))
	}
}

// ParseDType converts the name of a dtype (as written, for example, in a
// schema file) back into the dtype itself.
func ParseDType(name string) (DType, error) {
	switch name {
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "bool":
		return Bool, nil
	case "str", "string":
		return String, nil
	case "category":
		return Category, nil
	case "timestamp", "datetime":
		return Timestamp, nil
	default:
		return Unknown, fmt.Errorf("unknown dtype %q", name)
	}
}
