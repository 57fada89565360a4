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
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/veridata/framecheck/pkg/frame"
	"github.com/veridata/framecheck/pkg/frame/json"
	"github.com/veridata/framecheck/pkg/schema"
	"github.com/veridata/framecheck/pkg/schema/loader"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a frame file using a parser based on the extension of the filename.
func readFrameFile(filename string) *frame.DataFrame {
	bytes, err := os.ReadFile(filename)
	if err == nil {
		// Check file extension
		ext := path.Ext(filename)
		//
		switch ext {
		case ".json":
			df, err := json.FromBytes(bytes)
			if err == nil {
				return df
			}

			fmt.Println(err)
		default:
			fmt.Printf("Unknown frame file format: %s\n", ext)
		}
	} else {
		fmt.Println(err)
	}
	//
	os.Exit(2)
	// unreachable
	return nil
}

// Parse a schema file using a parser based on the extension of the filename.
func readSchemaFile(filename string) *schema.Schema {
	bytes, err := os.ReadFile(filename)
	if err == nil {
		// Check file extension
		ext := path.Ext(filename)
		//
		switch ext {
		case ".yaml", ".yml":
			sch, err := loader.FromBytes(bytes)
			if err == nil {
				return sch
			}

			fmt.Println(err)
		default:
			fmt.Printf("Unknown schema file format: %s\n", ext)
		}
	} else {
		fmt.Println(err)
	}
	//
	os.Exit(2)
	// unreachable
	return nil
}
