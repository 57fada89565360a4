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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/veridata/framecheck/pkg/frame"
	"github.com/veridata/framecheck/pkg/frame/json"
	"github.com/veridata/framecheck/pkg/schema"
	"github.com/veridata/framecheck/pkg/util"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [flags] frame_file schema_file",
	Short: "Check a given frame against a schema.",
	Long: `Check a given frame against a schema.
	Frames are given as JSON files.
	Schemas are given as YAML files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Parse frame
		df := readFrameFile(args[0])
		// Parse schema
		sch := readSchemaFile(args[1])
		// Fold command-line toggles over the schema's own configuration.
		sch, err := sch.WithOverride(flagOverride(cmd))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Go!
		stats := util.NewPerfStats()
		//
		validated, err := sch.Validate(df)
		//
		stats.Log("Validating frame")
		//
		if err != nil {
			reportFailure(sch, err)
			//
			if report := GetString(cmd, "report"); report != "" {
				writeReportFile(report, sch, err)
			}
			//
			os.Exit(1)
		}
		//
		log.Infof("frame matches schema %q (%d columns, %d rows)",
			sch.Name(), validated.Width(), validated.Height())
		//
		if output := GetString(cmd, "output"); output != "" {
			writeFrameFile(output, validated)
		}
	},
}

// flagOverride collects the configuration toggles set on the command line,
// leaving unset toggles to the schema file and defaults.
func flagOverride(cmd *cobra.Command) schema.ConfigOverride {
	override := schema.ConfigOverride{}
	//
	for _, toggle := range []string{"strict", "filter", "ordered", "coerce"} {
		if cmd.Flags().Changed(toggle) {
			override[toggle] = GetFlag(cmd, toggle)
		}
	}
	//
	return override
}

// writeReportFile writes the unclipped failure report to a file.
func writeReportFile(filename string, sch *schema.Schema, failure error) {
	report := failureReport(sch, failure, reportFileWidth)
	//
	if err := os.WriteFile(filename, []byte(report), 0644); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Infof("wrote failure report to %s", filename)
}

func writeFrameFile(filename string, df *frame.DataFrame) {
	bytes, err := json.ToBytes(df)
	if err == nil {
		err = os.WriteFile(filename, bytes, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Infof("wrote validated frame to %s", filename)
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "reject columns not declared by the schema")
	validateCmd.Flags().Bool("filter", false, "drop columns not declared by the schema")
	validateCmd.Flags().Bool("ordered", false, "require schema column order")
	validateCmd.Flags().Bool("coerce", false, "cast mismatched dtypes rather than rejecting them")
	validateCmd.Flags().StringP("output", "o", "", "write the validated frame to a file")
	validateCmd.Flags().String("report", "", "write the failure report to a file")
}
