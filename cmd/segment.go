/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/notargets/gridmend/extract"
	"github.com/spf13/cobra"
)

// SegmentCmd represents the segment command
var SegmentCmd = &cobra.Command{
	Use:   "segment IN OUT",
	Short: "Extract the one-segment template of an extruded 3-D mesh",
	Long: `
IN must be a mesh extruded along an axis: S segments of prisms and hexahedra,
a skin boundary, first and last lid boundaries and an axis well. OUT receives
the first segment, closed by the last lid.

gridmend segment pipe.msh template.msh`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readMesh(args[0])
		if err != nil {
			return err
		}
		seg, err := extract.ExtractSegment(source)
		if err != nil {
			return fmt.Errorf("extracting segment from %s: %w", args[0], err)
		}
		return writeMesh(args[1], seg)
	},
}

func init() {
	rootCmd.AddCommand(SegmentCmd)
}
