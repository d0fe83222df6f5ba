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

// ExtractCmd represents the extract command
var ExtractCmd = &cobra.Command{
	Use:   "extract IN SCRIPT OUT",
	Short: "Cut named regions, boundaries and wells out of a 3-D mesh",
	Long: `
Extracts a self-contained sub-mesh from IN. SCRIPT is a YAML, JSON or TOML
file naming what to keep:

  regions: [Matrix, Fracture]
  boundaries: [Top]
  wells: [Injector]

The selected boundaries are claimed from IN. With --remainder the rest of IN,
renumbered without them, is written as well.

gridmend extract reservoir.msh selection.yaml block.yaml --remainder rest.msh`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		remainder, _ := cmd.Flags().GetString("remainder")
		return runExtract(args[0], args[1], args[2], remainder)
	},
}

func init() {
	rootCmd.AddCommand(ExtractCmd)
	ExtractCmd.Flags().StringP("remainder", "r", "", "write what is left of IN to this file")
}

func runExtract(in, script, out, remainder string) error {
	sel, err := extract.LoadSelection(script)
	if err != nil {
		return err
	}
	if sel.IsEmpty() {
		return fmt.Errorf("selection %s names nothing to extract", script)
	}
	logf("selection:\n%s", sel.Print())

	source, err := readMesh(in)
	if err != nil {
		return err
	}
	sub, err := extract.Extract(source, sel)
	if err != nil {
		return fmt.Errorf("extracting from %s: %w", in, err)
	}
	logf("extracted %d vertices, %d cells, %d facets, %d lines",
		len(sub.Coordinates), sub.NumCells(), sub.NumFacets(), sub.NumLines())
	if err = writeMesh(out, sub); err != nil {
		return err
	}
	if remainder == "" {
		return nil
	}
	source.Compact()
	return writeMesh(remainder, source)
}
