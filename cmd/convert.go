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
	"github.com/spf13/cobra"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Rewrite a mesh in another format",
	Long: `
Reads a mesh, validates it and writes it back out. The output format follows
the extension of OUT unless --format is given.

gridmend convert wing.su2 wing.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := readMesh(args[0])
		if err != nil {
			return err
		}
		return writeMesh(args[1], m)
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
}
