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
	"path/filepath"

	"github.com/notargets/gridmend/mesh"
	"github.com/notargets/gridmend/readers"
	"github.com/notargets/gridmend/writers"
)

func readMesh(path string) (m *mesh.Mesh, err error) {
	logf("reading %s", path)
	if m, err = readers.ReadMeshFile(path); err != nil {
		return nil, err
	}
	logf("read %d vertices, %d cells, %d facets, %d lines",
		len(m.Coordinates), m.NumCells(), m.NumFacets(), m.NumLines())
	return m, nil
}

// outputPath places relative paths under the configured output directory
func outputPath(path string) string {
	if cfg.OutputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.OutputDir, path)
}

func writeMesh(path string, m *mesh.Mesh) error {
	if cfg.ValidateOutput {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("not writing %s: %w", path, err)
		}
	}
	path = outputPath(path)
	format := cfg.OutputFormat
	if format == "" {
		format = writers.FormatOf(path)
	}
	logf("writing %s as %s", path, format)
	return writers.WriteMeshFileAs(path, m, format)
}
