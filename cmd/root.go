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
	"log"
	"os"

	"github.com/notargets/gridmend/config"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	cfg      config.Config
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gridmend",
	Short: "Convert, inspect and cut apart unstructured meshes",
	Long: `
Reads Gmsh 2.2, SU2, Gambit neutral and CGNS-layout YAML/JSON meshes, extracts
self-contained sub-meshes from named regions, boundaries and wells, and writes
the result as Gmsh 2.2, SU2 or CGNS-layout YAML/JSON.

gridmend extract reservoir.msh selection.yaml block.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: startRun,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { stopProfile() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stopProfile()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./.gridmend.yaml, then $HOME/.gridmend.yaml)")
	pf.BoolP("verbose", "v", false, "log each read, extract and write step")
	pf.StringP("format", "f", "", "output format, one of msh, su2, yaml, json (default is the output file extension)")
	pf.StringP("outputDir", "o", "", "directory for relative output paths")
	pf.Bool("validate", true, "validate meshes before they are written")
	pf.String("profile", "", "write a cpu or mem profile to the working directory")

	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = viper.BindPFlag("output_format", pf.Lookup("format"))
	_ = viper.BindPFlag("output_dir", pf.Lookup("outputDir"))
	_ = viper.BindPFlag("validate_output", pf.Lookup("validate"))
	_ = viper.BindPFlag("profile", pf.Lookup("profile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startRun(cmd *cobra.Command, args []string) (err error) {
	if cfg, err = config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if used := config.Used(); used != "" {
		logf("using config file %s", used)
	}
	switch cfg.Profile {
	case "":
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return fmt.Errorf("unknown profile %q, want cpu or mem", cfg.Profile)
	}
	return nil
}

func stopProfile() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

func logf(format string, args ...interface{}) {
	if cfg.Verbose {
		log.Printf(format, args...)
	}
}
