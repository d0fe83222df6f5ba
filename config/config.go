package config

import "github.com/spf13/viper"

// Config holds the runtime settings shared by the gridmend commands.
// Values come from .gridmend.yaml, GRIDMEND_* env vars and CLI flags.
type Config struct {
	OutputDir      string `mapstructure:"output_dir"`
	OutputFormat   string `mapstructure:"output_format"`
	Verbose        bool   `mapstructure:"verbose"`
	ValidateOutput bool   `mapstructure:"validate_output"`
	Profile        string `mapstructure:"profile"`
}

// Load reads configuration from viper, applying defaults for anything not
// set by a config file, the environment or flags.
func Load() (Config, error) {
	viper.SetDefault("output_dir", "")
	viper.SetDefault("output_format", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("validate_output", true)
	viper.SetDefault("profile", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
