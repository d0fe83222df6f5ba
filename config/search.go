package config

import (
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GRIDMEND_VERBOSE
const EnvPrefix = "GRIDMEND"

// Init points viper at cfgFile, or at .gridmend.yaml in the working
// directory and then the home directory. A missing config file is not an
// error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gridmend")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

// Used reports the config file viper loaded, or "" when none
func Used() string {
	return viper.ConfigFileUsed()
}
