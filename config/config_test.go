package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{ValidateOutput: true}, cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	testCases := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"output_dir", "GRIDMEND_OUTPUT_DIR", "/tmp/out", func(c Config) any { return c.OutputDir }, "/tmp/out"},
		{"output_format", "GRIDMEND_OUTPUT_FORMAT", "msh", func(c Config) any { return c.OutputFormat }, "msh"},
		{"verbose", "GRIDMEND_VERBOSE", "true", func(c Config) any { return c.Verbose }, true},
		{"validate_output", "GRIDMEND_VALIDATE_OUTPUT", "false", func(c Config) any { return c.ValidateOutput }, false},
		{"profile", "GRIDMEND_PROFILE", "cpu", func(c Config) any { return c.Profile }, "cpu"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			t.Setenv(tc.envKey, tc.envVal)
			chdir(t, t.TempDir())
			require.NoError(t, Init(""))

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, tc.field(cfg))
		})
	}
}

func TestInitConfigFile(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), "gridmend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: su2\nverbose: true\n"), 0644))
	require.NoError(t, Init(path))
	assert.Equal(t, path, Used())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "su2", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.ValidateOutput)
}

func TestInitMissingFile(t *testing.T) {
	viper.Reset()
	assert.Error(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))

	viper.Reset()
	chdir(t, t.TempDir())
	assert.NoError(t, Init(""))
	assert.Empty(t, Used())
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the original directory on cleanup (equivalent to Go 1.24's t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
