package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pelletier/go-toml/v2"
)

// Selection names the regions, boundaries and wells to extract
type Selection struct {
	Regions    []string `json:"regions" toml:"regions"`
	Boundaries []string `json:"boundaries" toml:"boundaries"`
	Wells      []string `json:"wells" toml:"wells"`
}

// IsEmpty is true when nothing is selected
func (s Selection) IsEmpty() bool {
	return len(s.Regions)+len(s.Boundaries)+len(s.Wells) == 0
}

// Print writes the selection as YAML
func (s Selection) Print() (txt string) {
	var (
		b   []byte
		err error
	)
	if b, err = yaml.Marshal(&s); err != nil {
		panic(err)
	}
	return string(b)
}

// ParseSelection decodes a selection script. The format is TOML for a
// ".toml" extension, otherwise JSON or YAML.
func ParseSelection(data []byte, ext string) (sel Selection, err error) {
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &sel)
	case ".json", ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &sel)
	default:
		err = fmt.Errorf("unsupported selection format %q", ext)
	}
	return
}

// LoadSelection reads a selection script from disk
func LoadSelection(path string) (sel Selection, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	if sel, err = ParseSelection(data, filepath.Ext(path)); err != nil {
		err = fmt.Errorf("reading selection %s: %w", path, err)
	}
	return
}
