package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// FromFile loads settings from a YAML or JSON file, recognized by the
// extension. Omitted fields inherit their default values.
func FromFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json":
		err = json.Unmarshal(data, &s)
	default:
		return Settings{}, fmt.Errorf("settings: unsupported file format: %q", ext)
	}

	if err != nil {
		return Settings{}, err
	}

	return Fill(s), nil
}
