package structure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the text encoding of a persisted structure
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Marshal encodes a structure in the given format
func Marshal(s *Structure, f Format) ([]byte, error) {
	doc := Encode(s)
	if f == YAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal decodes a structure from the given format
func Unmarshal(data []byte, f Format) (*Structure, error) {
	var doc Document
	var err error
	if f == YAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return Decode(&doc)
}

// LoadFromFile loads a structure from a JSON or YAML file
func LoadFromFile(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, FormatFromPath(path))
}

// SaveToFile writes a structure to a JSON or YAML file
func SaveToFile(s *Structure, path string) error {
	data, err := Marshal(s, FormatFromPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
