// Package codec reads overlay and target documents. The format is
// selected by file extension; TOML, YAML, and JSON are supported and
// all decode into a nested map[string]any.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a supported document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrNotFound reports a missing input file.
	ErrNotFound = errors.New("config file not found")
	// ErrUnsupportedFormat reports a file extension no codec handles.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// DetectFormat determines the document format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: extension %q (use .toml/.yaml/.yml/.json)", ErrUnsupportedFormat, ext)
	}
}

// DecodeFile reads path and parses it according to its extension.
func DecodeFile(path string) (map[string]any, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return Decode(data, format, path)
}

// Decode parses raw bytes in the given format. The path is used only
// for error context.
func Decode(data []byte, format Format, path string) (map[string]any, error) {
	doc := make(map[string]any)

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML file '%s': %w", path, err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON file '%s': %w", path, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return doc, nil
}
