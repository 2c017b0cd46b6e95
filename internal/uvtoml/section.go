// Package uvtoml reads and rewrites the [tool.uv] section of a
// pyproject.toml file. Rewrites are done by splicing a freshly
// rendered section into the original text at the line level, so
// every byte outside [tool.uv] — comments, ordering, unrelated
// [tool.*] sections — is left untouched.
package uvtoml

import (
	"errors"
	"fmt"
	"os"

	"uvconf/internal/codec"
)

// ErrNotFound reports a missing pyproject file.
var ErrNotFound = codec.ErrNotFound

// SectionOf extracts the tool.uv table from a parsed document.
// A document without the section yields an empty map; a tool or
// tool.uv key that is not a table is an error.
func SectionOf(root map[string]any) (map[string]any, error) {
	rawTool, ok := root["tool"]
	if !ok {
		return map[string]any{}, nil
	}
	tool, ok := rawTool.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("key 'tool' is not a table (got %T)", rawTool)
	}

	rawUV, ok := tool["uv"]
	if !ok {
		return map[string]any{}, nil
	}
	uv, ok := rawUV.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("key 'tool.uv' is not a table (got %T)", rawUV)
	}
	return uv, nil
}

// OverlaySection picks the tool.uv portion of an overlay document.
// Pyproject-shaped overlays contribute their tool.uv table; a bare
// mapping is used whole so small overlays need no wrapper.
func OverlaySection(root map[string]any) (map[string]any, error) {
	if _, hasTool := root["tool"]; hasTool {
		return SectionOf(root)
	}
	return root, nil
}

// LoadSection parses the TOML file at path and returns its tool.uv
// table. A missing file is reported as ErrNotFound.
func LoadSection(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	root, err := codec.Decode(data, codec.FormatTOML, path)
	if err != nil {
		return nil, err
	}
	return SectionOf(root)
}
