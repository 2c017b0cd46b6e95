package cli

import (
	"errors"
	"fmt"
	"os"

	"uvconf/internal/codec"
	"uvconf/internal/uvtoml"
)

// loadTarget reads a pyproject.toml and returns both its raw text
// (needed for splicing) and its current tool.uv table.
func loadTarget(path string) ([]byte, map[string]any, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", uvtoml.ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	root, err := codec.Decode(text, codec.FormatTOML, path)
	if err != nil {
		return nil, nil, err
	}

	section, err := uvtoml.SectionOf(root)
	if err != nil {
		return nil, nil, err
	}
	return text, section, nil
}

// writeTarget renders the validated document and splices it into the
// existing text, writing the result atomically.
func writeTarget(path string, existing []byte, validated map[string]any) error {
	rendered, err := uvtoml.Render(validated)
	if err != nil {
		return err
	}
	return uvtoml.WriteFile(path, uvtoml.Splice(existing, rendered))
}
