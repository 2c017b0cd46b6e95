package schema

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Source is one entry under [tool.uv.sources]: the origin a
// dependency is fetched from instead of the default registry.
// Exactly one variant applies per entry, identified by its
// discriminating key (git, url, path, workspace, or index).
type Source interface {
	// Variant returns the discriminating key of the entry.
	Variant() string
}

// GitSource pins a dependency to a git repository.
type GitSource struct {
	Git          string `mapstructure:"git"`
	Tag          string `mapstructure:"tag"`
	Branch       string `mapstructure:"branch"`
	Rev          string `mapstructure:"rev"`
	Subdirectory string `mapstructure:"subdirectory"`
	Marker       string `mapstructure:"marker"`
}

func (GitSource) Variant() string { return "git" }

// URLSource fetches a dependency from a direct URL.
type URLSource struct {
	URL    string `mapstructure:"url"`
	Marker string `mapstructure:"marker"`
}

func (URLSource) Variant() string { return "url" }

// PathSource installs a dependency from a local path.
type PathSource struct {
	Path     string `mapstructure:"path"`
	Editable *bool  `mapstructure:"editable"`
	Package  *bool  `mapstructure:"package"`
	Marker   string `mapstructure:"marker"`
}

func (PathSource) Variant() string { return "path" }

// WorkspaceSource resolves a dependency from the current workspace.
type WorkspaceSource struct {
	Workspace bool   `mapstructure:"workspace"`
	Marker    string `mapstructure:"marker"`
}

func (WorkspaceSource) Variant() string { return "workspace" }

// IndexSource pins a dependency to a named package index.
type IndexSource struct {
	Index  string `mapstructure:"index"`
	Extra  string `mapstructure:"extra"`
	Marker string `mapstructure:"marker"`
}

func (IndexSource) Variant() string { return "index" }

// sourceVariants maps each discriminating key to a constructor for
// its decode target. Checked in this order when reporting conflicts.
var sourceVariants = []string{"git", "url", "path", "workspace", "index"}

// DecodeSource turns one raw sources entry into its typed variant.
// The entry must be a table carrying exactly one discriminating key,
// and every field present must belong to that variant.
func DecodeSource(raw any) (Source, error) {
	entry, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %T", raw)
	}

	var found []string
	for _, key := range sourceVariants {
		if _, present := entry[key]; present {
			found = append(found, key)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("missing a source kind key (one of %v)", sourceVariants)
	case 1:
		// Exactly one variant, decode below.
	default:
		sort.Strings(found)
		return nil, fmt.Errorf("conflicting source kind keys %v", found)
	}

	switch found[0] {
	case "git":
		var s GitSource
		if err := decodeSourceEntry(entry, &s, "git"); err != nil {
			return nil, err
		}
		return s, nil
	case "url":
		var s URLSource
		if err := decodeSourceEntry(entry, &s, "url"); err != nil {
			return nil, err
		}
		return s, nil
	case "path":
		var s PathSource
		if err := decodeSourceEntry(entry, &s, "path"); err != nil {
			return nil, err
		}
		return s, nil
	case "workspace":
		var s WorkspaceSource
		if err := decodeSourceEntry(entry, &s, "workspace"); err != nil {
			return nil, err
		}
		return s, nil
	default:
		var s IndexSource
		if err := decodeSourceEntry(entry, &s, "index"); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// decodeSourceEntry strictly decodes a raw entry into a variant
// struct. Unknown fields and wrong-typed values are errors.
func decodeSourceEntry(entry map[string]any, target any, variant string) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create source decoder: %w", err)
	}
	if err := decoder.Decode(entry); err != nil {
		return fmt.Errorf("invalid %s source: %w", variant, err)
	}
	return nil
}
