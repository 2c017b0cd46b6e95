package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"uvconf/internal/merge"
	"uvconf/internal/schema"
	"uvconf/internal/validate"
)

func newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <param> <value>",
		Short: "Set a single [tool.uv] parameter in a pyproject.toml",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, name, raw := args[0], args[1], args[2]

			param, known := schema.Lookup(name)
			if !known {
				return fmt.Errorf("unknown parameter %q (see 'uvconf param')", name)
			}

			value, err := parseScalar(param, raw)
			if err != nil {
				return err
			}

			existing, current, err := loadTarget(path)
			if err != nil {
				return err
			}

			merged := merge.Merge(
				merge.Layer{Name: "defaults", Values: schema.Defaults()},
				merge.Layer{Name: "target", Values: current},
				merge.Layer{Name: "set", Values: map[string]any{name: value}},
			)

			validated, errs := validate.Validate(merged)
			if err := validate.Join(errs); err != nil {
				return err
			}

			if err := writeTarget(path, existing, validated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "set %s = %v in %s\n", name, value, path)
			return nil
		},
	}
}

// parseScalar converts a command-line value into the parameter's
// value type. Only scalar parameters can be set this way; tables and
// arrays need a merge overlay.
func parseScalar(param schema.Parameter, raw string) (any, error) {
	switch param.Kind {
	case schema.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q expects a bool, got %q", param.Name, raw)
		}
		return b, nil
	case schema.KindString, schema.KindEnum:
		// Enum membership is vetted by validation.
		return raw, nil
	default:
		return nil, fmt.Errorf("parameter %q holds a %s and cannot be set to a single value; use 'uvconf merge' with an overlay file", param.Name, param.Kind)
	}
}
