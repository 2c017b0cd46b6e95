package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"uvconf/internal/uvtoml"
	"uvconf/internal/validate"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a pyproject.toml with default [tool.uv] settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "pyproject.toml"
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("failed to check '%s': %w", path, err)
				}
			}

			// An empty document validated gains every schema default.
			validated, errs := validate.Validate(map[string]any{})
			if err := validate.Join(errs); err != nil {
				return err
			}

			rendered, err := uvtoml.Render(validated)
			if err != nil {
				return err
			}
			if err := uvtoml.WriteFile(path, uvtoml.Splice(nil, rendered)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
