package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"uvconf/internal/codec"
	"uvconf/internal/merge"
	"uvconf/internal/schema"
	"uvconf/internal/uvtoml"
	"uvconf/internal/validate"
)

func newMergeCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "merge <overlay>",
		Short: "Merge an overlay document (TOML/YAML/JSON) into the target's [tool.uv]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overlayDoc, err := codec.DecodeFile(args[0])
			if err != nil {
				return err
			}
			overlay, err := uvtoml.OverlaySection(overlayDoc)
			if err != nil {
				return fmt.Errorf("overlay '%s': %w", args[0], err)
			}

			// A missing target starts from empty text; the merge
			// creates the file.
			existing, current := []byte(nil), map[string]any{}
			if _, statErr := os.Stat(target); statErr == nil {
				existing, current, err = loadTarget(target)
				if err != nil {
					return err
				}
			} else if !errors.Is(statErr, os.ErrNotExist) {
				return fmt.Errorf("failed to check '%s': %w", target, statErr)
			}

			merged := merge.Merge(
				merge.Layer{Name: "defaults", Values: schema.Defaults()},
				merge.Layer{Name: "target", Values: current},
				merge.Layer{Name: "overlay", Values: overlay},
			)

			validated, errs := validate.Validate(merged)
			if err := validate.Join(errs); err != nil {
				return err
			}

			if err := writeTarget(target, existing, validated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged %s into %s\n", args[0], target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "pyproject.toml", "target pyproject.toml file")
	return cmd
}
