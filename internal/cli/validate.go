package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"uvconf/internal/uvtoml"
	"uvconf/internal/validate"
)

// topLevelKey reduces a diagnostic key like "sources.httpx" or
// "default-groups[1]" to the parameter name it belongs to.
func topLevelKey(key string) string {
	top, _, _ := strings.Cut(key, ".")
	if i := strings.IndexByte(top, '['); i >= 0 {
		top = top[:i]
	}
	return top
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check the [tool.uv] section of a file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := uvtoml.LoadSection(args[0])
			if err != nil {
				return err
			}

			_, errs := validate.Validate(section)

			// Field-by-field report: clean keys to stdout, every
			// diagnostic to stderr.
			failed := make(map[string]bool)
			for _, e := range errs {
				failed[topLevelKey(e.Key)] = true
			}

			keys := make([]string, 0, len(section))
			for key := range section {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			out := cmd.OutOrStdout()
			for _, key := range keys {
				if !failed[key] {
					fmt.Fprintf(out, "ok      %s\n", key)
				}
			}
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "invalid %s\n", e.Error())
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d invalid field(s) in %s", len(errs), args[0])
			}
			fmt.Fprintf(out, "%s: [tool.uv] is valid\n", args[0])
			return nil
		},
	}
}
