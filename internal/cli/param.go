package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"uvconf/internal/schema"
)

func newParamCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "param [name]",
		Short: "Show the type, default, and allowed values of a [tool.uv] parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				// Bare "param" lists everything the schema knows.
				for _, p := range schema.Parameters() {
					fmt.Fprintf(out, "%-18s %s\n", p.Name, p.Kind)
				}
				return nil
			}

			p, known := schema.Lookup(args[0])
			if !known {
				return fmt.Errorf("unknown parameter %q", args[0])
			}

			fmt.Fprintf(out, "parameter: %s\n", p.Name)
			fmt.Fprintf(out, "type:      %s\n", p.Kind)
			fmt.Fprintf(out, "default:   %s\n", formatDefault(p.Default))
			if len(p.Allowed) > 0 {
				fmt.Fprintf(out, "allowed:   %s\n", strings.Join(p.Allowed, ", "))
			}
			fmt.Fprintf(out, "\n%s\n", p.Description)
			return nil
		},
	}
}

func formatDefault(value any) string {
	switch v := value.(type) {
	case nil:
		return "(none)"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
