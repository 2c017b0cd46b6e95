// Package cli wires the uvconf command tree. Every command is a
// single-pass pipeline: read inputs, merge layers, validate, then
// write the result or report the collected diagnostics.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the full command tree. Construction is kept
// separate from Execute so tests can run commands against buffers.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "uvconf",
		Short: "Manage the [tool.uv] section of pyproject.toml",
		Long: `uvconf validates, generates, and edits the [tool.uv] configuration
section of a pyproject.toml file. Overlay documents may be TOML, YAML,
or JSON; everything outside [tool.uv] in the target file is preserved
byte for byte.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(
		newInitCommand(),
		newValidateCommand(),
		newMergeCommand(),
		newSetCommand(),
		newParamCommand(),
	)

	return root
}

// Execute runs the CLI and exits nonzero on any failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
