// Command kleenexp transpiles a Kleenexp pattern given on the command line
// into a regular expression and prints it to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/SonOfLilit/kleenexp/internal/compiler"
	"github.com/spf13/cobra"

	"github.com/SonOfLilit/kleenexp"
)

var flavorName string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kleenexp <pattern>",
		Short:         "Transpile a Kleenexp pattern into a regular expression",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flavor, err := kleenexp.ParseFlavor(flavorName)
			if err != nil {
				return err
			}
			out, err := kleenexp.Transpile(args[0], flavor)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&flavorName, "flavor", "python", "regex flavor: python, javascript, rust, rust-fancy")
	return cmd
}

func main() {
	// Force the built-in macro table to construct before any work runs,
	// so a malformed built-in definition panics with a clear stack trace
	// during startup rather than surfacing as a confusing CompileError on
	// whatever pattern happens to be transpiled first.
	compiler.Builtins()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
