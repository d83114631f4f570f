package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long:  "Shows the limits and ignore lists after merging the project file, defaults, and flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, loaded := resolveSettings(cmd, opts)
			source := "built-in defaults"
			if loaded {
				source = opts.configPath
			}
			output := "enabled"
			if !settings.EnableOutput {
				output = "disabled"
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "⚡ funclen config")
			fmt.Fprintf(w, "  Source:              %s\n", source)
			fmt.Fprintf(w, "  Error line limit:    %d\n", settings.ErrorLineLimit)
			fmt.Fprintf(w, "  Warning line limit:  %d\n", settings.WarningLineLimit)
			fmt.Fprintf(w, "  Output:              %s\n", output)
			fmt.Fprintf(w, "  Ignore directories:  %s\n", strings.Join(settings.IgnoreDirectories, ", "))
			fmt.Fprintf(w, "  Ignore files:        %s\n", strings.Join(settings.IgnoreFiles, ", "))
			fmt.Fprintf(w, "  Ignore test files:   %t\n", opts.ignoreTest)
			return nil
		},
	}
}
