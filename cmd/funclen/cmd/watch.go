package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	fsw "github.com/corey/funclen/internal/adapters/fsnotify"
	"github.com/corey/funclen/internal/ports"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch path...",
		Short: "Re-check Python files as they change",
		Long:  "Analyzes the paths once, then re-analyzes each changed Python file until interrupted.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.Watch(ctx, args, func(ignoreDirs []string) (ports.Watcher, error) {
				return fsw.NewWatcher(ignoreDirs...)
			})
		},
	}
}
