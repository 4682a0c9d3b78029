package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/linelint/formatter"
	"github.com/gnolang/linelint/lint"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-check files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			linter, err := opts.newLinter()
			if err != nil {
				return err
			}

			root := opts.roots(args)[0]
			out := cmd.OutOrStdout()

			var mu sync.Mutex
			onIssues := func(path string, issues []lint.Issue) {
				mu.Lock()
				defer mu.Unlock()
				if len(issues) == 0 {
					opts.logger.Debug("File is clean", zap.String("file", path))
					return
				}
				if err := formatter.Write(out, issues, formatter.FormatText); err != nil {
					opts.logger.Error("Error writing issues", zap.Error(err))
				}
			}

			watcher, err := lint.NewWatcher(linter, root, opts.allExcludes(), onIssues)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes. Press Ctrl+C to stop.\n", root)
			return watcher.Run(cmd.Context())
		},
	}
}
