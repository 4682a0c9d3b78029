package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gnolang/linelint/formatter"
	"github.com/gnolang/linelint/lint"
)

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		dryRun   bool
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Strip trailing whitespace and add missing final line endings in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			linterOpts := []lint.Option{lint.WithDryRun(dryRun)}

			var bar *progressbar.ProgressBar
			if progress {
				bar = newProgressBar(cmd.ErrOrStderr(), "formatting")
				linterOpts = append(linterOpts, lint.WithVisitHook(func(string) { _ = bar.Add(1) }))
			}

			linter, err := opts.newLinter(linterOpts...)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			changed, runErr := lint.FormatPaths(ctx, opts.logger, linter, opts.roots(args), opts.allExcludes())
			finishProgressBar(cmd.ErrOrStderr(), bar)

			for _, path := range changed {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatSummary(changed, dryRun))

			if runErr != nil {
				return runErr
			}
			if dryRun && len(changed) > 0 {
				return errIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files that would change without writing them")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress indicator on stderr")
	return cmd
}
