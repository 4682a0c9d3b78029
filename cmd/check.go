package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gnolang/linelint/formatter"
	"github.com/gnolang/linelint/lint"
)

type checkOptions struct {
	output      string
	cacheDir    string
	cacheMaxAge time.Duration
	clearCache  bool
	progress    bool
}

func (o *checkOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.output, "output", "o", "text", "Output format: text, json or yaml")
	flags.StringVar(&o.cacheDir, "cache-dir", "", "Reuse results for unchanged files from this directory")
	flags.DurationVar(&o.cacheMaxAge, "cache-max-age", 7*24*time.Hour, "Re-check files whose cached result is older than this")
	flags.BoolVar(&o.clearCache, "clear-cache", false, "Drop every cached result before checking")
	flags.BoolVar(&o.progress, "progress", false, "Show a progress indicator on stderr")
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	checkOpts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report files with trailing whitespace or a missing final line ending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, checkOpts, args)
		},
	}
	checkOpts.addFlags(cmd.Flags())
	return cmd
}

func runCheck(cmd *cobra.Command, opts *rootOptions, checkOpts *checkOptions, args []string) error {
	format, err := formatter.ParseFormat(checkOpts.output)
	if err != nil {
		return err
	}

	var linterOpts []lint.Option
	if checkOpts.cacheDir != "" {
		cache, err := lint.NewCache(afero.NewOsFs(), checkOpts.cacheDir)
		if err != nil {
			return fmt.Errorf("error opening cache: %w", err)
		}
		cache.SetMaxAge(checkOpts.cacheMaxAge)
		if checkOpts.clearCache {
			cache.InvalidateAll()
		}
		linterOpts = append(linterOpts, lint.WithCache(cache))
	}

	var bar *progressbar.ProgressBar
	if checkOpts.progress {
		bar = newProgressBar(cmd.ErrOrStderr(), "checking")
		linterOpts = append(linterOpts, lint.WithVisitHook(func(string) { _ = bar.Add(1) }))
	}

	linter, err := opts.newLinter(linterOpts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	issues, runErr := lint.ProcessPaths(ctx, opts.logger, linter, opts.roots(args), opts.allExcludes())
	finishProgressBar(cmd.ErrOrStderr(), bar)

	if err := formatter.Write(cmd.OutOrStdout(), issues, format); err != nil {
		return err
	}
	if format == formatter.FormatText {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Summary(issues))
	}

	if runErr != nil {
		return runErr
	}
	if len(issues) > 0 {
		return errIssuesFound
	}
	return nil
}

// newProgressBar returns a spinner that counts visited files. The total is
// unknown because files are discovered while the walk runs.
func newProgressBar(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func finishProgressBar(w io.Writer, bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	_ = bar.Finish()
	fmt.Fprintln(w)
}
