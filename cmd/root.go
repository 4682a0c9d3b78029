package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gnolang/linelint/lint"
)

const (
	exitOK     = 0
	exitError  = 1
	exitIssues = 2

	defaultTimeout = 5 * time.Minute

	version = "0.1.0"
)

// errIssuesFound makes the process exit with exitIssues without printing
// anything further.
var errIssuesFound = errors.New("issues found")

var errorStyle = color.New(color.FgRed, color.Bold)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	root              string
	excludes          []string
	noDefaultExcludes bool
	lineEnding        string
	ignore            []string
	verbose           bool
	timeout           time.Duration

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}
	checkOpts := &checkOptions{}

	rootCmd := &cobra.Command{
		Use:           "linelint [paths...]",
		Short:         "linelint - check and fix line endings and trailing whitespace",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
		// no subcommand behaves like check
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, checkOpts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", ".", "Directory to process when no paths are given")
	flags.StringSliceVarP(&opts.excludes, "exclude", "e", nil, "Comma-separated list of paths or glob patterns to exclude, relative to the root")
	flags.BoolVar(&opts.noDefaultExcludes, "no-default-excludes", false, "Do not exclude "+strings.Join(lint.DefaultExcludes(), ", "))
	flags.StringVar(&opts.lineEnding, "line-ending", "auto", "Expected line ending: auto, unix or windows")
	flags.StringSliceVar(&opts.ignore, "ignore", nil, "Comma-separated list of rules to disable")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Stop check and format runs after this long")
	checkOpts.addFlags(rootCmd.Flags())

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newFormatCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newRulesCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errIssuesFound):
		return exitIssues
	default:
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(stderr, "%s %v\n", errorStyle.Sprint("error:"), e)
		}
		return exitError
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

// roots returns the directories to process: the positional arguments, or
// the --root flag when there are none.
func (o *rootOptions) roots(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{o.root}
}

func (o *rootOptions) allExcludes() []string {
	var excludes []string
	if !o.noDefaultExcludes {
		excludes = append(excludes, lint.DefaultExcludes()...)
	}
	for _, e := range o.excludes {
		if e = strings.TrimSpace(e); e != "" {
			excludes = append(excludes, e)
		}
	}
	return excludes
}

func (o *rootOptions) newLinter(extra ...lint.Option) (*lint.Linter, error) {
	ending, err := lint.ParseLineEnding(o.lineEnding)
	if err != nil {
		return nil, err
	}

	ignored := make([]string, 0, len(o.ignore))
	for _, name := range o.ignore {
		if name = strings.TrimSpace(name); name != "" {
			ignored = append(ignored, name)
		}
	}

	cfg, err := lint.DefaultConfig(ending, ignored...)
	if err != nil {
		return nil, err
	}

	linterOpts := append([]lint.Option{lint.WithLogger(o.logger)}, extra...)
	return lint.NewLinter(cfg, linterOpts...), nil
}
