package lint

import (
	"context"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gnolang/linelint/internal"
	tt "github.com/gnolang/linelint/internal/types"
)

type (
	Config     = internal.Config
	Linter     = internal.Linter
	LintRule   = internal.LintRule
	Option     = internal.Option
	Cache      = internal.Cache
	Watcher    = internal.Watcher
	FileError  = internal.FileError
	Issue      = tt.Issue
	LineEnding = tt.LineEnding
)

const (
	LineEndingAuto    = tt.LineEndingAuto
	LineEndingUnix    = tt.LineEndingUnix
	LineEndingWindows = tt.LineEndingWindows
)

var (
	NewConfig       = internal.NewConfig
	DefaultConfig   = internal.DefaultConfig
	NewLinter       = internal.NewLinter
	NewCache        = internal.NewCache
	NewWatcher      = internal.NewWatcher
	NewRule         = internal.NewRule
	RuleNames       = internal.RuleNames
	ParseLineEnding = tt.ParseLineEnding
	WithFs          = internal.WithFs
	WithLogger      = internal.WithLogger
	WithCache       = internal.WithCache
	WithVisitHook   = internal.WithVisitHook
	WithDryRun      = internal.WithDryRun
	ErrNotText      = internal.ErrNotText
)

// DefaultExcludes returns the patterns excluded unless the caller opts out.
func DefaultExcludes() []string {
	return []string{"**/.git"}
}

// LintEngine is the part of a Linter the process helpers depend on.
type LintEngine interface {
	CheckFilesInDir(ctx context.Context, root string, excludes []string) ([]tt.Issue, error)
	FormatFilesInDir(ctx context.Context, root string, excludes []string) ([]string, error)
}

// Check runs every default rule with an inferred line ending over the
// files under root on the OS filesystem.
func Check(root string, excludes []string) ([]tt.Issue, error) {
	l, err := newDefaultLinter()
	if err != nil {
		return nil, err
	}
	return l.CheckFilesInDir(context.Background(), root, excludes)
}

// Format is the counterpart of Check that rewrites files in place.
func Format(root string, excludes []string) ([]string, error) {
	l, err := newDefaultLinter()
	if err != nil {
		return nil, err
	}
	return l.FormatFilesInDir(context.Background(), root, excludes)
}

func newDefaultLinter() (*internal.Linter, error) {
	cfg, err := internal.DefaultConfig(tt.LineEndingAuto)
	if err != nil {
		return nil, err
	}
	return internal.NewLinter(cfg, internal.WithFs(afero.NewOsFs())), nil
}

// ProcessPaths checks every root in order and concatenates the results.
// A failing root does not stop the remaining ones; its errors are combined
// into the returned error, which multierr.Errors splits back into one
// *FileError per failure. ctx is handed to the engine, so cancelling it
// stops the current root before its next file and skips the rest.
func ProcessPaths(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	roots []string,
	excludes []string,
) ([]tt.Issue, error) {
	var (
		allIssues []tt.Issue
		errs      error
	)
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return allIssues, multierr.Append(errs, err)
		}

		issues, err := engine.CheckFilesInDir(ctx, root, excludes)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", root), zap.Error(err))
			}
			errs = multierr.Append(errs, err)
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, errs
}

// FormatPaths formats every root in order and returns the changed files.
func FormatPaths(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	roots []string,
	excludes []string,
) ([]string, error) {
	var (
		allChanged []string
		errs       error
	)
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return allChanged, multierr.Append(errs, err)
		}

		changed, err := engine.FormatFilesInDir(ctx, root, excludes)
		if err != nil {
			if logger != nil {
				logger.Error("Error formatting path", zap.String("path", root), zap.Error(err))
			}
			errs = multierr.Append(errs, err)
		}
		allChanged = append(allChanged, changed...)
	}

	return allChanged, errs
}
