package internal

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	tt "github.com/gnolang/linelint/internal/types"
)

// Linter walks directory trees and applies the configured rules to every
// file it finds. It is the only place where I/O errors are handled.
type Linter struct {
	cfg     *Config
	fs      afero.Fs
	logger  *zap.Logger
	cache   *Cache
	onVisit func(path string)
	dryRun  bool
}

// Option configures a Linter.
type Option func(*Linter)

// WithFs sets the filesystem the Linter reads from and writes to.
func WithFs(fs afero.Fs) Option {
	return func(l *Linter) { l.fs = fs }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// WithCache reuses check results for files whose content did not change.
func WithCache(cache *Cache) Option {
	return func(l *Linter) { l.cache = cache }
}

// WithVisitHook registers fn to be called with each file path before it is read.
func WithVisitHook(fn func(path string)) Option {
	return func(l *Linter) { l.onVisit = fn }
}

// WithDryRun makes format runs report changed files without writing them.
func WithDryRun(dryRun bool) Option {
	return func(l *Linter) { l.dryRun = dryRun }
}

// NewLinter creates a Linter bound to cfg. By default it works on the OS
// filesystem and does not log.
func NewLinter(cfg *Config, opts ...Option) *Linter {
	l := &Linter{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Config returns the configuration the Linter is bound to.
func (l *Linter) Config() *Config {
	return l.cfg
}

// CheckFilesInDir checks every non-excluded file under root.
//
// Files that cannot be read do not stop the run. The issues found in all
// readable files are returned together with a combined error holding one
// *FileError per failure; use multierr.Errors to list them.
//
// Cancelling ctx stops the walk before the next file is read. The issues
// found up to that point are returned and the error includes ctx.Err().
func (l *Linter) CheckFilesInDir(ctx context.Context, root string, excludes []string) ([]tt.Issue, error) {
	var issues []tt.Issue
	err := l.walk(ctx, root, excludes, func(path string, _ os.FileInfo, content string) error {
		issues = append(issues, l.checkCached(path, content)...)
		return nil
	})

	if l.cache != nil {
		if cerr := l.cache.Save(); cerr != nil {
			l.logger.Warn("Failed to save cache", zap.Error(cerr))
		}
	}

	return issues, err
}

// FormatFilesInDir rewrites every non-excluded file under root so that it
// satisfies all rules. Files are only written when their content changes.
// It returns the paths that were changed (or would be, in dry-run mode)
// together with a combined error for files that could not be read or written.
// Cancellation behaves as in CheckFilesInDir; files already written stay written.
func (l *Linter) FormatFilesInDir(ctx context.Context, root string, excludes []string) ([]string, error) {
	var changed []string
	err := l.walk(ctx, root, excludes, func(path string, info os.FileInfo, content string) error {
		formatted := l.FormatContent(content)
		if formatted == content {
			return nil
		}

		if l.dryRun {
			l.logger.Debug("Would format file", zap.String("file", path))
			changed = append(changed, path)
			return nil
		}

		if err := afero.WriteFile(l.fs, path, []byte(formatted), info.Mode().Perm()); err != nil {
			return &FileError{Op: "write", Path: path, Err: err}
		}
		l.logger.Debug("Formatted file", zap.String("file", path))
		changed = append(changed, path)
		return nil
	})
	return changed, err
}

// CheckFile reads a single file and checks it against every rule.
func (l *Linter) CheckFile(path string) ([]tt.Issue, error) {
	content, err := l.readText(path)
	if err != nil {
		return nil, err
	}
	return l.CheckContent(path, content), nil
}

// CheckContent runs every rule's check over content.
func (l *Linter) CheckContent(filename, content string) []tt.Issue {
	var issues []tt.Issue
	for _, rule := range l.cfg.rules {
		issues = append(issues, rule.Check(l.cfg, filename, content)...)
	}
	return issues
}

// FormatContent pipes content through every rule's formatter in order.
func (l *Linter) FormatContent(content string) string {
	for _, rule := range l.cfg.rules {
		content = rule.Format(l.cfg, content)
	}
	return content
}

func (l *Linter) checkCached(path, content string) []tt.Issue {
	if l.cache == nil {
		return l.CheckContent(path, content)
	}

	fingerprint := l.cfg.Fingerprint()
	if issues, ok := l.cache.Get(path, content, fingerprint); ok {
		l.logger.Debug("Cache hit", zap.String("file", path))
		return issues
	}

	issues := l.CheckContent(path, content)
	l.cache.Set(path, content, fingerprint, issues)
	return issues
}

// visitFunc is called for every readable file. A returned error is
// recorded and the walk continues.
type visitFunc func(path string, info os.FileInfo, content string) error

// walk performs an iterative depth-first traversal of root, visiting
// directory entries in lexicographic order.
func (l *Linter) walk(ctx context.Context, root string, excludes []string, visit visitFunc) error {
	ex, err := newExcluder(root, excludes)
	if err != nil {
		return err
	}

	root = filepath.Clean(root)
	if ex.Excluded(root) {
		l.logger.Debug("Root is excluded", zap.String("root", root))
		return nil
	}

	rootInfo, err := l.fs.Stat(root)
	if err != nil {
		return &FileError{Op: "readdir", Path: root, Err: err}
	}

	type entry struct {
		path string
		info os.FileInfo
	}

	var errs error
	record := func(err error) {
		l.logger.Warn("Error processing file", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	stack := []entry{{path: root, info: rootInfo}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			l.logger.Warn("Run stopped before completion", zap.String("root", root), zap.Error(err))
			return multierr.Append(errs, err)
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info := current.info
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := l.fs.Stat(current.path)
			if err != nil {
				record(&FileError{Op: "read", Path: current.path, Err: err})
				continue
			}
			if target.IsDir() {
				l.logger.Debug("Skipping symlinked directory", zap.String("path", current.path))
				continue
			}
			info = target
		}

		if info.IsDir() {
			children, err := afero.ReadDir(l.fs, current.path)
			if err != nil {
				record(&FileError{Op: "readdir", Path: current.path, Err: err})
				continue
			}
			// children are sorted by name; push in reverse so the
			// smallest name is visited first
			for i := len(children) - 1; i >= 0; i-- {
				childPath := filepath.Join(current.path, children[i].Name())
				if ex.Excluded(childPath) {
					l.logger.Debug("Skipping excluded path", zap.String("path", childPath))
					continue
				}
				stack = append(stack, entry{path: childPath, info: children[i]})
			}
			continue
		}

		if !info.Mode().IsRegular() {
			l.logger.Debug("Skipping non-regular file", zap.String("path", current.path))
			continue
		}

		if l.onVisit != nil {
			l.onVisit(current.path)
		}

		content, err := l.readText(current.path)
		if err != nil {
			record(err)
			continue
		}

		if err := visit(current.path, info, content); err != nil {
			record(err)
		}
	}

	return errs
}

func (l *Linter) readText(path string) (string, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return "", &FileError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileError{Op: "read", Path: path, Err: ErrNotText}
	}
	return string(data), nil
}

