// Package internal provides the core functionality of the line format linter.
//
// The package implements a small rule engine that checks and rewrites text
// files so they follow line formatting conventions: a consistent line ending
// at the end of every file and no trailing whitespace.
//
// Key components:
//
// LintRule: An interface that defines the contract for all lint rules.
// Each rule has a name, a Check method that reports issues and a Format
// method that rewrites content to satisfy the rule.
//
// Config: The line ending policy plus the ordered list of active rules.
// Rules are applied in the order they were added.
//
// Linter: Walks a directory tree, skips excluded paths, reads every file as
// text and runs the configured rules over it, either collecting issues or
// writing formatted content back to disk. Files that cannot be read or
// written are reported as *FileError values without stopping the run.
//
// Cache: Optional store of check results keyed by file content and
// configuration, so unchanged files are not re-checked.
//
// Watcher: Re-checks files as they change on disk.
//
// Usage:
//
//	cfg, err := internal.DefaultConfig(types.LineEndingAuto)
//	if err != nil {
//	    // handle error
//	}
//
//	linter := internal.NewLinter(cfg)
//	issues, err := linter.CheckFilesInDir(ctx, ".", []string{"vendor"})
//	for _, issue := range issues {
//	    fmt.Println(issue)
//	}
//	for _, e := range multierr.Errors(err) {
//	    // handle per-file error
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages. External callers use the lint package.
package internal
