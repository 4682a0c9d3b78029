package internal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnolang/linelint/internal/trie"
)

// excluder decides which paths under a root are skipped, together with
// everything below them.
//
// Plain entries are paths: a path is excluded when it equals an entry or
// lies below it. Entries containing glob metacharacters are doublestar
// patterns matched against the slash-separated path relative to the root.
type excluder struct {
	root     string
	paths    *trie.Trie
	patterns []string
}

func newExcluder(root string, excludes []string) (*excluder, error) {
	root = filepath.Clean(root)
	e := &excluder{
		root:  root,
		paths: trie.New(),
	}

	for _, raw := range excludes {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if isGlob(raw) {
			pattern := filepath.ToSlash(raw)
			if !doublestar.ValidatePattern(pattern) {
				return nil, fmt.Errorf("invalid exclude pattern %q", raw)
			}
			e.patterns = append(e.patterns, pattern)
			continue
		}

		e.paths.Insert(filepath.ToSlash(e.resolve(raw)))
	}

	return e, nil
}

// resolve anchors an exclude path to the traversal root. Relative paths
// that already start at the root are kept as given, other relative paths
// are taken relative to the root.
func (e *excluder) resolve(p string) string {
	p = filepath.Clean(p)

	if filepath.IsAbs(p) {
		if filepath.IsAbs(e.root) {
			return p
		}
		// bring it into the same relative form the traversal produces
		absRoot, err := filepath.Abs(e.root)
		if err != nil {
			return p
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return p
		}
		return filepath.Join(e.root, rel)
	}

	if e.root == "." || within(e.root, p) {
		return p
	}
	return filepath.Join(e.root, p)
}

// Excluded reports whether path (as produced by joining the root with
// directory entry names) must be skipped.
func (e *excluder) Excluded(path string) bool {
	path = filepath.Clean(path)
	if e.paths.Covers(filepath.ToSlash(path)) {
		return true
	}
	if len(e.patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(e.root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range e.patterns {
		// patterns were validated in newExcluder
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func within(parent, p string) bool {
	return p == parent || strings.HasPrefix(p, parent+string(filepath.Separator))
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
