package internal

import (
	"fmt"
	"sort"

	"github.com/gnolang/linelint/internal/lints"
	tt "github.com/gnolang/linelint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
//
// Rules hold no per-file state: Check and Format depend only on the
// configuration and the content they are given.
type LintRule interface {
	// Name returns the name of the lint rule.
	Name() string

	// Check inspects content and returns the issues found in it.
	Check(cfg *Config, filename, content string) []tt.Issue

	// Format returns content rewritten to satisfy the rule.
	Format(cfg *Config, content string) string
}

// LineEndRule requires every file to end with the configured line ending.
type LineEndRule struct{}

func (r *LineEndRule) Name() string {
	return lints.LineEndRuleName
}

func (r *LineEndRule) Check(cfg *Config, filename, content string) []tt.Issue {
	return lints.DetectMissingLineEnd(filename, content, cfg.LineEnding.Ending(content))
}

func (r *LineEndRule) Format(cfg *Config, content string) string {
	return lints.FixLineEnd(content, cfg.LineEnding.Ending(content))
}

// TrailingWhitespaceRule forbids spaces and tabs at the end of a line.
type TrailingWhitespaceRule struct{}

func (r *TrailingWhitespaceRule) Name() string {
	return lints.TrailingWhitespaceRuleName
}

func (r *TrailingWhitespaceRule) Check(_ *Config, filename, content string) []tt.Issue {
	return lints.DetectTrailingWhitespace(filename, content)
}

func (r *TrailingWhitespaceRule) Format(_ *Config, content string) string {
	return lints.FixTrailingWhitespace(content)
}

// -----------------------------------------------------------------------------

type ruleConstructor func() LintRule

// allRuleConstructors maps rule names to their constructors.
var allRuleConstructors = map[string]ruleConstructor{
	lints.LineEndRuleName:            func() LintRule { return &LineEndRule{} },
	lints.TrailingWhitespaceRuleName: func() LintRule { return &TrailingWhitespaceRule{} },
}

// defaultRuleOrder is the evaluation order of the built-in rules.
var defaultRuleOrder = []string{
	lints.LineEndRuleName,
	lints.TrailingWhitespaceRuleName,
}

// NewRule creates the built-in rule registered under name.
func NewRule(name string) (LintRule, error) {
	newRule, ok := allRuleConstructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	return newRule(), nil
}

// RuleNames returns the names of all built-in rules, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
