package internal

import (
	"fmt"
	"strings"

	tt "github.com/gnolang/linelint/internal/types"
)

// Config is the set of active rules plus the line ending policy for a run.
// Rules are evaluated in insertion order.
type Config struct {
	LineEnding tt.LineEnding
	rules      []LintRule
}

// NewConfig creates a configuration without any rules.
func NewConfig(ending tt.LineEnding) *Config {
	return &Config{LineEnding: ending}
}

// DefaultConfig creates a configuration with every built-in rule,
// skipping the ones named in ignored.
func DefaultConfig(ending tt.LineEnding, ignored ...string) (*Config, error) {
	skip := make(map[string]bool, len(ignored))
	for _, name := range ignored {
		if _, ok := allRuleConstructors[name]; !ok {
			return nil, fmt.Errorf("cannot ignore unknown rule %q", name)
		}
		skip[name] = true
	}

	cfg := NewConfig(ending)
	for _, name := range defaultRuleOrder {
		if skip[name] {
			continue
		}
		cfg.AddRule(allRuleConstructors[name]())
	}
	return cfg, nil
}

// AddRule appends a rule. It must not be called once a Linter is using cfg.
func (c *Config) AddRule(rule LintRule) {
	c.rules = append(c.rules, rule)
}

// Rules returns the configured rules in evaluation order.
func (c *Config) Rules() []LintRule {
	rules := make([]LintRule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// Fingerprint identifies the policy and rule list, so results computed
// under one configuration are never reused under another.
func (c *Config) Fingerprint() string {
	names := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		names = append(names, r.Name())
	}
	return c.LineEnding.String() + ":" + strings.Join(names, ",")
}
