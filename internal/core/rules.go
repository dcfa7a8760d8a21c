// Package core provides the rule matching engine, decision building, and the
// hook execution context shared by every checker.
package core

import (
	"fmt"
	"regexp"
)

// Rule is a single (pattern, label) pair in a checker's rule table.
type Rule struct {
	Pattern string
	Label   string
}

// compiledRule pairs a Rule with its compiled, case-insensitive expression.
type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

// RuleTable is an ordered, immutable set of compiled rules. Evaluation order
// is table order, so when multiple patterns could match the earliest-listed
// rule is the one reported.
type RuleTable struct {
	rules []compiledRule
}

// CompileRules builds a RuleTable from an ordered rule list. All patterns are
// compiled case-insensitively. An invalid pattern fails the whole table; rule
// tables are static configuration and a broken pattern is a setup error, not
// something to skip silently.
func CompileRules(rules []Rule) (RuleTable, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return RuleTable{}, fmt.Errorf("rule %q: invalid pattern %q: %w", r.Label, r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{rule: r, re: re})
	}
	return RuleTable{rules: compiled}, nil
}

// MustCompileRules is CompileRules for built-in tables, where a bad pattern
// is a programming error.
func MustCompileRules(rules []Rule) RuleTable {
	table, err := CompileRules(rules)
	if err != nil {
		panic(err)
	}
	return table
}

// Append returns a new table with extra rules evaluated after the receiver's.
// Built-in rules stay first so they win over user-supplied ones.
func (t RuleTable) Append(rules []Rule) (RuleTable, error) {
	extra, err := CompileRules(rules)
	if err != nil {
		return RuleTable{}, err
	}
	combined := make([]compiledRule, 0, len(t.rules)+len(extra.rules))
	combined = append(combined, t.rules...)
	combined = append(combined, extra.rules...)
	return RuleTable{rules: combined}, nil
}

// Len returns the number of rules in the table.
func (t RuleTable) Len() int {
	return len(t.rules)
}

// Evaluate tests subject against each rule in table order and returns the
// first rule that matches, or nil when none does. Deterministic, no side
// effects; an empty subject is a valid input.
func (t RuleTable) Evaluate(subject string) *Rule {
	for i := range t.rules {
		if t.rules[i].re.MatchString(subject) {
			r := t.rules[i].rule
			return &r
		}
	}
	return nil
}
