package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deanwenchen/hookgate/internal/constants"
	yaml "gopkg.in/yaml.v3"
)

// RuleSpec is a user-supplied (pattern, label) pair in gate-rules.yml.
type RuleSpec struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`
}

// GateRules holds the optional user extensions to the built-in rule tables.
// Rules load once at startup and are appended after the built-ins, so the
// built-in rules always win when both would match.
type GateRules struct {
	Dangerous []RuleSpec `yaml:"dangerous,omitempty"`
	Protected []RuleSpec `yaml:"protected,omitempty"`
	Secrets   []RuleSpec `yaml:"secrets,omitempty"`
}

// candidateRulePaths returns possible gate-rules.yml locations, project scope
// before global scope. The first readable file wins.
func candidateRulePaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, constants.ClaudeDir, constants.HooksSubDir, constants.GateRulesFile))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, constants.ClaudeDir, constants.HooksSubDir, constants.GateRulesFile))
	}
	return paths
}

// LoadGateRules loads user rule extensions. A missing file yields empty
// rules; a malformed file is reported so the operator can fix it, but callers
// are expected to degrade to built-ins only.
func LoadGateRules() (*GateRules, error) {
	for _, path := range candidateRulePaths() {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path) // #nosec G304 - controlled config paths
		if err != nil {
			continue
		}
		rules := &GateRules{}
		if err := yaml.Unmarshal(data, rules); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %v", path, err)
		}
		return rules, nil
	}
	return &GateRules{}, nil
}
