package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGateRulesMissingFileYieldsEmpty(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	rules, err := LoadGateRules()
	if err != nil {
		t.Fatalf("LoadGateRules failed: %v", err)
	}
	if len(rules.Dangerous)+len(rules.Protected)+len(rules.Secrets) != 0 {
		t.Errorf("Expected empty rules, got %+v", rules)
	}
}

func TestLoadGateRulesProjectFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	rulesDir := filepath.Join(dir, ".claude", "hooks")
	if err := os.MkdirAll(rulesDir, 0o750); err != nil {
		t.Fatal(err)
	}
	content := `dangerous:
  - pattern: 'terraform\s+destroy'
    label: terraform destroy
secrets:
  - pattern: 'internal_token'
    label: internal token
`
	if err := os.WriteFile(filepath.Join(rulesDir, "gate-rules.yml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadGateRules()
	if err != nil {
		t.Fatalf("LoadGateRules failed: %v", err)
	}
	if len(rules.Dangerous) != 1 || rules.Dangerous[0].Label != "terraform destroy" {
		t.Errorf("Dangerous rules not loaded: %+v", rules.Dangerous)
	}
	if len(rules.Secrets) != 1 {
		t.Errorf("Secrets rules not loaded: %+v", rules.Secrets)
	}
}

func TestLoadGateRulesMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	rulesDir := filepath.Join(dir, ".claude", "hooks")
	if err := os.MkdirAll(rulesDir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rulesDir, "gate-rules.yml"), []byte("dangerous: [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGateRules(); err == nil {
		t.Error("Expected parse error for malformed rules file")
	}
}
