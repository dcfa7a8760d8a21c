package hooks

import (
	"errors"
	"strings"
	"testing"

	"github.com/deanwenchen/hookgate/internal/core"
)

func TestStyleCheckShellScript(t *testing.T) {
	SetAvailabilityForTesting(true, true)
	executor := core.NewMockCommandExecutor()

	passed, report := styleCheck(executor, "scripts/deploy.sh")
	if !passed {
		t.Errorf("Expected clean shellcheck run, got %q", report)
	}
	if !executor.WasCommandExecuted("shellcheck", "scripts/deploy.sh") {
		t.Error("Expected shellcheck to be invoked")
	}
}

func TestStyleCheckShellScriptFindings(t *testing.T) {
	SetAvailabilityForTesting(true, true)
	executor := core.NewMockCommandExecutor()
	executor.SetResponse("shellcheck scripts/deploy.sh", []byte("SC2086: quote this"), errors.New("exit status 1"))

	passed, report := styleCheck(executor, "scripts/deploy.sh")
	if passed {
		t.Error("Expected failing style check")
	}
	if !strings.Contains(report, "SC2086") {
		t.Errorf("Report %q should carry the checker output", report)
	}
}

func TestStyleCheckMarkdownUsesPrettier(t *testing.T) {
	SetAvailabilityForTesting(true, true)
	executor := core.NewMockCommandExecutor()

	passed, _ := styleCheck(executor, "docs/README.md")
	if !passed {
		t.Error("Expected clean prettier run")
	}
	if !executor.WasCommandExecuted("prettier", "--check", "docs/README.md") {
		t.Error("Expected prettier --check to be invoked")
	}
}

func TestStyleCheckMissingBinaryReported(t *testing.T) {
	SetAvailabilityForTesting(false, false)
	defer SetAvailabilityForTesting(true, true)
	executor := core.NewMockCommandExecutor()

	passed, report := styleCheck(executor, "scripts/deploy.sh")
	if passed {
		t.Error("Missing binary must surface as a failing report")
	}
	if !strings.Contains(report, "shellcheck not found") {
		t.Errorf("Unexpected report: %q", report)
	}
	if len(executor.GetExecutedCommands()) != 0 {
		t.Error("No command should run when the binary is missing")
	}
}

func TestStyleCheckUnknownExtension(t *testing.T) {
	executor := core.NewMockCommandExecutor()

	passed, _ := styleCheck(executor, "main.go")
	if !passed {
		t.Error("Files without a checker pass by definition")
	}
	if len(executor.GetExecutedCommands()) != 0 {
		t.Error("No command should run for unknown extensions")
	}
}

func TestLintable(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{"run.sh", true},
		{"setup.BASH", true},
		{"notes.md", true},
		{"config.yml", true},
		{"stack.yaml", true},
		{"main.go", false},
		{"Makefile", false},
	}
	for _, tc := range testCases {
		if got := lintable(tc.path); got != tc.want {
			t.Errorf("lintable(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestLintHookMetadata(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewLintHook(ctx)

	if hook.Key() != "lint" {
		t.Errorf("Expected key 'lint', got %q", hook.Key())
	}
	if err := hook.Run(); err != nil {
		t.Errorf("Hook run failed: %v", err)
	}
}
