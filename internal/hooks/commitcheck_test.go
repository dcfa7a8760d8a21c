package hooks

import (
	"errors"
	"strings"
	"testing"

	"github.com/deanwenchen/hookgate/internal/core"
)

var (
	errGitIndexLocked = errors.New("fatal: index.lock exists")
	errExitStatusOne  = errors.New("exit status 1")
)

func commitCheckFixture(t *testing.T) (*CommitCheckHook, *core.MockCommandExecutor) {
	t.Helper()
	ctx := core.TestHookContext(nil)
	executor := ctx.CommandExecutor.(*core.MockCommandExecutor)
	return NewCommitCheckHook(ctx).(*CommitCheckHook), executor
}

func resultsByName(t *testing.T, results []core.CheckResult) map[string]core.CheckResult {
	t.Helper()
	byName := make(map[string]core.CheckResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	return byName
}

func TestCommitCheckAllPass(t *testing.T) {
	hook, executor := commitCheckFixture(t)
	executor.SetResponse("git rev-parse", []byte("feature/login\n"), nil)
	executor.SetResponse("git diff", []byte("+ normal change\n"), nil)

	results, overall := hook.RunChecks("git commit -m 'wip'")
	if !overall {
		t.Errorf("Expected overall pass, results: %+v", results)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Checks complete in whatever order the workers finish; compare as a set.
	byName := resultsByName(t, results)
	for _, name := range []string{"branch", "secrets", "style"} {
		r, ok := byName[name]
		if !ok {
			t.Errorf("Missing result for check %q", name)
			continue
		}
		if !r.Passed {
			t.Errorf("Check %q: expected pass, got %q", name, r.Message)
		}
	}
}

func TestCommitCheckStagedSecretIsNonFatalToSiblings(t *testing.T) {
	hook, executor := commitCheckFixture(t)
	executor.SetResponse("git rev-parse", []byte("feature/login\n"), nil)
	executor.SetResponse("git diff", []byte(`+api_key="abcd1234567890efghij"`+"\n"), nil)

	results, overall := hook.RunChecks("git commit -m 'wip'")
	if overall {
		t.Error("Expected overall failure with staged secret")
	}

	byName := resultsByName(t, results)
	secrets := byName["secrets"]
	if secrets.Passed {
		t.Error("Expected secrets check to fail")
	}
	if !strings.Contains(secrets.Message, "API key assignment") {
		t.Errorf("Secrets message %q should name the rule", secrets.Message)
	}
	if !byName["branch"].Passed {
		t.Errorf("Branch check should still pass: %q", byName["branch"].Message)
	}
	if !byName["style"].Passed {
		t.Errorf("Style check should still pass: %q", byName["style"].Message)
	}
}

func TestCommitCheckErroringCheckBecomesFailingResult(t *testing.T) {
	hook, executor := commitCheckFixture(t)
	executor.SetResponse("git rev-parse", []byte("feature/login\n"), nil)
	executor.SetResponse("git diff", nil, errGitIndexLocked)

	results, overall := hook.RunChecks("git commit -m 'wip'")
	if overall {
		t.Error("Expected overall failure when a check errors")
	}

	byName := resultsByName(t, results)
	secrets := byName["secrets"]
	if secrets.Passed {
		t.Error("Erroring check must surface as a failing result")
	}
	if secrets.Message == "" {
		t.Error("Erroring check must carry a non-empty message")
	}
	// The sibling that did not error is unaffected.
	if !byName["branch"].Passed {
		t.Errorf("Branch check should still pass: %q", byName["branch"].Message)
	}
}

func TestCommitCheckProtectedBranchFails(t *testing.T) {
	hook, executor := commitCheckFixture(t)
	executor.SetResponse("git rev-parse", []byte("main\n"), nil)
	executor.SetResponse("git diff", []byte("+ normal change\n"), nil)

	results, overall := hook.RunChecks("git commit -m 'wip'")
	if overall {
		t.Error("Expected overall failure on protected branch")
	}
	branch := resultsByName(t, results)["branch"]
	if branch.Passed || !strings.Contains(branch.Message, "main") {
		t.Errorf("Expected failing branch result naming main, got %+v", branch)
	}
}

func TestCommitCheckStagedStyleFindings(t *testing.T) {
	SetAvailabilityForTesting(true, true)
	hook, executor := commitCheckFixture(t)
	executor.SetResponse("git rev-parse", []byte("feature/login\n"), nil)
	executor.SetResponse("git diff", []byte("scripts/deploy.sh\nREADME.md\nmain.go\n"), nil)
	executor.SetResponse("shellcheck scripts/deploy.sh", []byte("SC2086: quote this"), errExitStatusOne)

	results, overall := hook.RunChecks("git commit -m 'wip'")
	if overall {
		t.Error("Expected overall failure with style findings")
	}
	style := resultsByName(t, results)["style"]
	if style.Passed {
		t.Error("Expected style check to fail")
	}
	if !strings.Contains(style.Message, "scripts/deploy.sh") {
		t.Errorf("Style message %q should name the offending file", style.Message)
	}
	if executor.WasCommandExecuted("shellcheck", "main.go") {
		t.Error("Files without a style checker must not be passed to shellcheck")
	}
}
