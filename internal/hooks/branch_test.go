package hooks

import (
	"errors"
	"strings"
	"testing"

	"github.com/deanwenchen/hookgate/internal/core"
)

func branchGuardWithBranch(t *testing.T, branch string) (*BranchGuardHook, *core.MockCommandExecutor) {
	t.Helper()
	ctx := core.TestHookContext(nil)
	executor := ctx.CommandExecutor.(*core.MockCommandExecutor)
	executor.SetResponse("git rev-parse", []byte(branch+"\n"), nil)
	return NewBranchGuardHook(ctx).(*BranchGuardHook), executor
}

func TestBranchGuardCommitOnProtectedBranch(t *testing.T) {
	hook, _ := branchGuardWithBranch(t, "main")

	d := hook.Evaluate("git commit -m 'wip'")
	if d.Outcome != core.OutcomeAsk {
		t.Errorf("Expected ask on main, got %s (%s)", d.Outcome, d.Reason)
	}
	if !strings.Contains(d.Reason, `commit on protected branch "main"`) {
		t.Errorf("Unexpected reason: %q", d.Reason)
	}
}

func TestBranchGuardCommitOnFeatureBranch(t *testing.T) {
	hook, _ := branchGuardWithBranch(t, "feature/login")

	d := hook.Evaluate("git commit -m 'wip'")
	if d.Outcome != core.OutcomeAllow {
		t.Errorf("Expected allow on feature branch, got %s (%s)", d.Outcome, d.Reason)
	}
}

func TestBranchGuardMergeAndRebase(t *testing.T) {
	hook, _ := branchGuardWithBranch(t, "master")

	testCases := []struct {
		command string
		op      string
	}{
		{"git merge feature/login", "merge"},
		{"git rebase origin/master", "rebase"},
	}
	for _, tc := range testCases {
		d := hook.Evaluate(tc.command)
		if d.Outcome != core.OutcomeAsk {
			t.Errorf("Command %q: expected ask, got %s", tc.command, d.Outcome)
		}
		if !strings.Contains(d.Reason, tc.op) {
			t.Errorf("Command %q: reason %q missing op %q", tc.command, d.Reason, tc.op)
		}
	}
}

func TestBranchGuardReadOnlyCommandsAllowed(t *testing.T) {
	hook, executor := branchGuardWithBranch(t, "main")

	for _, command := range []string{"git status", "git log --oneline", "git diff HEAD~1", "git branch -a"} {
		d := hook.Evaluate(command)
		if d.Outcome != core.OutcomeAllow {
			t.Errorf("Command %q: expected allow, got %s (%s)", command, d.Outcome, d.Reason)
		}
	}
	if executor.WasCommandExecuted("git", "rev-parse") {
		t.Error("Read-only commands should not query the current branch")
	}
}

func TestBranchGuardProtectedCheckout(t *testing.T) {
	hook, _ := branchGuardWithBranch(t, "feature/login")

	d := hook.Evaluate("git checkout main")
	if d.Outcome != core.OutcomeAsk || d.MatchedRule != "protected branch checkout" {
		t.Errorf("Expected checkout ask, got %+v", d)
	}

	d = hook.Evaluate("git checkout -b main-fix")
	if d.Outcome != core.OutcomeAllow {
		t.Errorf("New-branch checkout should be allowed, got %s (%s)", d.Outcome, d.Reason)
	}

	d = hook.Evaluate("git switch feature/other")
	if d.Outcome != core.OutcomeAllow {
		t.Errorf("Switch to unprotected branch should be allowed, got %s", d.Outcome)
	}
}

func TestBranchGuardFailsOpenWhenGitUnavailable(t *testing.T) {
	ctx := core.TestHookContext(nil)
	executor := ctx.CommandExecutor.(*core.MockCommandExecutor)
	executor.SetResponse("git rev-parse", nil, errors.New("not a git repository"))
	hook := NewBranchGuardHook(ctx).(*BranchGuardHook)

	d := hook.Evaluate("git commit -m 'wip'")
	if d.Outcome != core.OutcomeAllow {
		t.Errorf("Expected fail-open allow when git errors, got %s (%s)", d.Outcome, d.Reason)
	}
}

func TestBranchGuardNonGitCommands(t *testing.T) {
	hook, executor := branchGuardWithBranch(t, "main")

	d := hook.Evaluate("make build")
	if d.Outcome != core.OutcomeAllow {
		t.Errorf("Expected allow for non-git command, got %s", d.Outcome)
	}
	if len(executor.GetExecutedCommands()) != 0 {
		t.Error("Non-git commands should not shell out at all")
	}
}

func TestCheckCurrentBranchAsCommitCheck(t *testing.T) {
	hook, _ := branchGuardWithBranch(t, "main")

	passed, message, err := hook.CheckCurrentBranch("git commit -m 'wip'")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if passed {
		t.Error("Expected failing branch check on main")
	}
	if !strings.Contains(message, "main") {
		t.Errorf("Message %q should name the branch", message)
	}

	passed, _, err = hook.CheckCurrentBranch("git push origin main")
	if err != nil || !passed {
		t.Errorf("Non-history command should pass, got passed=%v err=%v", passed, err)
	}
}
