package hooks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

// CommitCheckHook runs the pre-commit battery when a git commit is about to
// execute: branch guard, staged-diff secret scan, and staged-file style
// check, dispatched concurrently and joined before any output. Ask policy on
// aggregate failure; the commit is never hard-blocked.
type CommitCheckHook struct {
	*core.BaseHook
	branch  *BranchGuardHook
	secrets core.RuleTable
}

// NewCommitCheckHook creates a new commit checker instance
func NewCommitCheckHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("commit-check", "Commit Checker", "Runs branch, secret, and style checks before git commit", ctx)
	return &CommitCheckHook{
		BaseHook: base,
		branch:   NewBranchGuardHook(ctx).(*BranchGuardHook),
		secrets:  SecretRuleTable(),
	}
}

// Run executes the commit checker.
func (h *CommitCheckHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *CommitCheckHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	if event.ToolName != constants.ToolBash {
		return cchooks.Approve()
	}

	bash, err := event.AsBash()
	if err != nil {
		h.LogError("commit_check_parse_error", event.ToolName, err)
		return cchooks.Approve()
	}
	if !gitCommitRe.MatchString(bash.Command) {
		return cchooks.Approve()
	}

	results, overall := h.RunChecks(bash.Command)
	h.report(results)

	if overall {
		h.LogApproval("commit_check_passed", constants.ToolBash, map[string]interface{}{
			"command": bash.Command,
		})
		return cchooks.Approve()
	}

	failed := make([]string, 0, len(results))
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Message))
		}
		h.LogBlock("commit_check_result", constants.ToolBash, map[string]interface{}{
			"check":   r.Name,
			"passed":  r.Passed,
			"message": r.Message,
		})
	}
	decision := core.Decision{
		Outcome:     core.OutcomeAsk,
		Reason:      "commit checks failed: " + strings.Join(failed, "; "),
		MatchedRule: "commit checks",
	}
	return core.PreToolResponse(decision)
}

// RunChecks dispatches the three independent checks and joins their results.
func (h *CommitCheckHook) RunChecks(command string) ([]core.CheckResult, bool) {
	executor := h.Context().CommandExecutor
	checks := []core.Check{
		{Name: "branch", Fn: func() (bool, string, error) {
			return h.branch.CheckCurrentBranch(command)
		}},
		{Name: "secrets", Fn: func() (bool, string, error) {
			return h.checkStagedSecrets(executor)
		}},
		{Name: "style", Fn: func() (bool, string, error) {
			return h.checkStagedStyle(executor)
		}},
	}
	return core.RunAll(checks)
}

// checkStagedSecrets scans the staged diff for secret shapes.
func (h *CommitCheckHook) checkStagedSecrets(executor core.CommandExecutor) (bool, string, error) {
	out, err := executor.ExecuteCommandTimeout(core.DefaultCommandTimeout, "git", "diff", "--cached")
	if err != nil {
		return false, "", fmt.Errorf("failed to read staged diff: %v", err)
	}
	if matched := h.secrets.Evaluate(string(out)); matched != nil {
		return false, fmt.Sprintf("possible %s in staged changes", matched.Label), nil
	}
	return true, "no secrets in staged changes", nil
}

// checkStagedStyle style-checks every staged file a checker exists for.
func (h *CommitCheckHook) checkStagedStyle(executor core.CommandExecutor) (bool, string, error) {
	out, err := executor.ExecuteCommandTimeout(core.DefaultCommandTimeout, "git", "diff", "--cached", "--name-only")
	if err != nil {
		return false, "", fmt.Errorf("failed to list staged files: %v", err)
	}

	var findings []string
	for _, file := range strings.Fields(string(out)) {
		if !lintable(file) {
			continue
		}
		if passed, report := styleCheck(executor, file); !passed {
			findings = append(findings, fmt.Sprintf("%s: %s", file, report))
		}
	}
	if len(findings) > 0 {
		return false, strings.Join(findings, "; "), nil
	}
	return true, "staged files pass style checks", nil
}

// report prints one line per check on stderr.
func (h *CommitCheckHook) report(results []core.CheckResult) {
	for _, r := range results {
		marker := "ok"
		if !r.Passed {
			marker = "FAIL"
		}
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", marker, r.Name, r.Message)
	}
}
