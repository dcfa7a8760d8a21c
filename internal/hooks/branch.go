package hooks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/config"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

var (
	gitCommitRe      = regexp.MustCompile(`\bgit\s+commit\b`)
	gitMergeRe       = regexp.MustCompile(`\bgit\s+merge\b`)
	gitRebaseRe      = regexp.MustCompile(`\bgit\s+rebase\b`)
	gitCheckoutRe    = regexp.MustCompile(`\bgit\s+(?:checkout|switch)\s+(\S+)`)
	gitCheckoutNewRe = regexp.MustCompile(`\bgit\s+(?:checkout|switch)\s+-[bB]\s`)
	gitReadOnlyRe    = regexp.MustCompile(`\bgit\s+(?:status|log|diff|show|branch|remote|fetch|stash\s+list|tag\s+-l)\b`)
)

// defaultProtectedBranches are always protected; the config file can add more.
var defaultProtectedBranches = []string{"main", "master"}

// BranchGuardHook asks for confirmation before history-changing git commands
// on a protected branch. Ask policy: never an automatic block.
type BranchGuardHook struct {
	*core.BaseHook
	protected []string
}

// NewBranchGuardHook creates a new branch guard instance
func NewBranchGuardHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("branch", "Branch Guard", "Asks before commits, merges, and rebases on protected branches", ctx)
	return &BranchGuardHook{
		BaseHook:  base,
		protected: protectedBranches(),
	}
}

func protectedBranches() []string {
	branches := append([]string{}, defaultProtectedBranches...)
	branches = append(branches, config.ProtectedBranchesFromConfig()...)
	return branches
}

// Run executes the branch guard.
func (h *BranchGuardHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *BranchGuardHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	if event.ToolName != constants.ToolBash {
		return cchooks.Approve()
	}

	bash, err := event.AsBash()
	if err != nil {
		h.LogError("branch_parse_error", event.ToolName, err)
		return cchooks.Approve()
	}

	decision := h.Evaluate(bash.Command)
	if decision.Allowed() {
		return cchooks.Approve()
	}

	h.LogBlock("branch_finding", constants.ToolBash, map[string]interface{}{
		"command":      bash.Command,
		"matched_rule": decision.MatchedRule,
		"reason":       decision.Reason,
	})
	return core.PreToolResponse(decision)
}

// Evaluate inspects a shell command for history-changing git operations on a
// protected branch. Failure to determine the current branch fails open.
func (h *BranchGuardHook) Evaluate(command string) core.Decision {
	if !strings.Contains(command, "git") {
		return core.Decision{Outcome: core.OutcomeAllow}
	}
	if gitReadOnlyRe.MatchString(command) && !gitCommitRe.MatchString(command) && !gitMergeRe.MatchString(command) {
		return core.Decision{Outcome: core.OutcomeAllow}
	}

	// Checkout of a protected branch is flagged regardless of where we are;
	// creating a new branch (-b/-B) is always fine.
	if m := gitCheckoutRe.FindStringSubmatch(command); m != nil && !gitCheckoutNewRe.MatchString(command) {
		for _, p := range h.protected {
			if m[1] == p {
				return core.Decision{
					Outcome:     core.OutcomeAsk,
					Reason:      fmt.Sprintf("checkout of protected branch %q", p),
					MatchedRule: "protected branch checkout",
				}
			}
		}
	}

	passed, message, err := h.CheckCurrentBranch(command)
	if err != nil {
		// Can't query git: fail open.
		return core.Decision{Outcome: core.OutcomeAllow}
	}
	if passed {
		return core.Decision{Outcome: core.OutcomeAllow}
	}
	return core.Decision{
		Outcome:     core.OutcomeAsk,
		Reason:      message,
		MatchedRule: "protected branch",
	}
}

// CheckCurrentBranch reports whether the command is safe on the branch git
// says we are on. Doubles as the branch check of the commit checker.
func (h *BranchGuardHook) CheckCurrentBranch(command string) (bool, string, error) {
	if !gitCommitRe.MatchString(command) && !gitMergeRe.MatchString(command) && !gitRebaseRe.MatchString(command) {
		return true, "no history-changing git command", nil
	}

	out, err := h.Context().CommandExecutor.ExecuteCommandTimeout(
		core.DefaultCommandTimeout, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return false, "", fmt.Errorf("failed to query current branch: %v", err)
	}
	current := strings.TrimSpace(string(out))

	for _, p := range h.protected {
		if current == p {
			op := "commit"
			switch {
			case gitMergeRe.MatchString(command):
				op = "merge"
			case gitRebaseRe.MatchString(command):
				op = "rebase"
			}
			return false, fmt.Sprintf("%s on protected branch %q", op, current), nil
		}
	}
	return true, fmt.Sprintf("branch %q is not protected", current), nil
}
