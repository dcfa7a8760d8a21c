// Package hooks provides the built-in checkers: command and path gates,
// secret scanning, branch guarding, commit checking, and supporting hooks.
package hooks

import (
	"context"
	"fmt"
	"os"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/config"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

// dangerousCommandRules is the built-in table for the dangerous command gate.
// Order matters: the earliest matching rule is the one reported.
var dangerousCommandRules = []core.Rule{
	{Pattern: `\brm\s+(?:-[a-z]+\s+)*/(?:\s|$|\*)`, Label: "root deletion"},
	{Pattern: `\brm\s+(?:-[a-z]+\s+)*/(?:etc|usr|bin|sbin|var|boot|lib|home)\b`, Label: "system path deletion"},
	{Pattern: `\bsudo\s+rm\b`, Label: "elevated deletion"},
	{Pattern: `\bdd\s+if=\S+\s+of=/dev/`, Label: "raw device write"},
	{Pattern: `\bmkfs(?:\.\w+)?\b`, Label: "filesystem creation"},
	{Pattern: `>\s*/dev/(?:sd|hd|nvme|disk)`, Label: "device node redirect"},
	{Pattern: `:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`, Label: "fork bomb"},
	{Pattern: `\bchmod\s+-[a-z]*R[a-z]*\s+[0-7]{3,4}\s+/(?:\s|$)`, Label: "recursive permission change on /"},
	{Pattern: `\bchown\s+-[a-z]*R[a-z]*\s+\S+\s+/(?:\s|$)`, Label: "recursive ownership change on /"},
	{Pattern: `\bshutdown\s+-[hr]\s+now\b`, Label: "immediate shutdown"},
}

// DangerousCommandHook blocks shell commands matching the dangerous command
// table. Deny policy: a match blocks the action outright.
type DangerousCommandHook struct {
	*core.BaseHook
	table core.RuleTable
}

// NewDangerousCommandHook creates a new dangerous command gate instance
func NewDangerousCommandHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("dangerous", "Dangerous Command Gate", "Blocks destructive shell commands before they run", ctx)
	return &DangerousCommandHook{
		BaseHook: base,
		table:    buildTable(dangerousCommandRules, userDangerousRules()),
	}
}

// buildTable compiles the built-in rules and appends user extensions. The
// built-ins are static and must compile; user rules that fail to compile are
// dropped with a notice rather than breaking the gate.
func buildTable(builtin []core.Rule, user []core.Rule) core.RuleTable {
	table := core.MustCompileRules(builtin)
	if len(user) == 0 {
		return table
	}
	extended, err := table.Append(user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring user rules: %v\n", err)
		return table
	}
	return extended
}

func userDangerousRules() []core.Rule {
	rules, err := config.LoadGateRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring gate rules file: %v\n", err)
		return nil
	}
	return toCoreRules(rules.Dangerous)
}

func toCoreRules(specs []config.RuleSpec) []core.Rule {
	out := make([]core.Rule, 0, len(specs))
	for _, s := range specs {
		out = append(out, core.Rule{Pattern: s.Pattern, Label: s.Label})
	}
	return out
}

// Run executes the dangerous command gate.
func (h *DangerousCommandHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *DangerousCommandHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	if event.ToolName != constants.ToolBash {
		return cchooks.Approve()
	}

	bash, err := event.AsBash()
	if err != nil {
		// Fail open: an unparseable payload must not block the tool.
		h.LogError("dangerous_parse_error", event.ToolName, err)
		return cchooks.Approve()
	}

	decision := h.Evaluate(bash.Command)
	if decision.Allowed() {
		h.LogApproval("dangerous_approved", constants.ToolBash, map[string]interface{}{
			"command": bash.Command,
		})
		return cchooks.Approve()
	}

	h.LogBlock("dangerous_block", constants.ToolBash, map[string]interface{}{
		"command":      bash.Command,
		"matched_rule": decision.MatchedRule,
		"reason":       decision.Reason,
	})
	return core.PreToolResponse(decision)
}

// Evaluate runs the gate's rule table over a raw command line.
func (h *DangerousCommandHook) Evaluate(command string) core.Decision {
	return core.BuildDecision(command, h.table.Evaluate(command), core.PolicyDeny)
}
