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

// protectedPathRules is the built-in table for the protected path gate.
var protectedPathRules = []core.Rule{
	{Pattern: `(?:^|/)production/`, Label: "production/ protected directory"},
	{Pattern: `(?:^|/)secrets?/`, Label: "secrets/ protected directory"},
	{Pattern: `(?:^|/)\.git/`, Label: ".git internals"},
	{Pattern: `(?:^|/)\.env(?:\.|$)`, Label: ".env file"},
	{Pattern: `\.(?:pem|key|p12|pfx)$`, Label: "private key material"},
	{Pattern: `(?:^|/)terraform\.tfstate`, Label: "terraform state"},
}

// ProtectedPathHook blocks writes and edits under protected paths. Deny
// policy: a match blocks the action outright.
type ProtectedPathHook struct {
	*core.BaseHook
	table core.RuleTable
}

// NewProtectedPathHook creates a new protected path gate instance
func NewProtectedPathHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("protected-path", "Protected Path Gate", "Blocks writes to protected files and directories", ctx)
	return &ProtectedPathHook{
		BaseHook: base,
		table:    buildTable(protectedPathRules, userProtectedRules()),
	}
}

func userProtectedRules() []core.Rule {
	rules, err := config.LoadGateRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring gate rules file: %v\n", err)
		return nil
	}
	return toCoreRules(rules.Protected)
}

// Run executes the protected path gate.
func (h *ProtectedPathHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *ProtectedPathHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	var filePath string
	switch event.ToolName {
	case constants.ToolWrite:
		write, err := event.AsWrite()
		if err != nil {
			h.LogError("protected_parse_error", event.ToolName, err)
			return cchooks.Approve()
		}
		filePath = write.FilePath
	case constants.ToolEdit:
		edit, err := event.AsEdit()
		if err != nil {
			h.LogError("protected_parse_error", event.ToolName, err)
			return cchooks.Approve()
		}
		filePath = edit.FilePath
	default:
		return cchooks.Approve()
	}

	decision := h.Evaluate(filePath)
	if decision.Allowed() {
		h.LogApproval("protected_approved", event.ToolName, map[string]interface{}{
			"file_path": filePath,
		})
		return cchooks.Approve()
	}

	h.LogBlock("protected_block", event.ToolName, map[string]interface{}{
		"file_path":    filePath,
		"matched_rule": decision.MatchedRule,
	})
	return core.PreToolResponse(decision)
}

// Evaluate runs the gate's rule table over a file path.
func (h *ProtectedPathHook) Evaluate(filePath string) core.Decision {
	return core.BuildDecision(filePath, h.table.Evaluate(filePath), core.PolicyDeny)
}
