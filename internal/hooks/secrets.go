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

// secretRules is the built-in table for secret detection. Provider-specific
// token shapes come first; the generic assignment patterns are last because
// they are the most false-positive prone.
var secretRules = []core.Rule{
	{Pattern: `AKIA[0-9A-Z]{16}`, Label: "AWS access key"},
	{Pattern: `aws_secret_access_key\s*[=:]\s*"?[A-Za-z0-9/+=]{40}`, Label: "AWS secret key"},
	{Pattern: `ghp_[A-Za-z0-9]{20,}`, Label: "GitHub personal access token"},
	{Pattern: `github_pat_[A-Za-z0-9_]{20,}`, Label: "GitHub fine-grained token"},
	{Pattern: `xox[bpors]-[A-Za-z0-9\-]{10,}`, Label: "Slack token"},
	{Pattern: `sk_(?:live|test)_[A-Za-z0-9]{20,}`, Label: "Stripe secret key"},
	{Pattern: `-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`, Label: "private key block"},
	{Pattern: `eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_\-]{10,}`, Label: "JWT token"},
	{Pattern: `(?:api_key|apikey|api_secret)\s*[=:]\s*"?[A-Za-z0-9\-_]{16,}`, Label: "API key assignment"},
	{Pattern: `(?:password|passwd)\s*[=:]\s*"[^"$]{8,}"`, Label: "hardcoded password"},
}

// SecretRuleTable returns the compiled secret table including user
// extensions. Shared with the commit checker's staged diff scan.
func SecretRuleTable() core.RuleTable {
	return buildTable(secretRules, userSecretRules())
}

func userSecretRules() []core.Rule {
	rules, err := config.LoadGateRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring gate rules file: %v\n", err)
		return nil
	}
	return toCoreRules(rules.Secrets)
}

// SecretScanHook scans file contents about to be written for secret shapes.
// Ask policy: a finding requests confirmation, it never blocks on its own.
type SecretScanHook struct {
	*core.BaseHook
	table core.RuleTable
}

// NewSecretScanHook creates a new secret scanner instance
func NewSecretScanHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("secrets", "Secret Scanner", "Flags credentials and key material in files about to be written", ctx)
	return &SecretScanHook{
		BaseHook: base,
		table:    SecretRuleTable(),
	}
}

// Run executes the secret scanner.
func (h *SecretScanHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *SecretScanHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	if event.ToolName != constants.ToolWrite {
		return cchooks.Approve()
	}

	write, err := event.AsWrite()
	if err != nil {
		h.LogError("secrets_parse_error", event.ToolName, err)
		return cchooks.Approve()
	}

	decision := h.Evaluate(write.Content)
	if decision.Allowed() {
		return cchooks.Approve()
	}

	h.LogBlock("secrets_finding", event.ToolName, map[string]interface{}{
		"file_path":    write.FilePath,
		"matched_rule": decision.MatchedRule,
	})
	decision.Reason = fmt.Sprintf("possible %s in %s", decision.MatchedRule, write.FilePath)
	return core.PreToolResponse(decision)
}

// Evaluate runs the secret table over arbitrary content.
func (h *SecretScanHook) Evaluate(content string) core.Decision {
	return core.BuildDecision(content, h.table.Evaluate(content), core.PolicyAsk)
}
