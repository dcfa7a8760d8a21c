package hooks

import (
	"testing"

	"github.com/deanwenchen/hookgate/internal/core"
)

func TestProtectedPathEvaluate(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewProtectedPathHook(ctx).(*ProtectedPathHook)

	testCases := []struct {
		path    string
		outcome core.Outcome
		rule    string
	}{
		{"production/config.json", core.OutcomeDeny, "production/ protected directory"},
		{"deploy/production/app.yml", core.OutcomeDeny, "production/ protected directory"},
		{"secrets/db.txt", core.OutcomeDeny, "secrets/ protected directory"},
		{".git/config", core.OutcomeDeny, ".git internals"},
		{"app/.env", core.OutcomeDeny, ".env file"},
		{".env.local", core.OutcomeDeny, ".env file"},
		{"certs/server.pem", core.OutcomeDeny, "private key material"},
		{"infra/terraform.tfstate", core.OutcomeDeny, "terraform state"},
		{"src/main.go", core.OutcomeAllow, ""},
		{"docs/production-notes.md", core.OutcomeAllow, ""},
		{"environment.ts", core.OutcomeAllow, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			d := hook.Evaluate(tc.path)
			if d.Outcome != tc.outcome {
				t.Errorf("Path %q: expected %s, got %s (%s)", tc.path, tc.outcome, d.Outcome, d.Reason)
			}
			if tc.rule != "" && d.MatchedRule != tc.rule {
				t.Errorf("Path %q: expected rule %q, got %q", tc.path, tc.rule, d.MatchedRule)
			}
		})
	}
}

func TestProtectedPathHookRun(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewProtectedPathHook(ctx)

	if hook.Key() != "protected-path" {
		t.Errorf("Expected key 'protected-path', got %q", hook.Key())
	}
	if err := hook.Run(); err != nil {
		t.Errorf("Hook run failed: %v", err)
	}
}
