package hooks

import (
	"strings"
	"testing"

	"github.com/deanwenchen/hookgate/internal/core"
)

func TestPromptEnhanceEvaluate(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewPromptEnhanceHook(ctx).(*PromptEnhanceHook)

	testCases := []struct {
		name    string
		prompt  string
		enhance bool
	}{
		{"writing task", "please write an article about Go generics", true},
		{"draft request", "Draft a blog announcement for the release", true},
		{"uppercase keyword", "WRITE the migration guide", true},
		{"simple reply", "ok", false},
		{"simple reply mixed case", "Continue", false},
		{"too short", "fix", false},
		{"slash command", "/help writing", false},
		{"non-writing task", "refactor the settings loader", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			injection, ok := hook.Evaluate(tc.prompt)
			if ok != tc.enhance {
				t.Errorf("Prompt %q: expected enhance=%v, got %v", tc.prompt, tc.enhance, ok)
			}
			if ok && !strings.Contains(injection, "Writing guidelines") {
				t.Errorf("Injection should carry the guidelines, got %q", injection)
			}
			if !ok && injection != "" {
				t.Errorf("Non-enhanced prompt must yield no injection, got %q", injection)
			}
		})
	}
}

func TestPromptEnhanceHookMetadata(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewPromptEnhanceHook(ctx)

	if hook.Key() != "prompt-enhance" {
		t.Errorf("Expected key 'prompt-enhance', got %q", hook.Key())
	}
	if err := hook.Run(); err != nil {
		t.Errorf("Hook run failed: %v", err)
	}
}
