package hooks

import (
	"strings"
	"testing"

	"github.com/deanwenchen/hookgate/internal/core"
)

func TestDangerousCommandHookMetadata(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewDangerousCommandHook(ctx)

	if hook.Key() != "dangerous" {
		t.Errorf("Expected key 'dangerous', got %q", hook.Key())
	}
	if !hook.IsEnabled() {
		t.Error("Expected hook to be enabled by default")
	}
	if err := hook.Run(); err != nil {
		t.Errorf("Hook run failed: %v", err)
	}
}

func TestDangerousCommandHookDisabled(t *testing.T) {
	ctx := core.TestHookContext(func(string) bool { return false })
	hook := NewDangerousCommandHook(ctx)

	if hook.IsEnabled() {
		t.Error("Expected hook to be disabled")
	}
	if err := hook.Run(); err != nil {
		t.Errorf("Disabled hook run failed: %v", err)
	}
}

func TestDangerousCommandEvaluate(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewDangerousCommandHook(ctx).(*DangerousCommandHook)

	testCases := []struct {
		command string
		outcome core.Outcome
		rule    string
	}{
		{"rm -rf /", core.OutcomeDeny, "root deletion"},
		{"rm -rf /*", core.OutcomeDeny, "root deletion"},
		{"rm -rf /etc", core.OutcomeDeny, "system path deletion"},
		{"sudo rm project.log", core.OutcomeDeny, "elevated deletion"},
		{"dd if=/dev/zero of=/dev/sda", core.OutcomeDeny, "raw device write"},
		{"mkfs.ext4 /dev/sda1", core.OutcomeDeny, "filesystem creation"},
		{"echo x > /dev/sda", core.OutcomeDeny, "device node redirect"},
		{":(){ :|:& };:", core.OutcomeDeny, "fork bomb"},
		{"chmod -R 777 /", core.OutcomeDeny, "recursive permission change on /"},
		{"shutdown -h now", core.OutcomeDeny, "immediate shutdown"},
		{"ls -la", core.OutcomeAllow, ""},
		{"rm -rf node_modules", core.OutcomeAllow, ""},
		{"echo hello > /dev/null", core.OutcomeAllow, ""},
		{"", core.OutcomeAllow, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.command, func(t *testing.T) {
			d := hook.Evaluate(tc.command)
			if d.Outcome != tc.outcome {
				t.Errorf("Command %q: expected %s, got %s (%s)", tc.command, tc.outcome, d.Outcome, d.Reason)
			}
			if tc.rule != "" {
				if d.MatchedRule != tc.rule {
					t.Errorf("Command %q: expected rule %q, got %q", tc.command, tc.rule, d.MatchedRule)
				}
				if !strings.Contains(d.Reason, tc.rule) {
					t.Errorf("Command %q: reason %q does not cite rule %q", tc.command, d.Reason, tc.rule)
				}
			}
			if tc.outcome == core.OutcomeAllow && d.Reason != "" {
				t.Errorf("Command %q: allow decision must carry no reason, got %q", tc.command, d.Reason)
			}
		})
	}
}

func TestDangerousCommandCaseInsensitive(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewDangerousCommandHook(ctx).(*DangerousCommandHook)

	d := hook.Evaluate("SUDO RM -rf build/")
	if d.Outcome != core.OutcomeDeny || d.MatchedRule != "elevated deletion" {
		t.Errorf("Expected case-insensitive deny on 'elevated deletion', got %+v", d)
	}
}
