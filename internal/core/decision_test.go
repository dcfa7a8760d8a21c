package core

import "testing"

func TestBuildDecisionNoMatchAlwaysAllows(t *testing.T) {
	for _, policy := range []Policy{PolicyDeny, PolicyAsk} {
		d := BuildDecision("ls -la", nil, policy)
		if d.Outcome != OutcomeAllow {
			t.Errorf("Policy %v: expected allow, got %s", policy, d.Outcome)
		}
		if d.Reason != "" {
			t.Errorf("Policy %v: expected empty reason, got %q", policy, d.Reason)
		}
		if !d.Allowed() {
			t.Errorf("Policy %v: Allowed() should be true", policy)
		}
	}
}

func TestBuildDecisionDenyOnMatch(t *testing.T) {
	rule := &Rule{Pattern: `rm\s+-rf\s+/`, Label: "root deletion"}
	d := BuildDecision("rm -rf /", rule, PolicyDeny)

	if d.Outcome != OutcomeDeny {
		t.Errorf("Expected deny, got %s", d.Outcome)
	}
	if d.MatchedRule != "root deletion" {
		t.Errorf("Expected matched rule 'root deletion', got %q", d.MatchedRule)
	}
	if d.Reason == "" {
		t.Error("Expected non-empty reason on deny")
	}
	if d.Allowed() {
		t.Error("Deny decision must not be Allowed()")
	}
}

func TestBuildDecisionAskOnMatch(t *testing.T) {
	rule := &Rule{Pattern: `api_key`, Label: "API key assignment"}
	d := BuildDecision(`api_key="abcd1234567890efghij"`, rule, PolicyAsk)

	if d.Outcome != OutcomeAsk {
		t.Errorf("Expected ask, got %s", d.Outcome)
	}
	if d.MatchedRule != "API key assignment" {
		t.Errorf("Expected matched rule label in decision, got %q", d.MatchedRule)
	}
	if d.Allowed() {
		t.Error("Ask decision must not be Allowed()")
	}
}
