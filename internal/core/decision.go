package core

import "fmt"

// Outcome is the structured result of evaluating a subject against a checker.
type Outcome string

const (
	OutcomeAllow Outcome = "allow"
	OutcomeDeny  Outcome = "deny"
	OutcomeAsk   Outcome = "ask"
)

// Policy selects how a rule match maps onto an outcome.
type Policy int

const (
	// PolicyDeny blocks the action outright on a match.
	PolicyDeny Policy = iota
	// PolicyAsk surfaces a match as a request for human confirmation,
	// never an automatic block.
	PolicyAsk
)

// Decision is the allow/deny/ask outcome returned to the invoking host.
// Created fresh per invocation and never persisted structurally.
type Decision struct {
	Outcome     Outcome
	Reason      string
	MatchedRule string
}

// Allowed reports whether the decision lets the action proceed unprompted.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// BuildDecision maps a match (or its absence) onto a Decision under the given
// policy. When matched is nil the outcome is always allow with no reason.
func BuildDecision(subject string, matched *Rule, policy Policy) Decision {
	if matched == nil {
		return Decision{Outcome: OutcomeAllow}
	}

	d := Decision{
		Reason:      fmt.Sprintf("matched rule: %s", matched.Label),
		MatchedRule: matched.Label,
	}
	switch policy {
	case PolicyAsk:
		d.Outcome = OutcomeAsk
	default:
		d.Outcome = OutcomeDeny
	}
	return d
}
