package core

import (
	"fmt"
	"os"

	"github.com/brads3290/cchooks"
)

// DualMessagePreToolResponse wraps PreToolUse responses with separate
// messages for end-users and AI agents. It embeds the actual
// cchooks.PreToolUseResponse to satisfy the interface.
type DualMessagePreToolResponse struct {
	*cchooks.PreToolUseResponse
	userMessage  string
	agentMessage string
}

// GetUserMessage returns the message intended for the end-user.
func (r *DualMessagePreToolResponse) GetUserMessage() string {
	return r.userMessage
}

// GetAgentMessage returns the message intended for the AI agent.
func (r *DualMessagePreToolResponse) GetAgentMessage() string {
	return r.agentMessage
}

// BlockWithMessages creates a blocking response for PreToolUse events with
// separate messages for users and agents. If agentMsg is omitted, userMsg is
// sent to both audiences.
func BlockWithMessages(userMsg string, agentMsg ...string) cchooks.PreToolUseResponseInterface {
	agent := userMsg
	if len(agentMsg) > 0 {
		agent = agentMsg[0]
	}
	return &DualMessagePreToolResponse{
		PreToolUseResponse: cchooks.Block(userMsg),
		userMessage:        userMsg,
		agentMessage:       agent,
	}
}

// AskWithMessages creates a permission request for PreToolUse events.
//
// cchooks v0.7.0 has no native ask response, so this surfaces the request on
// stderr (the host shows hook stderr to the user) and otherwise approves.
// TODO: switch to the SDK's ask response once cchooks grows one.
func AskWithMessages(userMsg string, agentMsg ...string) cchooks.PreToolUseResponseInterface {
	agent := userMsg
	if len(agentMsg) > 0 {
		agent = agentMsg[0]
	}
	fmt.Fprintf(os.Stderr, "confirmation requested: %s\n", userMsg)
	return &DualMessagePreToolResponse{
		PreToolUseResponse: cchooks.Approve(),
		userMessage:        userMsg,
		agentMessage:       agent,
	}
}

// PreToolResponse converts a Decision into the response the SDK expects for
// PreToolUse events.
func PreToolResponse(d Decision) cchooks.PreToolUseResponseInterface {
	switch d.Outcome {
	case OutcomeDeny:
		return BlockWithMessages(d.Reason, fmt.Sprintf("blocked: %s (rule %q)", d.Reason, d.MatchedRule))
	case OutcomeAsk:
		return AskWithMessages(d.Reason, fmt.Sprintf("confirmation needed: %s (rule %q)", d.Reason, d.MatchedRule))
	default:
		return cchooks.Approve()
	}
}
