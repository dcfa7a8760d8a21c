package hooks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/core"
	"github.com/tidwall/gjson"
)

// simpleReplies are short acknowledgements that never need enhancement.
var simpleReplies = map[string]struct{}{
	"ok": {}, "okay": {}, "yes": {}, "no": {},
	"continue": {}, "confirm": {}, "cancel": {}, "thanks": {}, "done": {},
}

// writingKeywords mark a prompt as a writing task.
var writingKeywords = []string{"write", "article", "draft", "blog", "essay", "post about"}

// writingGuidelines is appended to the context when a writing task is
// detected. Stdout of a UserPromptSubmit hook is added to the conversation.
const writingGuidelines = `---
## Writing guidelines (injected)
1. Style: plain, direct language; avoid filler phrasing
2. Structure: strong opening, core points, concrete examples, closing summary
3. Length: aim for 1500-2000 words
4. Review: run the quality check on the result before finishing
---`

const minPromptLength = 5

// PromptEnhanceHook watches UserPromptSubmit events and injects writing
// guidelines into the context when the prompt looks like a writing task.
// Short prompts, simple acknowledgements, and slash commands pass untouched.
type PromptEnhanceHook struct {
	*core.BaseHook
}

// NewPromptEnhanceHook creates a new prompt enhancer instance
func NewPromptEnhanceHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("prompt-enhance", "Prompt Enhancer", "Injects writing guidelines for writing-task prompts", ctx)
	return &PromptEnhanceHook{BaseHook: base}
}

// Run executes the prompt enhancer.
func (h *PromptEnhanceHook) Run() error {
	if !h.IsEnabled() {
		return nil
	}
	runner := h.Context().RunnerFactory(nil, nil, h.rawHandler)
	runner.Run()
	return nil
}

// rawHandler handles the UserPromptSubmit event, which the SDK exposes only
// as raw JSON.
func (h *PromptEnhanceHook) rawHandler(_ context.Context, rawJSON string) *cchooks.RawResponse {
	parsed := gjson.Parse(rawJSON)
	if parsed.Get("hook_event_name").String() != "UserPromptSubmit" {
		return nil
	}

	prompt := strings.TrimSpace(parsed.Get("prompt").String())
	injection, ok := h.Evaluate(prompt)
	if !ok {
		return nil
	}

	fmt.Println(injection)
	fmt.Fprintln(os.Stderr, "writing guidelines injected")
	h.LogApproval("prompt_enhanced", "UserPromptSubmit", map[string]interface{}{
		"prompt_length": len(prompt),
	})
	return nil
}

// Evaluate decides whether a prompt gets the guidelines injection and returns
// the injection content when it does.
func (h *PromptEnhanceHook) Evaluate(prompt string) (string, bool) {
	if prompt == "" || len(prompt) < minPromptLength {
		return "", false
	}
	if _, simple := simpleReplies[strings.ToLower(prompt)]; simple {
		return "", false
	}
	if strings.HasPrefix(prompt, "/") {
		return "", false
	}

	lower := strings.ToLower(prompt)
	for _, keyword := range writingKeywords {
		if strings.Contains(lower, keyword) {
			return writingGuidelines, true
		}
	}
	return "", false
}
