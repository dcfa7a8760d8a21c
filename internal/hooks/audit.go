package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

// AuditHook records every tool event as a JSON line. It always approves.
type AuditHook struct {
	*core.BaseHook
}

// AuditEntry represents an audit log entry
type AuditEntry struct {
	Timestamp string                 `json:"timestamp"`
	Event     string                 `json:"event"`
	ToolName  string                 `json:"tool_name"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// NewAuditHook creates a new audit hook instance
func NewAuditHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("audit", "Audit Hook", "Records every tool event as JSON", ctx)
	return &AuditHook{BaseHook: base}
}

// Run executes the audit hook.
func (h *AuditHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, h.postToolUseHandler)
}

// addToolSpecificDetails adds tool-specific details to the audit entry
func (h *AuditHook) addToolSpecificDetails(entry *AuditEntry, event *cchooks.PreToolUseEvent) {
	switch event.ToolName {
	case constants.ToolBash:
		if bash, err := event.AsBash(); err == nil {
			entry.Details["command"] = bash.Command
			entry.Details["description"] = bash.Description
		}
	case constants.ToolEdit:
		if edit, err := event.AsEdit(); err == nil {
			entry.Details["file_path"] = edit.FilePath
			entry.Details["old_string_length"] = len(edit.OldString)
			entry.Details["new_string_length"] = len(edit.NewString)
		}
	case constants.ToolWrite:
		if write, err := event.AsWrite(); err == nil {
			entry.Details["file_path"] = write.FilePath
			entry.Details["content_length"] = len(write.Content)
		}
	case constants.ToolRead:
		if read, err := event.AsRead(); err == nil {
			entry.Details["file_path"] = read.FilePath
		}
	case constants.ToolGlob:
		if glob, err := event.AsGlob(); err == nil {
			entry.Details["pattern"] = glob.Pattern
		}
	case constants.ToolGrep:
		if grep, err := event.AsGrep(); err == nil {
			entry.Details["pattern"] = grep.Pattern
		}
	}
}

func (h *AuditHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	entry := AuditEntry{
		Event:    "pre_tool_use",
		ToolName: event.ToolName,
		Details:  make(map[string]interface{}),
	}

	h.addToolSpecificDetails(&entry, event)
	h.logAuditEntry(entry)

	if h.Context().LoggingEnabled {
		h.LogHookEvent("pre_tool_use", event.ToolName, map[string]interface{}{
			"tool_name": event.ToolName,
		}, entry.Details)
	}

	return cchooks.Approve()
}

func (h *AuditHook) postToolUseHandler(_ context.Context, event *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface {
	entry := AuditEntry{
		Event:    "post_tool_use",
		ToolName: event.ToolName,
		Details:  make(map[string]interface{}),
	}

	h.logAuditEntry(entry)

	if h.Context().LoggingEnabled {
		h.LogHookEvent("post_tool_use", event.ToolName, map[string]interface{}{
			"tool_name": event.ToolName,
		}, entry.Details)
	}

	return cchooks.Allow()
}

func (h *AuditHook) logAuditEntry(entry AuditEntry) {
	entry.Timestamp = time.Now().Format(time.RFC3339)

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit entry: %v\n", err)
		return
	}

	fmt.Fprintln(os.Stderr, string(jsonData))
}
