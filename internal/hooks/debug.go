package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/brads3290/cchooks"
	"github.com/davecgh/go-spew/spew"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

// DebugHook logs every event verbosely for troubleshooting, including a full
// structured dump of the raw payload.
type DebugHook struct {
	*core.BaseHook
	logger  *log.Logger
	logFile *os.File
}

// NewDebugHook creates a new debug hook instance
func NewDebugHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("debug", "Debug Hook", "Logs all tool usage for debugging purposes", ctx)
	return &DebugHook{BaseHook: base}
}

// Run executes the debug hook.
func (h *DebugHook) Run() error {
	if !h.IsEnabled() {
		return nil
	}
	h.ensureLogger()
	if h.logger == nil {
		return fmt.Errorf("failed to initialize logger")
	}
	defer func() {
		if h.logFile != nil {
			if err := h.logFile.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "debug log close error: %v\n", err)
			}
		}
	}()
	runner := h.Context().RunnerFactory(h.preToolUseHandler, h.postToolUseHandler, h.rawHandler)
	runner.Run()
	return nil
}

func (h *DebugHook) ensureLogger() {
	if h.logger != nil {
		return
	}

	logPath := filepath.Join(constants.ClaudeDir, constants.HooksSubDir, "debug.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create debug log dir: %v\n", err)
		return
	}

	var err error
	h.logFile, err = h.Context().FileSystem.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open debug log file %s: %v\n", logPath, err)
		return
	}
	h.logger = log.New(h.logFile, "", log.LstdFlags)
}

// rawHandler dumps the whole parsed payload so field-level problems in host
// events can be inspected after the fact.
func (h *DebugHook) rawHandler(_ context.Context, rawJSON string) *cchooks.RawResponse {
	h.ensureLogger()
	if h.logger == nil {
		return nil
	}

	var rawEvent map[string]interface{}
	if err := json.Unmarshal([]byte(rawJSON), &rawEvent); err != nil {
		h.logger.Printf("RAW (unparseable): %s", rawJSON)
		return nil
	}
	h.logger.Printf("RAW EVENT:\n%s", spew.Sdump(rawEvent))
	return nil
}

func (h *DebugHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	h.ensureLogger()
	if h.logger != nil {
		h.logger.Printf("PRE-TOOL: %s", event.ToolName)
		h.logPreToolDetails(event)
	}
	return cchooks.Approve()
}

// logPreToolDetails logs tool-specific details for pre-tool events
func (h *DebugHook) logPreToolDetails(event *cchooks.PreToolUseEvent) {
	switch event.ToolName {
	case constants.ToolBash:
		if bash, err := event.AsBash(); err == nil {
			h.logger.Printf("  Command: %s", bash.Command)
		}
	case constants.ToolEdit:
		if edit, err := event.AsEdit(); err == nil {
			h.logger.Printf("  File: %s", edit.FilePath)
		}
	case constants.ToolWrite:
		if write, err := event.AsWrite(); err == nil {
			h.logger.Printf("  File: %s", write.FilePath)
		}
	case constants.ToolRead:
		if read, err := event.AsRead(); err == nil {
			h.logger.Printf("  File: %s", read.FilePath)
		}
	}
}

func (h *DebugHook) postToolUseHandler(_ context.Context, event *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface {
	h.ensureLogger()
	if h.logger != nil {
		h.logger.Printf("POST-TOOL: %s", event.ToolName)
	}
	return cchooks.Allow()
}
