package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

var (
	// Cache command availability to avoid repeated PATH lookups
	shellcheckOnce      sync.Once
	shellcheckAvailable bool
	prettierOnce        sync.Once
	prettierAvailable   bool
)

// checkShellcheckAvailable checks if shellcheck is available in PATH (cached)
func checkShellcheckAvailable() bool {
	shellcheckOnce.Do(func() {
		_, err := exec.LookPath("shellcheck")
		shellcheckAvailable = err == nil
	})
	return shellcheckAvailable
}

// checkPrettierAvailable checks if prettier is available in PATH (cached)
func checkPrettierAvailable() bool {
	prettierOnce.Do(func() {
		_, err := exec.LookPath("prettier")
		prettierAvailable = err == nil
	})
	return prettierAvailable
}

// SetAvailabilityForTesting forces availability flags for testing
func SetAvailabilityForTesting(shellcheck, prettier bool) {
	shellcheckOnce.Do(func() {})
	prettierOnce.Do(func() {})
	shellcheckAvailable = shellcheck
	prettierAvailable = prettier
}

// LintHook runs style checkers over files after they are written or edited.
// Advisory only: findings are reported, never blocked on.
type LintHook struct {
	*core.BaseHook
}

// NewLintHook creates a new lint hook instance
func NewLintHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("lint", "Style Checker", "Reports shellcheck and prettier findings on written files", ctx)
	return &LintHook{BaseHook: base}
}

// Run executes the lint hook.
func (h *LintHook) Run() error {
	return h.StandardRun(nil, h.postToolUseHandler)
}

func (h *LintHook) postToolUseHandler(_ context.Context, event *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface {
	if event.ToolName != constants.ToolEdit && event.ToolName != constants.ToolWrite {
		return cchooks.Allow()
	}

	var filePath string
	switch event.ToolName {
	case constants.ToolEdit:
		if edit, err := event.InputAsEdit(); err == nil {
			filePath = edit.FilePath
		}
	case constants.ToolWrite:
		if write, err := event.InputAsWrite(); err == nil {
			filePath = write.FilePath
		}
	}
	if filePath == "" {
		return cchooks.Allow()
	}

	passed, report := styleCheck(h.Context().CommandExecutor, filePath)
	if !passed {
		h.LogBlock("lint_finding", event.ToolName, map[string]interface{}{
			"file_path": filePath,
			"report":    report,
		})
		fmt.Fprintf(os.Stderr, "style findings for %s:\n%s\n", filePath, report)
	}
	return cchooks.Allow()
}

// styleCheck runs the matching style binary for a file. It returns passed
// plus a human-readable report; missing binaries, timeouts, and non-zero
// exits all land in the report rather than propagating.
func styleCheck(executor core.CommandExecutor, filePath string) (bool, string) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".sh", ".bash":
		if !checkShellcheckAvailable() {
			return false, "shellcheck not found in PATH"
		}
		out, err := executor.ExecuteCommandTimeout(core.DefaultCommandTimeout, "shellcheck", filePath)
		if err != nil {
			return false, fmt.Sprintf("shellcheck: %s", strings.TrimSpace(string(out)+" "+err.Error()))
		}
		return true, "shellcheck clean"
	case ".md", ".yml", ".yaml":
		if !checkPrettierAvailable() {
			return false, "prettier not found in PATH"
		}
		out, err := executor.ExecuteCommandTimeout(core.DefaultCommandTimeout, "prettier", "--check", filePath)
		if err != nil {
			return false, fmt.Sprintf("prettier: %s", strings.TrimSpace(string(out)+" "+err.Error()))
		}
		return true, "prettier clean"
	}
	return true, "no style checker for this file type"
}

// lintable reports whether styleCheck has a binary for the file.
func lintable(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".sh", ".bash", ".md", ".yml", ".yaml":
		return true
	}
	return false
}
