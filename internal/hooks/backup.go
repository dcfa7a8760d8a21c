package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
)

// BackupHook copies a file into the backup directory before it is written or
// edited. Every failure path approves: a backup problem must never block the
// write itself.
type BackupHook struct {
	*core.BaseHook
}

// NewBackupHook creates a new backup hook instance
func NewBackupHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("backup", "File Backup", "Copies files aside before they are modified", ctx)
	return &BackupHook{BaseHook: base}
}

// Run executes the backup hook.
func (h *BackupHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *BackupHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	var filePath string
	switch event.ToolName {
	case constants.ToolWrite:
		if write, err := event.AsWrite(); err == nil {
			filePath = write.FilePath
		}
	case constants.ToolEdit:
		if edit, err := event.AsEdit(); err == nil {
			filePath = edit.FilePath
		}
	default:
		return cchooks.Approve()
	}
	if filePath == "" {
		return cchooks.Approve()
	}

	if err := h.backupFile(filePath); err != nil {
		h.LogError("backup_failed", event.ToolName, err)
		fmt.Fprintf(os.Stderr, "backup of %s failed: %v\n", filePath, err)
	}
	return cchooks.Approve()
}

// backupFile copies filePath into the backup directory with a timestamp
// suffix, preserving metadata via cp -p. A file that does not exist yet needs
// no backup.
func (h *BackupHook) backupFile(filePath string) error {
	if _, err := h.Context().FileSystem.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("file not accessible: %w", err)
	}

	backupDir := filepath.Join(constants.ClaudeDir, constants.BackupsDir)
	if err := os.MkdirAll(backupDir, 0o750); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	dest := filepath.Join(backupDir,
		fmt.Sprintf("%s.%s", filepath.Base(filePath), time.Now().Format("20060102-150405")))
	out, err := h.Context().CommandExecutor.ExecuteCommandTimeout(
		core.DefaultCommandTimeout, "cp", "-p", filePath, dest)
	if err != nil {
		return fmt.Errorf("cp failed: %s", string(out))
	}

	h.LogApproval("backup_created", constants.ToolWrite, map[string]interface{}{
		"source": filePath,
		"backup": dest,
	})
	return nil
}
