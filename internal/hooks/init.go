package hooks

import "github.com/deanwenchen/hookgate/internal/core"

// init registers all built-in checkers
func init() {
	builtinHooks := map[string]core.HookFactory{
		"dangerous":      NewDangerousCommandHook,
		"protected-path": NewProtectedPathHook,
		"secrets":        NewSecretScanHook,
		"branch":         NewBranchGuardHook,
		"commit-check":   NewCommitCheckHook,
		"lint":           NewLintHook,
		"article":        NewArticleQualityHook,
		"prompt-enhance": NewPromptEnhanceHook,
		"audit":          NewAuditHook,
		"debug":          NewDebugHook,
		"backup":         NewBackupHook,
		"notify":         NewNotifyHook,
	}
	core.RegisterBuiltinHooks(builtinHooks)
}
