package constants

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName    = "Hookgate"
	BinaryName = "hookgate"

	// Module and repository
	ModulePath = "github.com/deanwenchen/hookgate"

	// Configuration files
	ConfigFileName   = "hookgate-config.json"
	SettingsFileName = "settings.json"
	GateRulesFile    = "gate-rules.yml"

	// Directory paths
	ClaudeDir   = ".claude"
	HooksSubDir = "hooks"
	BackupsDir  = "backups"

	// Command pattern written into settings.json hook entries
	CommandPattern = BinaryName + " hooks run"

	// Tool names as they arrive on hook events
	ToolBash  = "Bash"
	ToolEdit  = "Edit"
	ToolWrite = "Write"
	ToolRead  = "Read"
	ToolGlob  = "Glob"
	ToolGrep  = "Grep"
)

// GetConfigPath returns the full config file path under a base directory
func GetConfigPath(baseDir string) string {
	return baseDir + "/" + ClaudeDir + "/" + HooksSubDir + "/" + ConfigFileName
}
