package core

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"time"

	"github.com/brads3290/cchooks"
)

// DefaultCommandTimeout bounds every external process call a checker makes.
// Expiry is converted into a failing result, never a crash.
const DefaultCommandTimeout = 10 * time.Second

// Hook defines the interface that all checker implementations must satisfy
type Hook interface {
	// Key returns the unique identifier for this checker
	Key() string
	// Name returns the human-readable name for this checker
	Name() string
	// Description returns a description of what this checker does
	Description() string
	// Run executes the checker and returns any error
	Run() error
	// IsEnabled checks if this checker is enabled in the current context
	IsEnabled() bool
}

// BaseHook provides common functionality for all checkers
type BaseHook struct {
	key         string
	name        string
	description string
	context     *HookContext
}

// Key returns the checker key
func (h *BaseHook) Key() string {
	return h.key
}

// Name returns the checker name
func (h *BaseHook) Name() string {
	return h.name
}

// Description returns the checker description
func (h *BaseHook) Description() string {
	return h.description
}

// IsEnabled checks if the checker is enabled by consulting settings
func (h *BaseHook) IsEnabled() bool {
	return h.context.SettingsChecker(h.key)
}

// Context returns the hook context
func (h *BaseHook) Context() *HookContext {
	return h.context
}

// NewBaseHook creates a new BaseHook with the given metadata
func NewBaseHook(key, name, description string, ctx *HookContext) *BaseHook {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &BaseHook{
		key:         key,
		name:        name,
		description: description,
		context:     ctx,
	}
}

// FileSystem interface for dependency injection in testing
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem using the real filesystem
type RealFileSystem struct{}

// ReadFile reads the named file
func (fs *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 - filesystem interface, paths controlled by caller
}

// WriteFile writes data to a file with the specified permissions
func (fs *RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

// OpenFile opens a file with the specified flags and permissions
func (fs *RealFileSystem) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm) // #nosec G304 - filesystem interface, paths controlled by caller
}

// Stat returns file information for the specified path
func (fs *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// CommandExecutor interface for dependency injection in testing. Every call
// is bounded: ExecuteCommand uses DefaultCommandTimeout.
type CommandExecutor interface {
	ExecuteCommand(name string, args ...string) ([]byte, error)
	ExecuteCommandTimeout(timeout time.Duration, name string, args ...string) ([]byte, error)
}

// RealCommandExecutor implements CommandExecutor using real system commands
type RealCommandExecutor struct{}

// ExecuteCommand executes a system command under the default timeout and
// returns the combined output
func (ce *RealCommandExecutor) ExecuteCommand(name string, args ...string) ([]byte, error) {
	return ce.ExecuteCommandTimeout(DefaultCommandTimeout, name, args...)
}

// ExecuteCommandTimeout executes a system command under an explicit wall-clock
// timeout and returns the combined output
// #nosec G204 - Command name is controlled by checkers, not user input; args are checker-defined
func (ce *RealCommandExecutor) ExecuteCommandTimeout(timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Runner interface allows for mocking in tests
type Runner interface {
	Run()
}

// RunnerFactory creates a Runner with the provided handlers
type RunnerFactory func(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	rawHook func(context.Context, string) *cchooks.RawResponse) Runner

// DefaultRunnerFactory creates a cchooks.Runner wrapped in the fail-open
// stdin guard (see stdin.go): malformed input on stdin never reaches the SDK
// and never blocks the host tool.
func DefaultRunnerFactory(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	rawHook func(context.Context, string) *cchooks.RawResponse,
) Runner {
	runner := &cchooks.Runner{}
	if preHook != nil {
		runner.PreToolUse = preHook
	}
	if postHook != nil {
		runner.PostToolUse = postHook
	}
	if rawHook != nil {
		runner.Raw = rawHook
	}
	return &guardedRunner{inner: runner}
}

// HookContext provides dependencies that checkers may need
type HookContext struct {
	FileSystem      FileSystem
	CommandExecutor CommandExecutor
	RunnerFactory   RunnerFactory
	SettingsChecker func(string) bool
	LoggingEnabled  bool
	LoggingDir      string
	LoggingFormat   string
	// LogSink opens the append-only log destination for a checker's log
	// path. Overridden by the run command when rotation is configured.
	LogSink LogSinkFunc
}

// DefaultHookContext returns a context with real implementations
func DefaultHookContext() *HookContext {
	return &HookContext{
		FileSystem:      &RealFileSystem{},
		CommandExecutor: &RealCommandExecutor{},
		RunnerFactory:   DefaultRunnerFactory,
		SettingsChecker: defaultIsCheckerEnabled,
		LoggingEnabled:  false,
		LoggingDir:      ".claude/hooks",
		LoggingFormat:   "jsonl",
	}
}

// defaultIsCheckerEnabled is the default implementation - always returns true.
// The CLI layer injects the settings-backed checker when running hooks.
func defaultIsCheckerEnabled(_ string) bool {
	return true
}

// LogHookEvent delegates to shared logging utility (see logging.go)
func (h *BaseHook) LogHookEvent(event string, toolName string, rawData map[string]interface{}, details map[string]interface{}) {
	if !h.context.LoggingEnabled {
		return
	}
	logHookEvent(h.context, h.key, event, toolName, rawData, details)
}

// CreateRawHandler creates a raw handler that logs all incoming JSON data when logging is enabled
func (h *BaseHook) CreateRawHandler() func(context.Context, string) *cchooks.RawResponse {
	if !h.context.LoggingEnabled {
		return nil
	}

	return func(_ context.Context, rawJSON string) *cchooks.RawResponse {
		var rawEvent map[string]interface{}
		if err := json.Unmarshal([]byte(rawJSON), &rawEvent); err != nil {
			h.LogHookEvent("raw_event_parse_error", "unknown", map[string]interface{}{
				"raw_json_string": rawJSON,
				"error":           err.Error(),
			}, nil)
			return nil
		}

		eventName, _ := rawEvent["hook_event_name"].(string)
		toolName, _ := rawEvent["tool_name"].(string)

		h.LogHookEvent("raw_event", toolName, map[string]interface{}{
			"hook_event_name": eventName,
		}, rawEvent)

		// Return nil to continue with normal processing
		return nil
	}
}

// StandardRun executes the checker with the provided handlers.
// Concrete checkers should call this in their Run() method.
func (h *BaseHook) StandardRun(
	preHandler func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHandler func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
) error {
	if !h.IsEnabled() {
		return nil
	}

	runner := h.Context().RunnerFactory(preHandler, postHandler, h.CreateRawHandler())
	runner.Run()
	return nil
}

// LogError logs a standard error event
func (h *BaseHook) LogError(eventType, toolName string, err error) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, map[string]interface{}{"error": err.Error()}, nil)
	}
}

// LogApproval logs a standard approval event
func (h *BaseHook) LogApproval(eventType, toolName string, details map[string]interface{}) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, details, nil)
	}
}

// LogBlock logs a standard block event
func (h *BaseHook) LogBlock(eventType, toolName string, details map[string]interface{}) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, details, nil)
	}
}
