package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Logging format names shared with the config layer.
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// LogSinkFunc opens the append destination for a checker's log file.
type LogSinkFunc func(path string) (io.WriteCloser, error)

// invocationID is minted once per process. Log files have no cross-writer
// locking; concurrently running hook instances are told apart by this id
// rather than by any append guarantee beyond O_APPEND line writes.
var invocationID = uuid.NewString()

// LogEntry represents a detailed log entry for checker inspection
type LogEntry struct {
	Timestamp    string                 `json:"timestamp"`
	InvocationID string                 `json:"invocation_id"`
	HookKey      string                 `json:"hook_key"`
	Event        string                 `json:"event"`
	ToolName     string                 `json:"tool_name"`
	RawData      map[string]interface{} `json:"raw_data,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// logHookEvent centralizes structured hook event logging.
// It is a no-op if LoggingEnabled is false.
func logHookEvent(ctx *HookContext, hookKey, event, toolName string,
	rawData map[string]interface{}, details map[string]interface{},
) {
	if ctx == nil || !ctx.LoggingEnabled {
		return
	}

	entry := LogEntry{
		Timestamp:    time.Now().Format(time.RFC3339),
		InvocationID: invocationID,
		HookKey:      hookKey,
		Event:        event,
		ToolName:     toolName,
		RawData:      rawData,
		Details:      details,
	}

	logDir := ctx.LoggingDir
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory %s: %v\n", logDir, err)
		return
	}
	logFile := filepath.Join(logDir, fmt.Sprintf("%s.log", hookKey))

	var jsonData []byte
	var err error
	if ctx.LoggingFormat == LoggingFormatPretty {
		jsonData, err = json.MarshalIndent(entry, "", "  ")
	} else {
		jsonData, err = json.Marshal(entry)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal log entry: %v\n", err)
		return
	}

	// Log files are opened, appended, and closed within a single call.
	sink := ctx.LogSink
	if sink == nil {
		sink = defaultLogSink(ctx)
	}
	file, err := sink(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", logFile, err)
		return
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write to log file: %v\n", err)
	}
}

// defaultLogSink opens a plain append-only file through the context's
// filesystem. The run command swaps in a rotation-backed sink when rotation
// is configured.
func defaultLogSink(ctx *HookContext) LogSinkFunc {
	return func(path string) (io.WriteCloser, error) {
		return ctx.FileSystem.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
}
