package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/deanwenchen/hookgate/internal/constants"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogRotationConfig holds configuration for log rotation
type LogRotationConfig struct {
	MaxAge     int  // Maximum number of days to retain log files
	MaxSize    int  // Maximum size in megabytes before rotation
	MaxBackups int  // Maximum number of backup files to retain
	Compress   bool // Whether to compress rotated files
}

// DefaultLogRotationConfig returns sensible defaults for log rotation
func DefaultLogRotationConfig() LogRotationConfig {
	return LogRotationConfig{
		MaxAge:     30,
		MaxSize:    10,
		MaxBackups: 5,
		Compress:   true,
	}
}

// GateConfig is the application's own config file: rotation settings plus the
// extra protected branches the branch checker consults. Unknown fields are
// preserved across save.
type GateConfig struct {
	LogRotation       LogRotationConfig      `json:"logRotation"`
	ProtectedBranches []string               `json:"protectedBranches,omitempty"`
	Other             map[string]interface{} `json:"-"`
}

// GetGateConfigPath returns the path to the config file for the given scope
func GetGateConfigPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return constants.GetConfigPath(homeDir), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return constants.GetConfigPath(cwd), nil
}

// LoadGateConfig loads the config, returning defaults if the file is absent
func LoadGateConfig(configPath string) (*GateConfig, error) {
	config := &GateConfig{LogRotation: DefaultLogRotationConfig(), Other: map[string]interface{}{}}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath) // #nosec G304 - controlled config paths
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}
	delete(raw, "logRotation")
	delete(raw, "protectedBranches")
	config.Other = raw

	return config, nil
}

// SaveGateConfig saves the config to file, merging unknown fields back in
func SaveGateConfig(configPath string, config *GateConfig) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	out := map[string]interface{}{}
	for k, v := range config.Other {
		out[k] = v
	}
	out["logRotation"] = config.LogRotation
	if len(config.ProtectedBranches) > 0 {
		out["protectedBranches"] = config.ProtectedBranches
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	return nil
}

// GetLogRotationConfigFromFile gets log rotation config from the config file
func GetLogRotationConfigFromFile(global bool) LogRotationConfig {
	configPath, err := GetGateConfigPath(global)
	if err != nil {
		return DefaultLogRotationConfig()
	}

	config, err := LoadGateConfig(configPath)
	if err != nil {
		return DefaultLogRotationConfig()
	}

	return config.LogRotation
}

// ProtectedBranchesFromConfig collects extra protected branches from the
// project config then the global one.
func ProtectedBranchesFromConfig() []string {
	var branches []string
	for _, global := range []bool{false, true} {
		path, err := GetGateConfigPath(global)
		if err != nil {
			continue
		}
		cfg, err := LoadGateConfig(path)
		if err != nil {
			continue
		}
		branches = append(branches, cfg.ProtectedBranches...)
	}
	return branches
}

// RotatingLogSink returns an open-per-call sink whose writer rotates via
// lumberjack. Closing the returned writer only flushes the current file;
// lumberjack handles size and age based rotation on write.
func RotatingLogSink(config LogRotationConfig) func(path string) (io.WriteCloser, error) {
	return func(path string) (io.WriteCloser, error) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, err
		}
		return &lumberjack.Logger{
			Filename:   path,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
			LocalTime:  true,
		}, nil
	}
}

// CleanupOldLogs manually removes log files older than the specified number
// of days, beyond lumberjack's built-in MaxAge handling.
func CleanupOldLogs(logDir string, maxAgeDays int) error {
	if maxAgeDays <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)

	return filepath.Walk(logDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".log" || filepath.Ext(path) == ".gz" {
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(path); err != nil {
					log.Printf("Failed to remove old log file %s: %v", path, err)
				}
			}
		}
		return nil
	})
}

// GetLogPath returns the standard log path for a given checker key
func GetLogPath(checkerKey string) string {
	return filepath.Join(constants.ClaudeDir, constants.HooksSubDir, fmt.Sprintf("%s.log", checkerKey))
}

// Logging format constants mirror the core package's names.
const (
	LoggingFormatJSONL  = "jsonl"
	LoggingFormatPretty = "pretty"
)

// IsValidLoggingFormat returns true if the provided format is supported.
func IsValidLoggingFormat(f string) bool {
	return f == LoggingFormatJSONL || f == LoggingFormatPretty
}
