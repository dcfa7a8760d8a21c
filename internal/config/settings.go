// Package config handles settings files, gate rule tables, and log rotation
// configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/deanwenchen/hookgate/internal/constants"
)

type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout *int   `json:"timeout,omitempty"`
}

type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

type HooksConfig struct {
	PreToolUse       []HookMatcher `json:"PreToolUse,omitempty"`
	PostToolUse      []HookMatcher `json:"PostToolUse,omitempty"`
	UserPromptSubmit []HookMatcher `json:"UserPromptSubmit,omitempty"`
	Notification     []HookMatcher `json:"Notification,omitempty"`
	Stop             []HookMatcher `json:"Stop,omitempty"`
	SessionStart     []HookMatcher `json:"SessionStart,omitempty"`
	SessionEnd       []HookMatcher `json:"SessionEnd,omitempty"`
}

// CheckerConfig stores per-checker settings. A nil Enabled means default
// (enabled). If Enabled=false, the checker is disabled.
type CheckerConfig struct {
	Enabled *bool `json:"enabled,omitempty"`
}

type Settings struct {
	Hooks    HooksConfig              `json:"hooks,omitempty"`
	Checkers map[string]CheckerConfig `json:"checkers,omitempty"`
	Other    map[string]interface{}   `json:"-"`
}

func GetSettingsPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return filepath.Join(homeDir, constants.ClaudeDir, constants.SettingsFileName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return filepath.Join(cwd, constants.ClaudeDir, constants.SettingsFileName), nil
}

func LoadSettings(settingsPath string) (*Settings, error) {
	settings := &Settings{
		Checkers: make(map[string]CheckerConfig),
		Other:    make(map[string]interface{}),
	}

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return settings, nil
	}

	data, err := os.ReadFile(settingsPath) // #nosec G304 - controlled settings paths
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %v", err)
	}

	// Unmarshal into a generic map first to preserve unknown fields
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON: %v", err)
	}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %v", err)
	}

	delete(raw, "hooks")
	delete(raw, "checkers")
	settings.Other = raw

	if settings.Checkers == nil {
		settings.Checkers = make(map[string]CheckerConfig)
	}

	return settings, nil
}

func SaveSettings(settingsPath string, settings *Settings) error {
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	// Merge known and unknown fields
	output := make(map[string]interface{})
	for k, v := range settings.Other {
		output[k] = v
	}
	if !IsHooksConfigEmpty(settings.Hooks) {
		output["hooks"] = settings.Hooks
	}
	if len(settings.Checkers) > 0 {
		output["checkers"] = settings.Checkers
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}

	if err := os.WriteFile(settingsPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %v", err)
	}

	return nil
}

func IsHooksConfigEmpty(hooks HooksConfig) bool {
	return len(hooks.PreToolUse) == 0 &&
		len(hooks.PostToolUse) == 0 &&
		len(hooks.UserPromptSubmit) == 0 &&
		len(hooks.Notification) == 0 &&
		len(hooks.Stop) == 0 &&
		len(hooks.SessionStart) == 0 &&
		len(hooks.SessionEnd) == 0
}

// IsCheckerEnabled returns true if the checker is enabled (default) or
// explicitly enabled. Returns false only if explicitly disabled in settings.
func (s *Settings) IsCheckerEnabled(key string) bool {
	if s == nil || s.Checkers == nil {
		return true
	}
	cfg, ok := s.Checkers[key]
	if !ok || cfg.Enabled == nil {
		return true
	}
	return *cfg.Enabled
}

// IsCheckerEnabled consults project settings first, then global settings.
// Any load error degrades to enabled - configuration problems must never
// block the host tool.
func IsCheckerEnabled(key string) bool {
	for _, global := range []bool{false, true} {
		path, err := GetSettingsPath(global)
		if err != nil {
			continue
		}
		settings, err := LoadSettings(path)
		if err != nil {
			continue
		}
		if settings.Checkers != nil {
			if cfg, ok := settings.Checkers[key]; ok && cfg.Enabled != nil {
				return *cfg.Enabled
			}
		}
	}
	return true
}

var hookgateRunRe = regexp.MustCompile(constants.BinaryName + `\s+hooks\s+run\s+([\w-]+)`)

// extractCheckerKey extracts the checker key from a hookgate command.
// Example: "/usr/local/bin/hookgate hooks run dangerous --log" -> "dangerous"
func extractCheckerKey(command string) string {
	matches := hookgateRunRe.FindStringSubmatch(command)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// IsHookgateCommand checks if a settings hook command belongs to this binary
func IsHookgateCommand(command string) bool {
	return strings.Contains(command, constants.CommandPattern)
}

// MergeResult represents the result of merging hook matchers
type MergeResult struct {
	Matchers      []HookMatcher
	WasDuplicate  bool
	DuplicateInfo string
}

// AddHookToSettings installs a hook command under the given event and matcher,
// deduplicating both exact commands and same-checker hookgate entries.
func AddHookToSettings(settings *Settings, event, matcher, command string, timeout *int) MergeResult {
	hookCmd := HookCommand{
		Type:    "command",
		Command: command,
		Timeout: timeout,
	}
	hookMatcher := HookMatcher{
		Matcher: matcher,
		Hooks:   []HookCommand{hookCmd},
	}

	var result MergeResult
	switch event {
	case "PreToolUse":
		result = mergeHookMatcher(settings.Hooks.PreToolUse, hookMatcher)
		settings.Hooks.PreToolUse = result.Matchers
	case "PostToolUse":
		result = mergeHookMatcher(settings.Hooks.PostToolUse, hookMatcher)
		settings.Hooks.PostToolUse = result.Matchers
	case "UserPromptSubmit":
		result = mergeHookMatcher(settings.Hooks.UserPromptSubmit, hookMatcher)
		settings.Hooks.UserPromptSubmit = result.Matchers
	case "Notification":
		result = mergeHookMatcher(settings.Hooks.Notification, hookMatcher)
		settings.Hooks.Notification = result.Matchers
	case "Stop":
		result = mergeHookMatcher(settings.Hooks.Stop, hookMatcher)
		settings.Hooks.Stop = result.Matchers
	case "SessionStart":
		result = mergeHookMatcher(settings.Hooks.SessionStart, hookMatcher)
		settings.Hooks.SessionStart = result.Matchers
	case "SessionEnd":
		result = mergeHookMatcher(settings.Hooks.SessionEnd, hookMatcher)
		settings.Hooks.SessionEnd = result.Matchers
	}
	return result
}

func mergeHookMatcher(existing []HookMatcher, incoming HookMatcher) MergeResult {
	for i, matcher := range existing {
		if matcher.Matcher != incoming.Matcher {
			continue
		}
		for _, existingHook := range existing[i].Hooks {
			for _, newHook := range incoming.Hooks {
				if existingHook.Command == newHook.Command {
					return MergeResult{
						Matchers:      existing,
						WasDuplicate:  true,
						DuplicateInfo: fmt.Sprintf("Hook command '%s' already exists for matcher '%s'", newHook.Command, matcher.Matcher),
					}
				}
				if IsHookgateCommand(existingHook.Command) && IsHookgateCommand(newHook.Command) &&
					extractCheckerKey(existingHook.Command) == extractCheckerKey(newHook.Command) {
					return MergeResult{
						Matchers:      existing,
						WasDuplicate:  true,
						DuplicateInfo: fmt.Sprintf("Checker '%s' already installed for matcher '%s'", extractCheckerKey(newHook.Command), matcher.Matcher),
					}
				}
			}
		}
		merged := make([]HookMatcher, len(existing))
		copy(merged, existing)
		merged[i].Hooks = append(merged[i].Hooks, incoming.Hooks...)
		return MergeResult{Matchers: merged}
	}
	return MergeResult{Matchers: append(existing, incoming)}
}

// RemoveAllHookgateFromSettings strips every hookgate-owned command out of
// the settings and returns how many were removed.
func RemoveAllHookgateFromSettings(settings *Settings) int {
	removed := 0
	strip := func(matchers []HookMatcher) []HookMatcher {
		out := make([]HookMatcher, 0, len(matchers))
		for _, m := range matchers {
			kept := make([]HookCommand, 0, len(m.Hooks))
			for _, h := range m.Hooks {
				if IsHookgateCommand(h.Command) {
					removed++
					continue
				}
				kept = append(kept, h)
			}
			if len(kept) > 0 {
				m.Hooks = kept
				out = append(out, m)
			}
		}
		return out
	}

	settings.Hooks.PreToolUse = strip(settings.Hooks.PreToolUse)
	settings.Hooks.PostToolUse = strip(settings.Hooks.PostToolUse)
	settings.Hooks.UserPromptSubmit = strip(settings.Hooks.UserPromptSubmit)
	settings.Hooks.Notification = strip(settings.Hooks.Notification)
	settings.Hooks.Stop = strip(settings.Hooks.Stop)
	settings.Hooks.SessionStart = strip(settings.Hooks.SessionStart)
	settings.Hooks.SessionEnd = strip(settings.Hooks.SessionEnd)
	return removed
}

// InstalledHookgateCommands lists hookgate-owned commands per event for the
// list --installed view.
func InstalledHookgateCommands(settings *Settings) map[string][]string {
	out := make(map[string][]string)
	collect := func(event string, matchers []HookMatcher) {
		for _, m := range matchers {
			for _, h := range m.Hooks {
				if IsHookgateCommand(h.Command) {
					out[event] = append(out[event], h.Command)
				}
			}
		}
	}
	collect("PreToolUse", settings.Hooks.PreToolUse)
	collect("PostToolUse", settings.Hooks.PostToolUse)
	collect("UserPromptSubmit", settings.Hooks.UserPromptSubmit)
	collect("Notification", settings.Hooks.Notification)
	collect("Stop", settings.Hooks.Stop)
	collect("SessionStart", settings.Hooks.SessionStart)
	collect("SessionEnd", settings.Hooks.SessionEnd)
	return out
}
