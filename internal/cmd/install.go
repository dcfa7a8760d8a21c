package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deanwenchen/hookgate/internal/config"
	"github.com/deanwenchen/hookgate/internal/core"
	"github.com/urfave/cli/v3"
)

// defaultEventForChecker maps checkers that are not PreToolUse-shaped to the
// event they actually handle.
var defaultEventForChecker = map[string]string{
	"lint":           "PostToolUse",
	"article":        "PostToolUse",
	"notify":         "Notification",
	"prompt-enhance": "UserPromptSubmit",
}

// newHooksInstallCommand creates the install command
func newHooksInstallCommand(getChecker func(string) (core.Hook, error), checkerKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install a checker into Claude Code settings",
		ArgsUsage: "[checker-key]",
		Description: `Install a checker into your Claude Code settings.json file.
This will configure the checker to run for the specified event.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Install to global settings (~/.claude/settings.json)",
			},
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Usage:   "Hook event (PreToolUse, PostToolUse, Notification, ...)",
			},
			&cli.StringFlag{
				Name:    "matcher",
				Aliases: []string{"m"},
				Value:   "*",
				Usage:   "Tool matcher pattern (* for all tools)",
			},
			&cli.IntFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Value:   0,
				Usage:   "Command timeout in seconds (0 for no timeout)",
			},
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   false,
				Usage:   "Enable detailed logging to .claude/hooks/<checker-key>.log",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: config.LoggingFormatJSONL,
				Usage: "Log output format: jsonl or pretty (default jsonl)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [checker-key]")
			}
			key := args[0]

			if _, err := getChecker(key); err != nil {
				return fmt.Errorf("checker '%s' not found.\nAvailable checkers: %s", key, strings.Join(checkerKeys(), ", "))
			}

			global := cmd.Bool("global")
			event := cmd.String("event")
			matcher := cmd.String("matcher")
			timeoutFlag := cmd.Int("timeout")
			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}

			if event == "" {
				event = "PreToolUse"
				if e, ok := defaultEventForChecker[key]; ok {
					event = e
				}
			}
			if !IsValidEventType(event) {
				return fmt.Errorf("invalid event '%s'.\nValid events: %s", event, strings.Join(hookEvents, ", "))
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %v", err)
			}

			hookCommand := fmt.Sprintf("%s hooks run %s", execPath, key)
			if logEnabled {
				hookCommand += " --log"
				if logFormat != config.LoggingFormatJSONL {
					hookCommand += fmt.Sprintf(" --log-format %s", logFormat)
				}
			}

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				return fmt.Errorf("failed to locate %s settings path: %w", scopeName(global), err)
			}
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
			}

			var timeout *int
			if timeoutFlag > 0 {
				timeout = &timeoutFlag
			}
			result := config.AddHookToSettings(settings, event, matcher, hookCommand, timeout)
			if result.WasDuplicate {
				fmt.Printf("Checker already installed: %s\n", result.DuplicateInfo)
				fmt.Println("No changes made.")
				return nil
			}

			if err := config.SaveSettings(settingsPath, settings); err != nil {
				return fmt.Errorf("failed to save settings to %s: %w", settingsPath, err)
			}

			fmt.Printf("Installed %s checker in %s settings\n", key, scopeName(global))
			fmt.Printf("   Event: %s\n", event)
			fmt.Printf("   Matcher: %s\n", matcher)
			fmt.Printf("   Command: %s\n", hookCommand)
			fmt.Printf("   Settings: %s\n", settingsPath)
			fmt.Println()
			fmt.Println("The checker will be active in new Claude Code sessions.")
			return nil
		},
	}
}

// newHooksUninstallCommand creates the uninstall command
func newHooksUninstallCommand() *cli.Command {
	return &cli.Command{
		Name:        "uninstall",
		Usage:       "Remove hookgate checkers from Claude Code settings",
		ArgsUsage:   "[checker-key|all]",
		Description: `Remove a checker from your Claude Code settings.json file. Use 'all' to remove every hookgate checker; other hooks are preserved.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Remove from global settings (~/.claude/settings.json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [checker-key|all]")
			}
			key := args[0]
			global := cmd.Bool("global")

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				return fmt.Errorf("failed to locate %s settings path: %w", scopeName(global), err)
			}
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
			}

			var removed int
			if key == "all" {
				removed = config.RemoveAllHookgateFromSettings(settings)
			} else {
				removed = removeCheckerFromSettings(settings, key)
			}
			if removed == 0 {
				return fmt.Errorf("no matching hookgate checkers found in %s settings", scopeName(global))
			}

			if err := config.SaveSettings(settingsPath, settings); err != nil {
				return fmt.Errorf("failed to save settings to %s: %w", settingsPath, err)
			}

			fmt.Printf("Removed %d checker entries from %s settings\n", removed, scopeName(global))
			fmt.Printf("   Settings: %s\n", settingsPath)
			return nil
		},
	}
}

// removeCheckerFromSettings strips a single checker's hookgate commands from
// every event. Returns how many entries were removed.
func removeCheckerFromSettings(settings *config.Settings, key string) int {
	suffix := fmt.Sprintf("hooks run %s", key)
	removed := 0
	strip := func(matchers []config.HookMatcher) []config.HookMatcher {
		out := make([]config.HookMatcher, 0, len(matchers))
		for _, m := range matchers {
			kept := make([]config.HookCommand, 0, len(m.Hooks))
			for _, h := range m.Hooks {
				if config.IsHookgateCommand(h.Command) && commandRunsChecker(h.Command, suffix) {
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

// commandRunsChecker matches "<path> hooks run <key>" with optional trailing
// flags, without false-matching keys that share a prefix.
func commandRunsChecker(command, suffix string) bool {
	idx := strings.Index(command, suffix)
	if idx < 0 {
		return false
	}
	rest := command[idx+len(suffix):]
	return rest == "" || strings.HasPrefix(rest, " ")
}
