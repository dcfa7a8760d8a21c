package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deanwenchen/hookgate/internal/config"
	"github.com/deanwenchen/hookgate/internal/core"
	"github.com/urfave/cli/v3"
)

// Scope constants
const (
	ScopeProject = "project"
	ScopeGlobal  = "global"
)

// hookEvents are the events a checker can be installed under.
var hookEvents = []string{
	"PreToolUse",
	"PostToolUse",
	"UserPromptSubmit",
	"Notification",
	"Stop",
	"SessionStart",
	"SessionEnd",
}

// IsValidEventType reports whether the event name is installable
func IsValidEventType(event string) bool {
	for _, e := range hookEvents {
		if e == event {
			return true
		}
	}
	return false
}

// NewHooksCommand creates the main hooks command with all subcommands
func NewHooksCommand(getChecker func(string) (core.Hook, error), isCheckerEnabled func(string) bool, checkerKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:        "hooks",
		Usage:       "Manage and run checkers",
		Description: `Manage checkers including listing, running, installing, and uninstalling them.`,
		Commands: []*cli.Command{
			newHooksListCommand(getChecker, checkerKeys),
			newHooksRunCommand(getChecker, isCheckerEnabled, checkerKeys),
			newHooksInstallCommand(getChecker, checkerKeys),
			newHooksUninstallCommand(),
		},
	}
}

// newHooksListCommand creates the consolidated list command
func newHooksListCommand(getChecker func(string) (core.Hook, error), checkerKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List available or installed checkers",
		Description: `List available checkers, or the checkers currently installed in settings.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "installed",
				Aliases: []string{"i"},
				Value:   false,
				Usage:   "Show installed checkers from settings",
			},
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Show global settings (~/.claude/settings.json) when using --installed",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("installed") {
				return listInstalledCheckers(cmd.Bool("global"))
			}
			return listAvailableCheckers(getChecker, checkerKeys)
		},
	}
}

// newHooksRunCommand creates the run command
func newHooksRunCommand(getChecker func(string) (core.Hook, error), isCheckerEnabled func(string) bool, checkerKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Run a specific checker",
		ArgsUsage:   "[checker-key]",
		Description: `Run a specific checker. Reads the hook event from stdin and writes the decision to stdout.`,
		Flags: []cli.Flag{
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

			// Validate the checker exists early
			checker, err := getChecker(key)
			if err != nil {
				return fmt.Errorf("checker '%s' not found.\nAvailable checkers: %s", key, strings.Join(checkerKeys(), ", "))
			}

			// Enablement check before side effects
			if !isCheckerEnabled(key) {
				return nil
			}

			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}
			if logEnabled {
				setupCheckerLogging(key, logFormat)
			}

			if err := checker.Run(); err != nil {
				return fmt.Errorf("checker '%s' failed: %v", key, err)
			}
			return nil
		},
	}
}

// setupCheckerLogging configures logging with rotation for checker execution.
// Runs inside a hook invocation, so progress goes to stderr only via the log
// itself; stdout stays reserved for decisions.
func setupCheckerLogging(checkerKey, logFormat string) {
	logConfig := config.GetLogRotationConfigFromFile(false)
	if logConfig.MaxAge == 0 && logConfig.MaxSize == 0 {
		logConfig = config.GetLogRotationConfigFromFile(true)
	}

	logPath := config.GetLogPath(checkerKey)
	core.SetGlobalLoggingConfig(true, filepath.Dir(logPath), logFormat, config.RotatingLogSink(logConfig))

	// Rotation keeps the file bounded; this sweeps rotated leftovers.
	_ = config.CleanupOldLogs(filepath.Dir(logPath), logConfig.MaxAge)
}

// listAvailableCheckers lists all registered checkers
func listAvailableCheckers(getChecker func(string) (core.Hook, error), checkerKeys func() []string) error {
	keys := checkerKeys()
	sort.Strings(keys)

	fmt.Println("Available checkers:")
	fmt.Println()
	for _, key := range keys {
		checker, err := getChecker(key)
		if err != nil {
			continue
		}
		fmt.Printf("  %s - %s\n", key, checker.Description())
	}
	fmt.Println()
	fmt.Println("Use 'hookgate hooks run <key>' to run a checker.")
	fmt.Println("Use 'hookgate hooks install <key>' to install a checker.")
	return nil
}

// listInstalledCheckers lists checkers installed in settings
func listInstalledCheckers(global bool) error {
	settingsPath, err := config.GetSettingsPath(global)
	if err != nil {
		return fmt.Errorf("failed to locate %s settings path: %w", scopeName(global), err)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
	}

	fmt.Printf("Installed checkers (%s settings):\n", scopeName(global))
	fmt.Printf("Settings file: %s\n\n", settingsPath)

	installed := config.InstalledHookgateCommands(settings)
	if len(installed) == 0 {
		fmt.Println("No checkers are currently installed.")
		return nil
	}

	for _, event := range hookEvents {
		commands := installed[event]
		if len(commands) == 0 {
			continue
		}
		fmt.Printf("%s:\n", event)
		for _, command := range commands {
			fmt.Printf("  - %s\n", command)
		}
		fmt.Println()
	}
	return nil
}

// scopeName returns the scope name for display
func scopeName(global bool) string {
	if global {
		return ScopeGlobal
	}
	return ScopeProject
}
