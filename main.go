package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/deanwenchen/hookgate/internal/cmd"
	"github.com/deanwenchen/hookgate/internal/config"
	"github.com/deanwenchen/hookgate/internal/core"
	_ "github.com/deanwenchen/hookgate/internal/hooks"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := &cli.Command{
		Name:  "hookgate",
		Usage: "Rule-based gate for Claude Code tool use",
		Description: `hookgate runs as a Claude Code hook: it reads a tool-use event from
stdin, evaluates it against its rule tables, and answers with an allow,
deny, or ask decision on stdout.`,
		Commands: []*cli.Command{
			cmd.NewHooksCommand(core.CreateHook, config.IsCheckerEnabled, core.GetHookKeys),
			cmd.NewVersionCmd(cmd.VersionInfo{Version: version, Commit: commit, Date: date}),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
