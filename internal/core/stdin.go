package core

import (
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// guardedRunner wraps a cchooks runner with the fail-open input contract:
// stdin is drained and validated before the SDK sees it. Anything that is not
// a JSON object exits the process successfully with no decision emitted, so a
// broken host payload can never block the underlying tool invocation.
type guardedRunner struct {
	inner Runner
}

func (g *guardedRunner) Run() {
	payload, err := io.ReadAll(os.Stdin)
	if err != nil {
		return // fail open
	}
	if !gjson.ValidBytes(payload) || !gjson.ParseBytes(payload).IsObject() {
		return // fail open
	}

	if err := refeedStdin(payload); err != nil {
		return // fail open
	}
	g.inner.Run()
}

// refeedStdin replaces os.Stdin with a pipe carrying the already-consumed
// payload so the SDK runner can decode it normally. The process is one-shot,
// so the swap is never undone.
func refeedStdin(payload []byte) error {
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	go func() {
		_, _ = w.Write(payload)
		_ = w.Close()
	}()
	os.Stdin = r
	return nil
}
