package core

import (
	"io"
	"os"
	"testing"
)

// withStdin points os.Stdin at a pipe carrying payload for the duration of
// the test.
func withStdin(t *testing.T, payload string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	go func() {
		_, _ = w.Write([]byte(payload))
		_ = w.Close()
	}()

	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = orig
		_ = r.Close()
	})
}

// recordingRunner drains os.Stdin the way the SDK runner does, so the guard's
// re-feed can be asserted on.
type recordingRunner struct {
	ran     bool
	payload []byte
}

func (r *recordingRunner) Run() {
	r.ran = true
	r.payload, _ = io.ReadAll(os.Stdin)
}

func TestGuardedRunnerRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{"invalid json", "not json{"},
		{"truncated object", `{"tool_name": "Bash"`},
		{"empty input", ""},
		{"json array", `[1, 2, 3]`},
		{"json string", `"just a string"`},
		{"json number", "42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			withStdin(t, tc.payload)
			inner := &MockRunner{}
			g := &guardedRunner{inner: inner}

			// Must return normally: the process then exits 0 with no
			// decision emitted.
			g.Run()

			if inner.RunCalled {
				t.Errorf("Payload %q must never reach the inner runner", tc.payload)
			}
		})
	}
}

func TestGuardedRunnerRefeedsValidObject(t *testing.T) {
	payload := `{"hook_event_name":"PreToolUse","tool_name":"Bash"}`
	withStdin(t, payload)
	inner := &recordingRunner{}
	g := &guardedRunner{inner: inner}

	g.Run()

	if !inner.ran {
		t.Fatal("Valid object must reach the inner runner")
	}
	if string(inner.payload) != payload {
		t.Errorf("Inner runner got %q, want the original payload %q", inner.payload, payload)
	}
}
