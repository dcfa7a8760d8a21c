package hooks

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/brads3290/cchooks"
	"github.com/deanwenchen/hookgate/internal/constants"
	"github.com/deanwenchen/hookgate/internal/core"
	"github.com/tidwall/gjson"
)

// NotifyHook forwards Notification events to the desktop: osascript on
// darwin, notify-send on linux. Delivery failures are logged and swallowed.
type NotifyHook struct {
	*core.BaseHook
	goos string
}

// NewNotifyHook creates a new notification hook instance
func NewNotifyHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("notify", "Desktop Notifier", "Surfaces host notifications on the desktop", ctx)
	return &NotifyHook{BaseHook: base, goos: runtime.GOOS}
}

// Run executes the notification hook.
func (h *NotifyHook) Run() error {
	if !h.IsEnabled() {
		return nil
	}
	runner := h.Context().RunnerFactory(nil, nil, h.rawHandler)
	runner.Run()
	return nil
}

// rawHandler handles the Notification event, which the SDK exposes only as
// raw JSON.
func (h *NotifyHook) rawHandler(_ context.Context, rawJSON string) *cchooks.RawResponse {
	parsed := gjson.Parse(rawJSON)
	if parsed.Get("hook_event_name").String() != "Notification" {
		return nil
	}

	message := parsed.Get("message").String()
	if message == "" {
		message = "Attention needed"
	}

	if err := h.send(message); err != nil {
		h.LogError("notify_failed", "Notification", err)
		fmt.Fprintf(os.Stderr, "notification delivery failed: %v\n", err)
	}
	return nil
}

// send dispatches the platform notifier.
func (h *NotifyHook) send(message string) error {
	executor := h.Context().CommandExecutor
	switch h.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, constants.AppName)
		_, err := executor.ExecuteCommandTimeout(core.DefaultCommandTimeout, "osascript", "-e", script)
		return err
	case "linux":
		_, err := executor.ExecuteCommandTimeout(core.DefaultCommandTimeout, "notify-send", constants.AppName, message)
		return err
	default:
		return fmt.Errorf("no notifier for %s", h.goos)
	}
}
