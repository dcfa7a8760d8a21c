package core

import "testing"

type stubHook struct{ *BaseHook }

func (s *stubHook) Run() error { return nil }

func stubFactory(key string) HookFactory {
	return func(ctx *HookContext) Hook {
		return &stubHook{BaseHook: NewBaseHook(key, key, "stub", ctx)}
	}
}

func TestRegistryRegisterAndCreate(t *testing.T) {
	r := NewRegistry(TestHookContext(nil))

	if err := r.Register("dangerous", stubFactory("dangerous")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("dangerous", stubFactory("dangerous")); err == nil {
		t.Error("Expected duplicate registration to fail")
	}

	hook, err := r.Create("dangerous")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if hook.Key() != "dangerous" {
		t.Errorf("Expected key 'dangerous', got %q", hook.Key())
	}

	if _, err := r.Create("missing"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestRegistryKeysSorted(t *testing.T) {
	r := NewRegistry(TestHookContext(nil))
	r.MustRegisterBatch(map[string]HookFactory{
		"secrets":   stubFactory("secrets"),
		"branch":    stubFactory("branch"),
		"dangerous": stubFactory("dangerous"),
	})

	keys := r.Keys()
	expected := []string{"branch", "dangerous", "secrets"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), len(keys))
	}
	for i, k := range expected {
		if keys[i] != k {
			t.Errorf("Expected keys[%d]=%q, got %q", i, k, keys[i])
		}
	}
}
