package core

import (
	"fmt"
	"sort"
	"sync"
)

// HookFactory is a function that creates a Hook instance
type HookFactory func(ctx *HookContext) Hook

// Registry manages checker registration and creation
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HookFactory
	context   *HookContext
}

// NewRegistry creates a new checker registry
func NewRegistry(ctx *HookContext) *Registry {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &Registry{
		factories: make(map[string]HookFactory),
		context:   ctx,
	}
}

// Register registers a checker factory with the given key
func (r *Registry) Register(key string, factory HookFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("checker with key '%s' already registered", key)
	}

	r.factories[key] = factory
	return nil
}

// RegisterBatch registers multiple checkers under one write lock
func (r *Registry) RegisterBatch(hooks map[string]HookFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range hooks {
		if _, exists := r.factories[key]; exists {
			return fmt.Errorf("checker with key '%s' already registered", key)
		}
	}
	for key, factory := range hooks {
		r.factories[key] = factory
	}
	return nil
}

// MustRegisterBatch is like RegisterBatch but panics on error
func (r *Registry) MustRegisterBatch(hooks map[string]HookFactory) {
	if err := r.RegisterBatch(hooks); err != nil {
		panic(err)
	}
}

// Create creates a checker instance by key
func (r *Registry) Create(key string) (Hook, error) {
	r.mu.RLock()
	factory, exists := r.factories[key]
	context := r.context
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("checker with key '%s' not found", key)
	}

	return factory(context), nil
}

// Keys returns all registered checker keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetContext updates the context used for creating checker instances
func (r *Registry) SetContext(ctx *HookContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.context = ctx
}

// Global registry instance
var globalRegistry = NewRegistry(nil)

// CreateHook creates a checker instance by key from the global registry
func CreateHook(key string) (Hook, error) {
	return globalRegistry.Create(key)
}

// GetHookKeys returns all registered checker keys from the global registry
func GetHookKeys() []string {
	return globalRegistry.Keys()
}

// SetGlobalContext updates the global registry's context
func SetGlobalContext(ctx *HookContext) {
	globalRegistry.SetContext(ctx)
}

// SetGlobalLoggingConfig updates the global registry's context with logging
// configuration. A nil sink keeps the plain append-file sink.
func SetGlobalLoggingConfig(enabled bool, logDir string, format string, sink LogSinkFunc) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if globalRegistry.context != nil {
		globalRegistry.context.LoggingEnabled = enabled
		globalRegistry.context.LoggingDir = logDir
		if format == LoggingFormatJSONL || format == LoggingFormatPretty {
			globalRegistry.context.LoggingFormat = format
		}
		if sink != nil {
			globalRegistry.context.LogSink = sink
		}
	}
}

// RegisterBuiltinHooks is called by the hooks package to register all
// built-in checkers
func RegisterBuiltinHooks(hooks map[string]HookFactory) {
	globalRegistry.MustRegisterBatch(hooks)
}
