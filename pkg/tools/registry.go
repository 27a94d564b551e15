package tools

import (
	"fmt"
	"sync/atomic"

	"github.com/kiranalabs/kirana/pkg/errorsx"
)

// Registry holds the fixed tool set. It is populated once at startup and
// frozen before serving; after that it is safe for unsynchronized concurrent
// reads.
type Registry struct {
	order   []string
	entries map[string]Entry
	frozen  atomic.Bool
}

// Entry couples a spec with its executable implementation and an optional
// argument sanitizer applied before execution.
type Entry struct {
	Spec     ToolSpec
	Handler  Handler
	Sanitize ArgSanitizer
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a tool to the registry. Registering a duplicate name or
// registering after Freeze is an error.
func (r *Registry) Register(entry Entry) error {
	if r.frozen.Load() {
		return fmt.Errorf("registry frozen, cannot register %q", entry.Spec.Name)
	}
	name := entry.Spec.Name
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if entry.Handler == nil {
		return fmt.Errorf("tool %q has no handler", name)
	}
	if _, ok := r.entries[name]; ok {
		return errorsx.Wrap(fmt.Errorf("duplicate tool name %q", name), errorsx.ReasonDuplicateTool)
	}
	r.entries[name] = entry
	r.order = append(r.order, name)
	return nil
}

// Freeze marks the end of registration. Reads after Freeze need no locking.
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, errorsx.Wrap(fmt.Errorf("unknown tool %q", name), errorsx.ReasonUnknownTool)
	}
	return entry, nil
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Specs returns all specs in registration order. The order is stable across
// calls so prompt construction stays deterministic.
func (r *Registry) Specs() []ToolSpec {
	out := make([]ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].Spec)
	}
	return out
}
