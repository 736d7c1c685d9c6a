// internal/commands/registry.go
package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/plugin"
)

// Registry maps command names to functions.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]plugin.CommandFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]plugin.CommandFunc)}
}

// Register adds a command. Names are unique.
func (r *Registry) Register(name string, fn plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("command '%s' has no function", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	logger.DebugTagf("command", "registered ':%s'", name)
	return nil
}

// Execute parses a line such as "palette pico-8" and runs the command.
// Commands report success through the status bar themselves.
func (r *Registry) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fmt.Errorf("empty command")
	}
	name, args := parts[0], parts[1:]

	r.mu.RLock()
	fn, exists := r.commands[name]
	r.mu.RUnlock()
	if !exists {
		return fmt.Errorf("unknown command: %s", name)
	}
	logger.DebugTagf("command", "executing ':%s' with args %v", name, args)
	if err := fn(args); err != nil {
		return fmt.Errorf("command %q failed: %w", name, err)
	}
	return nil
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
