package app

import (
	"fmt"

	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/plugin"

	"github.com/bethropolis/poxi/plugins/autosave"
	"github.com/bethropolis/poxi/plugins/stats"
)

// builtinPlugins lists the plugins compiled into the binary.
func builtinPlugins() []plugin.Plugin {
	return []plugin.Plugin{
		stats.New(),
		autosave.New(),
	}
}

// startPlugins registers and initializes the configured plugins. The first
// registration error is returned after all plugins were tried.
func (a *App) startPlugins() error {
	plugins := a.opts.Plugins
	if plugins == nil {
		plugins = builtinPlugins()
	}

	var firstErr error
	for _, p := range plugins {
		if err := a.plugins.Register(p); err != nil {
			wrapped := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrapped)
			if firstErr == nil {
				firstErr = wrapped
			}
		}
	}
	a.plugins.InitializePlugins(a.api)
	return firstErr
}
