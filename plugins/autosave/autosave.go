package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
	defaultName     = "autosave"
)

// AutoSave periodically exports the canvas when it changed since the last
// save. Ticks run on the host loop through EditorAPI.After.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration
	name     string

	savedRev uint64
	stopped  bool
	saves    int
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
		name:     defaultName,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave] and schedules the first tick if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if v, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if s, isStr := v.(string); isStr {
			d, err := time.ParseDuration(s)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, s, err, p.interval)
			case d <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, s, p.interval)
			default:
				p.interval = d
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, v, p.interval)
		}
	}
	if v, ok := api.GetPluginConfigValue(pluginName, "name"); ok {
		if s, isStr := v.(string); isStr && s != "" {
			p.name = s
		}
	}
	enabled, interval := p.enabled, p.interval
	p.savedRev = api.Revision()
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, enabled, interval)
	if enabled {
		api.After(interval, p.tick)
	}
	return nil
}

// Shutdown stops further ticks.
func (p *AutoSave) Shutdown() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopped = true
	return nil
}

// Saves returns how many exports the plugin has written.
func (p *AutoSave) Saves() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.saves
}

func (p *AutoSave) tick() {
	p.mutex.RLock()
	stopped, interval := p.stopped, p.interval
	p.mutex.RUnlock()
	if stopped {
		return
	}
	p.saveIfModified()
	p.api.After(interval, p.tick)
}

// saveIfModified exports when the history revision moved since the last save.
func (p *AutoSave) saveIfModified() {
	rev := p.api.Revision()
	p.mutex.RLock()
	unchanged := rev == p.savedRev
	name := p.name
	p.mutex.RUnlock()
	if unchanged {
		logger.DebugTagf("autosave", "%s: revision %d unchanged, skipping", p.Name(), rev)
		return
	}

	path, err := p.api.ExportFile(name)
	if err != nil {
		logger.Errorf("%s: Auto-save failed: %v", p.Name(), err)
		return
	}
	p.mutex.Lock()
	p.savedRev = rev
	p.saves++
	p.mutex.Unlock()
	logger.DebugTagf("autosave", "%s: saved revision %d to %s", p.Name(), rev, path)
}
