// internal/palette/manager.go
package palette

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/poxi/internal/logger"
)

// tomlPalette is the on-disk palette format:
//
//	name = "Sunset"
//	colors = ["#ff0044", "#ffaa00", "#00000080"]
type tomlPalette struct {
	Name   string   `toml:"name"`
	Colors []string `toml:"colors"`
}

// LoadFile parses a TOML palette file. Invalid colours are skipped with a
// warning; a file without any valid colour is an error.
func LoadFile(filePath string) (*Palette, error) {
	var tp tomlPalette
	metadata, err := toml.DecodeFile(filePath, &tp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Palette file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	if tp.Name == "" {
		tp.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	p, errs := Parse(tp.Name, tp.Colors)
	for _, err := range errs {
		logger.Warnf("Palette '%s': %v", tp.Name, err)
	}
	if len(errs) == len(tp.Colors) {
		return nil, fmt.Errorf("palette file '%s' has no valid colours", filePath)
	}
	return p, nil
}

// Manager holds the known palettes and the active one.
type Manager struct {
	mu       sync.RWMutex
	palettes map[string]*Palette // lowercase name
	active   *Palette
	dir      string
}

// NewManager creates a manager with the built-in palettes plus any *.toml
// palettes found in dir. dir may be empty.
func NewManager(dir string) *Manager {
	m := &Manager{
		palettes: make(map[string]*Palette),
		dir:      dir,
	}
	for _, p := range builtins() {
		m.palettes[strings.ToLower(p.Name)] = p
	}
	if dir != "" {
		if err := m.LoadDir(); err != nil {
			logger.Errorf("Error loading palettes from '%s': %v", dir, err)
		}
	}
	m.active = m.palettes["pico-8"]
	return m
}

// LoadDir scans the palette directory. A missing directory is not an error.
func (m *Manager) LoadDir() error {
	if m.dir == "" {
		return errors.New("palette directory path is not set")
	}
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf("Palette directory '%s' does not exist", m.dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read palette directory '%s': %w", m.dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		p, err := LoadFile(path)
		if err != nil {
			logger.Warnf("Failed to load palette from '%s': %v", path, err)
			continue
		}
		m.Add(p)
		loaded++
	}
	logger.Infof("Loaded %d palettes from %s", loaded, m.dir)
	return nil
}

// Add registers a palette, replacing one with the same name.
func (m *Manager) Add(p *Palette) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(p.Name)
	if existing, ok := m.palettes[key]; ok {
		logger.Warnf("Palette '%s' overrides existing palette '%s'", p.Name, existing.Name)
		if m.active == existing {
			m.active = p
		}
	}
	m.palettes[key] = p
}

// Current returns the active palette.
func (m *Manager) Current() *Palette {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetActive selects a palette by name, case-insensitively.
func (m *Manager) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.palettes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("palette '%s' not found", name)
	}
	m.active = p
	logger.Infof("Active palette set to: %s", p.Name)
	return nil
}

// Get returns a palette by name.
func (m *Manager) Get(name string) (*Palette, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.palettes[strings.ToLower(name)]
	return p, ok
}

// Names lists the palette names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.palettes))
	for _, p := range m.palettes {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
