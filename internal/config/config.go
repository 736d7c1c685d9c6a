// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/joho/godotenv"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"`
	Editor  EditorConfig                      `toml:"editor"`
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds canvas and editing settings.
type EditorConfig struct {
	Width            int      `toml:"width"`
	Height           int      `toml:"height"`
	FPS              int      `toml:"fps"`
	FlattenThreshold int      `toml:"flatten_threshold"`
	SystemClipboard  bool     `toml:"system_clipboard"`
	ExportDir        string   `toml:"export_dir"`
	Palette          []string `toml:"palette"`      // hex colours, e.g. "#ff0044"
	PaletteName      string   `toml:"palette_name"` // built-in or file palette, used when Palette is empty
	PaletteDir       string   `toml:"palette_dir"`
	Theme            string   `toml:"theme"`
	ThemeDir         string   `toml:"theme_dir"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			Width:            DefaultCanvasWidth,
			Height:           DefaultCanvasHeight,
			FPS:              DefaultFPS,
			FlattenThreshold: DefaultFlattenThreshold,
			SystemClipboard:  SystemClipboard,
			ExportDir:        DefaultExportDir,
			PaletteName:      DefaultPaletteName,
			PaletteDir:       DefaultPaletteDir(),
			Theme:            DefaultThemeName,
			ThemeDir:         userConfigSubdir(ThemeDirName),
		},
	}
}

// DefaultPath returns ~/.config/poxi/config.toml, or "" when the user config
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// DefaultPaletteDir returns ~/.config/poxi/palettes, or "" when the user
// config directory cannot be determined.
func DefaultPaletteDir() string {
	return userConfigSubdir(PaletteDirName)
}

func userConfigSubdir(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, name)
}

// PluginValue returns a raw value from the [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// loadFromFile decodes a TOML file over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	if filePath == "" {
		return nil
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// applyEnv overrides values from POXI_* variables. env takes precedence over
// the process environment so a .env file can be layered in tests.
func applyEnv(cfg *Config, env map[string]string) {
	lookup := func(key string) (string, bool) {
		if v, ok := env[key]; ok {
			return v, true
		}
		return os.LookupEnv(key)
	}
	if v, ok := lookup("POXI_LOG_LEVEL"); ok && v != "" {
		cfg.Logger.LogLevel = v
	}
	if v, ok := lookup("POXI_LOG_FILE"); ok {
		cfg.Logger.LogFilePath = v
	}
	if v, ok := lookup("POXI_EXPORT_DIR"); ok && v != "" {
		cfg.Editor.ExportDir = v
	}
	if v, ok := lookup("POXI_FPS"); ok {
		if fps, err := strconv.Atoi(v); err == nil {
			cfg.Editor.FPS = fps
		}
	}
}

// readEnvFile loads KEY=VALUE pairs; a missing file yields no pairs.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
	}
	return env, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.Width <= 0 {
		c.Editor.Width = defaults.Editor.Width
	}
	if c.Editor.Height <= 0 {
		c.Editor.Height = defaults.Editor.Height
	}
	if c.Editor.FPS <= 0 {
		c.Editor.FPS = defaults.Editor.FPS
	}
	if c.Editor.FlattenThreshold < 0 { // 0 disables
		c.Editor.FlattenThreshold = defaults.Editor.FlattenThreshold
	}
	if c.Editor.ExportDir == "" {
		c.Editor.ExportDir = defaults.Editor.ExportDir
	}
	if c.Editor.PaletteName == "" {
		c.Editor.PaletteName = defaults.Editor.PaletteName
	}
	if c.Editor.PaletteDir == "" {
		c.Editor.PaletteDir = DefaultPaletteDir()
	}
	if c.Editor.Theme == "" {
		c.Editor.Theme = defaults.Editor.Theme
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Logger.MaxSizeMB <= 0 {
		c.Logger.MaxSizeMB = defaults.Logger.MaxSizeMB
	}
}

// Load layers defaults, the TOML file, the .env file, the environment and
// finally flags, then validates. configFilePath "" means DefaultPath().
// A broken file is reported but the remaining layers still apply.
func Load(configFilePath, envFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if configFilePath == "" {
		configFilePath = DefaultPath()
	}
	var errs []error
	if err := loadFromFile(configFilePath, cfg); err != nil {
		errs = append(errs, err)
	}

	env, err := readEnvFile(envFilePath)
	if err != nil {
		errs = append(errs, err)
	}
	applyEnv(cfg, env)

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, errors.Join(errs...)
}
