package config

import "time"

// Base application details
const AppName = "poxi"
const DefaultConfigFileName = "config.toml"
const DefaultEnvFileName = ".env"
const DefaultLogFileName = "poxi.log"

// Canvas defaults
const DefaultCanvasWidth = 32
const DefaultCanvasHeight = 32

// Frame loop
const DefaultFPS = 60
const IdleInterval = 16 * time.Millisecond

// Batches active at once before the history is flattened. 0 disables.
const DefaultFlattenThreshold = 256

// Export
const DefaultExportDir = "exports"
const SystemClipboard = true

// Status Bar
const StatusBarHeight = 1
const MessageTimeout = 4 * time.Second

// Palette
const DefaultPaletteName = "pico-8"
const PaletteDirName = "palettes"

// Export cache budget in bytes of encoded PNG.
const ExportCacheBytes = 8 << 20

// Terminal theme
const DefaultThemeName = "Poxi Dark"
const ThemeDirName = "themes"
