// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/poxi/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	ConfigFilePath  *string
	EnvFilePath     *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	Width           *int
	Height          *int
	FPS             *int
	ExportDir       *string
	SystemClipboard *bool
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string

	fs *flag.FlagSet
}

// DefineFlags registers the flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.EnvFilePath = fs.String("env", DefaultEnvFileName, "Path to an optional .env file with POXI_* overrides")
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.Width = fs.Int("width", 0, "Canvas width in tiles - Overrides config file")
	f.Height = fs.Int("height", 0, "Canvas height in tiles - Overrides config file")
	f.FPS = fs.Int("fps", 0, "Frames per second of the draw loop - Overrides config file")
	f.ExportDir = fs.String("export-dir", "", "Directory for exported PNG files - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Copy exports to the system clipboard as a data URL")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
}

// Parse defines and parses the flags from args, returning non-flag arguments.
func (f *Flags) Parse(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were explicitly set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "width":
			if *f.Width > 0 {
				cfg.Editor.Width = *f.Width
			}
		case "height":
			if *f.Height > 0 {
				cfg.Editor.Height = *f.Height
			}
		case "fps":
			if *f.FPS > 0 {
				cfg.Editor.FPS = *f.FPS
			}
		case "export-dir":
			if *f.ExportDir != "" {
				cfg.Editor.ExportDir = *f.ExportDir
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
