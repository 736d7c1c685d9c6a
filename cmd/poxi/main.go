// cmd/poxi/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // Use standard log for errors before the logger is ready
	"os"

	"github.com/bethropolis/poxi/internal/app"
	"github.com/bethropolis/poxi/internal/config"
	"github.com/bethropolis/poxi/internal/logger"
)

var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	if _, err := flags.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	// --- Configuration ---
	cfg, err := config.Load(*flags.ConfigFilePath, *flags.EnvFilePath, &flags)
	if err != nil {
		// Defaults and the remaining layers still apply.
		stlog.Printf("Warning: %v", err)
	}

	// --- Logger Initialization ---
	logger.Init(cfg.Logger)
	defer logger.Close()

	logger.Infof("Starting Poxi %s...", version)
	logger.Debugf("Canvas %dx%d, %d fps, exports to %s",
		cfg.Editor.Width, cfg.Editor.Height, cfg.Editor.FPS, cfg.Editor.ExportDir)

	// --- Create and Run ---
	term, err := app.NewTerminal(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}
	if err := term.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("Poxi finished.")
}
