// cmd/poxi-gui/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log"
	"os"

	"github.com/bethropolis/poxi/internal/app"
	"github.com/bethropolis/poxi/internal/config"
	"github.com/bethropolis/poxi/internal/ebitenhost"
	"github.com/bethropolis/poxi/internal/logger"
)

var version = "dev"

func main() {
	var flags config.Flags
	windowW := flag.Int("window-width", 960, "Initial window width in pixels")
	windowH := flag.Int("window-height", 640, "Initial window height in pixels")
	if _, err := flags.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s-gui %s\n", config.AppName, version)
		return
	}

	cfg, err := config.Load(*flags.ConfigFilePath, *flags.EnvFilePath, &flags)
	if err != nil {
		stlog.Printf("Warning: %v", err)
	}
	logger.Init(cfg.Logger)
	defer logger.Close()

	logger.Infof("Starting Poxi %s (window)...", version)
	opts := app.OptionsFromConfig(cfg, *windowW, *windowH)
	if err := ebitenhost.Run(opts, "Poxi"); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("Poxi finished.")
}
