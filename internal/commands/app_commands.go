package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/palette"
	"github.com/bethropolis/poxi/internal/plugin"
)

// RegisterAppCommands registers the built-in commands.
func RegisterAppCommands(api plugin.EditorAPI) {
	cmds := map[string]plugin.CommandFunc{
		"color":    colorCmd(api),
		"palette":  paletteCmd(api),
		"palettes": listCmd(api, "palettes", api.ListPalettes),
		"theme":    themeCmd(api),
		"themes":   listCmd(api, "themes", api.ListThemes),
		"export":   exportCmd(api),
		"copy":     copyCmd(api),
		"canvas":   canvasCmd(api),
		"view":     viewCmd(api),
		"zoom":     zoomCmd(api),
		"cursor":   cursorCmd(api),
		"undo":     stepCmd(api, "undo", api.Undo),
		"redo":     stepCmd(api, "redo", api.Redo),
		"flatten":  stepCmd(api, "flatten", api.Flatten),
		"clear":    clearCmd(api),
		"info":     infoCmd(api),
	}
	for name, fn := range cmds {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

func parseSize(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: <width> <height>")
	}
	w, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width '%s': %w", args[0], err)
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height '%s': %w", args[1], err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}

func colorCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: color <#rrggbb>")
		}
		c, err := palette.ParseColor(args[0])
		if err != nil {
			return err
		}
		api.SetColor(c)
		api.SetStatusMessage("Color set to %s", palette.FormatColor(c))
		return nil
	}
}

func paletteCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: palette <name>")
		}
		name := strings.Join(args, " ")
		if err := api.SetPalette(name); err != nil {
			return fmt.Errorf("palette '%s' not found. Available: %s", name, strings.Join(api.ListPalettes(), ", "))
		}
		api.SetStatusMessage("Palette set to: %s", name)
		return nil
	}
}

func themeCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: theme <name>")
		}
		name := strings.Join(args, " ")
		if err := api.SetTheme(name); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", name, strings.Join(api.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", name)
		return nil
	}
}

func listCmd(api plugin.EditorAPI, what string, list func() []string) plugin.CommandFunc {
	return func(args []string) error {
		api.SetStatusMessage("Available %s: %s", what, strings.Join(list(), ", "))
		return nil
	}
}

func exportCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		path, err := api.ExportFile(name)
		if err != nil {
			return err
		}
		api.SetStatusMessage("Exported to %s", path)
		return nil
	}
}

func copyCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if err := api.CopyImage(); err != nil {
			return err
		}
		api.SetStatusMessage("Image copied as data URL")
		return nil
	}
}

func canvasCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			w, h := api.CanvasSize()
			api.SetStatusMessage("Canvas is %dx%d", w, h)
			return nil
		}
		w, h, err := parseSize(args)
		if err != nil {
			return err
		}
		if err := api.ResizeCanvas(w, h); err != nil {
			return err
		}
		api.SetStatusMessage("Canvas resized to %dx%d", w, h)
		return nil
	}
}

func viewCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		w, h, err := parseSize(args)
		if err != nil {
			return err
		}
		api.Resize(w, h)
		return nil
	}
}

func zoomCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		level := 0.0
		if len(args) > 0 && args[0] != "fit" {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid zoom '%s'", args[0])
			}
			level = v
		}
		api.Zoom(level)
		return nil
	}
}

func cursorCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		switch {
		case len(args) == 1:
			api.SetActiveCursor(args[0])
			api.SetStatusMessage("Cursor set to %s", args[0])
		case len(args) == 2:
			api.AddCursor(args[0], args[1])
			api.SetStatusMessage("Loading cursor %s", args[0])
		default:
			return fmt.Errorf("usage: cursor <kind> [path]")
		}
		return nil
	}
}

func stepCmd(api plugin.EditorAPI, name string, step func() bool) plugin.CommandFunc {
	return func(args []string) error {
		if !step() {
			api.SetStatusMessage("Nothing to %s", name)
			return nil
		}
		index, length := api.HistoryPosition()
		api.SetStatusMessage("%s: batch %d/%d", name, index+1, length)
		return nil
	}
}

func clearCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		api.ClearHistory()
		api.SetStatusMessage("Canvas cleared")
		return nil
	}
}

func infoCmd(api plugin.EditorAPI) plugin.CommandFunc {
	return func(args []string) error {
		w, h := api.CanvasSize()
		index, length := api.HistoryPosition()
		api.SetStatusMessage("%dx%d, batch %d/%d, revision %d", w, h, index+1, length, api.Revision())
		return nil
	}
}
