package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/logger"
)

// ExportImage returns the active history as a PNG data URL. An empty
// history yields a 1x1 transparent image.
func (a *App) ExportImage() (string, error) {
	url, err := a.exporter.ExportDataURL(a.history)
	if err != nil {
		return "", err
	}
	a.exported("", len(url))
	return url, nil
}

// ExportPNG returns the active history as encoded PNG bytes.
func (a *App) ExportPNG() ([]byte, error) {
	data, err := a.exporter.ExportPNG(a.history)
	if err != nil {
		return nil, err
	}
	a.exported("", len(data))
	return data, nil
}

// ExportFile writes the PNG into the export directory. An empty name picks
// a timestamped one.
func (a *App) ExportFile(name string) (string, error) {
	if name == "" {
		name = "poxi-" + a.now().Format("20060102-150405")
	}
	name = strings.TrimSuffix(name, ".png")
	path, err := a.exporter.WriteFile(a.history, a.opts.ExportDir, name)
	if err != nil {
		return "", err
	}
	a.exported(path, 0)
	return path, nil
}

// CopyImage puts the data URL on the clipboard.
func (a *App) CopyImage() error {
	url, err := a.ExportImage()
	if err != nil {
		return err
	}
	if !a.clipboard.Copy(url) && a.clipboard.System() {
		return errors.New("system clipboard unavailable, kept in register")
	}
	return nil
}

// Modified reports whether the history changed since the last export.
func (a *App) Modified() bool {
	return a.history.Revision() != a.exportedRev
}

func (a *App) exported(path string, size int) {
	a.exportedRev = a.history.Revision()
	logger.DebugTagf("app", "App: exported revision %d", a.exportedRev)
	a.eventManager.Dispatch(event.TypeExported, event.ExportedData{Path: path, Bytes: size})
	a.emitter.Emit(event.KindExport)
}

func (a *App) setStatus(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if a.statusHandler != nil {
		a.statusHandler(msg)
		return
	}
	logger.Infof("Status: %s", msg)
}
