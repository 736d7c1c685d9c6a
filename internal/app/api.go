// internal/app/api.go
package app

import (
	"image/color"
	"time"

	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/plugin"
)

var _ plugin.EditorAPI = (*editorAPI)(nil)

// editorAPI is the plugin.EditorAPI implementation over an App.
type editorAPI struct {
	app *App
}

func newEditorAPI(app *App) *editorAPI {
	return &editorAPI{app: app}
}

// --- Canvas ---

func (api *editorAPI) CanvasSize() (int, int) {
	return api.app.editor.CanvasSize()
}

func (api *editorAPI) TileColor(x, y int) (color.NRGBA, bool) {
	t, ok := api.app.history.Tile(x, y)
	if !ok {
		return color.NRGBA{}, false
	}
	return t.Color(), true
}

func (api *editorAPI) Revision() uint64 {
	return api.app.history.Revision()
}

func (api *editorAPI) HistoryPosition() (int, int) {
	return api.app.history.Index(), api.app.history.Len()
}

func (api *editorAPI) PaintAt(x, y int, c color.NRGBA) {
	api.app.editor.PaintWith(x, y, c)
}

func (api *editorAPI) SetColor(c color.NRGBA) { api.app.editor.SetColor(c) }
func (api *editorAPI) Undo() bool             { return api.app.editor.Undo() }
func (api *editorAPI) Redo() bool             { return api.app.editor.Redo() }
func (api *editorAPI) Flatten() bool          { return api.app.editor.Flatten() }
func (api *editorAPI) ClearHistory()          { api.app.editor.Clear() }

func (api *editorAPI) ResizeCanvas(w, h int) error {
	return api.app.ResizeCanvas(w, h)
}

// --- View ---

func (api *editorAPI) Resize(w, h int)    { api.app.Resize(w, h) }
func (api *editorAPI) Zoom(level float64) { api.app.Zoom(level) }

// --- Output ---

func (api *editorAPI) ExportPNG() ([]byte, error)             { return api.app.ExportPNG() }
func (api *editorAPI) ExportFile(name string) (string, error) { return api.app.ExportFile(name) }
func (api *editorAPI) CopyImage() error                       { return api.app.CopyImage() }

// --- Palette & theme ---

func (api *editorAPI) SetPalette(name string) error {
	if err := api.app.palettes.SetActive(name); err != nil {
		return err
	}
	api.app.editor.SetPalette(api.app.palettes.Current())
	return nil
}

func (api *editorAPI) ListPalettes() []string { return api.app.palettes.Names() }

func (api *editorAPI) SetTheme(name string) error { return api.app.themes.SetTheme(name) }
func (api *editorAPI) ListThemes() []string       { return api.app.themes.ListThemes() }

// --- Cursors ---

func (api *editorAPI) AddCursor(kind, path string) { api.app.AddCursor(kind, path) }
func (api *editorAPI) SetActiveCursor(kind string) { api.app.SetActiveCursor(kind) }

// --- Event bus & scheduling ---

func (api *editorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *editorAPI) After(d time.Duration, fn func()) {
	api.app.host.After(d, fn)
}

// --- Commands, status, config ---

func (api *editorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.Register(name, cmdFunc)
}

func (api *editorAPI) ExecuteCommand(line string) error {
	return api.app.commands.Execute(line)
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.setStatus(format, args...)
}

func (api *editorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	if api.app.opts.PluginValue == nil {
		return nil, false
	}
	return api.app.opts.PluginValue(pluginName, key)
}
