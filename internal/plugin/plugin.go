// internal/plugin/plugin.go
package plugin

import (
	"image/color"
	"time"

	"github.com/bethropolis/poxi/internal/event"
)

// CommandFunc is a command callable from the command line or by plugins.
type CommandFunc func(args []string) error

// EditorAPI is the surface plugins and commands get to drive the editor.
type EditorAPI interface {
	// --- Canvas (read) ---
	CanvasSize() (w, h int)
	TileColor(x, y int) (color.NRGBA, bool)
	Revision() uint64
	HistoryPosition() (index, length int)

	// --- Canvas (write) ---
	PaintAt(x, y int, c color.NRGBA)
	SetColor(c color.NRGBA)
	Undo() bool
	Redo() bool
	Flatten() bool
	ClearHistory()
	ResizeCanvas(w, h int) error

	// --- View ---
	Resize(w, h int)
	Zoom(level float64)

	// --- Output ---
	ExportPNG() ([]byte, error)
	ExportFile(name string) (string, error)
	CopyImage() error

	// --- Palette & theme ---
	SetPalette(name string) error
	ListPalettes() []string
	SetTheme(name string) error
	ListThemes() []string

	// --- Cursors ---
	AddCursor(kind, path string)
	SetActiveCursor(kind string)

	// --- Event bus & scheduling ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)
	// After runs fn on the main loop once d has elapsed.
	After(d time.Duration, fn func())

	RegisterCommand(name string, cmdFunc CommandFunc) error
	ExecuteCommand(line string) error
	SetStatusMessage(format string, args ...interface{})
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin is implemented by every plugin.
type Plugin interface {
	Name() string
	// Initialize is called once after the editor is ready.
	Initialize(api EditorAPI) error
	Shutdown() error
}
