// internal/event/event.go
package event

import "image/color"

// Type identifies the kind of notification on the bus.
type Type int

const (
	TypeUnknown Type = iota

	// History
	TypeHistoryChanged // commit, undo, redo, flatten or clear

	// Editor state
	TypeColorChanged // active colour changed
	TypeBrushMoved   // brush position changed

	// App
	TypeResized      // canvas resized
	TypeExported     // an export finished
	TypeCursorLoaded // an async cursor load finished
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeColorChanged:
		return "ColorChanged"
	case TypeBrushMoved:
		return "BrushMoved"
	case TypeResized:
		return "Resized"
	case TypeExported:
		return "Exported"
	case TypeCursorLoaded:
		return "CursorLoaded"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// HistoryChangedData describes the history after a change.
type HistoryChangedData struct {
	Index    int // active batch index, -1 when empty
	Len      int
	Revision uint64
	Action   string // "commit", "undo", "redo", "flatten", "clear", "background"
}

// ColorChangedData carries the new active colour.
type ColorChangedData struct {
	Color color.NRGBA
}

// BrushMovedData carries the new brush cell.
type BrushMovedData struct {
	X, Y int
}

// ResizedData carries the new output surface size.
type ResizedData struct {
	Width, Height int
}

// ExportedData describes a finished export.
type ExportedData struct {
	Path  string // empty when exported to memory or the clipboard
	Bytes int
}

// CursorLoadedData reports the outcome of a cursor load.
type CursorLoadedData struct {
	Kind string
	Err  error
}

// AppReadyData is sent once construction completes.
type AppReadyData struct{}

// AppQuitData is sent before shutdown.
type AppQuitData struct{}
