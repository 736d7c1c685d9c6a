// internal/core/editor.go
package core

import (
	"image"
	"image/color"

	"github.com/bethropolis/poxi/internal/core/history"
	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/palette"
)

// Editor applies drawing operations at the brush position and reports
// history changes on the event bus.
type Editor struct {
	history *history.Manager
	palette *palette.Palette
	color   color.NRGBA

	Brush            image.Point // tile under the brush
	canvasW, canvasH int

	eventManager *event.Manager
}

// NewEditor creates an editor over a history. The active colour starts at
// the palette's current entry.
func NewEditor(h *history.Manager, pal *palette.Palette) *Editor {
	if pal == nil {
		pal = palette.New("default", nil)
	}
	return &Editor{
		history: h,
		palette: pal,
		color:   pal.Current(),
	}
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// History returns the underlying history.
func (e *Editor) History() *history.Manager {
	return e.history
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

func (e *Editor) historyChanged(action string) {
	logger.DebugTagf("editor", "Editor: %s -> index %d/%d", action, e.history.Index(), e.history.Len())
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		Index:    e.history.Index(),
		Len:      e.history.Len(),
		Revision: e.history.Revision(),
		Action:   action,
	})
}

// SetCanvasSize resizes the canvas. History is kept; the brush is clamped.
func (e *Editor) SetCanvasSize(w, h int) {
	e.canvasW, e.canvasH = max(w, 0), max(h, 0)
	e.history.SetCanvasSize(e.canvasW, e.canvasH)
	e.SetBrush(e.Brush.X, e.Brush.Y)
}

// CanvasSize returns the canvas size in tiles.
func (e *Editor) CanvasSize() (int, int) {
	return e.canvasW, e.canvasH
}

// --- Colour ---

// Color returns the active colour.
func (e *Editor) Color() color.NRGBA {
	return e.color
}

// SetColor changes the active colour.
func (e *Editor) SetColor(c color.NRGBA) {
	if c == e.color {
		return
	}
	e.color = c
	if i := e.palette.Find(c); i >= 0 {
		e.palette.Select(i)
	}
	e.dispatch(event.TypeColorChanged, event.ColorChangedData{Color: c})
}

// Palette returns the palette colours are cycled through.
func (e *Editor) Palette() *palette.Palette {
	return e.palette
}

// SetPalette switches palettes and takes its current colour.
func (e *Editor) SetPalette(p *palette.Palette) {
	if p == nil {
		return
	}
	e.palette = p
	e.SetColor(p.Current())
}

// NextColor selects the next palette colour.
func (e *Editor) NextColor() color.NRGBA {
	e.SetColor(e.palette.Next())
	return e.color
}

// PrevColor selects the previous palette colour.
func (e *Editor) PrevColor() color.NRGBA {
	e.SetColor(e.palette.Prev())
	return e.color
}

// PickColor takes the visible colour of the tile under the brush. It
// reports false over an empty or transparent tile.
func (e *Editor) PickColor() bool {
	t, ok := e.history.Tile(e.Brush.X, e.Brush.Y)
	if !ok || t.Color().A == 0 {
		return false
	}
	e.SetColor(t.Color())
	return true
}

// --- Drawing ---

// Paint writes the active colour under the brush.
func (e *Editor) Paint() {
	e.PaintAt(e.Brush.X, e.Brush.Y)
}

// PaintAt writes the active colour at a tile.
func (e *Editor) PaintAt(x, y int) {
	e.PaintWith(x, y, e.color)
}

// PaintWith writes c at a tile without changing the active colour.
func (e *Editor) PaintWith(x, y int, c color.NRGBA) {
	e.history.CommitTileEdit(x, y, c)
	e.historyChanged("commit")
}

// Erase writes transparency under the brush.
func (e *Editor) Erase() {
	e.history.CommitTileEdit(e.Brush.X, e.Brush.Y, color.NRGBA{})
	e.historyChanged("commit")
}

// PaintLine writes the active colour along a line, end points included, as
// one stroke.
func (e *Editor) PaintLine(from, to image.Point) {
	started := !e.history.InStroke()
	if started {
		e.history.BeginStroke()
	}
	for _, p := range linePoints(from, to) {
		e.history.CommitTileEdit(p.X, p.Y, e.color)
	}
	if started {
		e.history.EndStroke()
	}
	e.historyChanged("commit")
}

// linePoints returns the cells of a Bresenham line.
func linePoints(a, b image.Point) []image.Point {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	errv := dx + dy
	pts := make([]image.Point, 0, max(dx, -dy)+1)
	for p := a; ; {
		pts = append(pts, p)
		if p == b {
			return pts
		}
		e2 := 2 * errv
		if e2 >= dy {
			errv += dy
			p.X += sx
		}
		if e2 <= dx {
			errv += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// FillBackground covers the canvas with the active colour.
func (e *Editor) FillBackground() {
	e.history.CommitBackgroundBatch(e.color)
	e.historyChanged("background")
}

// BeginStroke groups the following edits into one undo step.
func (e *Editor) BeginStroke() {
	e.history.BeginStroke()
}

// EndStroke closes the current stroke.
func (e *Editor) EndStroke() {
	e.history.EndStroke()
}

// ToggleStroke opens a stroke or closes the open one and reports whether a
// stroke is now open.
func (e *Editor) ToggleStroke() bool {
	if e.history.InStroke() {
		e.history.EndStroke()
		return false
	}
	e.history.BeginStroke()
	return true
}

// InStroke reports whether a stroke is open.
func (e *Editor) InStroke() bool {
	return e.history.InStroke()
}

// --- History ---

// Undo steps one batch back.
func (e *Editor) Undo() bool {
	if !e.history.Undo() {
		return false
	}
	e.historyChanged("undo")
	return true
}

// Redo steps one batch forward.
func (e *Editor) Redo() bool {
	if !e.history.Redo() {
		return false
	}
	e.historyChanged("redo")
	return true
}

// Flatten merges the active batches into one buffered batch.
func (e *Editor) Flatten() bool {
	if !e.history.FlattenToBuffer() {
		return false
	}
	e.historyChanged("flatten")
	return true
}

// Clear drops the whole history.
func (e *Editor) Clear() {
	e.history.Clear()
	e.historyChanged("clear")
}
