package history

import (
	"image"
	"image/color"
)

// Tile is a single canvas cell with its own colour history. The cursor
// selects the visible colour; undo and redo only move the cursor.
type Tile struct {
	X, Y   int
	colors []color.NRGBA
	cindex int
}

// newTile creates a tile whose history starts with a transparent entry, so
// the cursor stays valid when its first write is undone.
func newTile(x, y int) *Tile {
	return &Tile{
		X:      x,
		Y:      y,
		colors: []color.NRGBA{{}},
	}
}

// Write appends c and moves the cursor onto it. Entries past the cursor
// belong to a discarded redo branch and are dropped first.
func (t *Tile) Write(c color.NRGBA) {
	t.colors = append(t.colors[:t.cindex+1], c)
	t.cindex = len(t.colors) - 1
}

// Step moves the cursor by delta, clamped to the history. It reports whether
// the cursor moved.
func (t *Tile) Step(delta int) bool {
	next := t.cindex + delta
	if next < 0 || next >= len(t.colors) {
		return false
	}
	t.cindex = next
	return true
}

// Color returns the currently visible colour.
func (t *Tile) Color() color.NRGBA {
	return t.colors[t.cindex]
}

// Index returns the cursor into the colour history.
func (t *Tile) Index() int {
	return t.cindex
}

// Len returns the number of entries in the colour history.
func (t *Tile) Len() int {
	return len(t.colors)
}

// History returns a copy of the colour history.
func (t *Tile) History() []color.NRGBA {
	out := make([]color.NRGBA, len(t.colors))
	copy(out, t.colors)
	return out
}

// Point returns the tile position.
func (t *Tile) Point() image.Point {
	return image.Pt(t.X, t.Y)
}

// Cell returns the 1x1 rectangle the tile covers.
func (t *Tile) Cell() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+1, t.Y+1)
}
