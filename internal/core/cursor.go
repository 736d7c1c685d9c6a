package core

import (
	"image"

	"github.com/bethropolis/poxi/internal/event"
)

// MoveBrush moves the brush by a tile delta, clamped to the canvas.
func (e *Editor) MoveBrush(dx, dy int) {
	e.SetBrush(e.Brush.X+dx, e.Brush.Y+dy)
}

// SetBrush places the brush, clamped to the canvas. With an empty canvas
// the brush rests at the origin.
func (e *Editor) SetBrush(x, y int) {
	target := image.Pt(clamp(x, 0, e.canvasW-1), clamp(y, 0, e.canvasH-1))
	if target == e.Brush {
		return
	}
	e.Brush = target
	e.dispatch(event.TypeBrushMoved, event.BrushMovedData{X: target.X, Y: target.Y})
}

// GetBrush returns the brush position.
func (e *Editor) GetBrush() image.Point {
	return e.Brush
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
