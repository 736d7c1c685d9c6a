// Package camera maps between tile space and screen space.
package camera

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/bethropolis/poxi/internal/logger"
)

// Camera holds a zoom factor and a pan offset. Offset is the screen position
// of tile (0,0). The camera knows nothing about history.
type Camera struct {
	zoom       float64
	offX, offY float64

	viewW, viewH     int
	canvasW, canvasH int

	zoomTween *gween.Tween
}

// New creates a camera for a viewport and canvas, both in pixels.
func New(viewW, viewH, canvasW, canvasH int) *Camera {
	c := &Camera{zoom: 1}
	c.viewW, c.viewH = max(viewW, 0), max(viewH, 0)
	c.canvasW, c.canvasH = max(canvasW, 0), max(canvasH, 0)
	return c
}

// fitZoom is the largest integer zoom that shows the whole canvas, never
// below 1.
func (c *Camera) fitZoom() float64 {
	if c.canvasW == 0 || c.canvasH == 0 {
		return 1
	}
	z := math.Floor(math.Min(float64(c.viewW)/float64(c.canvasW), float64(c.viewH)/float64(c.canvasH)))
	return math.Max(z, 1)
}

// Scale sets the zoom. Level 0 (or less) fits the canvas into the viewport
// and centres it.
func (c *Camera) Scale(level float64) {
	c.zoomTween = nil
	if level <= 0 {
		c.zoom = c.fitZoom()
		c.offX = math.Floor((float64(c.viewW) - float64(c.canvasW)*c.zoom) / 2)
		c.offY = math.Floor((float64(c.viewH) - float64(c.canvasH)*c.zoom) / 2)
		logger.DebugTagf("camera", "Camera: fit zoom %.0f offset (%.0f,%.0f)", c.zoom, c.offX, c.offY)
		return
	}
	c.setZoomCentered(level)
}

// setZoomCentered changes the zoom keeping the tile under the viewport
// centre in place.
func (c *Camera) setZoomCentered(z float64) {
	cx, cy := float64(c.viewW)/2, float64(c.viewH)/2
	tx, ty := c.ScreenToTile(cx, cy)
	c.zoom = z
	c.offX = cx - tx*z
	c.offY = cy - ty*z
}

// ZoomTo animates the zoom to level over the given seconds. A non-positive
// duration applies the level immediately.
func (c *Camera) ZoomTo(level float64, seconds float32) {
	if level <= 0 {
		level = c.fitZoom()
	}
	if seconds <= 0 {
		c.Scale(level)
		return
	}
	c.zoomTween = gween.New(float32(c.zoom), float32(level), seconds, ease.OutQuad)
}

// Animating reports whether a zoom animation is running.
func (c *Camera) Animating() bool {
	return c.zoomTween != nil
}

// Update advances a running zoom animation by dt seconds and reports whether
// the transform changed.
func (c *Camera) Update(dt float32) bool {
	if c.zoomTween == nil {
		return false
	}
	val, done := c.zoomTween.Update(dt)
	if done {
		c.zoomTween = nil
	}
	prev := c.zoom
	c.setZoomCentered(float64(val))
	return c.zoom != prev
}

// TileToScreen maps a tile-space position to screen space.
func (c *Camera) TileToScreen(tx, ty float64) (sx, sy float64) {
	return tx*c.zoom + c.offX, ty*c.zoom + c.offY
}

// ScreenToTile maps a screen-space position back to tile space.
func (c *Camera) ScreenToTile(sx, sy float64) (tx, ty float64) {
	return (sx - c.offX) / c.zoom, (sy - c.offY) / c.zoom
}

// Cell returns the tile under a screen pixel.
func (c *Camera) Cell(sx, sy int) (x, y int) {
	tx, ty := c.ScreenToTile(float64(sx), float64(sy))
	return int(math.Floor(tx)), int(math.Floor(ty))
}

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.offX += dx
	c.offY += dy
}

// SetViewport updates the viewport size in pixels.
func (c *Camera) SetViewport(w, h int) {
	c.viewW, c.viewH = max(w, 0), max(h, 0)
}

// SetCanvas updates the canvas size in tiles.
func (c *Camera) SetCanvas(w, h int) {
	c.canvasW, c.canvasH = max(w, 0), max(h, 0)
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// Offset returns the screen position of tile (0,0).
func (c *Camera) Offset() (x, y float64) { return c.offX, c.offY }

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (w, h int) { return c.viewW, c.viewH }
