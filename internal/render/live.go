package render

import (
	"image"
	"math"

	"github.com/bethropolis/poxi/internal/surface"
)

// View maps between tile space and screen space.
type View interface {
	TileToScreen(tx, ty float64) (sx, sy float64)
	ScreenToTile(sx, sy float64) (tx, ty float64)
}

// Renderer draws the history onto an on-screen surface.
type Renderer interface {
	Draw(dst surface.Surface, src Source, view View)
}

// LiveRenderer composites the visible tile region and scales it onto the
// target with nearest filtering. The scaled frame is reused while neither
// the history revision nor the view changes.
type LiveRenderer struct {
	compositor *Compositor

	lastRev   uint64
	lastTiles image.Rectangle
	lastView  image.Rectangle // screen rect the visible tiles map to
	lastDst   image.Rectangle
	frame     *image.NRGBA
	valid     bool
}

// NewLiveRenderer creates a LiveRenderer.
func NewLiveRenderer(c *Compositor) *LiveRenderer {
	return &LiveRenderer{compositor: c}
}

// visibleTiles returns the tile rectangle covering the screen area.
func visibleTiles(screen image.Rectangle, view View) image.Rectangle {
	x0, y0 := view.ScreenToTile(float64(screen.Min.X), float64(screen.Min.Y))
	x1, y1 := view.ScreenToTile(float64(screen.Max.X), float64(screen.Max.Y))
	return image.Rect(
		int(math.Floor(math.Min(x0, x1))), int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))), int(math.Ceil(math.Max(y0, y1))),
	)
}

// Draw implements Renderer.
func (r *LiveRenderer) Draw(dst surface.Surface, src Source, view View) {
	screen := dst.Bounds()
	if screen.Empty() {
		return
	}
	tiles := visibleTiles(screen, view)
	sx0, sy0 := view.TileToScreen(float64(tiles.Min.X), float64(tiles.Min.Y))
	sx1, sy1 := view.TileToScreen(float64(tiles.Max.X), float64(tiles.Max.Y))
	dr := image.Rect(
		int(math.Round(sx0)), int(math.Round(sy0)),
		int(math.Round(sx1)), int(math.Round(sy1)),
	)
	if r.valid && r.lastRev == src.Revision() && r.lastTiles == tiles && r.lastView == dr && r.lastDst == screen {
		dst.DrawImage(r.frame, image.Point{})
		return
	}

	frame := image.NewNRGBA(screen)
	if !tiles.Empty() && src.Index() >= 0 {
		region := surface.NewRaster(tiles.Dx(), tiles.Dy())
		r.compositor.Composite(src.Batches(), src.Index(), region, tiles.Min)
		surface.ScaleNearest(frame, dr, region.Image())
	}

	r.frame = frame
	r.lastRev = src.Revision()
	r.lastTiles = tiles
	r.lastView = dr
	r.lastDst = screen
	r.valid = true
	dst.DrawImage(frame, image.Point{})
}

// Invalidate forces the next Draw to recomposite.
func (r *LiveRenderer) Invalidate() {
	r.valid = false
}

var _ Renderer = (*LiveRenderer)(nil)
