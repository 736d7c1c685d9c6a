// Package render composites the active part of the edit history onto a
// surface, for live display and for export.
package render

import (
	"image"

	"github.com/bethropolis/poxi/internal/core/history"
	"github.com/bethropolis/poxi/internal/surface"
)

// Compositor applies batches in order, skipping those past sindex:
//   - background: fill the whole target
//   - buffered: copy the snapshot over its bounds
//   - tiles: write each tile's current colour as one pixel
//
// Output depends only on the batches, sindex and the tile cursors.
type Compositor struct{}

// NewCompositor returns a Compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// Composite implements history.Compositor. origin is the tile-space point
// drawn at dst (0, 0).
func (c *Compositor) Composite(batches []*history.Batch, sindex int, dst surface.Surface, origin image.Point) {
	full := dst.Bounds()
	for i, b := range batches {
		if i > sindex {
			break
		}
		switch b.Kind {
		case history.KindBackground:
			dst.FillRect(full, b.Color)
		case history.KindBuffered:
			if b.Buffer != nil {
				dst.CopyImage(b.Buffer, b.Bounds.Min.Sub(origin))
			}
		case history.KindTiles:
			for _, t := range b.Tiles {
				p := t.Point().Sub(origin)
				dst.FillRect(image.Rect(p.X, p.Y, p.X+1, p.Y+1), t.Color())
			}
		}
	}
}

var _ history.Compositor = (*Compositor)(nil)
