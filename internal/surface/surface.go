// Package surface defines the minimal pixel surface the compositor draws on,
// plus an in-memory implementation used for export and flattening.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Surface is the operation set required from a rendering backend.
type Surface interface {
	// Bounds returns the drawable area. Min is always (0, 0).
	Bounds() image.Rectangle
	// FillRect replaces the pixels in r with c.
	FillRect(r image.Rectangle, c color.Color)
	// DrawImage composites img source-over with its top-left corner at at.
	// Pixels outside Bounds are clipped.
	DrawImage(img image.Image, at image.Point)
	// CopyImage replaces the pixels under img with img, alpha included.
	CopyImage(img image.Image, at image.Point)
}

// Encoder is implemented by surfaces that can read themselves back as an
// encoded image.
type Encoder interface {
	EncodePNG(w io.Writer) error
}

// Factory creates an empty, fully transparent surface of the given size.
type Factory func(width, height int) Surface

// Raster is a Surface backed by an *image.NRGBA.
type Raster struct {
	img *image.NRGBA
}

// NewRaster creates a transparent raster. Non-positive sizes yield an empty
// raster that accepts and ignores all drawing.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// NewRasterFactory adapts NewRaster to a Factory.
func NewRasterFactory() Factory {
	return func(width, height int) Surface { return NewRaster(width, height) }
}

// Bounds implements Surface.
func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// FillRect implements Surface.
func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(r.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawImage implements Surface.
func (r *Raster) DrawImage(img image.Image, at image.Point) {
	if img == nil {
		return
	}
	sb := img.Bounds()
	dr := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(r.img, dr, img, sb.Min, draw.Over)
}

// CopyImage implements Surface.
func (r *Raster) CopyImage(img image.Image, at image.Point) {
	if img == nil {
		return
	}
	sb := img.Bounds()
	dr := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(r.img, dr, img, sb.Min, draw.Src)
}

// Image exposes the backing image. Callers must not retain it across writes
// they do not own.
func (r *Raster) Image() *image.NRGBA { return r.img }

// Clone returns an independent copy of the backing image.
func (r *Raster) Clone() *image.NRGBA {
	out := image.NewNRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// At returns the colour at (x, y).
func (r *Raster) At(x, y int) color.NRGBA {
	return r.img.NRGBAAt(x, y)
}

// EncodePNG implements Encoder.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ScaleNearest draws src into dr of dst with nearest-neighbour filtering so
// pixels stay sharp at any zoom.
func ScaleNearest(dst draw.Image, dr image.Rectangle, src image.Image) {
	draw.NearestNeighbor.Scale(dst, dr, src, src.Bounds(), draw.Over, nil)
}
