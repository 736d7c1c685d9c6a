package ebitenhost

import (
	"image"
	"image/color"

	"github.com/bethropolis/poxi/internal/surface"
	"github.com/hajimehoshi/ebiten/v2"
)

// Surface adapts an *ebiten.Image to surface.Surface. Source images are
// uploaded once and reused for as long as they are drawn every frame; the
// live renderer hands back the same frame while nothing changes.
type Surface struct {
	img      *ebiten.Image
	textures map[image.Image]*ebiten.Image
	used     map[image.Image]bool
}

// Begin points the surface at the image being drawn this frame.
func (s *Surface) Begin(img *ebiten.Image) {
	s.img = img
	if s.textures == nil {
		s.textures = make(map[image.Image]*ebiten.Image)
		s.used = make(map[image.Image]bool)
	}
}

// End detaches the frame target and frees uploads not drawn this frame.
func (s *Surface) End() {
	s.img = nil
	for src, tex := range s.textures {
		if !s.used[src] {
			tex.Deallocate()
			delete(s.textures, src)
		}
	}
	clear(s.used)
}

// Bounds implements surface.Surface.
func (s *Surface) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	b := s.img.Bounds()
	return image.Rect(0, 0, b.Dx(), b.Dy())
}

// FillRect implements surface.Surface.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	if sub, ok := s.img.SubImage(r).(*ebiten.Image); ok {
		sub.Fill(c)
	}
}

// DrawImage implements surface.Surface.
func (s *Surface) DrawImage(img image.Image, at image.Point) {
	s.draw(img, at, ebiten.BlendSourceOver)
}

// CopyImage implements surface.Surface.
func (s *Surface) CopyImage(img image.Image, at image.Point) {
	s.draw(img, at, ebiten.BlendCopy)
}

func (s *Surface) draw(img image.Image, at image.Point, blend ebiten.Blend) {
	if img == nil || s.img == nil || img.Bounds().Empty() {
		return
	}
	tex, ok := s.textures[img]
	if !ok {
		tex = ebiten.NewImageFromImage(img)
		s.textures[img] = tex
	}
	s.used[img] = true
	op := &ebiten.DrawImageOptions{Blend: blend}
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	s.img.DrawImage(tex, op)
}

var _ surface.Surface = (*Surface)(nil)
