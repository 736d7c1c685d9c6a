// internal/tui/present.go
package tui

import (
	"image"
	"image/color"

	"github.com/bethropolis/poxi/internal/palette"
	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel in the foreground and the bottom one in
// the background.
const upperHalf = '▀'

// Checker holds the two colours shown behind transparent pixels.
type Checker struct {
	Light, Dark color.NRGBA
}

// CheckerFromStyles takes the backgrounds of two styles.
func CheckerFromStyles(light, dark tcell.Style) Checker {
	return Checker{Light: BackgroundOf(light), Dark: BackgroundOf(dark)}
}

// BackgroundOf returns the background of s as an opaque colour. Colours
// without an RGB value, such as the terminal default, come back black.
func BackgroundOf(s tcell.Style) color.NRGBA {
	_, bg, _ := s.Decompose()
	r, g, b := bg.RGB()
	if r < 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// at is the checker colour for cell (cx, cy).
func (c Checker) at(cx, cy int) color.NRGBA {
	if (cx/2+cy)%2 == 0 {
		return c.Light
	}
	return c.Dark
}

// flatten composites p over the checker background.
func (c Checker) flatten(p color.NRGBA, cx, cy int) color.NRGBA {
	bg := c.at(cx, cy)
	switch p.A {
	case 255:
		return p
	case 0:
		return bg
	}
	out := palette.Blend(bg, p, float64(p.A)/255)
	out.A = 255
	return out
}

func toTcell(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Present writes img to the screen with two pixels per cell, starting at
// the top-left corner and covering at most rows cell rows. The screen is
// not shown.
func (t *TUI) Present(img *image.NRGBA, rows int, checker Checker) {
	w, _ := t.screen.Size()
	b := img.Bounds()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < w; cx++ {
			top := pixel(img, b.Min.X+cx, b.Min.Y+cy*2)
			bottom := pixel(img, b.Min.X+cx, b.Min.Y+cy*2+1)
			style := tcell.StyleDefault.
				Foreground(toTcell(checker.flatten(top, cx, cy))).
				Background(toTcell(checker.flatten(bottom, cx, cy)))
			t.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
}

func pixel(img *image.NRGBA, x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.NRGBA{}
	}
	return img.NRGBAAt(x, y)
}

// Mark outlines the pixel rectangle r with marker cells in style, leaving
// the cell colours underneath as drawn by Present. Used for the brush.
func (t *TUI) Mark(r image.Rectangle, rows int, style tcell.Style) {
	fg, _, _ := style.Decompose()
	minRow, maxRow := r.Min.Y/2, (r.Max.Y-1)/2
	for cy := max(minRow, 0); cy <= maxRow && cy < rows; cy++ {
		for cx := max(r.Min.X, 0); cx < r.Max.X; cx++ {
			if cy != minRow && cy != maxRow && cx != r.Min.X && cx != r.Max.X-1 {
				continue
			}
			_, _, cur, _ := t.screen.GetContent(cx, cy)
			_, bg, _ := cur.Decompose()
			t.screen.SetContent(cx, cy, '▪', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}
