// Package palette holds named colour palettes and the active selection.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of colours with a selected entry.
type Palette struct {
	Name   string
	Colors []color.NRGBA
	index  int
}

// New creates a palette. An empty colour list gets opaque black.
func New(name string, colors []color.NRGBA) *Palette {
	if len(colors) == 0 {
		colors = []color.NRGBA{{A: 255}}
	}
	return &Palette{Name: name, Colors: colors}
}

// Current returns the selected colour.
func (p *Palette) Current() color.NRGBA {
	return p.Colors[p.index]
}

// Index returns the selected position.
func (p *Palette) Index() int { return p.index }

// Len returns the number of colours.
func (p *Palette) Len() int { return len(p.Colors) }

// Select picks the colour at i, wrapping around both ends.
func (p *Palette) Select(i int) color.NRGBA {
	n := len(p.Colors)
	p.index = ((i % n) + n) % n
	return p.Current()
}

// Next selects the following colour.
func (p *Palette) Next() color.NRGBA { return p.Select(p.index + 1) }

// Prev selects the preceding colour.
func (p *Palette) Prev() color.NRGBA { return p.Select(p.index - 1) }

// Find returns the position of c, or -1.
func (p *Palette) Find(c color.NRGBA) int {
	for i, pc := range p.Colors {
		if pc == c {
			return i
		}
	}
	return -1
}

// ParseColor parses "#rrggbb", "#rgb" or "#rrggbbaa". "transparent" yields
// the zero colour.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" || s == "none" {
		return color.NRGBA{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: must start with '#'", s)
	}

	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c the way ParseColor reads it.
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 255 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}

// Parse builds a palette from hex strings. Invalid entries are returned as
// one error each and skipped.
func Parse(name string, hexes []string) (*Palette, []error) {
	var errs []error
	colors := make([]color.NRGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		colors = append(colors, c)
	}
	return New(name, colors), errs
}

// Blend mixes a and b in Lab space. t=0 gives a, t=1 gives b. Alpha is
// interpolated linearly.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}
