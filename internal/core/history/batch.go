package history

import (
	"image"
	"image/color"
)

// Kind selects how a Batch is represented and composited.
type Kind uint8

const (
	KindBackground Kind = iota // solid fill of the whole surface
	KindBuffered               // raster snapshot blitted at Bounds.Min
	KindTiles                  // sparse list of tiles drawn with their live colour
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindBuffered:
		return "buffered"
	case KindTiles:
		return "tiles"
	default:
		return "unknown"
	}
}

// Batch is one undo step. Only a tiles batch belonging to an open stroke
// accepts further edits; every other batch is immutable once appended.
type Batch struct {
	Kind   Kind
	Bounds image.Rectangle

	// Color is the fill of a background batch.
	Color color.NRGBA
	// Buffer is the snapshot of a buffered batch, drawn at Bounds.Min.
	Buffer *image.NRGBA
	// Tiles lists the tiles a tiles batch changed, in edit order. A tile
	// appears once per write.
	Tiles []*Tile

	open bool
}

func newBackgroundBatch(c color.NRGBA, bounds image.Rectangle) *Batch {
	return &Batch{Kind: KindBackground, Color: c, Bounds: bounds}
}

func newBufferedBatch(buf *image.NRGBA, at image.Point) *Batch {
	size := buf.Bounds().Size()
	return &Batch{
		Kind:   KindBuffered,
		Buffer: buf,
		Bounds: image.Rectangle{Min: at, Max: at.Add(size)},
	}
}

func newTilesBatch(open bool) *Batch {
	return &Batch{Kind: KindTiles, open: open}
}

func (b *Batch) addTile(t *Tile) {
	b.Tiles = append(b.Tiles, t)
	b.Bounds = b.Bounds.Union(t.Cell())
}

// IsOpen reports whether the batch still accepts tile edits.
func (b *Batch) IsOpen() bool {
	return b.open
}

// step moves the cursor of every tile entry by delta. Undo walks the entries
// in reverse so repeated writes to one tile unwind in order.
func (b *Batch) step(delta int) {
	if b.Kind != KindTiles {
		return
	}
	if delta < 0 {
		for i := len(b.Tiles) - 1; i >= 0; i-- {
			b.Tiles[i].Step(delta)
		}
		return
	}
	for _, t := range b.Tiles {
		t.Step(delta)
	}
}
