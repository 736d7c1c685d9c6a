package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/bethropolis/poxi/internal/surface"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

// countingCompositor records calls and fills the target with a marker.
type countingCompositor struct {
	calls int
}

func (c *countingCompositor) Composite(batches []*Batch, sindex int, dst surface.Surface, origin image.Point) {
	c.calls++
	dst.FillRect(dst.Bounds(), green)
}

func TestTileWriteAndStep(t *testing.T) {
	tile := newTile(2, 3)
	if tile.Index() != 0 || tile.Color() != (color.NRGBA{}) {
		t.Fatalf("new tile = index %d colour %v, want 0 transparent", tile.Index(), tile.Color())
	}
	tile.Write(red)
	tile.Write(blue)
	if tile.Color() != blue || tile.Index() != 2 {
		t.Errorf("after writes: colour %v index %d, want blue 2", tile.Color(), tile.Index())
	}
	if !tile.Step(-1) || tile.Color() != red {
		t.Errorf("Step(-1): colour %v, want red", tile.Color())
	}
	if tile.Len() != 3 {
		t.Errorf("Len = %d, want 3 (step never removes)", tile.Len())
	}
	tile.Step(-1)
	if tile.Step(-1) {
		t.Error("Step below zero moved the cursor")
	}
	tile.Step(1)
	tile.Write(green) // drops the stale blue entry
	if got := tile.History(); len(got) != 3 || got[2] != green {
		t.Errorf("History = %v, want [transparent red green]", got)
	}
	if tile.Step(1) {
		t.Error("Step past the end moved the cursor")
	}
}

func TestCommitUndoRedo(t *testing.T) {
	m := NewManager(nil)
	if m.Index() != -1 || m.CanUndo() || m.CanRedo() {
		t.Fatalf("empty manager: index %d", m.Index())
	}

	m.CommitTileEdit(0, 0, red)
	m.CommitTileEdit(0, 0, blue)
	tile, _ := m.Tile(0, 0)

	if m.Len() != 2 || m.Index() != 1 {
		t.Fatalf("Len/Index = %d/%d, want 2/1", m.Len(), m.Index())
	}
	if tile.Color() != blue {
		t.Errorf("colour = %v, want blue", tile.Color())
	}

	if !m.Undo() {
		t.Fatal("Undo returned false")
	}
	if tile.Color() != red {
		t.Errorf("after undo colour = %v, want red", tile.Color())
	}
	if !m.Redo() {
		t.Fatal("Redo returned false")
	}
	if tile.Color() != blue {
		t.Errorf("after redo colour = %v, want blue", tile.Color())
	}
	if m.Redo() {
		t.Error("Redo at tip returned true")
	}

	m.Undo()
	m.Undo()
	if m.Undo() {
		t.Error("Undo at -1 returned true")
	}
	if m.Index() != -1 {
		t.Errorf("Index = %d, want -1", m.Index())
	}
}

func TestCommitDiscardsRedoBranch(t *testing.T) {
	m := NewManager(nil)
	m.CommitTileEdit(0, 0, red)
	m.CommitTileEdit(1, 0, red)
	m.CommitTileEdit(2, 0, red)
	m.Undo()
	m.Undo()

	m.CommitTileEdit(5, 5, blue)
	if m.Len() != 2 || m.Index() != 1 {
		t.Errorf("Len/Index = %d/%d, want 2/1", m.Len(), m.Index())
	}
	if m.CanRedo() {
		t.Error("CanRedo after new edit")
	}
	if got, want := m.Bounds(), image.Rect(0, 0, 6, 6); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestStrokeGroupsEdits(t *testing.T) {
	m := NewManager(nil)
	m.BeginStroke()
	m.CommitTileEdit(0, 0, red)
	m.CommitTileEdit(1, 0, red)
	m.CommitTileEdit(0, 0, blue)
	m.EndStroke()

	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1 batch for the stroke", m.Len())
	}
	b := m.Batches()[0]
	if b.Kind != KindTiles || len(b.Tiles) != 3 || b.IsOpen() {
		t.Errorf("batch = %s with %d tiles open=%v", b.Kind, len(b.Tiles), b.IsOpen())
	}

	m.Undo()
	tile, _ := m.Tile(0, 0)
	if tile.Index() != 0 {
		t.Errorf("tile index after undo = %d, want 0", tile.Index())
	}
	m.Redo()
	if tile.Color() != blue {
		t.Errorf("tile colour after redo = %v, want blue", tile.Color())
	}

	m.CommitTileEdit(3, 3, green)
	if m.Len() != 2 {
		t.Errorf("edit after stroke: Len = %d, want 2", m.Len())
	}
}

func TestUndoClosesStroke(t *testing.T) {
	m := NewManager(nil)
	m.BeginStroke()
	m.CommitTileEdit(0, 0, red)
	m.Undo()
	if m.InStroke() {
		t.Error("stroke still open after undo")
	}
	m.CommitTileEdit(1, 1, red)
	if m.Len() != 1 || m.Index() != 0 {
		t.Errorf("Len/Index = %d/%d, want 1/0", m.Len(), m.Index())
	}
}

func TestBackgroundBatchBounds(t *testing.T) {
	m := NewManager(nil)
	m.SetCanvasSize(10, 8)
	m.CommitBackgroundBatch(red)
	if got := m.Bounds(); got != image.Rect(0, 0, 10, 8) {
		t.Errorf("Bounds = %v, want canvas", got)
	}
	m.CommitTileEdit(12, -1, blue)
	if got := m.Bounds(); got != image.Rect(0, -1, 13, 8) {
		t.Errorf("Bounds = %v, want union with tile", got)
	}
	m.Undo()
	if got := m.Bounds(); got != image.Rect(0, 0, 10, 8) {
		t.Errorf("Bounds after undo = %v, want canvas", got)
	}
}

func TestRevisionChanges(t *testing.T) {
	m := NewManager(nil)
	r0 := m.Revision()
	m.CommitTileEdit(0, 0, red)
	r1 := m.Revision()
	if r1 == r0 {
		t.Error("revision unchanged after commit")
	}
	m.Redo() // no-op
	if m.Revision() != r1 {
		t.Error("revision changed by a no-op redo")
	}
	m.Undo()
	if m.Revision() == r1 {
		t.Error("revision unchanged after undo")
	}
}

func TestFlattenToBuffer(t *testing.T) {
	c := &countingCompositor{}
	m := NewManager(c)
	if m.FlattenToBuffer() {
		t.Error("flatten of empty history returned true")
	}
	m.CommitTileEdit(1, 1, red)
	if m.FlattenToBuffer() {
		t.Error("flatten of a single batch returned true")
	}
	m.CommitTileEdit(3, 2, red)
	m.CommitTileEdit(0, 5, red)
	m.Undo()
	rev := m.Revision()

	if !m.FlattenToBuffer() {
		t.Fatal("FlattenToBuffer returned false")
	}
	if c.calls != 1 {
		t.Errorf("compositor calls = %d, want 1", c.calls)
	}
	if m.Len() != 1 || m.Index() != 0 || m.CanRedo() {
		t.Fatalf("Len/Index = %d/%d, want 1/0 without redo", m.Len(), m.Index())
	}
	b := m.Batches()[0]
	if b.Kind != KindBuffered {
		t.Fatalf("Kind = %s, want buffered", b.Kind)
	}
	if b.Bounds != image.Rect(1, 1, 4, 3) {
		t.Errorf("Bounds = %v, want (1,1)-(4,3)", b.Bounds)
	}
	if b.Buffer.NRGBAAt(0, 0) != green {
		t.Errorf("buffer pixel = %v, want compositor output", b.Buffer.NRGBAAt(0, 0))
	}
	if m.Revision() != rev {
		t.Error("flatten changed the revision")
	}
}

func TestFlattenKeepsBackground(t *testing.T) {
	c := &countingCompositor{}
	m := NewManager(c)
	m.SetCanvasSize(4, 4)
	m.CommitTileEdit(0, 0, red)
	m.CommitBackgroundBatch(blue)
	if !m.FlattenToBuffer() || m.Len() != 1 {
		t.Fatalf("edits under a background not dropped, Len = %d", m.Len())
	}
	if m.FlattenToBuffer() {
		t.Error("flatten of a lone background returned true")
	}
	m.CommitTileEdit(1, 1, red)
	m.CommitTileEdit(2, 1, red)

	if !m.FlattenToBuffer() {
		t.Fatal("FlattenToBuffer returned false")
	}
	if m.Len() != 2 || m.Index() != 1 {
		t.Fatalf("Len/Index = %d/%d, want 2/1", m.Len(), m.Index())
	}
	if b := m.Batches()[0]; b.Kind != KindBackground || b.Color != blue {
		t.Errorf("batch 0 = %s %v, want the blue background", b.Kind, b.Color)
	}
	if b := m.Batches()[1]; b.Kind != KindBuffered || b.Bounds != image.Rect(0, 0, 4, 4) {
		t.Errorf("batch 1 = %s %v, want a buffer over the canvas", b.Kind, b.Bounds)
	}

	// A background at the tip leaves nothing to buffer.
	m.CommitBackgroundBatch(green)
	if !m.FlattenToBuffer() {
		t.Fatal("FlattenToBuffer returned false")
	}
	if m.Len() != 1 || m.Batches()[0].Color != green {
		t.Errorf("Len = %d, want only the green background", m.Len())
	}
	if c.calls != 1 {
		t.Errorf("compositor calls = %d, want 1", c.calls)
	}
}

func TestAutoFlattenThreshold(t *testing.T) {
	c := &countingCompositor{}
	m := NewManager(c)
	m.SetFlattenThreshold(3)

	m.CommitTileEdit(0, 0, red)
	m.CommitTileEdit(1, 0, red)
	m.CommitTileEdit(2, 0, red)
	if c.calls != 0 {
		t.Fatalf("flattened at %d batches, threshold 3", m.Len())
	}
	m.CommitTileEdit(3, 0, red)
	if c.calls != 1 || m.Len() != 1 {
		t.Errorf("calls/Len = %d/%d, want 1/1", c.calls, m.Len())
	}

	m.BeginStroke()
	for x := 0; x < 10; x++ {
		m.CommitTileEdit(x, 1, blue)
	}
	if c.calls != 1 {
		t.Error("flattened while a stroke was open")
	}
	m.EndStroke()
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestClear(t *testing.T) {
	m := NewManager(nil)
	m.CommitTileEdit(0, 0, red)
	m.Clear()
	if m.Len() != 0 || m.Index() != -1 || !m.Bounds().Empty() {
		t.Errorf("after Clear: Len %d Index %d Bounds %v", m.Len(), m.Index(), m.Bounds())
	}
	if _, ok := m.Tile(0, 0); ok {
		t.Error("tile survived Clear")
	}
}
