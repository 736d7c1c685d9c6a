// Package history records pixel edits as an ordered list of batches with a
// cursor, and provides undo/redo over them.
package history

import (
	"image"
	"image/color"

	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/surface"
)

// Compositor reduces batches[0..sindex] into dst, with origin mapped to the
// top-left pixel of dst.
type Compositor interface {
	Composite(batches []*Batch, sindex int, dst surface.Surface, origin image.Point)
}

// Manager owns the batch list, the tile store and the active cursor.
//
// Undo granularity is one batch. Undoing a tiles batch also steps back the
// colour cursor of every tile it wrote, so live tile colours always match the
// active batches.
type Manager struct {
	batches []*Batch
	sindex  int // index of the last active batch, -1 when empty
	bounds  image.Rectangle
	tiles   map[image.Point]*Tile
	canvas  image.Rectangle

	stroke           bool
	revision         uint64
	compositor       Compositor
	flattenThreshold int
}

// NewManager creates an empty history. c is used by FlattenToBuffer.
func NewManager(c Compositor) *Manager {
	return &Manager{
		sindex:     -1,
		tiles:      make(map[image.Point]*Tile),
		compositor: c,
	}
}

// SetCanvasSize sets the area later background batches cover. Existing
// batches keep the bounds they were committed with.
func (m *Manager) SetCanvasSize(width, height int) {
	m.canvas = image.Rect(0, 0, max(width, 0), max(height, 0))
}

// SetFlattenThreshold flattens the history automatically once more than n
// batches are active. 0 disables.
func (m *Manager) SetFlattenThreshold(n int) {
	m.flattenThreshold = max(n, 0)
}

// tile returns the tile at (x, y), creating it on first use.
func (m *Manager) tile(x, y int) *Tile {
	p := image.Pt(x, y)
	t, ok := m.tiles[p]
	if !ok {
		t = newTile(x, y)
		m.tiles[p] = t
	}
	return t
}

// Tile returns the tile at (x, y) if it has ever been written.
func (m *Manager) Tile(x, y int) (*Tile, bool) {
	t, ok := m.tiles[image.Pt(x, y)]
	return t, ok
}

func (m *Manager) tip() *Batch {
	if len(m.batches) == 0 {
		return nil
	}
	return m.batches[len(m.batches)-1]
}

// truncate discards the redo branch beyond sindex.
func (m *Manager) truncate() {
	if m.sindex >= len(m.batches)-1 {
		return
	}
	dropped := len(m.batches) - (m.sindex + 1)
	for i := m.sindex + 1; i < len(m.batches); i++ {
		m.batches[i] = nil
	}
	m.batches = m.batches[:m.sindex+1]
	logger.DebugTagf("history", "History: discarded %d redo batches", dropped)
}

// push truncates the redo branch and appends b as the new active tip.
func (m *Manager) push(b *Batch) {
	m.truncate()
	m.batches = append(m.batches, b)
	m.sindex = len(m.batches) - 1
	m.bounds = m.bounds.Union(b.Bounds)
	m.revision++
}

// BeginStroke groups the following tile edits into a single batch until
// EndStroke.
func (m *Manager) BeginStroke() {
	m.closeStroke()
	m.stroke = true
}

// EndStroke closes the current stroke, if any.
func (m *Manager) EndStroke() {
	m.closeStroke()
	m.maybeFlatten()
}

// InStroke reports whether a stroke is open.
func (m *Manager) InStroke() bool {
	return m.stroke
}

func (m *Manager) closeStroke() {
	m.stroke = false
	if tip := m.tip(); tip != nil {
		tip.open = false
	}
}

// CommitTileEdit writes c into the tile at (x, y) and records the edit.
// Inside a stroke the edit joins the open tip batch; otherwise, or when the
// cursor is behind the tip, a new tiles batch is started.
func (m *Manager) CommitTileEdit(x, y int, c color.NRGBA) {
	t := m.tile(x, y)
	tip := m.tip()

	if m.stroke && tip != nil && tip.open && m.sindex == len(m.batches)-1 {
		t.Write(c)
		tip.addTile(t)
		m.bounds = m.bounds.Union(t.Cell())
		m.revision++
		logger.DebugTagf("history", "History: tile (%d,%d) joined batch %d", x, y, m.sindex)
		return
	}

	if tip != nil {
		tip.open = false
	}
	b := newTilesBatch(m.stroke)
	t.Write(c)
	b.addTile(t)
	m.push(b)
	logger.DebugTagf("history", "History: tile (%d,%d) opened batch %d", x, y, m.sindex)

	if !m.stroke {
		m.maybeFlatten()
	}
}

// CommitBackgroundBatch records a fill of the whole canvas with c.
func (m *Manager) CommitBackgroundBatch(c color.NRGBA) {
	m.closeStroke()
	m.push(newBackgroundBatch(c, m.canvas))
	logger.DebugTagf("history", "History: background batch %d (%v)", m.sindex, c)
	m.maybeFlatten()
}

// Undo deactivates the last active batch. It reports false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	m.closeStroke()
	if m.sindex < 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return false
	}
	b := m.batches[m.sindex]
	b.step(-1)
	m.sindex--
	m.recomputeBounds()
	m.revision++
	logger.DebugTagf("history", "History: undid %s batch, index=%d", b.Kind, m.sindex)
	return true
}

// Redo reactivates the next batch. It reports false at the tip.
func (m *Manager) Redo() bool {
	m.closeStroke()
	if m.sindex >= len(m.batches)-1 {
		logger.DebugTagf("history", "History: Nothing to redo. index=%d, len=%d", m.sindex, len(m.batches))
		return false
	}
	m.sindex++
	b := m.batches[m.sindex]
	b.step(1)
	m.bounds = m.bounds.Union(b.Bounds)
	m.revision++
	logger.DebugTagf("history", "History: redid %s batch, index=%d", b.Kind, m.sindex)
	return true
}

func (m *Manager) recomputeBounds() {
	m.bounds = image.Rectangle{}
	for _, b := range m.Active() {
		m.bounds = m.bounds.Union(b.Bounds)
	}
}

// Clear drops all batches and tiles.
func (m *Manager) Clear() {
	m.batches = nil
	m.sindex = -1
	m.bounds = image.Rectangle{}
	m.tiles = make(map[image.Point]*Tile)
	m.stroke = false
	m.revision++
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are batches that can be undone.
func (m *Manager) CanUndo() bool {
	return m.sindex >= 0
}

// CanRedo returns true if there are batches that can be redone.
func (m *Manager) CanRedo() bool {
	return m.sindex < len(m.batches)-1
}

// Index returns sindex.
func (m *Manager) Index() int {
	return m.sindex
}

// Len returns the number of batches, including the redo branch.
func (m *Manager) Len() int {
	return len(m.batches)
}

// Batches returns every batch, including the redo branch. The slice must not
// be modified.
func (m *Manager) Batches() []*Batch {
	return m.batches
}

// Active returns batches[0..sindex]. The slice must not be modified.
func (m *Manager) Active() []*Batch {
	return m.batches[:m.sindex+1]
}

// Bounds returns the union of the active batch bounds.
func (m *Manager) Bounds() image.Rectangle {
	return m.bounds
}

// Revision changes whenever the composited result may have changed.
func (m *Manager) Revision() uint64 {
	return m.revision
}
