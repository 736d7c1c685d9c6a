package history

import (
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/surface"
)

// FlattenToBuffer replaces the active batches with at most two: the last
// active background batch, which still fills the whole target, and one
// buffered batch holding the composited pixels of the bounding box. The
// composited result is unchanged, so the revision is kept. The redo branch
// is discarded because the replaced batches no longer exist to be redone
// onto. It reports whether anything was flattened.
func (m *Manager) FlattenToBuffer() bool {
	m.closeStroke()
	if m.compositor == nil || m.sindex < 1 {
		return false
	}
	bg := m.lastBackground()
	if bg == 0 && m.sindex == 1 {
		return false
	}
	bounds := m.bounds
	if bounds.Empty() {
		return false
	}

	var keep []*Batch
	if bg >= 0 {
		keep = append(keep, m.batches[bg])
	}
	if bg < m.sindex {
		buf := surface.NewRaster(bounds.Dx(), bounds.Dy())
		m.compositor.Composite(m.batches, m.sindex, buf, bounds.Min)
		keep = append(keep, newBufferedBatch(buf.Image(), bounds.Min))
	}

	flattened := m.sindex + 1
	m.truncate()
	clear(m.batches)
	m.batches = append(m.batches[:0], keep...)
	m.sindex = len(m.batches) - 1
	m.recomputeBounds()

	logger.DebugTagf("history", "History: flattened %d batches into %d (%dx%d buffer)", flattened, len(m.batches), bounds.Dx(), bounds.Dy())
	return true
}

// lastBackground returns the index of the last active background batch, or
// -1.
func (m *Manager) lastBackground() int {
	for i := m.sindex; i >= 0; i-- {
		if m.batches[i].Kind == KindBackground {
			return i
		}
	}
	return -1
}

// maybeFlatten applies the automatic flatten threshold.
func (m *Manager) maybeFlatten() {
	if m.flattenThreshold > 0 && !m.stroke && m.sindex+1 > m.flattenThreshold {
		m.FlattenToBuffer()
	}
}
