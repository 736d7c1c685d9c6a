package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/poxi/internal/core/history"
	"github.com/bethropolis/poxi/internal/logger"
	"github.com/bethropolis/poxi/internal/surface"
	"github.com/dgraph-io/ristretto/v2"
)

// DataURLPrefix starts every exported data URL.
const DataURLPrefix = "data:image/png;base64,"

// Source is the read-only view of the history an export needs.
type Source interface {
	Batches() []*history.Batch
	Index() int
	Bounds() image.Rectangle
	Revision() uint64
}

// Generator produces encoded images of the history.
type Generator interface {
	ExportPNG(src Source) ([]byte, error)
	ExportDataURL(src Source) (string, error)
}

// Exporter composites into an offscreen raster sized to the history bounds
// and encodes it as PNG. Encoded results are cached by revision.
type Exporter struct {
	compositor *Compositor
	cache      *ristretto.Cache[uint64, []byte]
}

// NewExporter creates an Exporter with a cache bounded to maxCostBytes of
// encoded PNG data. maxCostBytes <= 0 disables caching.
func NewExporter(c *Compositor, maxCostBytes int64) (*Exporter, error) {
	e := &Exporter{compositor: c}
	if maxCostBytes <= 0 {
		return e, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		NumCounters: 1000,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create export cache: %w", err)
	}
	e.cache = cache
	return e, nil
}

// Rasterize composites the active batches into a raster covering the history
// bounds. An empty history yields a 1x1 transparent raster.
func (e *Exporter) Rasterize(src Source) *surface.Raster {
	bounds := src.Bounds()
	if bounds.Empty() || src.Index() < 0 {
		return surface.NewRaster(1, 1)
	}
	out := surface.NewRaster(bounds.Dx(), bounds.Dy())
	e.compositor.Composite(src.Batches(), src.Index(), out, bounds.Min)
	return out
}

// ExportPNG implements Generator.
func (e *Exporter) ExportPNG(src Source) ([]byte, error) {
	rev := src.Revision()
	if e.cache != nil {
		if data, ok := e.cache.Get(rev); ok {
			logger.DebugTagf("render", "Export: cache hit for revision %d", rev)
			return data, nil
		}
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := e.Rasterize(src).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("export revision %d: %w", rev, err)
	}
	data := buf.Bytes()
	logger.DebugTagf("render", "Export: revision %d encoded %d bytes in %v", rev, len(data), time.Since(start))

	if e.cache != nil {
		e.cache.Set(rev, data, int64(len(data)))
		e.cache.Wait()
	}
	return data, nil
}

// ExportDataURL implements Generator.
func (e *Exporter) ExportDataURL(src Source) (string, error) {
	data, err := e.ExportPNG(src)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// WriteFile exports to dir/<name>.png, creating dir as needed, and returns
// the written path.
func (e *Exporter) WriteFile(src Source, dir, name string) (string, error) {
	data, err := e.ExportPNG(src)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	logger.Infof("Export: wrote %s", path)
	return path, nil
}

// Close releases the cache.
func (e *Exporter) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

var _ Generator = (*Exporter)(nil)
