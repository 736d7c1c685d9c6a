// Package cursor keeps named cursor images that load in the background.
package cursor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"
	"sort"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/bethropolis/poxi/internal/logger"
)

// entry is a reserved cursor kind. img stays nil until a load succeeds.
type entry struct {
	img image.Image
	gen int
}

// Registry maps cursor kinds to images. A kind is reserved as soon as Load
// is called, so it can be made active before its image arrives.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	active  string
	wg      sync.WaitGroup

	onLoad func(kind string, err error)
}

// NewRegistry creates an empty registry. onLoad, if set, runs on the loading
// goroutine after each load attempt.
func NewRegistry(onLoad func(kind string, err error)) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		onLoad:  onLoad,
	}
}

// Load reserves kind and decodes the image at path in the background. Any
// earlier image for kind is dropped at once. On failure the kind stays
// reserved without an image.
func (r *Registry) Load(kind, path string) {
	r.mu.Lock()
	e, ok := r.entries[kind]
	if !ok {
		e = &entry{}
		r.entries[kind] = e
	}
	e.img = nil
	e.gen++
	gen := e.gen
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		img, err := decodeFile(path)

		r.mu.Lock()
		if err == nil && e.gen == gen && r.entries[kind] == e {
			e.img = img
		}
		r.mu.Unlock()

		if err != nil {
			logger.Warnf("Cursor: failed to load %q from %s: %v", kind, path, err)
		} else {
			logger.DebugTagf("cursor", "Cursor: loaded %q (%v)", kind, img.Bounds().Size())
		}
		if r.onLoad != nil {
			r.onLoad(kind, err)
		}
	}()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	logger.DebugTagf("cursor", "Cursor: decoded %s as %s", path, format)
	return img, nil
}

// Get returns the image for kind once it has loaded.
func (r *Registry) Get(kind string) (image.Image, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[kind]
	if !ok || e.img == nil {
		return nil, false
	}
	return e.img, true
}

// Reserved reports whether Load was called for kind.
func (r *Registry) Reserved(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[kind]
	return ok
}

// SetActive makes kind the active cursor. An unreserved kind clears it.
func (r *Registry) SetActive(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[kind]; ok {
		r.active = kind
		return
	}
	r.active = ""
}

// Active returns the active kind, or "" when none is set.
func (r *Registry) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// ActiveImage returns the image of the active cursor if it has loaded.
func (r *Registry) ActiveImage() (image.Image, bool) {
	return r.Get(r.Active())
}

// Kinds returns the reserved kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Wait blocks until every pending load has finished.
func (r *Registry) Wait() {
	r.wg.Wait()
}
