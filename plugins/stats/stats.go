// plugins/stats/stats.go
package stats

import (
	"fmt"
	"image/color"

	"github.com/bethropolis/poxi/internal/event"
	"github.com/bethropolis/poxi/internal/plugin"
)

var _ plugin.Plugin = (*Stats)(nil)

// Stats reports canvas statistics through the :stats command.
type Stats struct {
	api   plugin.EditorAPI
	edits int // history changes seen since start
}

// New creates a new instance of the Stats plugin.
func New() plugin.Plugin {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers :stats and counts history changes.
func (p *Stats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	api.SubscribeEvent(event.TypeHistoryChanged, func(event.Event) bool {
		p.edits++
		return false
	})
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *Stats) Shutdown() error {
	return nil
}

// Summary holds the numbers :stats prints.
type Summary struct {
	Painted int // visible, non-transparent tiles inside the canvas
	Colors  int // distinct colours among them
	Edits   int
}

// Collect walks the canvas.
func (p *Stats) Collect() Summary {
	w, h := p.api.CanvasSize()
	seen := make(map[color.NRGBA]struct{})
	s := Summary{Edits: p.edits}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := p.api.TileColor(x, y)
			if !ok || c.A == 0 {
				continue
			}
			s.Painted++
			seen[c] = struct{}{}
		}
	}
	s.Colors = len(seen)
	return s
}

func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	s := p.Collect()
	w, h := p.api.CanvasSize()
	p.api.SetStatusMessage("Tiles: %d/%d painted, Colors: %d, Edits: %d", s.Painted, w*h, s.Colors, s.Edits)
	return nil
}
